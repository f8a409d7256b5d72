// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/diagram/font"
)

// maxFaces bounds the face cache. Zooming produces a new size per step.
const maxFaces = 64

type faceKey struct {
	data string // name of the embedded font
	size float64
}

// faceCache loads gg/text font sources on first use and caches faces by
// quantized pixel size.
type faceCache struct {
	mu      sync.Mutex
	sources map[string]*text.FontSource
	faces   map[faceKey]text.Face
}

func newFaceCache() *faceCache {
	return &faceCache{
		sources: make(map[string]*text.FontSource),
		faces:   make(map[faceKey]text.Face),
	}
}

var embedded = map[string][]byte{
	"goregular":        goregular.TTF,
	"gobold":           gobold.TTF,
	"goitalic":         goitalic.TTF,
	"gobolditalic":     gobolditalic.TTF,
	"gomono":           gomono.TTF,
	"gomonobold":       gomonobold.TTF,
	"gomonoitalic":     gomonoitalic.TTF,
	"gomonobolditalic": gomonobolditalic.TTF,
}

// embeddedName picks the Go font closest to f. The Go family has no serif
// face; serif fonts use the proportional faces.
func embeddedName(f font.Font) string {
	name := "go"
	if strings.EqualFold(f.Family, font.FamilyMonospace) || strings.HasPrefix(strings.ToLower(f.Family), "courier") {
		name += "mono"
	}
	bold, slanted := f.Bold(), f.Style != font.StyleNormal
	switch {
	case bold && slanted:
		name += "bolditalic"
	case bold:
		name += "bold"
	case slanted:
		name += "italic"
	case name == "go":
		name += "regular"
	}
	return name
}

// face returns a face for f at the given pixel size.
func (c *faceCache) face(f font.Font, px float64) (text.Face, error) {
	key := faceKey{data: embeddedName(f), size: math.Round(px*4) / 4}
	if key.size <= 0 {
		return nil, fmt.Errorf("raster: font size %v too small", px)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	src, ok := c.sources[key.data]
	if !ok {
		var err error
		src, err = text.NewFontSource(embedded[key.data])
		if err != nil {
			return nil, fmt.Errorf("raster: load %s: %w", key.data, err)
		}
		c.sources[key.data] = src
	}
	if len(c.faces) >= maxFaces {
		clear(c.faces)
	}
	face := src.Face(key.size)
	c.faces[key] = face
	return face, nil
}

func (c *faceCache) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, src := range c.sources {
		_ = src.Close()
	}
	clear(c.sources)
	clear(c.faces)
}
