// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// shapeSize is the em size text is shaped at before scaling to the
// requested height. Shaping tiny diagram heights directly would lose most
// of the precision of the 26.6 fixed-point advances.
const shapeSize = 100

// Metrics measures strings with one parsed font.
//
// Metrics is safe for concurrent use.
type Metrics struct {
	ascent  float64 // per unit of height
	descent float64 // per unit of height, positive

	mu     sync.Mutex
	shaper shaping.HarfbuzzShaper
	face   *gotext.Face
}

// NewMetrics parses TrueType/OpenType data.
func NewMetrics(data []byte) (*Metrics, error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: parse: %w", err)
	}
	m := &Metrics{face: face, ascent: 0.8, descent: 0.2}
	if upem := float64(face.Upem()); upem > 0 {
		if ext, ok := face.FontHExtents(); ok {
			m.ascent = float64(ext.Ascender) / upem
			m.descent = -float64(ext.Descender) / upem
		}
	}
	return m, nil
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// DefaultMetrics returns metrics for the bundled Go Regular font.
func DefaultMetrics() *Metrics {
	defaultOnce.Do(func() {
		m, err := NewMetrics(goregular.TTF)
		if err != nil {
			panic("font: bundled font is invalid: " + err.Error())
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// Ascent returns the distance from baseline to the top of the font for
// text of the given height.
func (m *Metrics) Ascent(height float64) float64 {
	return m.ascent * height
}

// Descent returns the distance from baseline to the bottom of the font,
// as a positive number.
func (m *Metrics) Descent(height float64) float64 {
	return m.descent * height
}

// StringWidth returns the advance width of s at the given height.
func (m *Metrics) StringWidth(s string, height float64) float64 {
	if s == "" || height <= 0 {
		return 0
	}
	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      m.face,
		Size:      fixed.I(shapeSize),
		Script:    scriptOf(runes),
		Language:  language.NewLanguage("en"),
	}

	m.mu.Lock()
	out := m.shaper.Shape(input)
	m.mu.Unlock()

	adv := float64(out.Advance) / 64
	if adv < 0 {
		adv = -adv
	}
	return adv * height / shapeSize
}

func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
