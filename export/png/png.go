// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package png rasterises a whole diagram once and writes it as a PNG
// image. Drawing goes through the same gg-backed renderer as interactive
// displays, without any damage tracking.
//
// Importing the package registers the "png" format.
package png

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/export"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render/raster"
)

// DefaultScale is the resolution in pixels per centimetre.
const DefaultScale = 20

// MaxSize bounds each image dimension.
const MaxSize = 16384

// ErrTooLarge is reported when the extents at the chosen scale do not fit
// in MaxSize pixels.
var ErrTooLarge = errors.New("png: image too large")

func init() {
	export.Register("png", func(w io.Writer, cfg export.Config) export.Exporter {
		return New(w, cfg)
	})
}

// Exporter draws into an off-screen raster buffer and encodes it on
// EndRender.
type Exporter struct {
	*raster.Renderer

	w   *export.Writer
	cfg export.Config
	vp  geom.Viewport
	err error
}

// New returns an exporter writing to w.
func New(w io.Writer, cfg export.Config) *Exporter {
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}
	return &Exporter{
		Renderer: raster.New(),
		w:        export.NewWriter(w),
		cfg:      cfg,
	}
}

// Size returns the pixel size of the image for the configured extents.
func (e *Exporter) Size() (width, height int) {
	ext := e.cfg.Extents
	width = max(int(math.Ceil(ext.Width()*e.cfg.Scale)), 1)
	height = max(int(math.Ceil(ext.Height()*e.cfg.Scale)), 1)
	return width, height
}

// Err returns the first sizing, encoding or write error, or else the
// first BeginRender or EndRender misuse.
func (e *Exporter) Err() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Err(); err != nil {
		return err
	}
	return e.Renderer.Err()
}

func (e *Exporter) BeginRender(clip *geom.Rectangle) {
	width, height := e.Size()
	if width > MaxSize || height > MaxSize {
		e.err = fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, width, height)
	} else if err := e.SetSize(width, height); err != nil {
		e.err = fmt.Errorf("png: %w", err)
	}

	ext := e.cfg.Extents
	e.vp = geom.Viewport{
		Visible: geom.Rect(ext.Left, ext.Top, ext.Left+float64(width)/e.cfg.Scale, ext.Top+float64(height)/e.cfg.Scale),
		Zoom:    e.cfg.Scale,
		Width:   width,
		Height:  height,
	}
	e.SetTransform(geom.NewTransform(&e.vp))
	e.ClipRegionClear()
	e.Renderer.BeginRender(clip)

	if bg := e.cfg.Background; bg != nil {
		e.FillPixelRect(0, 0, width, height, *bg)
	}
}

func (e *Exporter) EndRender() {
	e.Renderer.EndRender()
	if e.err != nil {
		return
	}
	if err := png.Encode(e.w, e.Image()); err != nil {
		e.err = fmt.Errorf("png: %w", err)
		return
	}
	diagram.Logger().Debug("png: image encoded", "width", e.vp.Width, "height", e.vp.Height, "bytes", e.w.Count())
}

// Close releases the raster buffer.
func (e *Exporter) Close() error {
	return e.Renderer.Close()
}

var _ export.Exporter = (*Exporter)(nil)
