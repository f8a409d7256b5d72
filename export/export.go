// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// PointsPerCM converts diagram units (centimetres) to PostScript points.
const PointsPerCM = 28.346

// ErrUnknownFormat is returned for formats nobody registered.
var ErrUnknownFormat = errors.New("export: unknown format")

// Config is passed to exporter factories.
type Config struct {
	// Extents is the diagram area written. ToWriter fills it with the
	// document extents when it is empty.
	Extents geom.Rectangle

	// Scale is output units per centimetre. Zero selects the format's
	// default.
	Scale float64

	// Title is stored in formats that have a document title.
	Title string

	// Background, when non-nil, is painted behind the objects.
	Background *render.Color
}

// Option configures an export.
type Option func(*Config)

// WithScale sets output units per centimetre.
func WithScale(scale float64) Option {
	return func(c *Config) {
		c.Scale = scale
	}
}

// WithTitle sets the document title.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithExtents exports area instead of the document extents.
func WithExtents(area geom.Rectangle) Option {
	return func(c *Config) {
		c.Extents = area
	}
}

// WithBackground paints the diagram background behind the objects.
func WithBackground(c render.Color) Option {
	return func(cfg *Config) {
		cfg.Background = &c
	}
}

// NewConfig applies opts to the defaults for d.
func NewConfig(d *diagram.Diagram, opts ...Option) Config {
	cfg := Config{Extents: geom.EmptyRect, Title: d.Name()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Extents.IsEmpty() {
		cfg.Extents = d.Extents()
	}
	if cfg.Extents.IsEmpty() {
		cfg.Extents = geom.Rect(0, 0, 0, 0)
	}
	return cfg
}

// Document renders every object of d through r exactly once, in z-order,
// bracketed by BeginRender and EndRender. Display damage plays no part.
// If r is an Exporter its write error is returned.
func Document(d *diagram.Diagram, r render.Renderer) error {
	return DocumentContext(context.Background(), d, r)
}

// DocumentContext is Document with cancellation checked between objects.
func DocumentContext(ctx context.Context, d *diagram.Diagram, r render.Renderer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.BeginRender(nil)
	n, err := d.RenderContext(ctx, r, nil)
	r.EndRender()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	diagram.Logger().Debug("export: document rendered", "name", d.Name(), "objects", n)
	if e, ok := r.(Exporter); ok {
		if err := e.Err(); err != nil {
			return fmt.Errorf("export: write: %w", err)
		}
	}
	return nil
}

// ToWriter exports d in format to w.
func ToWriter(ctx context.Context, d *diagram.Diagram, format string, w io.Writer, opts ...Option) error {
	e, err := New(format, w, NewConfig(d, opts...))
	if err != nil {
		return err
	}
	if c, ok := e.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}
	return DocumentContext(ctx, d, e)
}

// ToFile exports d in format to the file at path. The file is removed if
// the export fails.
func ToFile(ctx context.Context, d *diagram.Diagram, format, path string, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := ToWriter(ctx, d, format, f, opts...); err != nil {
		return err
	}
	diagram.Logger().Info("export: wrote file", "path", path, "format", format)
	return nil
}
