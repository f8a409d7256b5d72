// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"
)

// NullSurface keeps no pixels. It only records how much a display blits
// onto it, which is what a dry run or a benchmark needs.
type NullSurface struct {
	bounds image.Rectangle

	blits   int
	pixels  int
	touched image.Rectangle

	closed bool
}

// NewNullSurface creates a counting surface of the given size.
func NewNullSurface(width, height int) *NullSurface {
	return &NullSurface{bounds: image.Rect(0, 0, max(width, 1), max(height, 1))}
}

func (s *NullSurface) Width() int  { return s.bounds.Dx() }
func (s *NullSurface) Height() int { return s.bounds.Dy() }

// Clear does nothing.
func (s *NullSurface) Clear(color.Color) {}

// Blit counts the part of r that lies on the surface and in src.
func (s *NullSurface) Blit(src image.Image, r image.Rectangle) {
	if s.closed {
		return
	}
	r = r.Intersect(s.bounds).Intersect(src.Bounds())
	if r.Empty() {
		return
	}
	s.blits++
	s.pixels += r.Dx() * r.Dy()
	s.touched = s.touched.Union(r)
}

func (s *NullSurface) Flush() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Snapshot returns a transparent image of the surface size.
func (s *NullSurface) Snapshot() *image.RGBA {
	return image.NewRGBA(s.bounds)
}

func (s *NullSurface) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return errors.New("surface: invalid size")
	}
	s.bounds = image.Rect(0, 0, width, height)
	return nil
}

// Blits returns the number of non-empty blits since the last ResetStats.
func (s *NullSurface) Blits() int { return s.blits }

// Pixels returns the number of pixels blitted since the last ResetStats.
// Overlapping blits count twice.
func (s *NullSurface) Pixels() int { return s.pixels }

// Touched returns the union of the areas blitted since the last ResetStats.
func (s *NullSurface) Touched() image.Rectangle { return s.touched }

// ResetStats clears the counters.
func (s *NullSurface) ResetStats() {
	s.blits, s.pixels = 0, 0
	s.touched = image.Rectangle{}
}

func (s *NullSurface) Close() error {
	s.closed = true
	return nil
}

var (
	_ Surface          = (*NullSurface)(nil)
	_ ResizableSurface = (*NullSurface)(nil)
)
