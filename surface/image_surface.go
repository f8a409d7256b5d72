// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ErrClosed is returned by operations on a closed surface.
var ErrClosed = errors.New("surface: closed")

// ImageSurface is a CPU surface backed by an *image.RGBA.
//
// It counts blits and remembers the union of blitted areas since the last
// ResetStats, which lets callers observe how much of the surface a flush
// touched.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	img := s.Snapshot()
type ImageSurface struct {
	img *image.RGBA

	blits   int
	touched image.Rectangle

	closed bool
}

// NewImageSurface creates a new CPU surface with the given dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewImageSurfaceFromImage creates a surface that blits directly into img.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	return &ImageSurface{img: img}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.img.Bounds().Dx()
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.img.Bounds().Dy()
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// Blit copies r of src onto the surface.
func (s *ImageSurface) Blit(src image.Image, r image.Rectangle) {
	if s.closed {
		return
	}
	r = r.Intersect(s.img.Bounds()).Intersect(src.Bounds())
	if r.Empty() {
		return
	}
	draw.Copy(s.img, r.Min, src, r, draw.Src, nil)
	s.blits++
	s.touched = s.touched.Union(r)
}

// Flush is a no-op for ImageSurface.
func (s *ImageSurface) Flush() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Snapshot returns a copy of the surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	draw.Copy(out, out.Bounds().Min, s.img, s.img.Bounds(), draw.Src, nil)
	return out
}

// Image returns the backing image without copying.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Resize replaces the backing image, keeping the overlapping pixels.
func (s *ImageSurface) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return errors.New("surface: invalid size")
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Copy(img, image.Point{}, s.img, s.img.Bounds(), draw.Src, nil)
	s.img = img
	return nil
}

// Blits returns the number of non-empty blits since the last ResetStats.
func (s *ImageSurface) Blits() int {
	return s.blits
}

// Touched returns the union of the areas blitted since the last ResetStats.
func (s *ImageSurface) Touched() image.Rectangle {
	return s.touched
}

// ResetStats clears the blit counter and touched area.
func (s *ImageSurface) ResetStats() {
	s.blits = 0
	s.touched = image.Rectangle{}
}

// Close releases the surface. Close is idempotent.
func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

var (
	_ Surface          = (*ImageSurface)(nil)
	_ ResizableSurface = (*ImageSurface)(nil)
)
