// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"errors"
	"math"
)

// ErrDegenerateTransform is reported when the visible rectangle has no
// width or height, or the zoom factor is not positive.
var ErrDegenerateTransform = errors.New("geom: degenerate transform")

// Viewport is the state a display keeps about what part of the diagram it
// shows: the visible diagram rectangle, the zoom factor in pixels per
// diagram unit and the pixel size of the output.
type Viewport struct {
	Visible Rectangle
	Zoom    float64
	Width   int
	Height  int
}

// Transform maps between diagram space and the pixel space of one viewport.
// It holds a reference to the viewport, so changes to the viewport are
// seen by every Transform taken from it.
type Transform struct {
	vp *Viewport
}

// NewTransform returns a Transform reading from vp.
func NewTransform(vp *Viewport) Transform {
	return Transform{vp: vp}
}

// Viewport returns the viewport t reads from.
func (t Transform) Viewport() *Viewport {
	return t.vp
}

// Validate reports ErrDegenerateTransform when the mapping is undefined.
func (t Transform) Validate() error {
	if t.vp == nil {
		return ErrDegenerateTransform
	}
	v := t.vp.Visible
	if v.IsEmpty() || v.Right-v.Left <= 0 || v.Bottom-v.Top <= 0 || t.vp.Zoom <= 0 {
		return ErrDegenerateTransform
	}
	if math.IsNaN(t.vp.Zoom) || math.IsInf(t.vp.Zoom, 0) {
		return ErrDegenerateTransform
	}
	return nil
}

// ToPixelF maps p into unrounded pixel coordinates. A degenerate transform
// maps everything to the origin.
func (t Transform) ToPixelF(p Point) (x, y float64) {
	if t.Validate() != nil {
		return 0, 0
	}
	v := t.vp.Visible
	x = (p.X - v.Left) * float64(t.vp.Width) / (v.Right - v.Left)
	y = (p.Y - v.Top) * float64(t.vp.Height) / (v.Bottom - v.Top)
	return x, y
}

// ToPixel maps p to the nearest pixel.
func (t Transform) ToPixel(p Point) (x, y int) {
	fx, fy := t.ToPixelF(p)
	return round(fx), round(fy)
}

// ToDiagram maps pixel coordinates back into diagram space.
func (t Transform) ToDiagram(x, y float64) Point {
	if t.Validate() != nil {
		return Point{}
	}
	v := t.vp.Visible
	return Point{
		X: v.Left + x*(v.Right-v.Left)/float64(t.vp.Width),
		Y: v.Top + y*(v.Bottom-v.Top)/float64(t.vp.Height),
	}
}

// ScaleLength converts a diagram length into pixels.
func (t Transform) ScaleLength(l float64) float64 {
	if t.vp == nil {
		return l
	}
	return l * t.vp.Zoom
}

// UnscaleLength converts a pixel length into diagram units.
func (t Transform) UnscaleLength(l float64) float64 {
	if t.vp == nil || t.vp.Zoom <= 0 {
		return l
	}
	return l / t.vp.Zoom
}

// RectToPixel maps r to the pixel rectangle spanned by its rounded corners.
func (t Transform) RectToPixel(r Rectangle) PixelRect {
	if r.IsEmpty() {
		return PixelRect{}
	}
	x0, y0 := t.ToPixel(r.Min())
	x1, y1 := t.ToPixel(r.Max())
	return PixelRect{Left: x0, Top: y0, Right: x1, Bottom: y1}
}

// CoveringPixels maps r to a pixel rectangle grown by one pixel on every
// side, so rounding never loses a partially covered pixel.
func (t Transform) CoveringPixels(r Rectangle) PixelRect {
	if r.IsEmpty() {
		return PixelRect{}
	}
	x0, y0 := t.ToPixelF(r.Min())
	x1, y1 := t.ToPixelF(r.Max())
	return PixelRect{
		Left:   int(math.Floor(x0)) - 1,
		Top:    int(math.Floor(y0)) - 1,
		Right:  int(math.Ceil(x1)) + 1,
		Bottom: int(math.Ceil(y1)) + 1,
	}
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}
