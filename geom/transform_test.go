// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"errors"
	"math"
	"testing"
)

func newViewport(visible Rectangle, zoom float64, w, h int) *Viewport {
	return &Viewport{Visible: visible, Zoom: zoom, Width: w, Height: h}
}

func TestToPixel(t *testing.T) {
	tr := NewTransform(newViewport(Rect(0, 0, 10, 10), 10, 100, 100))

	tests := []struct {
		p      Point
		wx, wy int
	}{
		{Pt(0, 0), 0, 0},
		{Pt(5, 5), 50, 50},
		{Pt(10, 10), 100, 100},
		{Pt(0.04, 0.05), 0, 1},
		{Pt(-1, 2.56), -10, 26},
	}
	for _, tt := range tests {
		x, y := tr.ToPixel(tt.p)
		if x != tt.wx || y != tt.wy {
			t.Errorf("ToPixel(%v) = (%d,%d), want (%d,%d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	vps := []*Viewport{
		newViewport(Rect(0, 0, 10, 10), 10, 100, 100),
		newViewport(Rect(-3.5, 2, 4.5, 8), 25, 200, 150),
		newViewport(Rect(100, 100, 100.5, 100.25), 2000, 1000, 500),
	}
	for _, vp := range vps {
		tr := NewTransform(vp)
		tol := tr.UnscaleLength(1)
		for i := 0; i <= 20; i++ {
			for j := 0; j <= 20; j++ {
				p := Pt(
					vp.Visible.Left+vp.Visible.Width()*float64(i)/20,
					vp.Visible.Top+vp.Visible.Height()*float64(j)/20,
				)
				x, y := tr.ToPixel(p)
				back := tr.ToDiagram(float64(x), float64(y))
				if math.Abs(back.X-p.X) > tol || math.Abs(back.Y-p.Y) > tol {
					t.Errorf("round trip %v -> (%d,%d) -> %v exceeds %g", p, x, y, back, tol)
				}
			}
		}
	}
}

func TestTransformFollowsViewport(t *testing.T) {
	vp := newViewport(Rect(0, 0, 10, 10), 10, 100, 100)
	tr := NewTransform(vp)

	vp.Visible = Rect(10, 0, 20, 10)
	if x, _ := tr.ToPixel(Pt(15, 0)); x != 50 {
		t.Errorf("after scroll ToPixel x = %d, want 50", x)
	}
}

func TestScaleLength(t *testing.T) {
	tr := NewTransform(newViewport(Rect(0, 0, 10, 10), 20, 200, 200))
	if got := tr.ScaleLength(1.5); got != 30 {
		t.Errorf("ScaleLength(1.5) = %g, want 30", got)
	}
	if got := tr.UnscaleLength(30); got != 1.5 {
		t.Errorf("UnscaleLength(30) = %g, want 1.5", got)
	}
}

func TestDegenerateTransform(t *testing.T) {
	tests := []struct {
		name string
		vp   *Viewport
	}{
		{"nil viewport", nil},
		{"zero width", newViewport(Rect(1, 0, 1, 10), 10, 100, 100)},
		{"zero height", newViewport(Rect(0, 3, 10, 3), 10, 100, 100)},
		{"empty visible", newViewport(EmptyRect, 10, 100, 100)},
		{"zero zoom", newViewport(Rect(0, 0, 10, 10), 0, 100, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTransform(tt.vp)
			if err := tr.Validate(); !errors.Is(err, ErrDegenerateTransform) {
				t.Fatalf("Validate() = %v, want ErrDegenerateTransform", err)
			}
			x, y := tr.ToPixelF(Pt(3, 3))
			if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
				t.Errorf("ToPixelF produced non-finite (%g,%g)", x, y)
			}
			p := tr.ToDiagram(3, 3)
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				t.Errorf("ToDiagram produced NaN %v", p)
			}
		})
	}
}

func TestCoveringPixels(t *testing.T) {
	tr := NewTransform(newViewport(Rect(0, 0, 10, 10), 10, 100, 100))
	got := tr.CoveringPixels(Rect(0, 0, 5, 5))
	want := PixelRect{Left: -1, Top: -1, Right: 51, Bottom: 51}
	if got != want {
		t.Errorf("CoveringPixels = %v, want %v", got, want)
	}
	if got := tr.CoveringPixels(EmptyRect); !got.IsEmpty() {
		t.Errorf("CoveringPixels(empty) = %v, want empty", got)
	}
}
