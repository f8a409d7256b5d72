// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package png

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/export"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

type square struct{ r geom.Rectangle }

func (s square) BoundingBox() geom.Rectangle { return s.r }

func (s square) Draw(r render.Renderer) {
	r.FillRect(s.r.Min(), s.r.Max(), render.Black)
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRegistered(t *testing.T) {
	if !export.IsRegistered("png") {
		t.Fatal("png format not registered")
	}
}

func TestExportDocument(t *testing.T) {
	d := diagram.New("doc")
	d.Add(square{geom.Rect(1, 1, 2, 2)}, square{geom.Rect(4, 3, 5, 4)})

	var buf bytes.Buffer
	err := export.ToWriter(t.Context(), d, "png", &buf,
		export.WithScale(10), export.WithBackground(render.White))
	if err != nil {
		t.Fatalf("ToWriter: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Fatalf("image is %dx%d, want 40x30", b.Dx(), b.Dy())
	}

	tests := []struct {
		x, y  int
		black bool
	}{
		{5, 5, true},
		{35, 25, true},
		{20, 15, false},
		{35, 5, false},
	}
	for _, tt := range tests {
		c := rgbaAt(img, tt.x, tt.y)
		if got := c.R < 64; got != tt.black || c.A != 255 {
			t.Errorf("pixel (%d,%d) = %v, want black=%v", tt.x, tt.y, c, tt.black)
		}
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		ext   geom.Rectangle
		scale float64
		w, h  int
	}{
		{geom.Rect(0, 0, 10, 5), 0, 200, 100},
		{geom.Rect(0, 0, 1.01, 1), 10, 11, 10},
		{geom.Rect(3, 3, 3, 3), 10, 1, 1},
	}
	for _, tt := range tests {
		e := New(&bytes.Buffer{}, export.Config{Extents: tt.ext, Scale: tt.scale})
		w, h := e.Size()
		_ = e.Close()
		if w != tt.w || h != tt.h {
			t.Errorf("Size(%v @ %g) = %dx%d, want %dx%d", tt.ext, tt.scale, w, h, tt.w, tt.h)
		}
	}
}

func TestTooLarge(t *testing.T) {
	d := diagram.New("huge")
	d.Add(square{geom.Rect(0, 0, 10000, 1)})

	var buf bytes.Buffer
	err := export.ToWriter(t.Context(), d, "png", &buf)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("ToWriter = %v, want ErrTooLarge", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for a failed export", buf.Len())
	}
}
