// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"testing"
)

func TestImageSurfaceSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"normal", 100, 50, 100, 50},
		{"zero clamps to one", 0, 0, 1, 1},
		{"negative clamps to one", -3, 7, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewImageSurface(tt.width, tt.height)
			if s.Width() != tt.wantW || s.Height() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", s.Width(), s.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestImageSurfaceBlitCopiesOnlyArea(t *testing.T) {
	s := NewImageSurface(10, 10)
	s.Clear(color.White)

	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, red)
		}
	}

	s.Blit(src, image.Rect(2, 3, 5, 6))

	img := s.Snapshot()
	if got := img.RGBAAt(3, 4); got != red {
		t.Errorf("inside pixel = %v, want %v", got, red)
	}
	if got := img.RGBAAt(6, 6); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("outside pixel = %v, want white", got)
	}
	if s.Blits() != 1 {
		t.Errorf("Blits() = %d, want 1", s.Blits())
	}
	if s.Touched() != image.Rect(2, 3, 5, 6) {
		t.Errorf("Touched() = %v", s.Touched())
	}
}

func TestImageSurfaceBlitOutsideIgnored(t *testing.T) {
	s := NewImageSurface(10, 10)
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))

	s.Blit(src, image.Rect(12, 12, 15, 15))

	if s.Blits() != 0 {
		t.Errorf("Blits() = %d, want 0 for area outside surface", s.Blits())
	}
}

func TestImageSurfaceResizeKeepsPixels(t *testing.T) {
	s := NewImageSurface(4, 4)
	blue := color.RGBA{B: 255, A: 255}
	s.Clear(blue)

	if err := s.Resize(8, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if s.Width() != 8 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, want 8x2", s.Width(), s.Height())
	}
	if got := s.Image().RGBAAt(1, 1); got != blue {
		t.Errorf("kept pixel = %v, want %v", got, blue)
	}
	if got := s.Image().RGBAAt(6, 1); got.A != 0 {
		t.Errorf("new pixel = %v, want transparent", got)
	}
}

func TestImageSurfaceClose(t *testing.T) {
	s := NewImageSurface(2, 2)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.Flush(); err != ErrClosed {
		t.Errorf("Flush after Close = %v, want ErrClosed", err)
	}
}
