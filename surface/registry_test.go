// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"slices"
	"testing"
)

func TestBuiltinKinds(t *testing.T) {
	if got := Kinds(); !slices.Contains(got, KindImage) || !slices.Contains(got, KindNull) {
		t.Fatalf("Kinds() = %v, want image and null", got)
	}
	tests := []struct {
		kind string
		is   func(Surface) bool
	}{
		{KindImage, func(s Surface) bool { _, ok := s.(*ImageSurface); return ok }},
		{KindNull, func(s Surface) bool { _, ok := s.(*NullSurface); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			s, err := New(tt.kind, 8, 6)
			if err != nil {
				t.Fatalf("New(%s): %v", tt.kind, err)
			}
			t.Cleanup(func() { _ = s.Close() })
			if !tt.is(s) {
				t.Errorf("New(%s) returned %T", tt.kind, s)
			}
			if s.Width() != 8 || s.Height() != 6 {
				t.Errorf("size = %dx%d, want 8x6", s.Width(), s.Height())
			}
		})
	}
}

func TestRegisterKind(t *testing.T) {
	failing := errors.New("no window system")
	Register("test-window", func(int, int) (Surface, error) { return nil, failing })
	t.Cleanup(func() { Unregister("test-window") })

	if !IsRegistered("test-window") {
		t.Fatal("registered kind not found")
	}
	if _, err := New("test-window", 1, 1); !errors.Is(err, failing) {
		t.Errorf("New = %v, want the factory error", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("test-window", func(w, h int) (Surface, error) { return NewImageSurface(w, h), nil })
}

func TestUnknownKind(t *testing.T) {
	if _, err := New("vulkan", 1, 1); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New(vulkan) = %v, want ErrUnknownKind", err)
	}
	if IsRegistered("vulkan") {
		t.Error("IsRegistered(vulkan) = true")
	}
}

func TestNullSurfaceCounts(t *testing.T) {
	s := NewNullSurface(10, 10)
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))

	s.Blit(src, image.Rect(2, 2, 5, 4))
	s.Blit(src, image.Rect(8, 8, 20, 20))
	s.Blit(src, image.Rect(20, 20, 30, 30))

	if s.Blits() != 2 {
		t.Errorf("Blits() = %d, want 2", s.Blits())
	}
	if s.Pixels() != 6+4 {
		t.Errorf("Pixels() = %d, want 10", s.Pixels())
	}
	if got := s.Touched(); got != image.Rect(2, 2, 10, 10) {
		t.Errorf("Touched() = %v", got)
	}
	if snap := s.Snapshot(); snap.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Errorf("Snapshot bounds = %v", snap.Bounds())
	}

	s.ResetStats()
	if err := s.Resize(4, 4); err != nil {
		t.Fatal(err)
	}
	s.Blit(src, image.Rect(0, 0, 10, 10))
	if s.Pixels() != 16 {
		t.Errorf("Pixels() after resize = %d, want 16", s.Pixels())
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	s.Blit(src, src.Bounds())
	if s.Blits() != 1 {
		t.Error("closed surface counted a blit")
	}
	if err := s.Flush(); !errors.Is(err, ErrClosed) {
		t.Errorf("Flush after Close = %v, want ErrClosed", err)
	}
}
