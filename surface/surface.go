// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
)

// Surface is a visible pixel target.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
//
// Example usage:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Blit(buffer, image.Rect(10, 10, 60, 40))
//	img := s.Snapshot()
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear fills the entire surface with the given color.
	Clear(c color.Color)

	// Blit copies the area r of src onto the surface at the same position.
	// Parts of r outside the surface are ignored.
	Blit(src image.Image, r image.Rectangle)

	// Flush makes blitted pixels visible. For CPU surfaces this is a no-op.
	Flush() error

	// Snapshot returns a copy of the current surface contents.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// Close is idempotent; multiple calls are safe.
	Close() error
}

// ResizableSurface is an optional interface for surfaces that follow the
// size of their display.
type ResizableSurface interface {
	Surface

	// Resize changes the surface dimensions. Existing content is kept where
	// it still fits.
	Resize(width, height int) error
}
