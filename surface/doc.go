// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the visible surfaces displays paint onto.
//
// A display renders into the off-screen buffer of its interactive renderer
// and then copies only the damaged pixel rectangles onto a Surface. The
// Surface stands in for a window: a host toolkit wraps its window pixels
// in a Surface, and tests and the command line use ImageSurface.
// NullSurface keeps no pixels and only counts what is blitted.
//
// # Kinds
//
// Surfaces are created by kind name. "image" and "null" are built in;
// hosts register their own from init:
//
//	func init() {
//	    surface.Register("window", newWindowSurface)
//	}
//
//	s, err := surface.New("image", 800, 600)
package surface
