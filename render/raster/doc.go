// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster implements render.Interactive on top of a gg.Context.
//
// The renderer owns an off-screen pixel buffer the size of the display.
// Diagram primitives are mapped through the display transform and drawn
// anti-aliased; the pixel primitives draw directly in buffer coordinates.
// Paint copies the damaged part of the buffer onto a surface.Surface.
//
// Text is drawn with the Go fonts loaded through gg/text and positioned
// with font.Metrics, so the raster output agrees with the text bounding
// boxes computed by diagram objects.
package raster
