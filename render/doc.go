// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render defines the backend-agnostic drawing contract used by
// diagram objects.
//
// Objects describe themselves with the primitives of Renderer (lines,
// polygons, arcs, beziers, text and images) in diagram coordinates. Each
// backend maps those calls onto its own output:
//
//   - render/raster: an off-screen pixel buffer behind an on-screen display
//   - export/svg, export/eps, export/pdf: vector files
//   - recording: an in-memory command list that can be replayed
//
// Backends that back a display also implement Interactive, which adds a
// pixel clip region, untransformed pixel primitives and the Paint step that
// copies the buffer to the visible surface.
//
// # Helpers
//
// Backends without native curves flatten them with ApproximateBezier.
// Arcs and ellipses are converted to bezier paths by ArcBeziers and
// EllipseBeziers, and DashPattern turns a LineStyle into on/off lengths.
// CleanBezier turns curve segments whose control points sit on the
// previous end point into lines before a backend draws them.
//
// Backends embed State to track BeginRender/EndRender. Misuse is logged
// and the first one is kept for State.Err.
package render
