// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package diagram holds the document model of a diagram editor and drives
// the fan-out of damage to every view of a document.
//
// # Overview
//
// A Diagram is a stack of layers, each an ordered list of objects (list
// order is z-order), plus a selection and the cached extents of the
// objects. Hidden layers are not drawn. Objects draw themselves
// through the primitives of render.Renderer and know nothing about the
// backend in use.
//
// Views register with a Diagram as Listeners. Every mutation that changes
// what a document looks like (adding, removing, moving or restyling an
// object, changing the selection) is broadcast to every Listener as a
// damaged rectangle in diagram space. When the extents change, Listeners
// are told separately so they can resynchronize scroll ranges. Damage
// that may touch selection handles goes to HandleListener instead, so a
// view can pad it by the handle size.
//
// # Quick Start
//
//	d := diagram.New("untitled")
//	box := objects.NewBox(geom.Rect(0, 0, 5, 5))
//	d.Add(box)
//
//	disp := display.New(d, raster.New(), surface.NewImageSurface(640, 480))
//	disp.Flush()
//
// # Coordinate System
//
// Diagram space is measured in centimetres:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in degrees, 0 is right, increases counter-clockwise
//
// # Concurrency
//
// A Diagram and its displays are single-threaded: every operation runs to
// completion before the caller continues. Rendering only reads the
// document.
package diagram
