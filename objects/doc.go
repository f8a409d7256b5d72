// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package objects provides the standard diagram objects: boxes, ellipses,
// lines, polylines, polygons, arcs, bezier paths, text and images.
//
// Every object implements diagram.Movable and carries a UUID. Bounding
// boxes include half the line width, so the damage reported for an object
// covers every pixel its stroke can touch.
//
//	d := diagram.New("example")
//	box := objects.NewBox(geom.Rect(1, 1, 4, 3), objects.DefaultStyle().Filled(render.White))
//	box.Radius = 0.5
//	d.Add(box, objects.NewText("hello", geom.Pt(2.5, 2.2), render.AlignCenter))
//
// Objects are mutated through diagram.Diagram (Move, Update) so that
// displays learn about the change.
package objects
