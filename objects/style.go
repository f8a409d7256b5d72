// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"github.com/google/uuid"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// DefaultLineWidth is the line width of new objects, in centimetres.
const DefaultLineWidth = 0.1

// Style holds the line and fill attributes shared by the shape objects.
type Style struct {
	LineWidth  float64
	LineColor  render.Color
	LineStyle  render.LineStyle
	DashLength float64
	Caps       render.LineCaps
	Join       render.LineJoin

	// Fill is the interior colour. Nil leaves the shape unfilled.
	Fill *render.Color
}

// DefaultStyle returns a thin solid black outline without fill.
func DefaultStyle() Style {
	return Style{
		LineWidth:  DefaultLineWidth,
		LineColor:  render.Black,
		DashLength: 1,
	}
}

// Filled returns a copy of s filled with c.
func (s Style) Filled(c render.Color) Style {
	s.Fill = &c
	return s
}

func (s Style) apply(r render.Renderer) {
	r.SetLineWidth(s.LineWidth)
	r.SetLineStyle(s.LineStyle)
	r.SetDashLength(s.DashLength)
	r.SetLineCaps(s.Caps)
	r.SetLineJoin(s.Join)
	r.SetFillStyle(render.FillSolid)
}

// pad is how far the stroke reaches beyond the geometry.
func (s Style) pad() float64 {
	return s.LineWidth / 2
}

// Base carries the identity of an object.
type Base struct {
	id uuid.UUID
}

func newBase() Base {
	return Base{id: uuid.New()}
}

// ID returns the object's unique identifier.
func (b Base) ID() string { return b.id.String() }

// UUID returns the identifier in binary form.
func (b Base) UUID() uuid.UUID { return b.id }

// SetID replaces the identifier, for objects loaded from a file.
func (b *Base) SetID(id uuid.UUID) { b.id = id }

func translate(points []geom.Point, dx, dy float64) {
	for i := range points {
		points[i].X += dx
		points[i].Y += dy
	}
}

var (
	_ diagram.Movable = (*Box)(nil)
	_ diagram.Movable = (*Ellipse)(nil)
	_ diagram.Movable = (*Line)(nil)
	_ diagram.Movable = (*Polyline)(nil)
	_ diagram.Movable = (*Polygon)(nil)
	_ diagram.Movable = (*Arc)(nil)
	_ diagram.Movable = (*Bezier)(nil)
	_ diagram.Movable = (*Text)(nil)
	_ diagram.Movable = (*Image)(nil)
)
