// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"fmt"
	"image"
	"math"
)

// Point is a position in diagram space (centimetres).
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Rectangle is an axis-aligned rectangle in diagram space.
//
// A populated rectangle satisfies Left <= Right and Top <= Bottom; a
// zero-size rectangle at a point is still populated. EmptyRect is the
// distinct "no area" value returned by intersections that do not overlap
// and by the extents of an empty document.
type Rectangle struct {
	Left, Top, Right, Bottom float64
}

// EmptyRect is the rectangle that covers nothing. Union with EmptyRect is
// the identity.
var EmptyRect = Rectangle{
	Left:   math.Inf(1),
	Top:    math.Inf(1),
	Right:  math.Inf(-1),
	Bottom: math.Inf(-1),
}

// Rect returns a populated rectangle spanning the two corners in any order.
func Rect(x0, y0, x1, y1 float64) Rectangle {
	return Rectangle{
		Left:   math.Min(x0, x1),
		Top:    math.Min(y0, y1),
		Right:  math.Max(x0, x1),
		Bottom: math.Max(y0, y1),
	}
}

// RectFromPoints returns the bounding rectangle of pts, or EmptyRect.
func RectFromPoints(pts ...Point) Rectangle {
	r := EmptyRect
	for _, p := range pts {
		r = r.UnionPoint(p)
	}
	return r
}

// IsEmpty reports whether r covers nothing.
func (r Rectangle) IsEmpty() bool {
	return r.Left > r.Right || r.Top > r.Bottom
}

// Width returns the horizontal extent, 0 for the empty rectangle.
func (r Rectangle) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the vertical extent, 0 for the empty rectangle.
func (r Rectangle) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Bottom - r.Top
}

// Min returns the top-left corner.
func (r Rectangle) Min() Point { return Point{X: r.Left, Y: r.Top} }

// Max returns the bottom-right corner.
func (r Rectangle) Max() Point { return Point{X: r.Right, Y: r.Bottom} }

// Center returns the middle of r.
func (r Rectangle) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rectangle) Union(s Rectangle) Rectangle {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return Rectangle{
		Left:   math.Min(r.Left, s.Left),
		Top:    math.Min(r.Top, s.Top),
		Right:  math.Max(r.Right, s.Right),
		Bottom: math.Max(r.Bottom, s.Bottom),
	}
}

// UnionPoint grows r to include p.
func (r Rectangle) UnionPoint(p Point) Rectangle {
	return r.Union(Rectangle{Left: p.X, Top: p.Y, Right: p.X, Bottom: p.Y})
}

// Intersects reports whether r and s share at least one point. Rectangles
// that only touch along an edge intersect.
func (r Rectangle) Intersects(s Rectangle) bool {
	if r.IsEmpty() || s.IsEmpty() {
		return false
	}
	return !(r.Right < s.Left || r.Left > s.Right || r.Bottom < s.Top || r.Top > s.Bottom)
}

// Intersect returns r ∩ s, or EmptyRect when they do not intersect.
func (r Rectangle) Intersect(s Rectangle) Rectangle {
	if !r.Intersects(s) {
		return EmptyRect
	}
	return Rectangle{
		Left:   math.Max(r.Left, s.Left),
		Top:    math.Max(r.Top, s.Top),
		Right:  math.Min(r.Right, s.Right),
		Bottom: math.Min(r.Bottom, s.Bottom),
	}
}

// Contains reports whether s lies entirely inside r.
func (r Rectangle) Contains(s Rectangle) bool {
	if s.IsEmpty() {
		return true
	}
	if r.IsEmpty() {
		return false
	}
	return s.Left >= r.Left && s.Right <= r.Right && s.Top >= r.Top && s.Bottom <= r.Bottom
}

// ContainsPoint reports whether p lies inside r, edges included.
func (r Rectangle) ContainsPoint(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// Grow grows r by d on every side (shrinks for negative d).
func (r Rectangle) Grow(d float64) Rectangle {
	if r.IsEmpty() {
		return r
	}
	out := Rectangle{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
	if out.IsEmpty() {
		c := r.Center()
		return Rectangle{Left: c.X, Top: c.Y, Right: c.X, Bottom: c.Y}
	}
	return out
}

// Translate moves r by (dx, dy).
func (r Rectangle) Translate(dx, dy float64) Rectangle {
	if r.IsEmpty() {
		return r
	}
	return Rectangle{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

func (r Rectangle) String() string {
	if r.IsEmpty() {
		return "(empty)"
	}
	return fmt.Sprintf("(%g,%g)-(%g,%g)", r.Left, r.Top, r.Right, r.Bottom)
}

// PixelRect is a rectangle in the pixel space of one display. Right and
// Bottom are exclusive.
type PixelRect struct {
	Left, Top, Right, Bottom int
}

// PixelRectOf converts an image.Rectangle.
func PixelRectOf(r image.Rectangle) PixelRect {
	return PixelRect{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

// Width returns Right-Left.
func (r PixelRect) Width() int { return r.Right - r.Left }

// Height returns Bottom-Top.
func (r PixelRect) Height() int { return r.Bottom - r.Top }

// IsEmpty reports whether r covers no pixel.
func (r PixelRect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Union returns the smallest pixel rectangle containing r and s.
func (r PixelRect) Union(s PixelRect) PixelRect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	return PixelRect{
		Left:   min(r.Left, s.Left),
		Top:    min(r.Top, s.Top),
		Right:  max(r.Right, s.Right),
		Bottom: max(r.Bottom, s.Bottom),
	}
}

// Intersect returns r ∩ s; the result may be empty.
func (r PixelRect) Intersect(s PixelRect) PixelRect {
	out := PixelRect{
		Left:   max(r.Left, s.Left),
		Top:    max(r.Top, s.Top),
		Right:  min(r.Right, s.Right),
		Bottom: min(r.Bottom, s.Bottom),
	}
	if out.IsEmpty() {
		return PixelRect{}
	}
	return out
}

// Overlaps reports whether r and s share at least one pixel.
func (r PixelRect) Overlaps(s PixelRect) bool {
	return !r.Intersect(s).IsEmpty()
}

// Image converts r to an image.Rectangle.
func (r PixelRect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

func (r PixelRect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}
