// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"math"

	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// Box is a rectangle, optionally with rounded corners.
type Box struct {
	Base
	Rect   geom.Rectangle
	Radius float64
	Style  Style
}

// NewBox returns a box covering r.
func NewBox(r geom.Rectangle, style Style) *Box {
	return &Box{Base: newBase(), Rect: r, Style: style}
}

func (b *Box) BoundingBox() geom.Rectangle {
	return b.Rect.Grow(b.Style.pad())
}

func (b *Box) Move(dx, dy float64) {
	b.Rect = b.Rect.Translate(dx, dy)
}

// radius returns the corner radius limited to half the shorter side.
func (b *Box) radius() float64 {
	return max(0, min(b.Radius, b.Rect.Width()/2, b.Rect.Height()/2))
}

func (b *Box) Draw(r render.Renderer) {
	b.Style.apply(r)
	ul, lr := b.Rect.Min(), b.Rect.Max()
	rad := b.radius()
	if rad == 0 {
		if b.Style.Fill != nil {
			r.FillRect(ul, lr, *b.Style.Fill)
		}
		r.DrawRect(ul, lr, b.Style.LineColor)
		return
	}
	if b.Style.Fill != nil {
		fillRoundedRect(r, ul, lr, rad, *b.Style.Fill)
	}
	drawRoundedRect(r, ul, lr, rad, b.Style.LineColor)
}

// corner is the centre of one corner arc of a rounded rectangle and the
// angle the quarter arc starts at.
type corner struct {
	c     geom.Point
	start float64
}

// corners lists the corner arcs counter-clockwise from the top-right.
func corners(ul, lr geom.Point, rad float64) [4]corner {
	return [4]corner{
		{geom.Pt(lr.X-rad, ul.Y+rad), 0},
		{geom.Pt(ul.X+rad, ul.Y+rad), 90},
		{geom.Pt(ul.X+rad, lr.Y-rad), 180},
		{geom.Pt(lr.X-rad, lr.Y-rad), 270},
	}
}

func drawRoundedRect(r render.Renderer, ul, lr geom.Point, rad float64, c render.Color) {
	for _, k := range corners(ul, lr, rad) {
		r.DrawArc(k.c, 2*rad, 2*rad, k.start, k.start+90, c)
	}
	r.DrawLine(geom.Pt(ul.X+rad, ul.Y), geom.Pt(lr.X-rad, ul.Y), c)
	r.DrawLine(geom.Pt(lr.X, ul.Y+rad), geom.Pt(lr.X, lr.Y-rad), c)
	r.DrawLine(geom.Pt(lr.X-rad, lr.Y), geom.Pt(ul.X+rad, lr.Y), c)
	r.DrawLine(geom.Pt(ul.X, lr.Y-rad), geom.Pt(ul.X, ul.Y+rad), c)
}

func fillRoundedRect(r render.Renderer, ul, lr geom.Point, rad float64, c render.Color) {
	for _, k := range corners(ul, lr, rad) {
		r.FillArc(k.c, 2*rad, 2*rad, k.start, k.start+90, c)
	}
	r.FillRect(geom.Pt(ul.X+rad, ul.Y), geom.Pt(lr.X-rad, lr.Y), c)
	r.FillRect(geom.Pt(ul.X, ul.Y+rad), geom.Pt(lr.X, lr.Y-rad), c)
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	Base
	Center        geom.Point
	Width, Height float64
	Style         Style
}

// NewEllipse returns an ellipse inscribed in r.
func NewEllipse(r geom.Rectangle, style Style) *Ellipse {
	return &Ellipse{Base: newBase(), Center: r.Center(), Width: r.Width(), Height: r.Height(), Style: style}
}

func (e *Ellipse) BoundingBox() geom.Rectangle {
	w, h := e.Width/2, e.Height/2
	return geom.Rect(e.Center.X-w, e.Center.Y-h, e.Center.X+w, e.Center.Y+h).Grow(e.Style.pad())
}

func (e *Ellipse) Move(dx, dy float64) {
	e.Center = e.Center.Add(geom.Pt(dx, dy))
}

func (e *Ellipse) Draw(r render.Renderer) {
	e.Style.apply(r)
	if e.Style.Fill != nil {
		r.FillEllipse(e.Center, e.Width, e.Height, *e.Style.Fill)
	}
	r.DrawEllipse(e.Center, e.Width, e.Height, e.Style.LineColor)
}

// Line is a straight segment.
type Line struct {
	Base
	Start, End geom.Point
	Style      Style
}

// NewLine returns a line from start to end.
func NewLine(start, end geom.Point, style Style) *Line {
	return &Line{Base: newBase(), Start: start, End: end, Style: style}
}

func (l *Line) BoundingBox() geom.Rectangle {
	return geom.RectFromPoints(l.Start, l.End).Grow(l.Style.pad())
}

func (l *Line) Move(dx, dy float64) {
	d := geom.Pt(dx, dy)
	l.Start = l.Start.Add(d)
	l.End = l.End.Add(d)
}

func (l *Line) Draw(r render.Renderer) {
	l.Style.apply(r)
	r.DrawLine(l.Start, l.End, l.Style.LineColor)
}

// Polyline is an open chain of segments.
type Polyline struct {
	Base
	Points []geom.Point
	Style  Style
}

// NewPolyline returns a polyline through points. The slice is copied.
func NewPolyline(points []geom.Point, style Style) *Polyline {
	return &Polyline{Base: newBase(), Points: append([]geom.Point(nil), points...), Style: style}
}

func (p *Polyline) BoundingBox() geom.Rectangle {
	if len(p.Points) == 0 {
		return geom.EmptyRect
	}
	return geom.RectFromPoints(p.Points...).Grow(p.Style.pad())
}

func (p *Polyline) Move(dx, dy float64) { translate(p.Points, dx, dy) }

func (p *Polyline) Draw(r render.Renderer) {
	p.Style.apply(r)
	r.DrawPolyline(p.Points, p.Style.LineColor)
}

// Polygon is a closed, optionally filled, chain of segments.
type Polygon struct {
	Base
	Points []geom.Point
	Style  Style
}

// NewPolygon returns a polygon with the given corners. The slice is
// copied.
func NewPolygon(points []geom.Point, style Style) *Polygon {
	return &Polygon{Base: newBase(), Points: append([]geom.Point(nil), points...), Style: style}
}

func (p *Polygon) BoundingBox() geom.Rectangle {
	if len(p.Points) == 0 {
		return geom.EmptyRect
	}
	return geom.RectFromPoints(p.Points...).Grow(p.Style.pad())
}

func (p *Polygon) Move(dx, dy float64) { translate(p.Points, dx, dy) }

func (p *Polygon) Draw(r render.Renderer) {
	p.Style.apply(r)
	if p.Style.Fill != nil {
		r.FillPolygon(p.Points, *p.Style.Fill)
	}
	r.DrawPolygon(p.Points, p.Style.LineColor)
}

// Arc is a segment of an ellipse. Angles are in degrees, counter-clockwise
// from the positive x axis. A filled arc is drawn as a pie slice.
type Arc struct {
	Base
	Center         geom.Point
	Width, Height  float64
	Angle1, Angle2 float64
	Style          Style
}

// NewArc returns an arc of the ellipse inscribed in r.
func NewArc(r geom.Rectangle, angle1, angle2 float64, style Style) *Arc {
	return &Arc{
		Base:   newBase(),
		Center: r.Center(),
		Width:  r.Width(),
		Height: r.Height(),
		Angle1: angle1,
		Angle2: angle2,
		Style:  style,
	}
}

func (a *Arc) BoundingBox() geom.Rectangle {
	pts := render.ArcPoints(a.Center, a.Width, a.Height, a.Angle1, a.Angle2)
	if a.Style.Fill != nil {
		pts = append(pts, a.Center)
	}
	return geom.RectFromPoints(pts...).Grow(a.Style.pad())
}

func (a *Arc) Move(dx, dy float64) {
	a.Center = a.Center.Add(geom.Pt(dx, dy))
}

func (a *Arc) Draw(r render.Renderer) {
	a.Style.apply(r)
	if a.Style.Fill != nil {
		r.FillArc(a.Center, a.Width, a.Height, a.Angle1, a.Angle2, *a.Style.Fill)
	}
	r.DrawArc(a.Center, a.Width, a.Height, a.Angle1, a.Angle2, a.Style.LineColor)
}

// Sweep returns the angle covered by the arc, in (0, 360].
func (a *Arc) Sweep() float64 {
	s := math.Mod(a.Angle2-a.Angle1, 360)
	if s <= 0 {
		s += 360
	}
	return s
}

// Bezier is a path of cubic curves and lines. A closed bezier is filled
// when the style has a fill.
type Bezier struct {
	Base
	Points []render.BezPoint
	Closed bool
	Style  Style
}

// NewBezier returns a bezier path. The slice is copied.
func NewBezier(points []render.BezPoint, closed bool, style Style) *Bezier {
	return &Bezier{Base: newBase(), Points: append([]render.BezPoint(nil), points...), Closed: closed, Style: style}
}

func (b *Bezier) BoundingBox() geom.Rectangle {
	if len(b.Points) == 0 {
		return geom.EmptyRect
	}
	return render.BezierBounds(b.Points).Grow(b.Style.pad())
}

func (b *Bezier) Move(dx, dy float64) {
	d := geom.Pt(dx, dy)
	for i := range b.Points {
		p := &b.Points[i]
		p.P1 = p.P1.Add(d)
		if p.Type == render.BezCurveTo {
			p.P2 = p.P2.Add(d)
			p.P3 = p.P3.Add(d)
		}
	}
}

func (b *Bezier) Draw(r render.Renderer) {
	b.Style.apply(r)
	if b.Closed && b.Style.Fill != nil {
		r.FillBezier(b.Points, *b.Style.Fill)
	}
	pts := b.Points
	if b.Closed && len(pts) > 0 {
		pts = append(pts[:len(pts):len(pts)], render.LineTo(pts[0].P1))
	}
	r.DrawBezier(pts, b.Style.LineColor)
}
