// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"math"
	"slices"

	"github.com/gogpu/diagram/geom"
)

// bezierFlatness is the largest distance, in diagram units, a control
// point may lie from the chord before a curve is subdivided.
const bezierFlatness = 0.01

// malformedDistance is below which two bezier points are considered equal.
const malformedDistance = 0.00001

// MinDashLength is the shortest dash SetDashLength accepts.
const MinDashLength = 0.001

// dotRatio is the length of a dot relative to a dash.
const dotRatio = 0.2

// ApproximateBezier flattens a bezier path into a polyline by recursive
// subdivision. A curve whose three defining distances are all near zero
// degrades to a single point. If the path does not start with a BezMoveTo
// a warning is logged and the first point is used as the start anyway.
func ApproximateBezier(points []BezPoint) []geom.Point {
	if len(points) == 0 {
		return nil
	}
	if points[0].Type != BezMoveTo {
		logger().Warn("render: first BezPoint must be a BezMoveTo")
	}
	out := make([]geom.Point, 0, len(points)*4)
	cur := points[0].P1
	out = append(out, cur)
	for _, bp := range points[1:] {
		switch bp.Type {
		case BezMoveTo:
			logger().Warn("render: only the first BezPoint can be a BezMoveTo")
			cur = bp.P1
		case BezLineTo:
			out = append(out, bp.P1)
			cur = bp.P1
		case BezCurveTo:
			curve := [4]geom.Point{cur, bp.P1, bp.P2, bp.P3}
			if isMalformed(curve) {
				out = append(out, curve[3])
			} else {
				out = subdivide(out, curve, 0)
			}
			cur = bp.P3
		}
	}
	return out
}

// CleanBezier returns points with every malformed curve, one whose
// control and end points all lie on its start, replaced by a line to its
// end point so it draws as a single point. points is returned unchanged
// when it holds no malformed curve.
func CleanBezier(points []BezPoint) []BezPoint {
	var out []BezPoint
	var cur geom.Point
	for i, bp := range points {
		if bp.Type == BezCurveTo && i > 0 && isMalformed([4]geom.Point{cur, bp.P1, bp.P2, bp.P3}) {
			if out == nil {
				logger().Debug("render: malformed bezier degraded to a point", "index", i)
				out = slices.Clone(points)
			}
			out[i] = LineTo(bp.P3)
		}
		cur = bp.End()
	}
	if out == nil {
		return points
	}
	return out
}

func isMalformed(c [4]geom.Point) bool {
	return c[0].Distance(c[1]) < malformedDistance &&
		c[2].Distance(c[3]) < malformedDistance &&
		c[0].Distance(c[3]) < malformedDistance
}

// maxSubdivision bounds the recursion for pathological curves.
const maxSubdivision = 16

// subdivide appends the end points of the line segments approximating c.
func subdivide(out []geom.Point, c [4]geom.Point, depth int) []geom.Point {
	d := c[3].Sub(c[0])
	if math.IsNaN(d.Dot(d)) || math.IsNaN(c[1].X+c[1].Y+c[2].X+c[2].Y) {
		logger().Warn("render: NaN while flattening bezier")
		return out
	}
	if depth >= maxSubdivision || (flat(c[0], c[1], c[3]) && flat(c[3], c[2], c[0])) {
		return append(out, c[3])
	}

	mid := c[1].Lerp(c[2], 0.5)
	r1 := c[0].Lerp(c[1], 0.5)
	r2 := r1.Lerp(mid, 0.5)
	s2 := c[2].Lerp(c[3], 0.5)
	s1 := s2.Lerp(mid, 0.5)
	r3 := r2.Lerp(s1, 0.5)

	out = subdivide(out, [4]geom.Point{c[0], r1, r2, r3}, depth+1)
	return subdivide(out, [4]geom.Point{r3, s1, s2, c[3]}, depth+1)
}

// flat reports whether control lies within bezierFlatness of the line
// from start towards end.
func flat(start, control, end geom.Point) bool {
	u := control.Sub(start)
	v := end.Sub(start)
	vv := v.Dot(v)
	if vv < 0.000001 {
		vv = 0.000001
	}
	x := u.Sub(v.Mul(u.Dot(v) / vv))
	return x.Dot(x) < bezierFlatness*bezierFlatness
}

// BezierBounds returns the bounding rectangle of the flattened path.
func BezierBounds(points []BezPoint) geom.Rectangle {
	return geom.RectFromPoints(ApproximateBezier(points)...)
}

// ArcBeziers returns a bezier path following the ellipse of the given size
// from angle1 to angle2 (degrees, counter-clockwise). y grows downwards, so
// counter-clockwise is towards -Y.
func ArcBeziers(center geom.Point, width, height, angle1, angle2 float64) []BezPoint {
	rx, ry := width/2, height/2
	for angle2 < angle1 {
		angle2 += 360
	}
	sweep := angle2 - angle1
	if sweep > 360 {
		sweep = 360
	}
	n := int(math.Ceil(sweep / 90))
	if n == 0 {
		n = 1
	}
	step := sweep / float64(n) * math.Pi / 180
	t := angle1 * math.Pi / 180

	at := func(t float64) geom.Point {
		return geom.Pt(center.X+rx*math.Cos(t), center.Y-ry*math.Sin(t))
	}
	tangent := func(t float64) geom.Point {
		return geom.Pt(-rx*math.Sin(t), -ry*math.Cos(t))
	}

	k := 4.0 / 3.0 * math.Tan(step/4)
	out := make([]BezPoint, 0, n+1)
	out = append(out, MoveTo(at(t)))
	for range n {
		t2 := t + step
		p0, p3 := at(t), at(t2)
		c1 := p0.Add(tangent(t).Mul(k))
		c2 := p3.Sub(tangent(t2).Mul(k))
		out = append(out, CurveTo(c1, c2, p3))
		t = t2
	}
	return out
}

// ArcPoints flattens the arc of ArcBeziers into a polyline, for backends
// without curve support.
func ArcPoints(center geom.Point, width, height, angle1, angle2 float64) []geom.Point {
	return ApproximateBezier(ArcBeziers(center, width, height, angle1, angle2))
}

// PieBeziers returns the closed pie slice path used to fill an arc.
func PieBeziers(center geom.Point, width, height, angle1, angle2 float64) []BezPoint {
	arc := ArcBeziers(center, width, height, angle1, angle2)
	out := make([]BezPoint, 0, len(arc)+2)
	out = append(out, MoveTo(center), LineTo(arc[0].P1))
	out = append(out, arc[1:]...)
	return append(out, LineTo(center))
}

// EllipseBeziers returns a full ellipse as four bezier segments.
func EllipseBeziers(center geom.Point, width, height float64) []BezPoint {
	return ArcBeziers(center, width, height, 0, 360)
}

// DotLength returns the dot length used with the given dash length.
func DotLength(dash float64) float64 {
	return dash * dotRatio
}

// DashPattern returns the on/off lengths of style for the given dash
// length, or nil for solid lines.
func DashPattern(style LineStyle, dash float64) []float64 {
	if dash < MinDashLength {
		dash = MinDashLength
	}
	dot := DotLength(dash)
	switch style {
	case LineDashed:
		return []float64{dash, dash}
	case LineDashDot:
		hole := (dash - dot) / 2
		return []float64{dash, hole, dot, hole}
	case LineDashDotDot:
		hole := (dash - 2*dot) / 3
		return []float64{dash, hole, dot, hole, dot, hole}
	case LineDotted:
		return []float64{dot, dot}
	default:
		return nil
	}
}

// RectPoints returns the four corners of the rectangle ul-lr in drawing
// order.
func RectPoints(ul, lr geom.Point) []geom.Point {
	return []geom.Point{ul, geom.Pt(lr.X, ul.Y), lr, geom.Pt(ul.X, lr.Y)}
}
