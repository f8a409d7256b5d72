// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"image"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/recording"
	"github.com/gogpu/diagram/render"
)

func near(a, b geom.Rectangle) bool {
	const eps = 1e-6
	return math.Abs(a.Left-b.Left) < eps && math.Abs(a.Top-b.Top) < eps &&
		math.Abs(a.Right-b.Right) < eps && math.Abs(a.Bottom-b.Bottom) < eps
}

func record(t *testing.T, o diagram.Object) *recording.Recorder {
	t.Helper()
	rec := recording.NewRecorder()
	rec.BeginRender(nil)
	o.Draw(rec)
	rec.EndRender()
	return rec
}

func TestIDsAreUniqueUUIDs(t *testing.T) {
	a := NewLine(geom.Pt(0, 0), geom.Pt(1, 1), DefaultStyle())
	b := NewLine(geom.Pt(0, 0), geom.Pt(1, 1), DefaultStyle())
	if a.ID() == b.ID() {
		t.Fatal("two objects share an ID")
	}
	if _, err := uuid.Parse(a.ID()); err != nil {
		t.Errorf("ID %q is not a UUID: %v", a.ID(), err)
	}

	id := uuid.New()
	a.SetID(id)
	if a.UUID() != id || a.ID() != id.String() {
		t.Error("SetID not applied")
	}
}

func TestBoundingBoxIncludesHalfLineWidth(t *testing.T) {
	style := DefaultStyle()
	style.LineWidth = 0.2

	tests := []struct {
		name string
		obj  diagram.Object
		want geom.Rectangle
	}{
		{"box", NewBox(geom.Rect(1, 1, 3, 2), style), geom.Rect(0.9, 0.9, 3.1, 2.1)},
		{"ellipse", NewEllipse(geom.Rect(0, 0, 4, 2), style), geom.Rect(-0.1, -0.1, 4.1, 2.1)},
		{"line", NewLine(geom.Pt(2, 2), geom.Pt(0, 1), style), geom.Rect(-0.1, 0.9, 2.1, 2.1)},
		{"polyline", NewPolyline([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 3}, {X: 2, Y: 1}}, style), geom.Rect(-0.1, -0.1, 2.1, 3.1)},
		{"polygon", NewPolygon([]geom.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}}, style), geom.Rect(0.9, 0.9, 2.1, 2.1)},
		{"quarter arc", NewArc(geom.Rect(0, 0, 2, 2), 0, 90, style), geom.Rect(0.9, -0.1, 2.1, 1.1)},
		{"pie", NewArc(geom.Rect(0, 0, 2, 2), 90, 180, style.Filled(render.White)), geom.Rect(-0.1, -0.1, 1.1, 1.1)},
		{"bezier", NewBezier([]render.BezPoint{
			render.MoveTo(geom.Pt(0, 0)),
			render.LineTo(geom.Pt(2, 0)),
			render.LineTo(geom.Pt(2, 1)),
		}, false, style), geom.Rect(-0.1, -0.1, 2.1, 1.1)},
		{"image", NewImage(image.NewRGBA(image.Rect(0, 0, 1, 1)), geom.Pt(1, 1), 2, 3), geom.Rect(1, 1, 3, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.obj.BoundingBox(); !near(got, tt.want) {
				t.Errorf("BoundingBox() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmptyPathsHaveEmptyBoundingBox(t *testing.T) {
	for _, o := range []diagram.Object{
		NewPolyline(nil, DefaultStyle()),
		NewPolygon(nil, DefaultStyle()),
		NewBezier(nil, false, DefaultStyle()),
	} {
		if !o.BoundingBox().IsEmpty() {
			t.Errorf("%T with no points has bounding box %v", o, o.BoundingBox())
		}
	}
}

func TestMoveTranslatesBoundingBox(t *testing.T) {
	objs := []diagram.Movable{
		NewBox(geom.Rect(0, 0, 1, 1), DefaultStyle()),
		NewEllipse(geom.Rect(0, 0, 2, 1), DefaultStyle()),
		NewLine(geom.Pt(0, 0), geom.Pt(1, 1), DefaultStyle()),
		NewPolyline([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 2}}, DefaultStyle()),
		NewPolygon([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, DefaultStyle()),
		NewArc(geom.Rect(0, 0, 2, 2), 30, 200, DefaultStyle()),
		NewBezier([]render.BezPoint{
			render.MoveTo(geom.Pt(0, 0)),
			render.CurveTo(geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)),
		}, true, DefaultStyle()),
		NewText("moved\ntext", geom.Pt(1, 1), render.AlignLeft),
		NewImage(nil, geom.Pt(0, 0), 1, 1),
	}
	for _, o := range objs {
		before := o.BoundingBox()
		o.Move(2, -3)
		if got, want := o.BoundingBox(), before.Translate(2, -3); !near(got, want) {
			t.Errorf("%T: after Move bounding box = %v, want %v", o, got, want)
		}
	}
}

func TestPolylineCopiesPoints(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	p := NewPolyline(pts, DefaultStyle())
	pts[0] = geom.Pt(5, 5)
	if p.Points[0] != geom.Pt(0, 0) {
		t.Error("polyline shares the caller's slice")
	}
}

func TestBoxDraw(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		fill   bool
		counts map[recording.CommandType]int
	}{
		{"plain", 0, false, map[recording.CommandType]int{recording.CmdDrawRect: 1}},
		{"filled", 0, true, map[recording.CommandType]int{recording.CmdFillRect: 1, recording.CmdDrawRect: 1}},
		{"rounded", 0.2, false, map[recording.CommandType]int{recording.CmdDrawArc: 4, recording.CmdDrawLine: 4}},
		{"rounded filled", 0.2, true, map[recording.CommandType]int{
			recording.CmdFillArc: 4, recording.CmdFillRect: 2,
			recording.CmdDrawArc: 4, recording.CmdDrawLine: 4,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := DefaultStyle()
			if tt.fill {
				style = style.Filled(render.White)
			}
			b := NewBox(geom.Rect(0, 0, 2, 1), style)
			b.Radius = tt.radius
			rec := record(t, b)

			total := 0
			for typ, want := range tt.counts {
				if got := rec.Count(typ); got != want {
					t.Errorf("%v count = %d, want %d", typ, got, want)
				}
				total += want
			}
			if got := rec.Count(); got != total {
				t.Errorf("%d draw commands, want %d", got, total)
			}
			if rec.Count(recording.CmdSetLineWidth) != 1 {
				t.Error("line width not set")
			}
		})
	}
}

func TestBoxRadiusIsClamped(t *testing.T) {
	b := NewBox(geom.Rect(0, 0, 4, 1), DefaultStyle())
	b.Radius = 3
	if got := b.radius(); got != 0.5 {
		t.Errorf("radius() = %v, want half the height", got)
	}
	b.Radius = -1
	if got := b.radius(); got != 0 {
		t.Errorf("negative radius = %v, want 0", got)
	}
}

func TestBoxCornerArcsMeetEdges(t *testing.T) {
	b := NewBox(geom.Rect(0, 0, 4, 2), DefaultStyle())
	b.Radius = 0.5
	for _, c := range record(t, b).Commands() {
		if c.Type != recording.CmdDrawArc {
			continue
		}
		pts := render.ArcPoints(c.Points[0], c.Values[0], c.Values[1], c.Values[2], c.Values[3])
		for _, p := range []geom.Point{pts[0], pts[len(pts)-1]} {
			onEdge := math.Abs(p.X) < 1e-9 || math.Abs(p.X-4) < 1e-9 ||
				math.Abs(p.Y) < 1e-9 || math.Abs(p.Y-2) < 1e-9
			if !onEdge {
				t.Errorf("arc %v ends at %v, not on the box outline", c, p)
			}
		}
	}
}

func TestClosedBezierIsClosed(t *testing.T) {
	b := NewBezier([]render.BezPoint{
		render.MoveTo(geom.Pt(0, 0)),
		render.LineTo(geom.Pt(1, 0)),
		render.LineTo(geom.Pt(1, 1)),
	}, true, DefaultStyle().Filled(render.White))
	rec := record(t, b)

	if rec.Count(recording.CmdFillBezier) != 1 {
		t.Error("closed filled bezier not filled")
	}
	for _, c := range rec.Commands() {
		if c.Type != recording.CmdDrawBezier {
			continue
		}
		last := c.Bezier[len(c.Bezier)-1]
		if last.Type != render.BezLineTo || last.P1 != geom.Pt(0, 0) {
			t.Errorf("outline ends with %v, want a line back to the start", last)
		}
	}
	if len(b.Points) != 3 {
		t.Errorf("Draw modified the object's points: %d", len(b.Points))
	}
}

func TestTextBoundingBox(t *testing.T) {
	m := font.DefaultMetrics()
	width := m.StringWidth("wide line", 1)
	asc, desc := m.Ascent(1), m.Descent(1)

	tests := []struct {
		align render.Alignment
		left  float64
	}{
		{render.AlignLeft, 10},
		{render.AlignCenter, 10 - width/2},
		{render.AlignRight, 10 - width},
	}
	for _, tt := range tests {
		txt := NewText("wide line\nx", geom.Pt(10, 5), tt.align)
		txt.Height = 1
		want := geom.Rect(tt.left, 5-asc, tt.left+width, 6+desc)
		if got := txt.BoundingBox(); !near(got, want) {
			t.Errorf("%v: BoundingBox() = %v, want %v", tt.align, got, want)
		}
	}
}

func TestTextDrawsEachLine(t *testing.T) {
	txt := NewText("a\nb\nc", geom.Pt(1, 1), render.AlignRight)
	rec := record(t, txt)

	var ys []float64
	for _, c := range rec.Commands() {
		if c.Type == recording.CmdDrawString {
			ys = append(ys, c.Points[0].Y)
			if c.Align != render.AlignRight {
				t.Errorf("line %q drawn with %v", c.Text, c.Align)
			}
		}
	}
	want := []float64{1, 1 + DefaultFontHeight, 1 + 2*DefaultFontHeight}
	if len(ys) != len(want) {
		t.Fatalf("drew %d lines, want %d", len(ys), len(want))
	}
	for i := range want {
		if math.Abs(ys[i]-want[i]) > 1e-9 {
			t.Errorf("line %d baseline = %v, want %v", i, ys[i], want[i])
		}
	}
	if rec.Count(recording.CmdSetFont) != 1 {
		t.Error("font not set")
	}
}

func TestImageDraw(t *testing.T) {
	img := NewImage(image.NewRGBA(image.Rect(0, 0, 2, 2)), geom.Pt(0, 0), 1, 1)
	if rec := record(t, img); rec.Count(recording.CmdDrawImage) != 1 || rec.Count() != 1 {
		t.Errorf("image drew %v", rec.Commands())
	}

	img.Border = true
	if rec := record(t, img); rec.Count(recording.CmdDrawRect) != 1 {
		t.Error("border not drawn")
	}

	missing := NewImage(nil, geom.Pt(0, 0), 1, 1)
	rec := record(t, missing)
	if rec.Count(recording.CmdDrawImage) != 0 || rec.Count(recording.CmdDrawLine) != 2 {
		t.Errorf("placeholder drew %v", rec.Commands())
	}
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		a1, a2, want float64
	}{
		{0, 90, 90},
		{270, 90, 180},
		{0, 360, 360},
		{45, 45, 360},
		{-90, 0, 90},
	}
	for _, tt := range tests {
		a := NewArc(geom.Rect(0, 0, 1, 1), tt.a1, tt.a2, DefaultStyle())
		if got := a.Sweep(); got != tt.want {
			t.Errorf("Sweep(%v, %v) = %v, want %v", tt.a1, tt.a2, got, tt.want)
		}
	}
}

func TestObjectsInDiagram(t *testing.T) {
	d := diagram.New("objects")
	box := NewBox(geom.Rect(0, 0, 2, 2), DefaultStyle())
	line := NewLine(geom.Pt(3, 3), geom.Pt(5, 4), DefaultStyle())
	d.Add(box, line)

	if err := d.Move(box, 1, 1); err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := geom.Rect(0.95, 0.95, 5.05, 4.05)
	if got := d.Extents(); !near(got, want) {
		t.Errorf("Extents() = %v, want %v", got, want)
	}

	rec := recording.NewRecorder()
	if _, err := d.RenderContext(t.Context(), rec, nil); err != nil {
		t.Fatalf("RenderContext: %v", err)
	}
	if rec.Count(recording.CmdDrawRect) != 1 || rec.Count(recording.CmdDrawLine) != 1 {
		t.Errorf("render dispatched %v", rec.Commands())
	}
}
