// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package eps

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/export"
	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

func newExporter(t *testing.T) (*Exporter, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	e := New(&buf, export.Config{Extents: geom.Rect(0, 0, 10, 5), Title: "test"})
	return e, &buf
}

func TestRegistered(t *testing.T) {
	if !export.IsRegistered("eps") {
		t.Fatal("eps format not registered")
	}
}

func TestHeaderAndFlip(t *testing.T) {
	e, buf := newExporter(t)
	e.BeginRender(nil)
	e.EndRender()

	out := buf.String()
	for _, want := range []string{
		"%!PS-Adobe-2.0 EPSF-2.0\n",
		"%%Title: test\n",
		"%%BoundingBox: 0 0 284 142\n",
		"/ellipse\n",
		"/Helvetica-latin1\n",
		"28.346 -28.346 scale\n",
		"0 -5 translate\n",
		"%%EndProlog\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
	if !strings.HasSuffix(out, "showpage\n%%EOF\n") {
		t.Errorf("output does not end with showpage: %q", out[max(0, len(out)-40):])
	}
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name string
		draw func(e *Exporter)
		want string
	}{
		{"line", func(e *Exporter) {
			e.DrawLine(geom.Pt(0, 0), geom.Pt(1, 1.5), render.Black)
		}, "n 0 0 m 1 1.5 l s\n"},
		{"polygon", func(e *Exporter) {
			e.DrawPolygon([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, render.Black)
		}, "n 0 0 m 1 0 l 1 1 l cp s\n"},
		{"fill rect", func(e *Exporter) {
			e.FillRect(geom.Pt(0, 0), geom.Pt(2, 1), render.Black)
		}, "n 0 0 m 2 0 l 2 1 l 0 1 l ef\n"},
		{"arc", func(e *Exporter) {
			e.DrawArc(geom.Pt(1, 1), 2, 2, 0, 90, render.Black)
		}, "n 1 1 1 1 270 360 ellipse s\n"},
		{"pie", func(e *Exporter) {
			e.FillArc(geom.Pt(1, 1), 2, 4, 0, 90, render.Black)
		}, "n 1 1 m 1 1 1 2 270 360 ellipse f\n"},
		{"ellipse", func(e *Exporter) {
			e.FillEllipse(geom.Pt(3, 2), 2, 1, render.Black)
		}, "n 3 2 1 0.5 0 360 ellipse f\n"},
		{"bezier", func(e *Exporter) {
			e.DrawBezier([]render.BezPoint{
				render.MoveTo(geom.Pt(0, 0)),
				render.CurveTo(geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(2, 1)),
				render.LineTo(geom.Pt(3, 1)),
			}, render.Black)
		}, "n 0 0 m 1 0 1 1 2 1 c 3 1 l s\n"},
		{"malformed bezier", func(e *Exporter) {
			p := geom.Pt(1, 1)
			e.FillBezier([]render.BezPoint{render.MoveTo(p), render.CurveTo(p, p, p)}, render.Black)
		}, "n 1 1 m 1 1 l ef\n"},
		{"hairline", func(e *Exporter) {
			e.SetLineWidth(0)
		}, "0.01 slw\n"},
		{"dashed", func(e *Exporter) {
			e.SetDashLength(0.5)
			e.SetLineStyle(render.LineDashed)
		}, "[0.5 0.5] 0 sd\n"},
		{"font", func(e *Exporter) {
			e.SetFont(font.New(font.FamilySerif, font.StyleItalic, font.WeightBold), 0.8)
		}, "/Times-BoldItalic-latin1 ff 0.8 scf sf\n"},
		{"centered text", func(e *Exporter) {
			e.DrawString("hi", geom.Pt(2, 3), render.AlignCenter, render.Black)
		}, "(hi) dup sw 2 div 2 ex sub 3 m\n gs 1 -1 sc sh gr\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, buf := newExporter(t)
			e.BeginRender(nil)
			buf.Reset()
			tt.draw(e)
			if got := buf.String(); !strings.HasSuffix(got, tt.want) {
				t.Errorf("got %q, want suffix %q", got, tt.want)
			}
		})
	}
}

func TestColorIsSetLazily(t *testing.T) {
	e, buf := newExporter(t)
	e.BeginRender(nil)
	buf.Reset()

	e.DrawLine(geom.Pt(0, 0), geom.Pt(1, 1), render.RGB(1, 0, 0))
	e.DrawLine(geom.Pt(1, 1), geom.Pt(2, 2), render.RGB(1, 0, 0))
	e.DrawLine(geom.Pt(2, 2), geom.Pt(3, 3), render.Black)

	out := buf.String()
	if n := strings.Count(out, "srgb"); n != 2 {
		t.Errorf("srgb emitted %d times, want 2:\n%s", n, out)
	}
	if !strings.Contains(out, "1 0 0 srgb\n") {
		t.Errorf("missing red: %q", out)
	}
}

func TestEscapeLatin1(t *testing.T) {
	e, _ := newExporter(t)
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a(b)c", `a\(b\)c`},
		{`back\slash`, `back\\slash`},
		{"café", `caf\351`},
		{"€5", "?5"},
	}
	for _, tt := range tests {
		if got := e.escape(tt.in); got != tt.want {
			t.Errorf("escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDrawImageBlendsOnWhite(t *testing.T) {
	e, buf := newExporter(t)
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{})

	e.BeginRender(nil)
	buf.Reset()
	e.DrawImage(geom.Pt(1, 1), 2, 1, img)

	out := buf.String()
	for _, want := range []string{"2 1 8\n", "1 1 tr\n", "2 1 sc\n", "ff0000ffffff\n", "false 3 colorimage\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("image output lacks %q:\n%s", want, out)
		}
	}
}

type failWriter struct{}

var errDiskFull = errors.New("disk full")

func (failWriter) Write([]byte) (int, error) { return 0, errDiskFull }

type dot struct{ p geom.Point }

func (d dot) BoundingBox() geom.Rectangle { return geom.RectFromPoints(d.p) }

func (d dot) Draw(r render.Renderer) {
	r.DrawLine(d.p, d.p, render.Black)
}

func TestWriteErrorIsReported(t *testing.T) {
	d := diagram.New("t")
	d.Add(dot{geom.Pt(1, 1)})

	err := export.ToWriter(t.Context(), d, "eps", failWriter{})
	if !errors.Is(err, errDiskFull) {
		t.Errorf("ToWriter = %v, want disk full", err)
	}
}

func TestDocumentUsesExtents(t *testing.T) {
	d := diagram.New("doc")
	d.Add(dot{geom.Pt(1, 2)}, dot{geom.Pt(3, 4)})

	var buf bytes.Buffer
	if err := export.ToWriter(t.Context(), d, "eps", &buf, export.WithScale(10)); err != nil {
		t.Fatalf("ToWriter: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "%%BoundingBox: 0 0 20 20\n") {
		t.Errorf("bounding box not from extents:\n%s", out[:min(len(out), 300)])
	}
	if !strings.Contains(out, "-1 -4 translate\n") {
		t.Error("translate does not use extents")
	}
	if n := strings.Count(out, " l s\n"); n != 2 {
		t.Errorf("%d lines drawn, want 2", n)
	}
}
