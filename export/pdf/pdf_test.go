// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pdf

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

type shape struct{ r geom.Rectangle }

func (s shape) BoundingBox() geom.Rectangle { return s.r }

func (s shape) Draw(r render.Renderer) {
	r.SetLineWidth(0.1)
	r.SetLineStyle(render.LineDashed)
	r.FillRect(s.r.Min(), s.r.Max(), render.Color{R: 1, A: 0.5})
	r.DrawEllipse(s.r.Center(), s.r.Width(), s.r.Height(), render.Black)
	r.DrawArc(s.r.Center(), s.r.Width(), s.r.Height(), 300, 30, render.Black)
	r.FillArc(s.r.Center(), s.r.Width(), s.r.Height(), 0, 90, render.Black)
	r.DrawBezier([]render.BezPoint{
		render.MoveTo(s.r.Min()),
		render.CurveTo(s.r.Center(), s.r.Center(), s.r.Max()),
	}, render.Black)
	r.SetFont(font.New(font.FamilyMonospace, font.StyleNormal, font.WeightBold), 0.5)
	r.DrawString("café", s.r.Center(), render.AlignRight, render.Black)
}

func TestRegistered(t *testing.T) {
	if !export.IsRegistered("pdf") {
		t.Fatal("pdf format not registered")
	}
}

func TestExportDocument(t *testing.T) {
	d := diagram.New("doc")
	d.Add(shape{geom.Rect(1, 1, 4, 3)}, shape{geom.Rect(2, 2, 6, 5)})

	var buf bytes.Buffer
	if err := export.ToWriter(t.Context(), d, "pdf", &buf, export.WithBackground(render.White)); err != nil {
		t.Fatalf("ToWriter: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Errorf("output does not start with a PDF header: %q", out[:min(len(out), 16)])
	}
	if !strings.Contains(out[max(0, len(out)-16):], "%%EOF") {
		t.Error("output lacks trailer")
	}
}

func TestDrawImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{G: 255, A: 255})

	var buf bytes.Buffer
	e := New(&buf, export.Config{Extents: geom.Rect(0, 0, 10, 10)})
	e.BeginRender(nil)
	e.DrawImage(geom.Pt(1, 1), 2, 2, img)
	e.DrawImage(geom.Pt(5, 5), 2, 2, img)
	e.EndRender()
	if err := e.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if e.images != 2 {
		t.Errorf("registered %d images, want 2", e.images)
	}
	if !strings.Contains(buf.String(), "/Subtype /Image") {
		t.Error("no image XObject in output")
	}
}

func TestFontMapping(t *testing.T) {
	tests := []struct {
		f             font.Font
		family, style string
	}{
		{font.Default, "Helvetica", ""},
		{font.New(font.FamilySerif, font.StyleNormal, font.WeightNormal), "Times", ""},
		{font.New(font.FamilySerif, font.StyleItalic, font.WeightBold), "Times", "BI"},
		{font.New(font.FamilyMonospace, font.StyleOblique, font.WeightNormal), "Courier", "I"},
		{font.New(font.FamilySans, font.StyleNormal, font.WeightBold), "Helvetica", "B"},
	}
	for _, tt := range tests {
		family, style := pdfFont(tt.f)
		if family != tt.family || style != tt.style {
			t.Errorf("pdfFont(%v) = %q %q, want %q %q", tt.f, family, style, tt.family, tt.style)
		}
	}
}

var errClosed = errors.New("pipe closed")

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errClosed }

func TestWriteErrorIsReported(t *testing.T) {
	d := diagram.New("t")
	d.Add(shape{geom.Rect(0, 0, 1, 1)})

	err := export.ToWriter(t.Context(), d, "pdf", failWriter{})
	if !errors.Is(err, errClosed) {
		t.Errorf("ToWriter = %v, want %v", err, errClosed)
	}
}

func TestMalformedBezierDegrades(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, export.Config{Extents: geom.Rect(0, 0, 4, 4)})
	e.BeginRender(nil)
	p := geom.Pt(1, 1)
	e.FillBezier([]render.BezPoint{render.MoveTo(p), render.CurveTo(p, p, p)}, render.Black)
	e.DrawBezier([]render.BezPoint{
		render.MoveTo(p),
		render.CurveTo(p, p, p),
		render.LineTo(geom.Pt(3, 3)),
	}, render.Black)
	e.EndRender()
	if err := e.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Error("no document written")
	}
}

func TestEndWithoutBeginIsReported(t *testing.T) {
	var buf bytes.Buffer
	e := New(&buf, export.Config{Extents: geom.Rect(0, 0, 1, 1)})
	e.EndRender()
	if err := e.Err(); !errors.Is(err, render.ErrNotRendering) {
		t.Errorf("Err = %v, want ErrNotRendering", err)
	}
	if buf.Len() != 0 {
		t.Errorf("EndRender without BeginRender wrote %d bytes", buf.Len())
	}
}
