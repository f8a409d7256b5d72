// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pdf writes diagrams as single-page PDF documents using
// codeberg.org/go-pdf/fpdf.
//
// The page is exactly the exported extents, in points. Text is set in the
// standard PDF fonts (Helvetica, Times, Courier) with the cp1252 encoding.
//
// Importing the package registers the "pdf" format:
//
//	import _ "github.com/gogpu/diagram/export/pdf"
package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/export"
	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

const backendName = "pdf"

// hairline is the width, in diagram units, used for SetLineWidth(0).
const hairline = 0.01

func init() {
	export.Register("pdf", func(w io.Writer, cfg export.Config) export.Exporter {
		return New(w, cfg)
	})
}

// Exporter is a render.Renderer producing PDF.
type Exporter struct {
	render.State

	w     *export.Writer
	cfg   export.Config
	scale float64

	doc       *fpdf.Fpdf
	translate func(string) string
	err       error

	style      render.LineStyle
	dashLength float64
	alpha      float64
	images     int

	font       font.Font
	fontHeight float64
}

// New returns an exporter writing to w. The document is written by
// EndRender.
func New(w io.Writer, cfg export.Config) *Exporter {
	scale := cfg.Scale
	if scale <= 0 {
		scale = export.PointsPerCM
	}
	return &Exporter{
		w:          export.NewWriter(w),
		cfg:        cfg,
		scale:      scale,
		dashLength: 1,
		alpha:      1,
		font:       font.Default,
		fontHeight: 0.8,
	}
}

// Err returns the first document or write error, or else the first
// BeginRender or EndRender misuse.
func (e *Exporter) Err() error {
	if e.err != nil {
		return e.err
	}
	if e.doc != nil && e.doc.Err() {
		return fmt.Errorf("pdf: %w", e.doc.Error())
	}
	if err := e.w.Err(); err != nil {
		return err
	}
	return e.State.Err()
}

func (e *Exporter) BeginRender(*geom.Rectangle) {
	if !e.Begin(backendName) {
		return
	}
	ext := e.cfg.Extents
	size := fpdf.SizeType{
		Wd: max(ext.Width()*e.scale, 1),
		Ht: max(ext.Height()*e.scale, 1),
	}
	e.doc = fpdf.NewCustom(&fpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: size})
	e.doc.SetMargins(0, 0, 0)
	e.doc.SetAutoPageBreak(false, 0)
	e.doc.SetTitle(e.cfg.Title, true)
	e.doc.SetCreator("diagram", true)
	e.doc.AddPage()
	e.translate = e.doc.UnicodeTranslatorFromDescriptor("")
	e.alpha = 1
	e.images = 0
	e.SetFont(e.font, e.fontHeight)

	if bg := e.cfg.Background; bg != nil {
		e.FillRect(ext.Min(), ext.Max(), *bg)
	}
}

func (e *Exporter) EndRender() {
	if !e.End(backendName) {
		return
	}
	if err := e.doc.Output(e.w); err != nil && e.err == nil {
		e.err = fmt.Errorf("pdf: %w", err)
	}
}

func (e *Exporter) num(v float64) float64 { return v * e.scale }

// pt maps a diagram point to page coordinates. Both have y growing
// downwards, so only the origin and scale change.
func (e *Exporter) pt(p geom.Point) (float64, float64) {
	return (p.X - e.cfg.Extents.Left) * e.scale, (p.Y - e.cfg.Extents.Top) * e.scale
}

func (e *Exporter) SetLineWidth(width float64) {
	if width <= 0 {
		width = hairline
	}
	e.doc.SetLineWidth(e.num(width))
}

func (e *Exporter) SetLineCaps(caps render.LineCaps) {
	switch caps {
	case render.CapsRound:
		e.doc.SetLineCapStyle("round")
	case render.CapsProjecting:
		e.doc.SetLineCapStyle("square")
	default:
		e.doc.SetLineCapStyle("butt")
	}
}

func (e *Exporter) SetLineJoin(join render.LineJoin) {
	switch join {
	case render.JoinRound:
		e.doc.SetLineJoinStyle("round")
	case render.JoinBevel:
		e.doc.SetLineJoinStyle("bevel")
	default:
		e.doc.SetLineJoinStyle("miter")
	}
}

func (e *Exporter) SetLineStyle(style render.LineStyle) {
	e.style = style
	e.setDash()
}

func (e *Exporter) SetDashLength(length float64) {
	e.dashLength = max(length, render.MinDashLength)
	e.setDash()
}

func (e *Exporter) setDash() {
	pattern := render.DashPattern(e.style, e.dashLength)
	for i := range pattern {
		pattern[i] = e.num(pattern[i])
	}
	e.doc.SetDashPattern(pattern, 0)
}

func (e *Exporter) SetFillStyle(style render.FillStyle) {
	if style != render.FillSolid {
		diagram.Logger().Warn("pdf: unsupported fill style, filling solid", "style", style)
	}
}

func (e *Exporter) SetFont(f font.Font, height float64) {
	e.font = f
	e.fontHeight = height
	family, style := pdfFont(f)
	e.doc.SetFont(family, style, e.num(height))
}

// pdfFont maps f to a standard PDF font family and style string.
func pdfFont(f font.Font) (family, style string) {
	name := f.PSName()
	switch {
	case strings.HasPrefix(name, "Times"):
		family = "Times"
	case strings.HasPrefix(name, "Courier"):
		family = "Courier"
	default:
		family = "Helvetica"
	}
	if f.Bold() {
		style += "B"
	}
	if f.Style != font.StyleNormal {
		style += "I"
	}
	return family, style
}

func (e *Exporter) setAlpha(a float64) {
	if a == e.alpha {
		return
	}
	e.alpha = a
	e.doc.SetAlpha(min(max(a, 0), 1), "Normal")
}

func (e *Exporter) stroke(c render.Color) {
	n := c.NRGBA()
	e.doc.SetDrawColor(int(n.R), int(n.G), int(n.B))
	e.setAlpha(c.A)
}

func (e *Exporter) fill(c render.Color) {
	n := c.NRGBA()
	e.doc.SetFillColor(int(n.R), int(n.G), int(n.B))
	e.setAlpha(c.A)
}

func (e *Exporter) DrawLine(start, end geom.Point, c render.Color) {
	e.stroke(c)
	x1, y1 := e.pt(start)
	x2, y2 := e.pt(end)
	e.doc.Line(x1, y1, x2, y2)
}

func (e *Exporter) DrawPolyline(points []geom.Point, c render.Color) {
	if len(points) == 0 {
		return
	}
	e.stroke(c)
	e.doc.MoveTo(e.pt(points[0]))
	for _, p := range points[1:] {
		e.doc.LineTo(e.pt(p))
	}
	e.doc.DrawPath("D")
}

func (e *Exporter) polygon(points []geom.Point) []fpdf.PointType {
	out := make([]fpdf.PointType, len(points))
	for i, p := range points {
		out[i].X, out[i].Y = e.pt(p)
	}
	return out
}

func (e *Exporter) DrawPolygon(points []geom.Point, c render.Color) {
	e.stroke(c)
	e.doc.Polygon(e.polygon(points), "D")
}

func (e *Exporter) FillPolygon(points []geom.Point, c render.Color) {
	e.fill(c)
	e.doc.Polygon(e.polygon(points), "F")
}

func (e *Exporter) rect(ul, lr geom.Point, style string) {
	r := geom.RectFromPoints(ul, lr)
	x, y := e.pt(r.Min())
	e.doc.Rect(x, y, e.num(r.Width()), e.num(r.Height()), style)
}

func (e *Exporter) DrawRect(ul, lr geom.Point, c render.Color) {
	e.stroke(c)
	e.rect(ul, lr, "D")
}

func (e *Exporter) FillRect(ul, lr geom.Point, c render.Color) {
	e.fill(c)
	e.rect(ul, lr, "F")
}

func (e *Exporter) DrawArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	for angle2 < angle1 {
		angle2 += 360
	}
	e.stroke(c)
	x, y := e.pt(center)
	e.doc.Arc(x, y, e.num(width/2), e.num(height/2), 0, angle1, angle2, "D")
}

func (e *Exporter) FillArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	e.fill(c)
	e.path(render.PieBeziers(center, width, height, angle1, angle2), true, "F")
}

func (e *Exporter) DrawEllipse(center geom.Point, width, height float64, c render.Color) {
	e.stroke(c)
	x, y := e.pt(center)
	e.doc.Ellipse(x, y, e.num(width/2), e.num(height/2), 0, "D")
}

func (e *Exporter) FillEllipse(center geom.Point, width, height float64, c render.Color) {
	e.fill(c)
	x, y := e.pt(center)
	e.doc.Ellipse(x, y, e.num(width/2), e.num(height/2), 0, "F")
}

func (e *Exporter) path(points []render.BezPoint, closed bool, style string) {
	if len(points) == 0 {
		return
	}
	points = render.CleanBezier(points)
	if points[0].Type != render.BezMoveTo {
		diagram.Logger().Warn("pdf: bezier does not start with a move, using first point")
	}
	e.doc.MoveTo(e.pt(points[0].End()))
	for _, p := range points[1:] {
		switch p.Type {
		case render.BezMoveTo:
			e.doc.MoveTo(e.pt(p.P1))
		case render.BezLineTo:
			e.doc.LineTo(e.pt(p.P1))
		case render.BezCurveTo:
			x1, y1 := e.pt(p.P1)
			x2, y2 := e.pt(p.P2)
			x3, y3 := e.pt(p.P3)
			e.doc.CurveBezierCubicTo(x1, y1, x2, y2, x3, y3)
		}
	}
	if closed {
		e.doc.ClosePath()
	}
	e.doc.DrawPath(style)
}

func (e *Exporter) DrawBezier(points []render.BezPoint, c render.Color) {
	e.stroke(c)
	e.path(points, false, "D")
}

func (e *Exporter) FillBezier(points []render.BezPoint, c render.Color) {
	e.fill(c)
	e.path(points, true, "F")
}

func (e *Exporter) DrawString(text string, pos geom.Point, align render.Alignment, c render.Color) {
	if text == "" {
		return
	}
	n := c.NRGBA()
	e.doc.SetTextColor(int(n.R), int(n.G), int(n.B))
	e.setAlpha(c.A)

	s := e.translate(text)
	x, y := e.pt(pos)
	switch align {
	case render.AlignCenter:
		x -= e.doc.GetStringWidth(s) / 2
	case render.AlignRight:
		x -= e.doc.GetStringWidth(s)
	}
	e.doc.Text(x, y, s)
}

// DrawImage embeds img as PNG data.
func (e *Exporter) DrawImage(pos geom.Point, width, height float64, img image.Image) {
	if img == nil {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		diagram.Logger().Warn("pdf: encoding image failed", "error", err)
		return
	}
	e.images++
	name := fmt.Sprintf("img%d", e.images)
	opts := fpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	e.doc.RegisterImageOptionsReader(name, opts, &buf)
	x, y := e.pt(pos)
	e.doc.ImageOptions(name, x, y, e.num(width), e.num(height), false, opts, 0, "")
}

var _ export.Exporter = (*Exporter)(nil)
