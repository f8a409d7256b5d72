// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package svg writes diagrams as SVG 1.1 documents.
//
// Diagram units are centimetres. The document is sized in cm and its
// viewBox uses Scale user units per cm (DefaultScale unless configured), so
// coordinates are written as diagram coordinates times Scale.
//
// Importing the package registers the "svg" format:
//
//	import _ "github.com/gogpu/diagram/export/svg"
package svg

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"image"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/export"
	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// DefaultScale is the number of SVG user units per centimetre.
const DefaultScale = 20.0

const backendName = "svg"

// hairline is the width, in diagram units, used for SetLineWidth(0).
const hairline = 0.01

func init() {
	export.Register("svg", func(w io.Writer, cfg export.Config) export.Exporter {
		return New(w, cfg)
	})
}

// Exporter is a render.Renderer producing SVG.
type Exporter struct {
	render.State

	w     *export.Writer
	cfg   export.Config
	scale float64

	lineWidth  float64
	caps       render.LineCaps
	join       render.LineJoin
	style      render.LineStyle
	dashLength float64

	font       font.Font
	fontHeight float64
}

// New returns an exporter writing to w.
func New(w io.Writer, cfg export.Config) *Exporter {
	scale := cfg.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Exporter{
		w:          export.NewWriter(w),
		cfg:        cfg,
		scale:      scale,
		dashLength: 1,
		font:       font.Default,
		fontHeight: 0.8,
	}
}

// Err returns the first write error, or else the first BeginRender or
// EndRender misuse.
func (e *Exporter) Err() error {
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
	e.w.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n")
	e.w.WriteString(`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">` + "\n")
	e.w.Printf(`<svg width="%scm" height="%scm" viewBox="%s %s %s %s" `+
		`xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1">`+"\n",
		export.Num(ext.Width()), export.Num(ext.Height()),
		e.num(ext.Left), e.num(ext.Top), e.num(ext.Width()), e.num(ext.Height()))
	if e.cfg.Title != "" {
		e.w.Printf("  <title>%s</title>\n", escape(e.cfg.Title))
	}
	if bg := e.cfg.Background; bg != nil {
		e.FillRect(ext.Min(), ext.Max(), *bg)
	}
}

func (e *Exporter) EndRender() {
	if !e.End(backendName) {
		return
	}
	e.w.WriteString("</svg>\n")
}

func (e *Exporter) SetLineWidth(width float64) { e.lineWidth = width }
func (e *Exporter) SetLineCaps(caps render.LineCaps) { e.caps = caps }
func (e *Exporter) SetLineJoin(join render.LineJoin) { e.join = join }
func (e *Exporter) SetLineStyle(style render.LineStyle) { e.style = style }

func (e *Exporter) SetDashLength(length float64) {
	e.dashLength = max(length, render.MinDashLength)
}

func (e *Exporter) SetFillStyle(style render.FillStyle) {
	if style != render.FillSolid {
		diagram.Logger().Warn("svg: unsupported fill style, filling solid", "style", style)
	}
}

func (e *Exporter) SetFont(f font.Font, height float64) {
	e.font = f
	e.fontHeight = height
}

func (e *Exporter) num(v float64) string {
	return export.Num(v * e.scale)
}

func (e *Exporter) pt(p geom.Point) string {
	return e.num(p.X) + "," + e.num(p.Y)
}

func (e *Exporter) points(pts []geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = e.pt(p)
	}
	return strings.Join(parts, " ")
}

// strokeStyle returns the presentation attributes of an outline.
func (e *Exporter) strokeStyle(c render.Color) string {
	width := e.lineWidth
	if width <= 0 {
		width = hairline
	}
	var b strings.Builder
	b.WriteString(`fill="none" stroke="` + c.Hex() + `" stroke-width="` + e.num(width) + `"`)
	if c.A < 1 {
		b.WriteString(` stroke-opacity="` + export.Num(c.A) + `"`)
	}
	switch e.caps {
	case render.CapsRound:
		b.WriteString(` stroke-linecap="round"`)
	case render.CapsProjecting:
		b.WriteString(` stroke-linecap="square"`)
	}
	switch e.join {
	case render.JoinRound:
		b.WriteString(` stroke-linejoin="round"`)
	case render.JoinBevel:
		b.WriteString(` stroke-linejoin="bevel"`)
	}
	if pattern := render.DashPattern(e.style, e.dashLength); pattern != nil {
		parts := make([]string, len(pattern))
		for i, v := range pattern {
			parts[i] = e.num(v)
		}
		b.WriteString(` stroke-dasharray="` + strings.Join(parts, " ") + `"`)
	}
	return b.String()
}

// fillStyle returns the presentation attributes of a filled shape.
func fillStyle(c render.Color) string {
	s := `fill="` + c.Hex() + `" fill-rule="evenodd" stroke="none"`
	if c.A < 1 {
		s += ` fill-opacity="` + export.Num(c.A) + `"`
	}
	return s
}

func (e *Exporter) DrawLine(start, end geom.Point, c render.Color) {
	e.w.Printf(`  <line x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n",
		e.num(start.X), e.num(start.Y), e.num(end.X), e.num(end.Y), e.strokeStyle(c))
}

func (e *Exporter) DrawPolyline(points []geom.Point, c render.Color) {
	e.w.Printf(`  <polyline points="%s" %s/>`+"\n", e.points(points), e.strokeStyle(c))
}

func (e *Exporter) DrawPolygon(points []geom.Point, c render.Color) {
	e.w.Printf(`  <polygon points="%s" %s/>`+"\n", e.points(points), e.strokeStyle(c))
}

func (e *Exporter) FillPolygon(points []geom.Point, c render.Color) {
	e.w.Printf(`  <polygon points="%s" %s/>`+"\n", e.points(points), fillStyle(c))
}

func (e *Exporter) rect(ul, lr geom.Point, style string) {
	r := geom.RectFromPoints(ul, lr)
	e.w.Printf(`  <rect x="%s" y="%s" width="%s" height="%s" %s/>`+"\n",
		e.num(r.Left), e.num(r.Top), e.num(r.Width()), e.num(r.Height()), style)
}

func (e *Exporter) DrawRect(ul, lr geom.Point, c render.Color) {
	e.rect(ul, lr, e.strokeStyle(c))
}

func (e *Exporter) FillRect(ul, lr geom.Point, c render.Color) {
	e.rect(ul, lr, fillStyle(c))
}

// arcPath returns the path data of an elliptic arc. Counter-clockwise on
// screen is sweep-flag 0 because y grows downwards.
func (e *Exporter) arcPath(center geom.Point, width, height, angle1, angle2 float64) (start, d string) {
	span := math.Mod(angle2-angle1, 360)
	if span < 0 {
		span += 360
	}
	angle2 = angle1 + span
	rx, ry := width/2, height/2
	at := func(a float64) geom.Point {
		rad := a * math.Pi / 180
		return geom.Pt(center.X+rx*math.Cos(rad), center.Y-ry*math.Sin(rad))
	}
	large := "0"
	if angle2-angle1 > 180 {
		large = "1"
	}
	return e.pt(at(angle1)), "A " + e.num(rx) + "," + e.num(ry) + " 0 " + large + " 0 " + e.pt(at(angle2))
}

func (e *Exporter) DrawArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	if math.Abs(angle2-angle1) >= 360 {
		e.DrawEllipse(center, width, height, c)
		return
	}
	start, arc := e.arcPath(center, width, height, angle1, angle2)
	e.w.Printf(`  <path d="M %s %s" %s/>`+"\n", start, arc, e.strokeStyle(c))
}

func (e *Exporter) FillArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	if math.Abs(angle2-angle1) >= 360 {
		e.FillEllipse(center, width, height, c)
		return
	}
	start, arc := e.arcPath(center, width, height, angle1, angle2)
	e.w.Printf(`  <path d="M %s L %s %s Z" %s/>`+"\n", e.pt(center), start, arc, fillStyle(c))
}

func (e *Exporter) ellipse(center geom.Point, width, height float64, style string) {
	e.w.Printf(`  <ellipse cx="%s" cy="%s" rx="%s" ry="%s" %s/>`+"\n",
		e.num(center.X), e.num(center.Y), e.num(width/2), e.num(height/2), style)
}

func (e *Exporter) DrawEllipse(center geom.Point, width, height float64, c render.Color) {
	e.ellipse(center, width, height, e.strokeStyle(c))
}

func (e *Exporter) FillEllipse(center geom.Point, width, height float64, c render.Color) {
	e.ellipse(center, width, height, fillStyle(c))
}

func (e *Exporter) bezierPath(points []render.BezPoint, closed bool) string {
	if len(points) == 0 {
		return ""
	}
	points = render.CleanBezier(points)
	if points[0].Type != render.BezMoveTo {
		diagram.Logger().Warn("svg: bezier does not start with a move, using first point")
	}
	var b strings.Builder
	b.WriteString("M " + e.pt(points[0].End()))
	for _, p := range points[1:] {
		switch p.Type {
		case render.BezMoveTo:
			b.WriteString(" M " + e.pt(p.P1))
		case render.BezLineTo:
			b.WriteString(" L " + e.pt(p.P1))
		case render.BezCurveTo:
			b.WriteString(" C " + e.pt(p.P1) + " " + e.pt(p.P2) + " " + e.pt(p.P3))
		}
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}

func (e *Exporter) DrawBezier(points []render.BezPoint, c render.Color) {
	if d := e.bezierPath(points, false); d != "" {
		e.w.Printf(`  <path d="%s" %s/>`+"\n", d, e.strokeStyle(c))
	}
}

func (e *Exporter) FillBezier(points []render.BezPoint, c render.Color) {
	if d := e.bezierPath(points, true); d != "" {
		e.w.Printf(`  <path d="%s" %s/>`+"\n", d, fillStyle(c))
	}
}

var anchors = [...]string{
	render.AlignLeft:   "start",
	render.AlignCenter: "middle",
	render.AlignRight:  "end",
}

func (e *Exporter) DrawString(text string, pos geom.Point, align render.Alignment, c render.Color) {
	if text == "" {
		return
	}
	anchor := "start"
	if int(align) < len(anchors) {
		anchor = anchors[align]
	}
	var attrs strings.Builder
	attrs.WriteString(`font-family="` + escape(cssFamily(e.font.Family)) + `" font-size="` + e.num(e.fontHeight) + `"`)
	if e.font.Style != font.StyleNormal {
		attrs.WriteString(` font-style="` + e.font.Style.String() + `"`)
	}
	if e.font.Bold() {
		attrs.WriteString(` font-weight="bold"`)
	}
	e.w.Printf(`  <text x="%s" y="%s" text-anchor="%s" fill="%s" %s>%s</text>`+"\n",
		e.num(pos.X), e.num(pos.Y), anchor, c.Hex(), attrs.String(), escape(text))
}

func cssFamily(family string) string {
	switch family {
	case font.FamilySans, "":
		return "sans-serif"
	}
	return family
}

// DrawImage embeds img as a base64 PNG data URI.
func (e *Exporter) DrawImage(pos geom.Point, width, height float64, img image.Image) {
	if img == nil {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		diagram.Logger().Warn("svg: encoding image failed", "error", err)
		return
	}
	e.w.Printf(`  <image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none" xlink:href="data:image/png;base64,%s"/>`+"\n",
		e.num(pos.X), e.num(pos.Y), e.num(width), e.num(height),
		base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

var _ export.Exporter = (*Exporter)(nil)
