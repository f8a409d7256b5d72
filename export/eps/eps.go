// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package eps writes diagrams as Encapsulated PostScript.
//
// The page is sized to the exported extents. Diagram units are scaled to
// points (export.PointsPerCM by default) and the y axis is flipped once in
// the prolog, so the drawing commands use diagram coordinates directly.
// Text is re-encoded to ISO 8859-1 and set in one of the standard
// PostScript fonts.
//
// Importing the package registers the "eps" format:
//
//	import _ "github.com/gogpu/diagram/export/eps"
package eps

import (
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/export"
	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

const backendName = "eps"

// hairline is the width, in diagram units, used for SetLineWidth(0).
const hairline = 0.01

func init() {
	export.Register("eps", func(w io.Writer, cfg export.Config) export.Exporter {
		return New(w, cfg)
	})
}

// standardFonts are re-encoded to Latin-1 in the prolog.
var standardFonts = []string{
	"Times-Roman", "Times-Italic", "Times-Bold", "Times-BoldItalic",
	"Courier", "Courier-Oblique", "Courier-Bold", "Courier-BoldOblique",
	"Helvetica", "Helvetica-Oblique", "Helvetica-Bold", "Helvetica-BoldOblique",
}

// Exporter is a render.Renderer producing EPS.
type Exporter struct {
	render.State

	w     *export.Writer
	cfg   export.Config
	scale float64

	color      *render.Color
	style      render.LineStyle
	dashLength float64
}

// New returns an exporter writing to w.
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
	e.w.WriteString("%!PS-Adobe-2.0 EPSF-2.0\n")
	e.w.Printf("%%%%Title: %s\n", e.cfg.Title)
	e.w.WriteString("%%Creator: diagram\n")
	e.w.WriteString("%%Magnification: 1.0000\n")
	e.w.Printf("%%%%BoundingBox: 0 0 %d %d\n",
		int(math.Ceil(ext.Width()*e.scale)), int(math.Ceil(ext.Height()*e.scale)))
	e.w.WriteString("%%BeginSetup\n%%EndSetup\n%%EndComments\n")

	e.w.WriteString("%%BeginProlog\n")
	e.w.WriteString(prolog)
	for _, name := range standardFonts {
		e.w.Printf("/%s-latin1\n    /%s findfont\n    dup length dict begin\n"+
			"\t{1 index /FID ne {def} {pop pop} ifelse} forall\n"+
			"\t/Encoding ISOLatin1Encoding def\n    currentdict end\ndefinefont pop\n", name, name)
	}
	e.w.Printf("%s %s scale\n", export.Num(e.scale), export.Num(-e.scale))
	e.w.Printf("%s %s translate\n", export.Num(-ext.Left), export.Num(-ext.Bottom))
	e.w.WriteString("%%EndProlog\n\n\n")

	if bg := e.cfg.Background; bg != nil {
		e.FillRect(ext.Min(), ext.Max(), *bg)
	}
}

func (e *Exporter) EndRender() {
	if !e.End(backendName) {
		return
	}
	e.w.WriteString("showpage\n%%EOF\n")
	e.color = nil
}

func (e *Exporter) SetLineWidth(width float64) {
	if width <= 0 {
		width = hairline
	}
	e.w.Printf("%s slw\n", export.Num(width))
}

func (e *Exporter) SetLineCaps(caps render.LineCaps) {
	e.w.Printf("%d slc\n", psCap(caps))
}

func (e *Exporter) SetLineJoin(join render.LineJoin) {
	e.w.Printf("%d slj\n", psJoin(join))
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
	parts := make([]string, len(pattern))
	for i, v := range pattern {
		parts[i] = export.Num(v)
	}
	e.w.Printf("[%s] 0 sd\n", strings.Join(parts, " "))
}

func (e *Exporter) SetFillStyle(style render.FillStyle) {
	if style != render.FillSolid {
		diagram.Logger().Warn("eps: unsupported fill style, filling solid", "style", style)
	}
}

func (e *Exporter) SetFont(f font.Font, height float64) {
	name := f.PSName()
	if !isStandard(name) {
		diagram.Logger().Warn("eps: font not available, using Helvetica", "font", name)
		name = "Helvetica"
	}
	e.w.Printf("/%s-latin1 ff %s scf sf\n", name, export.Num(height))
}

func isStandard(name string) bool {
	for _, n := range standardFonts {
		if n == name {
			return true
		}
	}
	return false
}

// setColor emits a color change only when c differs from the current one.
func (e *Exporter) setColor(c render.Color) {
	if e.color != nil && *e.color == c {
		return
	}
	e.color = &c
	e.w.Printf("%s %s %s srgb\n", export.Num(c.R), export.Num(c.G), export.Num(c.B))
}

func (e *Exporter) pt(p geom.Point) string {
	return export.Num(p.X) + " " + export.Num(p.Y)
}

func (e *Exporter) DrawLine(start, end geom.Point, c render.Color) {
	e.setColor(c)
	e.w.Printf("n %s m %s l s\n", e.pt(start), e.pt(end))
}

func (e *Exporter) poly(points []geom.Point, c render.Color, op string) {
	if len(points) == 0 {
		return
	}
	e.setColor(c)
	e.w.Printf("n %s m ", e.pt(points[0]))
	for _, p := range points[1:] {
		e.w.Printf("%s l ", e.pt(p))
	}
	e.w.Printf("%s\n", op)
}

func (e *Exporter) DrawPolyline(points []geom.Point, c render.Color) {
	e.poly(points, c, "s")
}

func (e *Exporter) DrawPolygon(points []geom.Point, c render.Color) {
	e.poly(points, c, "cp s")
}

func (e *Exporter) FillPolygon(points []geom.Point, c render.Color) {
	e.poly(points, c, "ef")
}

func (e *Exporter) DrawRect(ul, lr geom.Point, c render.Color) {
	e.DrawPolygon(render.RectPoints(ul, lr), c)
}

func (e *Exporter) FillRect(ul, lr geom.Point, c render.Color) {
	e.FillPolygon(render.RectPoints(ul, lr), c)
}

// arc emits an ellipse call. The y axis is flipped, so a counter-clockwise
// angle a on screen is 360-a in user space.
func (e *Exporter) arc(center geom.Point, width, height, angle1, angle2 float64, c render.Color, filled bool) {
	for angle2 < angle1 {
		angle2 += 360
	}
	e.setColor(c)
	e.w.WriteString("n ")
	if filled {
		e.w.Printf("%s m ", e.pt(center))
	}
	op := "s"
	if filled {
		op = "f"
	}
	e.w.Printf("%s %s %s %s %s ellipse %s\n", e.pt(center),
		export.Num(width/2), export.Num(height/2),
		export.Num(360-angle2), export.Num(360-angle1), op)
}

func (e *Exporter) DrawArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	e.arc(center, width, height, angle1, angle2, c, false)
}

func (e *Exporter) FillArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	e.arc(center, width, height, angle1, angle2, c, true)
}

func (e *Exporter) DrawEllipse(center geom.Point, width, height float64, c render.Color) {
	e.setColor(c)
	e.w.Printf("n %s %s %s 0 360 ellipse cp s\n", e.pt(center), export.Num(width/2), export.Num(height/2))
}

func (e *Exporter) FillEllipse(center geom.Point, width, height float64, c render.Color) {
	e.setColor(c)
	e.w.Printf("n %s %s %s 0 360 ellipse f\n", e.pt(center), export.Num(width/2), export.Num(height/2))
}

func (e *Exporter) bezier(points []render.BezPoint, c render.Color, op string) {
	if len(points) == 0 {
		return
	}
	points = render.CleanBezier(points)
	if points[0].Type != render.BezMoveTo {
		diagram.Logger().Warn("eps: bezier does not start with a move, using first point")
	}
	e.setColor(c)
	e.w.Printf("n %s m", e.pt(points[0].End()))
	for _, p := range points[1:] {
		switch p.Type {
		case render.BezMoveTo:
			e.w.Printf(" %s m", e.pt(p.P1))
		case render.BezLineTo:
			e.w.Printf(" %s l", e.pt(p.P1))
		case render.BezCurveTo:
			e.w.Printf(" %s %s %s c", e.pt(p.P1), e.pt(p.P2), e.pt(p.P3))
		}
	}
	e.w.Printf(" %s\n", op)
}

func (e *Exporter) DrawBezier(points []render.BezPoint, c render.Color) {
	e.bezier(points, c, "s")
}

func (e *Exporter) FillBezier(points []render.BezPoint, c render.Color) {
	e.bezier(points, c, "ef")
}

func (e *Exporter) DrawString(text string, pos geom.Point, align render.Alignment, c render.Color) {
	if text == "" {
		return
	}
	e.setColor(c)
	e.w.Printf("(%s) ", e.escape(text))
	switch align {
	case render.AlignCenter:
		e.w.Printf("dup sw 2 div %s ex sub %s m\n", export.Num(pos.X), export.Num(pos.Y))
	case render.AlignRight:
		e.w.Printf("dup sw %s ex sub %s m\n", export.Num(pos.X), export.Num(pos.Y))
	default:
		e.w.Printf("%s m\n", e.pt(pos))
	}
	e.w.WriteString(" gs 1 -1 sc sh gr\n")
}

// escape converts s to Latin-1 and escapes it for a PostScript string.
// Characters outside Latin-1 become '?'.
func (e *Exporter) escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		ch, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			ch = '?'
		}
		switch {
		case ch == '(' || ch == ')' || ch == '\\':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case ch < 0x20 || ch >= 0x7f:
			fmt.Fprintf(&b, "\\%03o", ch)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// DrawImage writes img as hex RGB data. Transparent pixels are blended
// onto white.
func (e *Exporter) DrawImage(pos geom.Point, width, height float64, img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	iw, ih := b.Dx(), b.Dy()
	if iw == 0 || ih == 0 {
		return
	}
	e.w.WriteString("gs\n")
	e.w.Printf("/pix %d string def\n", iw*3)
	e.w.Printf("%d %d 8\n", iw, ih)
	e.w.Printf("%s tr\n", e.pt(pos))
	e.w.Printf("%s %s sc\n", export.Num(width), export.Num(height))
	e.w.Printf("[%d 0 0 %d 0 0]\n", iw, ih)
	e.w.WriteString("{currentfile pix readhexstring pop}\nfalse 3 colorimage\n\n")

	var line strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y++ {
		line.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			fmt.Fprintf(&line, "%02x%02x%02x", onWhite(r, a), onWhite(g, a), onWhite(bl, a))
		}
		line.WriteByte('\n')
		e.w.WriteString(line.String())
	}
	e.w.WriteString("gr\n\n")
}

// onWhite composites a premultiplied 16-bit channel over white.
func onWhite(c, a uint32) uint8 {
	return uint8((c + (0xffff - a)) >> 8)
}

func psCap(c render.LineCaps) int {
	switch c {
	case render.CapsRound:
		return 1
	case render.CapsProjecting:
		return 2
	}
	return 0
}

func psJoin(j render.LineJoin) int {
	switch j {
	case render.JoinRound:
		return 1
	case render.JoinBevel:
		return 2
	}
	return 0
}

var _ export.Exporter = (*Exporter)(nil)
