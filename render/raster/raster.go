// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"errors"
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
	"github.com/gogpu/diagram/surface"
)

// ErrInvalidSize is returned by SetSize for non-positive dimensions.
var ErrInvalidSize = errors.New("raster: invalid buffer size")

// backendName identifies this backend in log messages.
const backendName = "raster"

// Renderer is the gg-backed interactive renderer.
//
// Renderer is NOT safe for concurrent use.
type Renderer struct {
	render.State

	dc *gg.Context
	tf geom.Transform

	lineWidth  float64
	caps       render.LineCaps
	join       render.LineJoin
	style      render.LineStyle
	dashLength float64
	fillStyle  render.FillStyle

	font       font.Font
	fontHeight float64
	faces      *faceCache
	metrics    *font.Metrics

	clip []geom.PixelRect
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMetrics sets the metrics used to align text. It should be the same
// metrics the diagram objects measure their bounding boxes with.
func WithMetrics(m *font.Metrics) Option {
	return func(r *Renderer) {
		if m != nil {
			r.metrics = m
		}
	}
}

// New returns a renderer with a 1x1 buffer. Call SetSize before drawing.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		dc:         gg.NewContext(1, 1),
		dashLength: 1,
		font:       font.Default,
		fontHeight: 0.8,
		faces:      newFaceCache(),
		metrics:    font.DefaultMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close releases the buffer and cached fonts.
func (r *Renderer) Close() error {
	r.faces.close()
	return r.dc.Close()
}

// Width returns the buffer width.
func (r *Renderer) Width() int { return r.dc.Width() }

// Height returns the buffer height.
func (r *Renderer) Height() int { return r.dc.Height() }

// SetSize resizes the buffer. The clip region is cleared.
func (r *Renderer) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	if err := r.dc.Resize(width, height); err != nil {
		return err
	}
	r.clip = r.clip[:0]
	return nil
}

// SetTransform sets the diagram-to-pixel mapping.
func (r *Renderer) SetTransform(t geom.Transform) { r.tf = t }

// Image returns a view of the buffer. It is invalidated by SetSize.
func (r *Renderer) Image() *image.RGBA {
	pm := r.dc.ResizeTarget()
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: 4 * pm.Width(),
		Rect:   image.Rect(0, 0, pm.Width(), pm.Height()),
	}
}

// ClipRegionClear removes every clip rectangle.
func (r *Renderer) ClipRegionClear() {
	r.clip = r.clip[:0]
	r.dc.ResetClip()
}

// ClipRegionAddRect grows the clip region by rect.
func (r *Renderer) ClipRegionAddRect(rect geom.PixelRect) {
	if rect.IsEmpty() {
		return
	}
	r.clip = append(r.clip, rect)
	r.applyClip()
}

// applyClip installs the union of the clip rectangles as the gg clip path.
// The software rasterizer does not consult it yet, so Paint also masks by
// the rectangles.
func (r *Renderer) applyClip() {
	r.dc.ResetClip()
	if len(r.clip) == 0 {
		return
	}
	r.dc.ClearPath()
	for _, c := range r.clip {
		x0, y0 := float64(c.Left), float64(c.Top)
		x1, y1 := float64(c.Right), float64(c.Bottom)
		r.dc.MoveTo(x0, y0)
		r.dc.LineTo(x1, y0)
		r.dc.LineTo(x1, y1)
		r.dc.LineTo(x0, y1)
		r.dc.ClosePath()
	}
	r.dc.Clip()
}

// BeginRender starts a frame. The clip argument is not used: the pixel
// clip region already restricts drawing.
func (r *Renderer) BeginRender(*geom.Rectangle) {
	r.Begin(backendName)
	r.lineWidth = 0
	r.caps = render.CapsButt
	r.join = render.JoinMiter
	r.style = render.LineSolid
	r.fillStyle = render.FillSolid
}

// EndRender finishes the frame.
func (r *Renderer) EndRender() {
	r.End(backendName)
	r.dc.ClearPath()
}

func (r *Renderer) SetLineWidth(width float64) { r.lineWidth = width }
func (r *Renderer) SetLineCaps(caps render.LineCaps) { r.caps = caps }
func (r *Renderer) SetLineJoin(join render.LineJoin) { r.join = join }
func (r *Renderer) SetLineStyle(style render.LineStyle) { r.style = style }

func (r *Renderer) SetDashLength(length float64) {
	r.dashLength = max(length, render.MinDashLength)
}

func (r *Renderer) SetFillStyle(style render.FillStyle) {
	if style != render.FillSolid {
		render.Logger().Warn("raster: unsupported fill style, filling solid", "style", int(style))
	}
	r.fillStyle = style
}

func (r *Renderer) SetFont(f font.Font, height float64) {
	r.font = f
	r.fontHeight = height
}

// px maps a diagram point to unrounded pixel coordinates.
func (r *Renderer) px(p geom.Point) (float64, float64) {
	return r.tf.ToPixelF(p)
}

// stroke applies the line attributes and strokes the current path.
func (r *Renderer) stroke(c render.Color) {
	w := r.tf.ScaleLength(r.lineWidth)
	if w < 1 {
		w = 1
	}
	r.dc.SetLineWidth(w)
	r.dc.SetLineCap(lineCap(r.caps))
	r.dc.SetLineJoin(lineJoin(r.join))
	if pat := render.DashPattern(r.style, r.dashLength); pat != nil {
		for i := range pat {
			pat[i] = max(r.tf.ScaleLength(pat[i]), 1)
		}
		r.dc.SetDash(pat...)
	} else {
		r.dc.ClearDash()
	}
	r.dc.SetColor(c.NRGBA())
	if err := r.dc.Stroke(); err != nil {
		render.Logger().Warn("raster: stroke failed", "error", err)
	}
}

func (r *Renderer) fill(c render.Color) {
	r.dc.SetColor(c.NRGBA())
	if err := r.dc.Fill(); err != nil {
		render.Logger().Warn("raster: fill failed", "error", err)
	}
}

func (r *Renderer) polyPath(points []geom.Point, closed bool) bool {
	if len(points) < 2 {
		return false
	}
	r.dc.ClearPath()
	r.dc.MoveTo(r.px(points[0]))
	for _, p := range points[1:] {
		r.dc.LineTo(r.px(p))
	}
	if closed {
		r.dc.ClosePath()
	}
	return true
}

func (r *Renderer) bezierPath(points []render.BezPoint, closed bool) bool {
	if len(points) == 0 {
		return false
	}
	points = render.CleanBezier(points)
	if points[0].Type != render.BezMoveTo {
		render.Logger().Warn("raster: first BezPoint must be a BezMoveTo")
	}
	r.dc.ClearPath()
	for i, bp := range points {
		switch {
		case i == 0 || bp.Type == render.BezMoveTo:
			r.dc.MoveTo(r.px(bp.P1))
		case bp.Type == render.BezLineTo:
			r.dc.LineTo(r.px(bp.P1))
		case bp.Type == render.BezCurveTo:
			x1, y1 := r.px(bp.P1)
			x2, y2 := r.px(bp.P2)
			x3, y3 := r.px(bp.P3)
			r.dc.CubicTo(x1, y1, x2, y2, x3, y3)
		}
	}
	if closed {
		r.dc.ClosePath()
	}
	return true
}

func (r *Renderer) DrawLine(start, end geom.Point, c render.Color) {
	if r.polyPath([]geom.Point{start, end}, false) {
		r.stroke(c)
	}
}

func (r *Renderer) DrawPolyline(points []geom.Point, c render.Color) {
	if r.polyPath(points, false) {
		r.stroke(c)
	}
}

func (r *Renderer) DrawPolygon(points []geom.Point, c render.Color) {
	if r.polyPath(points, true) {
		r.stroke(c)
	}
}

func (r *Renderer) FillPolygon(points []geom.Point, c render.Color) {
	if r.polyPath(points, true) {
		r.fill(c)
	}
}

func (r *Renderer) DrawRect(ul, lr geom.Point, c render.Color) {
	r.DrawPolygon(render.RectPoints(ul, lr), c)
}

func (r *Renderer) FillRect(ul, lr geom.Point, c render.Color) {
	r.FillPolygon(render.RectPoints(ul, lr), c)
}

func (r *Renderer) DrawArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	if r.bezierPath(render.ArcBeziers(center, width, height, angle1, angle2), false) {
		r.stroke(c)
	}
}

func (r *Renderer) FillArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	if r.bezierPath(render.PieBeziers(center, width, height, angle1, angle2), true) {
		r.fill(c)
	}
}

func (r *Renderer) DrawEllipse(center geom.Point, width, height float64, c render.Color) {
	if r.bezierPath(render.EllipseBeziers(center, width, height), true) {
		r.stroke(c)
	}
}

func (r *Renderer) FillEllipse(center geom.Point, width, height float64, c render.Color) {
	if r.bezierPath(render.EllipseBeziers(center, width, height), true) {
		r.fill(c)
	}
}

func (r *Renderer) DrawBezier(points []render.BezPoint, c render.Color) {
	if r.bezierPath(points, false) {
		r.stroke(c)
	}
}

func (r *Renderer) FillBezier(points []render.BezPoint, c render.Color) {
	if r.bezierPath(points, true) {
		r.fill(c)
	}
}

// DrawString draws text with its baseline at pos. Alignment uses the
// advance width from font.Metrics.
func (r *Renderer) DrawString(s string, pos geom.Point, align render.Alignment, c render.Color) {
	if s == "" {
		return
	}
	size := r.tf.ScaleLength(r.fontHeight)
	if size < 1 {
		return
	}
	face, err := r.faces.face(r.font, size)
	if err != nil {
		render.Logger().Warn("raster: no face for text", "font", r.font.String(), "error", err)
		return
	}
	x, y := r.px(pos)
	w := r.tf.ScaleLength(r.metrics.StringWidth(s, r.fontHeight))
	switch align {
	case render.AlignCenter:
		x -= w / 2
	case render.AlignRight:
		x -= w
	}
	r.dc.SetFont(face)
	r.dc.SetColor(c.NRGBA())
	r.dc.DrawString(s, x, y)
}

// DrawImage scales img into the rectangle at pos.
func (r *Renderer) DrawImage(pos geom.Point, width, height float64, img image.Image) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	x, y := r.px(pos)
	w, h := r.tf.ScaleLength(width), r.tf.ScaleLength(height)
	if w < 1 || h < 1 {
		return
	}
	r.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
	})
}

// DrawPixelLine draws a one pixel wide line through pixel centers.
func (r *Renderer) DrawPixelLine(x1, y1, x2, y2 int, c render.Color) {
	r.dc.ClearPath()
	r.dc.MoveTo(float64(x1)+0.5, float64(y1)+0.5)
	r.dc.LineTo(float64(x2)+0.5, float64(y2)+0.5)
	r.pixelStroke(c)
}

// DrawPixelRect outlines the pixels x..x+width, y..y+height.
func (r *Renderer) DrawPixelRect(x, y, width, height int, c render.Color) {
	x0, y0 := float64(x)+0.5, float64(y)+0.5
	x1, y1 := x0+float64(width), y0+float64(height)
	r.dc.ClearPath()
	r.dc.MoveTo(x0, y0)
	r.dc.LineTo(x1, y0)
	r.dc.LineTo(x1, y1)
	r.dc.LineTo(x0, y1)
	r.dc.ClosePath()
	r.pixelStroke(c)
}

// FillPixelRect fills the pixels x..x+width-1, y..y+height-1.
func (r *Renderer) FillPixelRect(x, y, width, height int, c render.Color) {
	if width <= 0 || height <= 0 {
		return
	}
	x0, y0 := float64(x), float64(y)
	x1, y1 := x0+float64(width), y0+float64(height)
	r.dc.ClearPath()
	r.dc.MoveTo(x0, y0)
	r.dc.LineTo(x1, y0)
	r.dc.LineTo(x1, y1)
	r.dc.LineTo(x0, y1)
	r.dc.ClosePath()
	r.fill(c)
}

func (r *Renderer) pixelStroke(c render.Color) {
	r.dc.SetLineWidth(1)
	r.dc.SetLineCap(gg.LineCapSquare)
	r.dc.SetLineJoin(gg.LineJoinMiter)
	r.dc.ClearDash()
	r.dc.SetColor(c.NRGBA())
	if err := r.dc.Stroke(); err != nil {
		render.Logger().Warn("raster: stroke failed", "error", err)
	}
}

// Paint copies area of the buffer onto dst, restricted to the clip region
// when one is set.
func (r *Renderer) Paint(dst surface.Surface, area geom.PixelRect) error {
	if dst == nil {
		return errors.New("raster: nil surface")
	}
	area = area.Intersect(geom.PixelRect{Right: r.dc.Width(), Bottom: r.dc.Height()})
	if area.IsEmpty() {
		return nil
	}
	src := r.Image()
	if len(r.clip) == 0 {
		dst.Blit(src, area.Image())
		return nil
	}
	for _, c := range r.clip {
		if a := area.Intersect(c); !a.IsEmpty() {
			dst.Blit(src, a.Image())
		}
	}
	return nil
}

func lineCap(c render.LineCaps) gg.LineCap {
	switch c {
	case render.CapsRound:
		return gg.LineCapRound
	case render.CapsProjecting:
		return gg.LineCapSquare
	default:
		return gg.LineCapButt
	}
}

func lineJoin(j render.LineJoin) gg.LineJoin {
	switch j {
	case render.JoinRound:
		return gg.LineJoinRound
	case render.JoinBevel:
		return gg.LineJoinBevel
	default:
		return gg.LineJoinMiter
	}
}

var _ render.Interactive = (*Renderer)(nil)
