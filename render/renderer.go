// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/surface"
)

// ErrNotRendering is reported when a backend is used outside a
// BeginRender/EndRender bracket.
var ErrNotRendering = errors.New("render: not between BeginRender and EndRender")

// ErrAlreadyRendering is reported by BeginRender on a renderer that is
// already rendering.
var ErrAlreadyRendering = errors.New("render: BeginRender while rendering")

// Renderer draws diagram primitives.
//
// All coordinates and lengths are in diagram space; the backend applies
// its own mapping into pixels, points or user units. Every primitive takes
// its color explicitly. Attribute setters affect the primitives that follow
// them until the next EndRender.
//
// A Renderer is a state machine: idle until BeginRender, rendering until
// EndRender. Backends log a warning when the bracket is misused.
//
// Renderers are NOT safe for concurrent use.
//
// Example:
//
//	r.BeginRender(nil)
//	r.SetLineWidth(0.1)
//	r.DrawLine(geom.Pt(0, 0), geom.Pt(5, 5), render.Black)
//	r.EndRender()
type Renderer interface {
	// BeginRender starts a frame. clip, when non-nil, is the diagram
	// region the caller intends to draw; backends may use it to skip work.
	BeginRender(clip *geom.Rectangle)

	// EndRender finishes the frame. Exporters write their trailer here.
	EndRender()

	// SetLineWidth sets the stroke width. Zero means the thinnest line the
	// backend can draw.
	SetLineWidth(width float64)
	SetLineCaps(caps LineCaps)
	SetLineJoin(join LineJoin)
	SetLineStyle(style LineStyle)

	// SetDashLength sets the dash length used by non-solid line styles.
	SetDashLength(length float64)

	// SetFillStyle selects the fill pattern. Backends that cannot draw a
	// style log a warning and fill solid.
	SetFillStyle(style FillStyle)

	// SetFont sets the font and its height in diagram units.
	SetFont(f font.Font, height float64)

	DrawLine(start, end geom.Point, c Color)
	DrawPolyline(points []geom.Point, c Color)
	DrawPolygon(points []geom.Point, c Color)
	FillPolygon(points []geom.Point, c Color)
	DrawRect(ul, lr geom.Point, c Color)
	FillRect(ul, lr geom.Point, c Color)

	// DrawArc strokes part of the ellipse centered at center. Angles are in
	// degrees, counter-clockwise positive, 0 pointing along +X.
	DrawArc(center geom.Point, width, height, angle1, angle2 float64, c Color)
	FillArc(center geom.Point, width, height, angle1, angle2 float64, c Color)
	DrawEllipse(center geom.Point, width, height float64, c Color)
	FillEllipse(center geom.Point, width, height float64, c Color)

	// DrawBezier strokes a path whose first element is a BezMoveTo.
	DrawBezier(points []BezPoint, c Color)

	// FillBezier fills a path, closing it implicitly.
	FillBezier(points []BezPoint, c Color)

	// DrawString draws one line of text with its baseline at pos.
	DrawString(text string, pos geom.Point, align Alignment, c Color)

	// DrawImage draws img into the rectangle with top-left pos.
	DrawImage(pos geom.Point, width, height float64, img image.Image)
}

// Interactive is implemented by renderers that back an on-screen display.
// They keep an off-screen pixel buffer, a clip region made of pixel
// rectangles and can copy the buffer onto a visible surface.
type Interactive interface {
	Renderer

	// SetSize resizes the off-screen buffer. Its content is undefined
	// afterwards.
	SetSize(width, height int) error

	// SetTransform sets the diagram-to-pixel mapping used by the
	// diagram-space primitives.
	SetTransform(t geom.Transform)

	// ClipRegionClear empties the clip region. An empty region clips
	// nothing.
	ClipRegionClear()

	// ClipRegionAddRect adds a pixel rectangle to the clip region.
	ClipRegionAddRect(r geom.PixelRect)

	// Pixel primitives are untransformed and used for handles and
	// rubber bands drawn over the document content.
	DrawPixelLine(x1, y1, x2, y2 int, c Color)
	DrawPixelRect(x, y, width, height int, c Color)
	FillPixelRect(x, y, width, height int, c Color)

	// Paint copies area of the buffer, masked by the clip region, onto dst
	// at the same position.
	Paint(dst surface.Surface, area geom.PixelRect) error
}

// State tracks the BeginRender/EndRender bracket. Backends embed it.
// Misuse is logged and the first one is latched, wrapping ErrNotRendering
// or ErrAlreadyRendering, for Err to report.
type State struct {
	rendering bool
	err       error
}

// Begin enters the rendering state. It logs and returns false if the
// renderer is already rendering.
func (s *State) Begin(backend string) bool {
	if s.rendering {
		logger().Warn("render: BeginRender while rendering", "backend", backend)
		s.latch(fmt.Errorf("%s: BeginRender: %w", backend, ErrAlreadyRendering))
		return false
	}
	s.rendering = true
	return true
}

// End leaves the rendering state. It logs and returns false if the
// renderer was idle.
func (s *State) End(backend string) bool {
	if !s.rendering {
		logger().Warn("render: EndRender while idle", "backend", backend)
		s.latch(fmt.Errorf("%s: EndRender: %w", backend, ErrNotRendering))
		return false
	}
	s.rendering = false
	return true
}

// Rendering reports whether the renderer is between BeginRender and
// EndRender.
func (s *State) Rendering() bool {
	return s.rendering
}

// Err returns the first bracket misuse, or nil.
func (s *State) Err() error {
	return s.err
}

func (s *State) latch(err error) {
	if s.err == nil {
		s.err = err
	}
}
