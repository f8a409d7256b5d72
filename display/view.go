// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"fmt"
	"math"

	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/surface"
)

// Range describes one scroll axis in diagram units.
type Range struct {
	Lower, Upper  float64
	Page          float64
	Value         float64
	StepIncrement float64
	PageIncrement float64
}

func clampZoom(z float64) float64 {
	switch {
	case math.IsNaN(z) || z < MinZoom:
		return MinZoom
	case z > MaxZoom:
		return MaxZoom
	}
	return z
}

// setOrigin moves the top-left corner and recomputes the visible rectangle
// from the zoom and pixel size. It does not damage anything.
func (d *Display) setOrigin(x, y float64) {
	d.origin = geom.Pt(x, y)
	d.vp.Zoom = clampZoom(d.vp.Zoom)
	d.vp.Visible = geom.Rectangle{
		Left:   x,
		Top:    y,
		Right:  x + d.tf.UnscaleLength(float64(d.vp.Width)),
		Bottom: y + d.tf.UnscaleLength(float64(d.vp.Height)),
	}
	d.updateScrollRanges()
}

// SetOrigin shows the diagram point (x, y) at the top-left pixel and
// repaints the view.
func (d *Display) SetOrigin(x, y float64) {
	d.setOrigin(x, y)
	d.AddAll()
}

// SetZoom sets the zoom factor, keeping the origin. The value saturates at
// MinZoom and MaxZoom. The whole view is repainted.
func (d *Display) SetZoom(zoom float64) {
	d.vp.Zoom = clampZoom(zoom)
	d.setOrigin(d.origin.X, d.origin.Y)
	d.AddAll()
}

// Zoom scales the view by magnify and centers it on p. Zooming further out
// at MinZoom, or further in at MaxZoom, does nothing.
func (d *Display) Zoom(p geom.Point, magnify float64) {
	if d.atLimit(magnify) {
		return
	}
	old := d.vp.Zoom
	d.vp.Zoom = clampZoom(old * magnify)
	magnify = d.vp.Zoom / old

	w := d.vp.Visible.Width() / magnify
	h := d.vp.Visible.Height() / magnify
	d.setOrigin(p.X-w/2, p.Y-h/2)
	d.AddAll()
}

// ZoomMiddle zooms around the middle of the visible area.
func (d *Display) ZoomMiddle(magnify float64) {
	d.Zoom(d.vp.Visible.Center(), magnify)
}

// ZoomCentered zooms while keeping p at the same pixel, as a mouse wheel
// zoom does.
func (d *Display) ZoomCentered(p geom.Point, magnify float64) {
	if d.atLimit(magnify) {
		return
	}
	vis := d.vp.Visible
	rx := (p.X - vis.Left) / vis.Width()
	ry := (p.Y - vis.Top) / vis.Height()

	old := d.vp.Zoom
	d.vp.Zoom = clampZoom(old * magnify)
	magnify = d.vp.Zoom / old

	w := vis.Width() / magnify
	h := vis.Height() / magnify
	d.setOrigin(p.X-w*rx, p.Y-h*ry)
	d.AddAll()
}

func (d *Display) atLimit(magnify float64) bool {
	return (d.vp.Zoom <= MinZoom && magnify <= 1) || (d.vp.Zoom >= MaxZoom && magnify >= 1)
}

// Scroll moves the origin by delta. The new origin is kept within one
// extents-size margin around the union of the extents and the visible
// area. It reports whether the view moved.
func (d *Display) Scroll(delta geom.Point) bool {
	vis := d.vp.Visible
	w, h := vis.Width(), vis.Height()

	ext := d.diagram.Extents()
	mx, my := ext.Width(), ext.Height()
	if ext.IsEmpty() {
		mx, my = w, h
	}
	ext = ext.Union(vis)

	next := d.origin.Add(delta)
	if next.X < ext.Left-mx {
		next.X = ext.Left - mx
	}
	if next.X+w > ext.Right+mx {
		next.X = ext.Right - w + mx
	}
	if next.Y < ext.Top-my {
		next.Y = ext.Top - my
	}
	if next.Y+h > ext.Bottom+my {
		next.Y = ext.Bottom - h + my
	}

	if next == d.origin {
		return false
	}
	d.setOrigin(next.X, next.Y)
	d.AddAll()
	return true
}

// ScrollUp scrolls up by a quarter of the visible height.
func (d *Display) ScrollUp() bool {
	return d.Scroll(geom.Pt(0, -d.vp.Visible.Height()/4))
}

// ScrollDown scrolls down by a quarter of the visible height.
func (d *Display) ScrollDown() bool {
	return d.Scroll(geom.Pt(0, d.vp.Visible.Height()/4))
}

// ScrollLeft scrolls left by a quarter of the visible width.
func (d *Display) ScrollLeft() bool {
	return d.Scroll(geom.Pt(-d.vp.Visible.Width()/4, 0))
}

// ScrollRight scrolls right by a quarter of the visible width.
func (d *Display) ScrollRight() bool {
	return d.Scroll(geom.Pt(d.vp.Visible.Width()/4, 0))
}

// ScrollCenterPoint scrolls so that p is in the middle of the view.
func (d *Display) ScrollCenterPoint(p geom.Point) bool {
	return d.Scroll(p.Sub(d.vp.Visible.Center()))
}

// Resize changes the pixel size of the display. The renderer buffer, and
// the surface when it is resizable, follow. The whole view is repainted.
func (d *Display) Resize(width, height int) error {
	if d.closed {
		return ErrClosed
	}
	if err := d.renderer.SetSize(width, height); err != nil {
		return fmt.Errorf("display: resize renderer: %w", err)
	}
	if rs, ok := d.surface.(surface.ResizableSurface); ok {
		if err := rs.Resize(width, height); err != nil {
			return fmt.Errorf("display: resize surface: %w", err)
		}
	}
	d.vp.Width, d.vp.Height = width, height
	d.setOrigin(d.origin.X, d.origin.Y)
	d.AddAll()
	return nil
}

// ScrollRange returns the horizontal and vertical scroll ranges, spanning
// the union of the diagram extents and the visible area.
func (d *Display) ScrollRange() (h, v Range) {
	return d.hrange, d.vrange
}

func (d *Display) updateScrollRanges() {
	vis := d.vp.Visible
	ext := d.diagram.Extents().Union(vis)
	d.hrange = Range{
		Lower:         ext.Left,
		Upper:         ext.Right,
		Page:          vis.Width(),
		Value:         vis.Left,
		StepIncrement: vis.Width() / 10,
		PageIncrement: vis.Width() / 2,
	}
	d.vrange = Range{
		Lower:         ext.Top,
		Upper:         ext.Bottom,
		Page:          vis.Height(),
		Value:         vis.Top,
		StepIncrement: vis.Height() / 10,
		PageIncrement: vis.Height() / 2,
	}
}
