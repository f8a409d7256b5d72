// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"math"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// handleSize is the edge length, in pixels, of a selection handle.
const handleSize = 7

var (
	gridColor         = render.RGB(0.85, 0.85, 0.85)
	handleColor       = render.RGB(0, 1, 0)
	handleBorderColor = render.Black
)

// FlushStats summarizes the work done by one Flush.
type FlushStats struct {
	// Rendered is 1 when the document was re-rendered, 0 otherwise.
	Rendered int

	// Objects is the number of objects drawn during the re-render.
	Objects int

	// Blitted is the number of pixel rectangles copied to the surface.
	Blitted int
}

// Flush re-renders the damaged part of the view into the renderer buffer
// and copies each dirty pixel rectangle to the surface. Without pending
// damage it does nothing.
func (d *Display) Flush() FlushStats {
	var stats FlushStats
	if d.closed || !d.Pending() {
		return stats
	}
	if err := d.tf.Validate(); err != nil {
		diagram.Logger().Warn("display: dropping damage", "error", err)
		d.clearDamage()
		return stats
	}

	if len(d.updateAreas) > 0 {
		d.renderer.ClipRegionClear()
		for _, px := range d.displayAreas {
			d.renderer.ClipRegionAddRect(px)
		}

		update := geom.EmptyRect
		for _, r := range d.updateAreas {
			update = update.Union(r)
		}
		d.updateAreas = d.updateAreas[:0]

		stats.Objects = d.renderPixmap(update.Grow(0.1))
		stats.Rendered = 1
	}

	for _, px := range d.displayAreas {
		diagram.Logger().Debug("display: DispUpdt",
			"left", px.Left, "top", px.Top, "right", px.Right, "bottom", px.Bottom)
		if err := d.renderer.Paint(d.surface, px); err != nil {
			diagram.Logger().Error("display: paint failed", "area", px.String(), "error", err)
			continue
		}
		stats.Blitted++
	}
	d.displayAreas = d.displayAreas[:0]

	if err := d.surface.Flush(); err != nil {
		diagram.Logger().Error("display: surface flush failed", "error", err)
	}
	return stats
}

// renderPixmap redraws update into the renderer buffer: background, grid,
// the intersecting objects of visible layers, then selection handles. It
// returns the number of objects drawn.
func (d *Display) renderPixmap(update geom.Rectangle) int {
	r := d.renderer
	r.BeginRender(&update)
	defer r.EndRender()

	bg := d.backgroundColor()
	for _, px := range d.displayAreas {
		r.FillPixelRect(px.Left, px.Top, px.Width(), px.Height(), bg)
	}

	if d.grid {
		d.drawGrid(update)
	}

	n := d.diagram.Render(r, &update, diagram.ShowBoundingBoxes(d.boundingBoxes))

	for _, obj := range d.diagram.Selected() {
		if d.diagram.IsVisible(obj) {
			d.drawHandles(obj.BoundingBox())
		}
	}
	return n
}

// drawHandles draws a handle on every corner of bb.
func (d *Display) drawHandles(bb geom.Rectangle) {
	if bb.IsEmpty() {
		return
	}
	corners := [...]geom.Point{
		bb.Min(),
		geom.Pt(bb.Right, bb.Top),
		bb.Max(),
		geom.Pt(bb.Left, bb.Bottom),
	}
	for _, c := range corners {
		x, y := d.tf.ToPixel(c)
		x -= handleSize / 2
		y -= handleSize / 2
		d.renderer.FillPixelRect(x, y, handleSize, handleSize, handleColor)
		d.renderer.DrawPixelRect(x, y, handleSize-1, handleSize-1, handleBorderColor)
	}
}

// gridStep returns the distance between grid lines in diagram units.
func (d *Display) gridStep() float64 {
	if d.gridSpacing > 0 {
		return d.gridSpacing
	}
	return math.Pow(10, math.Ceil(math.Log10(d.tf.UnscaleLength(1)*5)))
}

// drawGrid draws the grid lines crossing update. Lines closer than two
// pixels apart are not drawn.
func (d *Display) drawGrid(update geom.Rectangle) {
	step := d.gridStep()
	if d.tf.ScaleLength(step) < 2 {
		return
	}
	d.renderer.SetLineWidth(0)
	d.renderer.SetLineStyle(render.LineSolid)

	_, top := d.tf.ToPixel(update.Min())
	_, bottom := d.tf.ToPixel(update.Max())
	for pos := math.Ceil(update.Left/step) * step; pos <= update.Right; pos += step {
		x, _ := d.tf.ToPixel(geom.Pt(pos, 0))
		d.renderer.DrawPixelLine(x, top, x, bottom, gridColor)
	}

	left, _ := d.tf.ToPixel(update.Min())
	right, _ := d.tf.ToPixel(update.Max())
	for pos := math.Ceil(update.Top/step) * step; pos <= update.Bottom; pos += step {
		_, y := d.tf.ToPixel(geom.Pt(0, pos))
		d.renderer.DrawPixelLine(left, y, right, y, gridColor)
	}
}
