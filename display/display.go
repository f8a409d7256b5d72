// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
	"github.com/gogpu/diagram/surface"
)

// Zoom limits in pixels per diagram unit.
const (
	MinZoom    = 0.2
	NormalZoom = 20.0
	MaxZoom    = 2000.0
)

var (
	// ErrNilDiagram is returned by New without a diagram.
	ErrNilDiagram = errors.New("display: nil diagram")

	// ErrNilRenderer is returned by New without a renderer.
	ErrNilRenderer = errors.New("display: nil renderer")

	// ErrNilSurface is returned by New without a surface.
	ErrNilSurface = errors.New("display: nil surface")

	// ErrClosed is returned by operations on a closed display.
	ErrClosed = errors.New("display: closed")
)

// Display is one view of a diagram.
//
// Display is NOT safe for concurrent use. Drive it from the goroutine that
// mutates the diagram.
type Display struct {
	diagram  *diagram.Diagram
	renderer render.Interactive
	surface  surface.Surface

	origin geom.Point
	vp     geom.Viewport
	tf     geom.Transform

	policy       MergePolicy
	updateAreas  []geom.Rectangle
	displayAreas []geom.PixelRect

	grid          bool
	gridSpacing   float64
	boundingBoxes bool
	background    *render.Color

	hrange, vrange Range
	closed         bool
}

// New attaches a display to d. The renderer buffer is sized to the surface
// and the whole view is marked dirty, so the first Flush paints everything.
func New(d *diagram.Diagram, r render.Interactive, s surface.Surface, opts ...Option) (*Display, error) {
	switch {
	case d == nil:
		return nil, ErrNilDiagram
	case r == nil:
		return nil, ErrNilRenderer
	case s == nil:
		return nil, ErrNilSurface
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	disp := &Display{
		diagram:       d,
		renderer:      r,
		surface:       s,
		policy:        o.policy,
		grid:          o.grid,
		gridSpacing:   o.gridSpacing,
		boundingBoxes: o.boundingBoxes,
		background:    o.background,
	}
	disp.tf = geom.NewTransform(&disp.vp)
	disp.vp.Zoom = clampZoom(o.zoom)
	disp.vp.Width, disp.vp.Height = s.Width(), s.Height()
	if err := r.SetSize(disp.vp.Width, disp.vp.Height); err != nil {
		return nil, fmt.Errorf("display: size renderer: %w", err)
	}
	r.SetTransform(disp.tf)

	switch ext := d.Extents(); {
	case o.origin != nil:
		disp.origin = *o.origin
	case !ext.IsEmpty():
		disp.origin = ext.Min()
	}
	disp.setOrigin(disp.origin.X, disp.origin.Y)

	d.AddListener(disp)
	disp.AddAll()
	diagram.Logger().Debug("display: opened",
		"diagram", d.Name(), "width", disp.vp.Width, "height", disp.vp.Height, "zoom", disp.vp.Zoom)
	return disp, nil
}

// Diagram returns the diagram shown.
func (d *Display) Diagram() *diagram.Diagram { return d.diagram }

// Renderer returns the interactive renderer owned by the display.
func (d *Display) Renderer() render.Interactive { return d.renderer }

// Surface returns the surface the display paints.
func (d *Display) Surface() surface.Surface { return d.surface }

// Transform returns the diagram-to-pixel mapping. It follows later
// zoom, scroll and resize operations.
func (d *Display) Transform() geom.Transform { return d.tf }

// Visible returns the diagram rectangle currently shown.
func (d *Display) Visible() geom.Rectangle { return d.vp.Visible }

// Origin returns the diagram point at the top-left pixel.
func (d *Display) Origin() geom.Point { return d.origin }

// ZoomFactor returns the zoom in pixels per diagram unit.
func (d *Display) ZoomFactor() float64 { return d.vp.Zoom }

// Size returns the pixel size of the display.
func (d *Display) Size() (width, height int) { return d.vp.Width, d.vp.Height }

// Closed reports whether Close has been called.
func (d *Display) Closed() bool { return d.closed }

// NotifyDamage implements diagram.Listener.
func (d *Display) NotifyDamage(r geom.Rectangle) {
	d.AddUpdate(r)
}

// NotifySelectionDamage implements diagram.HandleListener. r is grown by
// half a handle plus a pixel so handles centred on its corners repaint.
func (d *Display) NotifySelectionDamage(r geom.Rectangle) {
	d.AddUpdateWithBorder(r, handleSize/2+1)
}

// NotifyExtentsChanged implements diagram.Listener. It refreshes the
// scroll ranges.
func (d *Display) NotifyExtentsChanged() {
	d.updateScrollRanges()
}

// Refresh implements diagram.Viewer.
func (d *Display) Refresh() {
	d.Flush()
}

// Close detaches the display from its diagram and releases the renderer.
// Closing the last display of a diagram destroys the diagram. Close is
// idempotent.
func (d *Display) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.clearDamage()
	left := d.diagram.RemoveListener(d)
	diagram.Logger().Debug("display: closed", "diagram", d.diagram.Name(), "remaining", left)
	if c, ok := d.renderer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (d *Display) backgroundColor() render.Color {
	if d.background != nil {
		return *d.background
	}
	return d.diagram.Background()
}

var (
	_ diagram.Viewer         = (*Display)(nil)
	_ diagram.HandleListener = (*Display)(nil)
)
