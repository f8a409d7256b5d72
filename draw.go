// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package diagram

import (
	"context"
	"fmt"

	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// boundingBoxColor is used for the debug outline of object bounds.
var boundingBoxColor = render.Color{R: 1, G: 0, B: 1, A: 1}

// RenderOption configures Render.
type RenderOption func(*renderOptions)

type renderOptions struct {
	boundingBoxes bool
}

// ShowBoundingBoxes outlines each drawn object's bounding box.
func ShowBoundingBoxes(show bool) RenderOption {
	return func(o *renderOptions) {
		o.boundingBoxes = show
	}
}

// Render draws, in z-order, every object of a visible layer whose bounding
// box intersects clip, or all of them when clip is nil. It returns the
// number of objects drawn. The caller brackets the call with
// BeginRender/EndRender.
//
// An object that panics while drawing is logged and skipped; the rest of
// the diagram is still drawn.
//
// Render panics if r is nil.
func (d *Diagram) Render(r render.Renderer, clip *geom.Rectangle, opts ...RenderOption) int {
	n, _ := d.RenderContext(context.Background(), r, clip, opts...)
	return n
}

// RenderContext is Render with ctx checked before each object. It returns
// ctx.Err() if the context ends before every object is drawn.
func (d *Diagram) RenderContext(ctx context.Context, r render.Renderer, clip *geom.Rectangle, opts ...RenderOption) (int, error) {
	if r == nil {
		panic("diagram: Render called with nil renderer")
	}
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}

	drawn := 0
	for _, l := range d.layers {
		if !l.visible {
			continue
		}
		for i, obj := range l.objects {
			if err := ctx.Err(); err != nil {
				return drawn, err
			}
			bb := obj.BoundingBox()
			if clip != nil && !bb.Intersects(*clip) {
				continue
			}
			if err := drawObject(r, obj); err != nil {
				Logger().Error("diagram: object failed to draw", "layer", l.name, "index", i, "error", err)
				continue
			}
			drawn++
			if o.boundingBoxes {
				r.SetLineWidth(0)
				r.SetLineStyle(render.LineSolid)
				r.DrawRect(bb.Min(), bb.Max(), boundingBoxColor)
			}
		}
	}
	return drawn, nil
}

func drawObject(r render.Renderer, obj Object) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%T: panic: %v", obj, v)
		}
	}()
	obj.Draw(r)
	return nil
}
