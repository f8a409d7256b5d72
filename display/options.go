// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// Option configures a Display.
type Option func(*options)

type options struct {
	zoom          float64
	origin        *geom.Point
	policy        MergePolicy
	grid          bool
	gridSpacing   float64
	boundingBoxes bool
	background    *render.Color
}

func defaultOptions() options {
	return options{
		zoom:   NormalZoom,
		policy: MergeSingle,
	}
}

// WithZoom sets the initial zoom in pixels per diagram unit. It is clamped
// to [MinZoom, MaxZoom].
func WithZoom(zoom float64) Option {
	return func(o *options) {
		o.zoom = zoom
	}
}

// WithOrigin sets the diagram point shown at the top-left pixel. The
// default is the top-left corner of the diagram extents.
func WithOrigin(x, y float64) Option {
	return func(o *options) {
		p := geom.Pt(x, y)
		o.origin = &p
	}
}

// WithMergePolicy selects how damage rectangles are merged.
func WithMergePolicy(p MergePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithGrid draws a grid with the given spacing in diagram units under the
// objects. A spacing of zero or less picks a power of ten that suits the
// zoom level.
func WithGrid(spacing float64) Option {
	return func(o *options) {
		o.grid = true
		o.gridSpacing = spacing
	}
}

// WithBoundingBoxes outlines the bounding box of every drawn object.
func WithBoundingBoxes(show bool) Option {
	return func(o *options) {
		o.boundingBoxes = show
	}
}

// WithBackground overrides the diagram background color for this display.
func WithBackground(c render.Color) Option {
	return func(o *options) {
		o.background = &c
	}
}
