// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package diagram

import (
	"errors"
	"slices"

	"github.com/gogpu/diagram/geom"
)

// DefaultLayerName names the layer every new diagram starts with.
const DefaultLayerName = "Background"

var (
	// ErrUnknownLayer is returned for layers the diagram does not hold.
	ErrUnknownLayer = errors.New("diagram: layer not in diagram")

	// ErrLastLayer is returned by RemoveLayer for the only layer left.
	ErrLastLayer = errors.New("diagram: cannot remove the only layer")
)

// Layer is a named group of objects. Layers stack bottom first and each
// keeps its own z-order. Objects in a hidden layer are not rendered.
type Layer struct {
	name    string
	visible bool
	objects []Object
}

func newLayer(name string) *Layer {
	return &Layer{name: name, visible: true}
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// SetName renames the layer.
func (l *Layer) SetName(name string) { l.name = name }

// Visible reports whether the layer is rendered.
func (l *Layer) Visible() bool { return l.visible }

// Len returns the number of objects in the layer.
func (l *Layer) Len() int { return len(l.objects) }

// Objects returns the layer's objects in z-order, bottom first. The slice
// is a copy.
func (l *Layer) Objects() []Object { return slices.Clone(l.objects) }

// Extents returns the union of the layer's bounding boxes.
func (l *Layer) Extents() geom.Rectangle {
	r := geom.EmptyRect
	for _, o := range l.objects {
		r = r.Union(o.BoundingBox())
	}
	return r
}

func (l *Layer) index(o Object) int {
	return slices.Index(l.objects, o)
}

// Layers returns the layers bottom first. The slice is a copy.
func (d *Diagram) Layers() []*Layer {
	return slices.Clone(d.layers)
}

// ActiveLayer returns the layer Add and AddAt insert into.
func (d *Diagram) ActiveLayer() *Layer { return d.active }

// SetActiveLayer makes l the target of Add and AddAt.
func (d *Diagram) SetActiveLayer(l *Layer) error {
	if d.layerIndex(l) < 0 {
		return ErrUnknownLayer
	}
	d.active = l
	return nil
}

// LayerOf returns the layer holding o, or nil.
func (d *Diagram) LayerOf(o Object) *Layer {
	l, _ := d.locate(o)
	return l
}

// IsVisible reports whether o is held by a visible layer.
func (d *Diagram) IsVisible(o Object) bool {
	l := d.LayerOf(o)
	return l != nil && l.visible
}

// AddLayer puts a new empty layer on top of the stack.
func (d *Diagram) AddLayer(name string) *Layer {
	return d.AddLayerAt(len(d.layers), name)
}

// AddLayerAt inserts a new empty layer at stack position i. i is clamped
// to [0, len(Layers())].
func (d *Diagram) AddLayerAt(i int, name string) *Layer {
	l := newLayer(name)
	i = max(0, min(i, len(d.layers)))
	d.layers = slices.Insert(d.layers, i, l)
	return l
}

// RemoveLayer deletes l together with its objects. The only layer cannot
// be removed. If l was active the bottom layer becomes active.
func (d *Diagram) RemoveLayer(l *Layer) error {
	i := d.layerIndex(l)
	switch {
	case i < 0:
		return ErrUnknownLayer
	case len(d.layers) == 1:
		return ErrLastLayer
	}
	d.layers = slices.Delete(d.layers, i, i+1)
	for _, o := range l.objects {
		delete(d.selected, o)
	}
	if d.active == l {
		d.active = d.layers[0]
	}
	if l.visible {
		d.AddSelectionUpdate(l.Extents())
	}
	d.changed()
	return nil
}

// RaiseLayer swaps l with the layer above it. The top layer stays put.
func (d *Diagram) RaiseLayer(l *Layer) error {
	i := d.layerIndex(l)
	if i < 0 {
		return ErrUnknownLayer
	}
	if i < len(d.layers)-1 {
		d.swapLayers(i, i+1)
	}
	return nil
}

// LowerLayer swaps l with the layer below it. The bottom layer stays put.
func (d *Diagram) LowerLayer(l *Layer) error {
	i := d.layerIndex(l)
	if i < 0 {
		return ErrUnknownLayer
	}
	if i > 0 {
		d.swapLayers(i-1, i)
	}
	return nil
}

func (d *Diagram) swapLayers(i, j int) {
	a, b := d.layers[i], d.layers[j]
	d.layers[i], d.layers[j] = b, a
	if a.visible && b.visible {
		d.AddSelectionUpdate(a.Extents().Intersect(b.Extents()))
	}
}

// SetLayerVisible shows or hides l and damages what it covers.
func (d *Diagram) SetLayerVisible(l *Layer, visible bool) error {
	if d.layerIndex(l) < 0 {
		return ErrUnknownLayer
	}
	if l.visible == visible {
		return nil
	}
	l.visible = visible
	d.AddSelectionUpdate(l.Extents())
	return nil
}

func (d *Diagram) layerIndex(l *Layer) int {
	if l == nil {
		return -1
	}
	return slices.Index(d.layers, l)
}

// locate returns the layer holding o and o's position in it.
func (d *Diagram) locate(o Object) (*Layer, int) {
	for _, l := range d.layers {
		if i := l.index(o); i >= 0 {
			return l, i
		}
	}
	return nil, -1
}
