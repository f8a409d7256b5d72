// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package diagram

import (
	"errors"
	"slices"

	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// Object is an element of a diagram. It draws itself through the
// primitives of a render.Renderer and reports the diagram-space rectangle
// it may paint.
type Object interface {
	BoundingBox() geom.Rectangle
	Draw(r render.Renderer)
}

// Movable is implemented by objects that can be translated.
type Movable interface {
	Object
	Move(dx, dy float64)
}

// Listener is notified of changes to a diagram. Displays implement it.
type Listener interface {
	// NotifyDamage reports a diagram-space rectangle whose pixels are
	// stale.
	NotifyDamage(r geom.Rectangle)

	// NotifyExtentsChanged reports that Extents changed. It carries no
	// damage.
	NotifyExtentsChanged()
}

// HandleListener is a Listener that draws selection handles. Handles
// extend past the bounding box, so damage touching a selected object is
// reported through NotifySelectionDamage and the listener grows it by the
// handle size. Listeners without the method get NotifyDamage instead.
type HandleListener interface {
	Listener
	NotifySelectionDamage(r geom.Rectangle)
}

// Viewer is a Listener that can repaint on request.
type Viewer interface {
	Listener

	// AddAll marks everything the viewer shows as damaged.
	AddAll()

	// Refresh repaints pending damage.
	Refresh()
}

var (
	// ErrNotMovable is returned by Move for objects without a Move method.
	ErrNotMovable = errors.New("diagram: object cannot be moved")

	// ErrNotInDiagram is returned for objects the diagram does not hold.
	ErrNotInDiagram = errors.New("diagram: object not in diagram")
)

// Option configures a Diagram.
type Option func(*Diagram)

// WithBackground sets the background color displays fill with.
func WithBackground(c render.Color) Option {
	return func(d *Diagram) {
		d.background = c
	}
}

// Diagram is the document model: a stack of layers holding ordered
// objects, a selection and the extents covering every object.
type Diagram struct {
	name       string
	background render.Color

	layers   []*Layer
	active   *Layer
	selected map[Object]struct{}

	extents      geom.Rectangle
	extentsDirty bool

	listeners []Listener
	onDestroy []func(*Diagram)
	destroyed bool
}

// New returns an empty diagram.
func New(name string, opts ...Option) *Diagram {
	d := &Diagram{
		name:       name,
		background: render.White,
		selected:   make(map[Object]struct{}),
		extents:    geom.EmptyRect,
	}
	d.resetLayers()
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Diagram) resetLayers() {
	d.active = newLayer(DefaultLayerName)
	d.layers = []*Layer{d.active}
}

// Name returns the diagram name.
func (d *Diagram) Name() string { return d.name }

// SetName renames the diagram.
func (d *Diagram) SetName(name string) { d.name = name }

// Background returns the background color.
func (d *Diagram) Background() render.Color { return d.background }

// SetBackground changes the background color and damages every listener.
func (d *Diagram) SetBackground(c render.Color) {
	if d.background == c {
		return
	}
	d.background = c
	d.AddUpdateAll()
}

// Len returns the number of objects in every layer.
func (d *Diagram) Len() int {
	n := 0
	for _, l := range d.layers {
		n += len(l.objects)
	}
	return n
}

// Objects returns the objects of every layer in z-order, bottom first. The
// slice is a copy.
func (d *Diagram) Objects() []Object {
	out := make([]Object, 0, d.Len())
	for _, l := range d.layers {
		out = append(out, l.objects...)
	}
	return out
}

// Index returns the z-position of o across all layers, or -1.
func (d *Diagram) Index(o Object) int {
	base := 0
	for _, l := range d.layers {
		if i := l.index(o); i >= 0 {
			return base + i
		}
		base += len(l.objects)
	}
	return -1
}

// Add appends objects on top of the active layer.
func (d *Diagram) Add(objs ...Object) {
	for _, o := range objs {
		d.active.objects = append(d.active.objects, o)
		d.damage(d.active, o.BoundingBox())
	}
	d.changed()
}

// AddAt inserts o at z-position i of the active layer. i is clamped to
// [0, ActiveLayer().Len()].
func (d *Diagram) AddAt(i int, o Object) {
	l := d.active
	i = max(0, min(i, len(l.objects)))
	l.objects = slices.Insert(l.objects, i, o)
	d.damage(l, o.BoundingBox())
	d.changed()
}

// AddToLayer appends objects on top of l.
func (d *Diagram) AddToLayer(l *Layer, objs ...Object) error {
	if d.layerIndex(l) < 0 {
		return ErrUnknownLayer
	}
	for _, o := range objs {
		l.objects = append(l.objects, o)
		d.damage(l, o.BoundingBox())
	}
	d.changed()
	return nil
}

// Remove deletes o from the diagram and the selection.
func (d *Diagram) Remove(o Object) error {
	l, i := d.locate(o)
	if l == nil {
		return ErrNotInDiagram
	}
	d.damageObject(l, o, o.BoundingBox())
	l.objects = slices.Delete(l.objects, i, i+1)
	delete(d.selected, o)
	d.changed()
	return nil
}

// Move translates o and damages its old and new area.
func (d *Diagram) Move(o Object, dx, dy float64) error {
	m, ok := o.(Movable)
	if !ok {
		return ErrNotMovable
	}
	return d.Update(o, func() { m.Move(dx, dy) })
}

// Update runs mutate, which changes o in place, and damages the union of
// the bounding boxes before and after. Use it for moves and restyles.
func (d *Diagram) Update(o Object, mutate func()) error {
	l, _ := d.locate(o)
	if l == nil {
		return ErrNotInDiagram
	}
	before := o.BoundingBox()
	mutate()
	d.damageObject(l, o, before.Union(o.BoundingBox()))
	d.changed()
	return nil
}

// Raise moves o to the top of its layer.
func (d *Diagram) Raise(o Object) error {
	l, i := d.locate(o)
	if l == nil {
		return ErrNotInDiagram
	}
	l.objects = append(slices.Delete(l.objects, i, i+1), o)
	d.damageObject(l, o, o.BoundingBox())
	return nil
}

// Lower moves o to the bottom of its layer.
func (d *Diagram) Lower(o Object) error {
	l, i := d.locate(o)
	if l == nil {
		return ErrNotInDiagram
	}
	l.objects = slices.Insert(slices.Delete(l.objects, i, i+1), 0, o)
	d.damageObject(l, o, o.BoundingBox())
	return nil
}

// Select adds o to the selection.
func (d *Diagram) Select(o Object) error {
	l, _ := d.locate(o)
	if l == nil {
		return ErrNotInDiagram
	}
	if _, ok := d.selected[o]; ok {
		return nil
	}
	d.selected[o] = struct{}{}
	d.damageObject(l, o, o.BoundingBox())
	return nil
}

// Unselect removes o from the selection.
func (d *Diagram) Unselect(o Object) {
	if _, ok := d.selected[o]; !ok {
		return
	}
	l, _ := d.locate(o)
	d.damageObject(l, o, o.BoundingBox())
	delete(d.selected, o)
}

// ClearSelection empties the selection.
func (d *Diagram) ClearSelection() {
	for _, o := range d.Selected() {
		d.Unselect(o)
	}
}

// IsSelected reports whether o is selected.
func (d *Diagram) IsSelected(o Object) bool {
	_, ok := d.selected[o]
	return ok
}

// Selected returns the selected objects in z-order.
func (d *Diagram) Selected() []Object {
	out := make([]Object, 0, len(d.selected))
	for _, l := range d.layers {
		for _, o := range l.objects {
			if _, ok := d.selected[o]; ok {
				out = append(out, o)
			}
		}
	}
	return out
}

// Extents returns the union of every object's bounding box, or
// geom.EmptyRect for an empty diagram.
func (d *Diagram) Extents() geom.Rectangle {
	if d.extentsDirty {
		d.extents = d.computeExtents()
		d.extentsDirty = false
	}
	return d.extents
}

func (d *Diagram) computeExtents() geom.Rectangle {
	r := geom.EmptyRect
	for _, l := range d.layers {
		r = r.Union(l.Extents())
	}
	return r
}

// UpdateExtents recomputes the extents and notifies every listener if they
// changed. It reports whether they changed.
func (d *Diagram) UpdateExtents() bool {
	next := d.computeExtents()
	d.extentsDirty = false
	if next == d.extents {
		return false
	}
	d.extents = next
	for _, l := range d.listeners {
		l.NotifyExtentsChanged()
	}
	return true
}

func (d *Diagram) changed() {
	d.extentsDirty = true
	d.UpdateExtents()
}

// AddListener attaches l. Attaching the same listener twice is a no-op.
func (d *Diagram) AddListener(l Listener) {
	if slices.Contains(d.listeners, l) {
		return
	}
	d.listeners = append(d.listeners, l)
}

// RemoveListener detaches l. When the last listener is removed the diagram
// is destroyed. It returns the number of listeners left.
func (d *Diagram) RemoveListener(l Listener) int {
	i := slices.Index(d.listeners, l)
	if i < 0 {
		return len(d.listeners)
	}
	d.listeners = slices.Delete(d.listeners, i, i+1)
	if len(d.listeners) == 0 {
		d.Destroy()
	}
	return len(d.listeners)
}

// Listeners returns the attached listeners.
func (d *Diagram) Listeners() []Listener {
	return slices.Clone(d.listeners)
}

// OnDestroy registers fn to run when the diagram is destroyed.
func (d *Diagram) OnDestroy(fn func(*Diagram)) {
	d.onDestroy = append(d.onDestroy, fn)
}

// Destroy releases the diagram. Hooks registered with OnDestroy run once.
func (d *Diagram) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	Logger().Info("diagram: destroyed", "name", d.name)
	hooks := d.onDestroy
	d.onDestroy = nil
	for _, fn := range hooks {
		fn(d)
	}
	d.listeners = nil
	d.resetLayers()
	clear(d.selected)
	d.extents = geom.EmptyRect
}

// Destroyed reports whether Destroy has run.
func (d *Diagram) Destroyed() bool { return d.destroyed }

// AddUpdate broadcasts r as damage to every listener.
func (d *Diagram) AddUpdate(r geom.Rectangle) {
	if r.IsEmpty() {
		return
	}
	for _, l := range d.listeners {
		l.NotifyDamage(r)
	}
}

// AddSelectionUpdate broadcasts r as damage that may include selection
// handles. HandleListeners receive NotifySelectionDamage, the others
// NotifyDamage.
func (d *Diagram) AddSelectionUpdate(r geom.Rectangle) {
	if r.IsEmpty() {
		return
	}
	for _, l := range d.listeners {
		if h, ok := l.(HandleListener); ok {
			h.NotifySelectionDamage(r)
		} else {
			l.NotifyDamage(r)
		}
	}
}

// damage reports r, covered by an object of l, unless l is hidden.
func (d *Diagram) damage(l *Layer, r geom.Rectangle) {
	if l.visible {
		d.AddUpdate(r)
	}
}

// damageObject reports r, covered by o in l. A selected object's handles
// are included.
func (d *Diagram) damageObject(l *Layer, o Object, r geom.Rectangle) {
	switch {
	case l == nil || !l.visible:
	case d.IsSelected(o):
		d.AddSelectionUpdate(r)
	default:
		d.AddUpdate(r)
	}
}

// AddUpdateAll damages everything every viewer shows.
func (d *Diagram) AddUpdateAll() {
	for _, l := range d.listeners {
		if v, ok := l.(Viewer); ok {
			v.AddAll()
		}
	}
}

// Flush repaints pending damage on every viewer.
func (d *Diagram) Flush() {
	for _, l := range d.listeners {
		if v, ok := l.(Viewer); ok {
			v.Refresh()
		}
	}
}
