// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"slices"

	"github.com/gogpu/diagram/geom"
)

// MergePolicy decides how pending damage rectangles are combined.
type MergePolicy struct {
	limit int
}

// MergeSingle collapses all damage into one bounding rectangle.
var MergeSingle = MergePolicy{limit: 1}

// MergeBounded keeps up to n rectangles, merging overlapping ones. When the
// list would grow past n it collapses into a single union. n < 1 behaves
// like MergeSingle.
func MergeBounded(n int) MergePolicy {
	return MergePolicy{limit: max(n, 1)}
}

// Limit returns the maximum number of rectangles kept per damage list.
func (p MergePolicy) Limit() int {
	return max(p.limit, 1)
}

func (p MergePolicy) single() bool {
	return p.Limit() == 1
}

// merge adds r to list. Rectangles overlapping r are absorbed into it;
// exceeding the limit collapses the list to one rectangle.
func merge[R any](list []R, r R, limit int, overlaps func(a, b R) bool, union func(a, b R) R) []R {
	for i := 0; i < len(list); {
		if overlaps(list[i], r) {
			r = union(list[i], r)
			list = slices.Delete(list, i, i+1)
			i = 0
			continue
		}
		i++
	}
	list = append(list, r)
	if len(list) > limit {
		all := list[0]
		for _, x := range list[1:] {
			all = union(all, x)
		}
		list = append(list[:0], all)
	}
	return list
}

func mergeRect(list []geom.Rectangle, r geom.Rectangle, limit int) []geom.Rectangle {
	return merge(list, r, limit, geom.Rectangle.Intersects, geom.Rectangle.Union)
}

func mergePixels(list []geom.PixelRect, r geom.PixelRect, limit int) []geom.PixelRect {
	return merge(list, r, limit, geom.PixelRect.Overlaps, geom.PixelRect.Union)
}

// AddUpdate marks r, in diagram coordinates, as needing a repaint. Damage
// outside the visible rectangle is ignored.
func (d *Display) AddUpdate(r geom.Rectangle) {
	if d.closed || !r.Intersects(d.vp.Visible) {
		return
	}

	var pending geom.Rectangle
	if d.policy.single() && len(d.updateAreas) > 0 {
		pending = d.updateAreas[0].Union(r).Intersect(d.vp.Visible)
		d.updateAreas[0] = pending
	} else {
		pending = r.Intersect(d.vp.Visible)
		d.updateAreas = mergeRect(d.updateAreas, pending, d.policy.Limit())
	}

	px := d.tf.CoveringPixels(pending).Intersect(d.bounds())
	if px.IsEmpty() {
		return
	}
	d.displayAreas = mergePixels(d.displayAreas, px, d.policy.Limit())
}

// AddUpdatePixels damages a box of pw by ph pixels centered at p.
func (d *Display) AddUpdatePixels(p geom.Point, pw, ph int) {
	sx := d.tf.UnscaleLength(float64(pw + 1))
	sy := d.tf.UnscaleLength(float64(ph + 1))
	d.AddUpdate(geom.Rectangle{
		Left:   p.X - sx/2,
		Top:    p.Y - sy/2,
		Right:  p.X + sx/2,
		Bottom: p.Y + sy/2,
	})
}

// AddUpdateWithBorder damages r grown by border pixels on every side.
func (d *Display) AddUpdateWithBorder(r geom.Rectangle, border int) {
	d.AddUpdate(r.Grow(d.tf.UnscaleLength(float64(border + 1))))
}

// AddAll discards pending damage and marks the whole visible area dirty.
func (d *Display) AddAll() {
	d.updateAreas = d.updateAreas[:0]
	d.displayAreas = d.displayAreas[:0]
	d.AddUpdate(d.vp.Visible)
}

// UpdateAreas returns the pending diagram-space damage.
func (d *Display) UpdateAreas() []geom.Rectangle {
	return slices.Clone(d.updateAreas)
}

// DisplayAreas returns the pending pixel damage.
func (d *Display) DisplayAreas() []geom.PixelRect {
	return slices.Clone(d.displayAreas)
}

// Pending reports whether a Flush would do any work.
func (d *Display) Pending() bool {
	return len(d.updateAreas) > 0 || len(d.displayAreas) > 0
}

func (d *Display) clearDamage() {
	d.updateAreas = d.updateAreas[:0]
	d.displayAreas = d.displayAreas[:0]
}

func (d *Display) bounds() geom.PixelRect {
	return geom.PixelRect{Right: d.vp.Width, Bottom: d.vp.Height}
}
