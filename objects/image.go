// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"image"

	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// Image shows a bitmap scaled into a rectangle. Without pixel data it
// draws a crossed-out frame instead.
type Image struct {
	Base
	Pos           geom.Point
	Width, Height float64
	Img           image.Image

	// Source is where Img was loaded from, if anywhere.
	Source string

	// Border draws a frame around the image in Style.
	Border bool
	Style  Style
}

// NewImage returns an image object whose top-left corner is at pos.
func NewImage(img image.Image, pos geom.Point, width, height float64) *Image {
	return &Image{
		Base:   newBase(),
		Pos:    pos,
		Width:  width,
		Height: height,
		Img:    img,
		Style:  DefaultStyle(),
	}
}

func (o *Image) rect() geom.Rectangle {
	return geom.Rect(o.Pos.X, o.Pos.Y, o.Pos.X+o.Width, o.Pos.Y+o.Height)
}

func (o *Image) BoundingBox() geom.Rectangle {
	r := o.rect()
	if o.Border || o.Img == nil {
		r = r.Grow(o.Style.pad())
	}
	return r
}

func (o *Image) Move(dx, dy float64) {
	o.Pos = o.Pos.Add(geom.Pt(dx, dy))
}

func (o *Image) Draw(r render.Renderer) {
	rect := o.rect()
	if o.Img == nil {
		o.Style.apply(r)
		r.DrawRect(rect.Min(), rect.Max(), o.Style.LineColor)
		r.DrawLine(rect.Min(), rect.Max(), o.Style.LineColor)
		r.DrawLine(geom.Pt(rect.Right, rect.Top), geom.Pt(rect.Left, rect.Bottom), o.Style.LineColor)
		return
	}
	r.DrawImage(o.Pos, o.Width, o.Height, o.Img)
	if o.Border {
		o.Style.apply(r)
		r.DrawRect(rect.Min(), rect.Max(), o.Style.LineColor)
	}
}
