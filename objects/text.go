// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package objects

import (
	"strings"

	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// DefaultFontHeight is the text height of new text objects, in
// centimetres.
const DefaultFontHeight = 0.8

// Text is one or more lines of text. Pos is the baseline anchor of the
// first line; Align decides whether it is the left end, the middle or the
// right end of each line. Lines are spaced by Height.
type Text struct {
	Base
	Text   string
	Pos    geom.Point
	Font   font.Font
	Height float64
	Align  render.Alignment
	Color  render.Color

	metrics *font.Metrics
}

// NewText returns black text in the default font.
func NewText(text string, pos geom.Point, align render.Alignment) *Text {
	return &Text{
		Base:   newBase(),
		Text:   text,
		Pos:    pos,
		Font:   font.Default,
		Height: DefaultFontHeight,
		Align:  align,
		Color:  render.Black,
	}
}

// SetMetrics sets the metrics used to measure the bounding box. It should
// match the metrics of the renderers the text is drawn with.
func (t *Text) SetMetrics(m *font.Metrics) { t.metrics = m }

func (t *Text) measure() *font.Metrics {
	if t.metrics == nil {
		return font.DefaultMetrics()
	}
	return t.metrics
}

// Lines returns the text split at newlines.
func (t *Text) Lines() []string {
	return strings.Split(t.Text, "\n")
}

func (t *Text) BoundingBox() geom.Rectangle {
	m := t.measure()
	lines := t.Lines()
	var width float64
	for _, line := range lines {
		width = max(width, m.StringWidth(line, t.Height))
	}

	left := t.Pos.X
	switch t.Align {
	case render.AlignCenter:
		left -= width / 2
	case render.AlignRight:
		left -= width
	}
	top := t.Pos.Y - m.Ascent(t.Height)
	bottom := t.Pos.Y + float64(len(lines)-1)*t.Height + m.Descent(t.Height)
	return geom.Rect(left, top, left+width, bottom)
}

func (t *Text) Move(dx, dy float64) {
	t.Pos = t.Pos.Add(geom.Pt(dx, dy))
}

func (t *Text) Draw(r render.Renderer) {
	r.SetFont(t.Font, t.Height)
	p := t.Pos
	for _, line := range t.Lines() {
		r.DrawString(line, p, t.Align, t.Color)
		p.Y += t.Height
	}
}
