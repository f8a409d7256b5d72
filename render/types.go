// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/diagram/geom"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black = Color{R: 0, G: 0, B: 0, A: 1}
	White = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGB returns an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("render: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("render: invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// NRGBA converts c to an 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

// Hex formats c as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func to8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// LineCaps is the shape drawn at the ends of open lines.
type LineCaps uint8

const (
	CapsButt LineCaps = iota
	CapsRound
	CapsProjecting
)

// LineJoin is the shape drawn where two segments meet.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// LineStyle is the dash pattern family of stroked lines.
type LineStyle uint8

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDashDot
	LineDashDotDot
	LineDotted
)

var lineStyleNames = [...]string{
	LineSolid:      "solid",
	LineDashed:     "dashed",
	LineDashDot:    "dash-dot",
	LineDashDotDot: "dash-dot-dot",
	LineDotted:     "dotted",
}

func (s LineStyle) String() string {
	if int(s) < len(lineStyleNames) {
		return lineStyleNames[s]
	}
	return fmt.Sprintf("LineStyle(%d)", s)
}

// ParseLineStyle is the inverse of LineStyle.String.
func ParseLineStyle(s string) (LineStyle, error) {
	for i, n := range lineStyleNames {
		if n == s {
			return LineStyle(i), nil
		}
	}
	return LineSolid, fmt.Errorf("render: unknown line style %q", s)
}

// FillStyle selects how closed shapes are filled. Only FillSolid is
// supported by every backend.
type FillStyle uint8

const (
	FillSolid FillStyle = iota
	FillHatched
)

// Alignment positions text horizontally relative to its anchor point.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// BezPointType tags one element of a bezier point list.
type BezPointType uint8

const (
	BezMoveTo BezPointType = iota
	BezLineTo
	BezCurveTo
)

// BezPoint is one element of a bezier path. MoveTo and LineTo use P1 only;
// CurveTo uses P1 and P2 as control points and P3 as the end point.
type BezPoint struct {
	Type       BezPointType
	P1, P2, P3 geom.Point
}

// End returns the point the element finishes at.
func (b BezPoint) End() geom.Point {
	if b.Type == BezCurveTo {
		return b.P3
	}
	return b.P1
}

// MoveTo, LineTo and CurveTo build BezPoints.
func MoveTo(p geom.Point) BezPoint { return BezPoint{Type: BezMoveTo, P1: p} }

func LineTo(p geom.Point) BezPoint { return BezPoint{Type: BezLineTo, P1: p} }

func CurveTo(c1, c2, end geom.Point) BezPoint {
	return BezPoint{Type: BezCurveTo, P1: c1, P2: c2, P3: end}
}
