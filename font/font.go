// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package font describes the fonts used by diagram text and measures strings
// in diagram units.
//
// A Font is only a descriptor (family, style, weight). Backends map it to
// whatever their output format understands: the raster backend loads a face
// through gg/text, the EPS and PDF exporters use the PostScript name from
// PSName. Measurement is done by Metrics, which shapes text with
// go-text/typesetting so alignment and text bounding boxes agree across
// backends.
package font

import (
	"fmt"
	"strings"
)

// Style is the slant of a font.
type Style uint8

const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

func (s Style) String() string {
	switch s {
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	default:
		return "normal"
	}
}

// Weight is the boldness of a font, CSS scale.
type Weight uint16

const (
	WeightLight  Weight = 300
	WeightNormal Weight = 400
	WeightMedium Weight = 500
	WeightBold   Weight = 700
)

// Family names understood by PSName. Any other family is passed through.
const (
	FamilySans      = "sans"
	FamilySerif     = "serif"
	FamilyMonospace = "monospace"
)

// Font is a font descriptor.
type Font struct {
	Family string
	Style  Style
	Weight Weight
}

// Default is the font used when an object does not set one.
var Default = Font{Family: FamilySans, Style: StyleNormal, Weight: WeightNormal}

// New returns a Font, substituting defaults for zero fields.
func New(family string, style Style, weight Weight) Font {
	if family == "" {
		family = FamilySans
	}
	if weight == 0 {
		weight = WeightNormal
	}
	return Font{Family: family, Style: style, Weight: weight}
}

// Bold reports whether the font should be rendered with a bold face.
func (f Font) Bold() bool {
	return f.Weight >= WeightMedium+100
}

// PSName returns the name of the standard PostScript font closest to f.
func (f Font) PSName() string {
	slanted := f.Style != StyleNormal
	switch strings.ToLower(f.Family) {
	case FamilySerif, "times", "times new roman":
		switch {
		case f.Bold() && slanted:
			return "Times-BoldItalic"
		case f.Bold():
			return "Times-Bold"
		case slanted:
			return "Times-Italic"
		}
		return "Times-Roman"
	case FamilyMonospace, "courier", "courier new":
		return "Courier" + psSuffix(f.Bold(), slanted, "Oblique")
	case FamilySans, "helvetica", "arial", "":
		return "Helvetica" + psSuffix(f.Bold(), slanted, "Oblique")
	}
	return strings.ReplaceAll(f.Family, " ", "")
}

func psSuffix(bold, slanted bool, slant string) string {
	switch {
	case bold && slanted:
		return "-Bold" + slant
	case bold:
		return "-Bold"
	case slanted:
		return "-" + slant
	}
	return ""
}

func (f Font) String() string {
	return fmt.Sprintf("%s %s %d", f.Family, f.Style, f.Weight)
}
