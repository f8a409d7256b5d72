// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package docfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// File is the top-level YAML document. Objects fill the default layer;
// Layers are stacked above it.
type File struct {
	Name       string       `yaml:"name,omitempty"`
	Background *Color       `yaml:"background,omitempty"`
	Objects    []Entry      `yaml:"objects,omitempty"`
	Layers     []LayerEntry `yaml:"layers,omitempty"`
	Active     string       `yaml:"active_layer,omitempty"`
}

// LayerEntry describes one layer and its objects, bottom first.
type LayerEntry struct {
	Name    string  `yaml:"name"`
	Hidden  bool    `yaml:"hidden,omitempty"`
	Objects []Entry `yaml:"objects,omitempty"`
}

// Entry describes one object. Kind selects which of the other fields are
// read.
type Entry struct {
	Kind string `yaml:"kind"`
	ID   string `yaml:"id,omitempty"`

	Rect   *Rect   `yaml:"rect,omitempty"`
	Points []Point `yaml:"points,omitempty"`
	Path   []Seg   `yaml:"path,omitempty"`
	Closed bool    `yaml:"closed,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	Angle1 float64 `yaml:"angle1,omitempty"`
	Angle2 float64 `yaml:"angle2,omitempty"`

	Text   string     `yaml:"text,omitempty"`
	Pos    *Point     `yaml:"pos,omitempty"`
	Font   *FontSpec  `yaml:"font,omitempty"`
	Height float64    `yaml:"height,omitempty"`
	Align  *Alignment `yaml:"align,omitempty"`
	Color  *Color     `yaml:"color,omitempty"`

	File   string  `yaml:"file,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Border bool    `yaml:"border,omitempty"`

	LineWidth  *float64   `yaml:"line_width,omitempty"`
	LineColor  *Color     `yaml:"line_color,omitempty"`
	LineStyle  *LineStyle `yaml:"line_style,omitempty"`
	DashLength float64    `yaml:"dash_length,omitempty"`
	Caps       string     `yaml:"caps,omitempty"`
	Join       string     `yaml:"join,omitempty"`
	Fill       *Color     `yaml:"fill,omitempty"`
}

// Point is written as a two element flow sequence: [x, y].
type Point [2]float64

func pointOf(p geom.Point) Point { return Point{p.X, p.Y} }

func (p Point) pt() geom.Point { return geom.Pt(p[0], p[1]) }

func (p Point) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range p {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: num(v)})
	}
	return n, nil
}

// Rect is written as [left, top, right, bottom].
type Rect [4]float64

func rectOf(r geom.Rectangle) *Rect { return &Rect{r.Left, r.Top, r.Right, r.Bottom} }

func (r Rect) rect() geom.Rectangle { return geom.Rect(r[0], r[1], r[2], r[3]) }

func (r Rect) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range r {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: num(v)})
	}
	return n, nil
}

// Seg is one bezier element. Exactly one field is set.
type Seg struct {
	Move  *Point  `yaml:"move,omitempty"`
	Line  *Point  `yaml:"line,omitempty"`
	Curve []Point `yaml:"curve,omitempty,flow"`
}

func segOf(b render.BezPoint) Seg {
	p1 := pointOf(b.P1)
	switch b.Type {
	case render.BezMoveTo:
		return Seg{Move: &p1}
	case render.BezLineTo:
		return Seg{Line: &p1}
	default:
		return Seg{Curve: []Point{p1, pointOf(b.P2), pointOf(b.P3)}}
	}
}

func (s Seg) bez() (render.BezPoint, error) {
	switch {
	case s.Move != nil:
		return render.MoveTo(s.Move.pt()), nil
	case s.Line != nil:
		return render.LineTo(s.Line.pt()), nil
	case len(s.Curve) == 3:
		return render.CurveTo(s.Curve[0].pt(), s.Curve[1].pt(), s.Curve[2].pt()), nil
	}
	return render.BezPoint{}, fmt.Errorf("path element needs move, line or three curve points")
}

// Color is written as "#rrggbb". Alpha is not stored.
type Color render.Color

func (c Color) MarshalYAML() (any, error) {
	return render.Color(c).Hex(), nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := render.ParseHex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = Color(parsed)
	return nil
}

func colorOf(c render.Color) *Color {
	v := Color(c)
	return &v
}

// LineStyle is written by name: solid, dashed, dash-dot, dash-dot-dot,
// dotted.
type LineStyle render.LineStyle

func (s LineStyle) MarshalYAML() (any, error) {
	return render.LineStyle(s).String(), nil
}

func (s *LineStyle) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	ls, err := render.ParseLineStyle(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = LineStyle(ls)
	return nil
}

// Alignment is written as left, center or right.
type Alignment render.Alignment

func (a Alignment) MarshalYAML() (any, error) {
	return render.Alignment(a).String(), nil
}

func (a *Alignment) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	switch name {
	case "left":
		*a = Alignment(render.AlignLeft)
	case "center":
		*a = Alignment(render.AlignCenter)
	case "right":
		*a = Alignment(render.AlignRight)
	default:
		return fmt.Errorf("line %d: unknown alignment %q", value.Line, name)
	}
	return nil
}

// FontSpec describes a font.Font.
type FontSpec struct {
	Family string `yaml:"family,omitempty"`
	Style  string `yaml:"style,omitempty"`
	Weight int    `yaml:"weight,omitempty"`
}

func fontSpecOf(f font.Font) *FontSpec {
	if f == font.Default {
		return nil
	}
	spec := &FontSpec{Family: f.Family, Weight: int(f.Weight)}
	if f.Style != font.StyleNormal {
		spec.Style = f.Style.String()
	}
	return spec
}

func (s *FontSpec) font() (font.Font, error) {
	if s == nil {
		return font.Default, nil
	}
	var style font.Style
	switch s.Style {
	case "", "normal":
		style = font.StyleNormal
	case "italic":
		style = font.StyleItalic
	case "oblique":
		style = font.StyleOblique
	default:
		return font.Font{}, fmt.Errorf("unknown font style %q", s.Style)
	}
	return font.New(s.Family, style, font.Weight(s.Weight)), nil
}

var capsNames = map[string]render.LineCaps{
	"":           render.CapsButt,
	"butt":       render.CapsButt,
	"round":      render.CapsRound,
	"projecting": render.CapsProjecting,
}

var joinNames = map[string]render.LineJoin{
	"":      render.JoinMiter,
	"miter": render.JoinMiter,
	"round": render.JoinRound,
	"bevel": render.JoinBevel,
}

func capsName(c render.LineCaps) string {
	switch c {
	case render.CapsRound:
		return "round"
	case render.CapsProjecting:
		return "projecting"
	}
	return ""
}

func joinName(j render.LineJoin) string {
	switch j {
	case render.JoinRound:
		return "round"
	case render.JoinBevel:
		return "bevel"
	}
	return ""
}
