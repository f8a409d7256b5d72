// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package docfile

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/objects"
	"github.com/gogpu/diagram/render"
)

var (
	// ErrUnknownKind is returned for entries whose kind is not one of the
	// standard objects.
	ErrUnknownKind = errors.New("docfile: unknown object kind")

	// ErrUnsupportedObject is returned by Encode for objects that are not
	// from the objects package.
	ErrUnsupportedObject = errors.New("docfile: unsupported object")

	// ErrUnnamedLayer is returned for layer entries without a name.
	ErrUnnamedLayer = errors.New("docfile: layer has no name")
)

// Kinds lists the object kinds a document can contain.
var Kinds = []string{"box", "ellipse", "line", "polyline", "polygon", "arc", "bezier", "text", "image"}

// Options controls decoding.
type Options struct {
	// Dir resolves relative image paths. Empty means the working
	// directory.
	Dir string

	// SkipImages leaves image objects without pixel data, drawing their
	// placeholder instead of failing on unreadable files.
	SkipImages bool
}

// Load reads a YAML document from r.
func Load(r io.Reader) (*diagram.Diagram, error) {
	return Decode(r, Options{})
}

// LoadFile reads the document at path. Images are resolved relative to
// the document.
func LoadFile(path string) (*diagram.Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("docfile: %w", err)
	}
	defer f.Close()

	d, err := Decode(f, Options{Dir: filepath.Dir(path)})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name() == "" {
		d.SetName(filepath.Base(path))
	}
	return d, nil
}

// Decode reads a YAML document from r and builds the diagram.
func Decode(r io.Reader, opts Options) (*diagram.Diagram, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("docfile: %w", err)
	}

	var dopts []diagram.Option
	if file.Background != nil {
		dopts = append(dopts, diagram.WithBackground(render.Color(*file.Background)))
	}
	d := diagram.New(file.Name, dopts...)

	base := d.ActiveLayer()
	if err := addEntries(d, base, file.Objects, opts, ""); err != nil {
		return nil, err
	}
	for i, le := range file.Layers {
		if le.Name == "" {
			return nil, fmt.Errorf("docfile: layer %d: %w", i, ErrUnnamedLayer)
		}
		l := d.AddLayer(le.Name)
		if err := addEntries(d, l, le.Objects, opts, le.Name); err != nil {
			return nil, err
		}
		if le.Hidden {
			_ = d.SetLayerVisible(l, false)
		}
	}
	if len(file.Layers) > 0 && len(file.Objects) == 0 {
		_ = d.RemoveLayer(base)
	}

	if file.Active != "" {
		l := findLayer(d, file.Active)
		if l == nil {
			return nil, fmt.Errorf("docfile: active_layer %q: %w", file.Active, diagram.ErrUnknownLayer)
		}
		_ = d.SetActiveLayer(l)
	}
	diagram.Logger().Debug("docfile: loaded", "name", d.Name(), "layers", len(d.Layers()), "objects", d.Len())
	return d, nil
}

func addEntries(d *diagram.Diagram, l *diagram.Layer, entries []Entry, opts Options, layer string) error {
	objs := make([]diagram.Object, 0, len(entries))
	for i, e := range entries {
		o, err := e.build(opts)
		if err != nil {
			if layer != "" {
				return fmt.Errorf("docfile: layer %q: object %d (%s): %w", layer, i, e.Kind, err)
			}
			return fmt.Errorf("docfile: object %d (%s): %w", i, e.Kind, err)
		}
		objs = append(objs, o)
	}
	return d.AddToLayer(l, objs...)
}

func findLayer(d *diagram.Diagram, name string) *diagram.Layer {
	for _, l := range d.Layers() {
		if l.Name() == name {
			return l
		}
	}
	return nil
}

func (e Entry) style() (objects.Style, error) {
	s := objects.DefaultStyle()
	if e.LineWidth != nil {
		s.LineWidth = *e.LineWidth
	}
	if e.LineColor != nil {
		s.LineColor = render.Color(*e.LineColor)
	}
	if e.LineStyle != nil {
		s.LineStyle = render.LineStyle(*e.LineStyle)
	}
	if e.DashLength > 0 {
		s.DashLength = e.DashLength
	}
	caps, ok := capsNames[e.Caps]
	if !ok {
		return s, fmt.Errorf("unknown caps %q", e.Caps)
	}
	s.Caps = caps
	join, ok := joinNames[e.Join]
	if !ok {
		return s, fmt.Errorf("unknown join %q", e.Join)
	}
	s.Join = join
	if e.Fill != nil {
		s = s.Filled(render.Color(*e.Fill))
	}
	return s, nil
}

func (e Entry) build(opts Options) (diagram.Object, error) {
	style, err := e.style()
	if err != nil {
		return nil, err
	}
	need := func(ok bool, field string) error {
		if !ok {
			return fmt.Errorf("missing %s", field)
		}
		return nil
	}

	var obj interface {
		diagram.Object
		SetID(uuid.UUID)
	}
	switch e.Kind {
	case "box":
		if err := need(e.Rect != nil, "rect"); err != nil {
			return nil, err
		}
		b := objects.NewBox(e.Rect.rect(), style)
		b.Radius = e.Radius
		obj = b
	case "ellipse":
		if err := need(e.Rect != nil, "rect"); err != nil {
			return nil, err
		}
		obj = objects.NewEllipse(e.Rect.rect(), style)
	case "line":
		if err := need(len(e.Points) == 2, "two points"); err != nil {
			return nil, err
		}
		obj = objects.NewLine(e.Points[0].pt(), e.Points[1].pt(), style)
	case "polyline":
		if err := need(len(e.Points) >= 2, "points"); err != nil {
			return nil, err
		}
		obj = objects.NewPolyline(toGeom(e.Points), style)
	case "polygon":
		if err := need(len(e.Points) >= 3, "points"); err != nil {
			return nil, err
		}
		obj = objects.NewPolygon(toGeom(e.Points), style)
	case "arc":
		if err := need(e.Rect != nil, "rect"); err != nil {
			return nil, err
		}
		obj = objects.NewArc(e.Rect.rect(), e.Angle1, e.Angle2, style)
	case "bezier":
		if err := need(len(e.Path) > 0, "path"); err != nil {
			return nil, err
		}
		path := make([]render.BezPoint, len(e.Path))
		for i, s := range e.Path {
			if path[i], err = s.bez(); err != nil {
				return nil, fmt.Errorf("path[%d]: %w", i, err)
			}
		}
		obj = objects.NewBezier(path, e.Closed, style)
	case "text":
		obj, err = e.text()
		if err != nil {
			return nil, err
		}
	case "image":
		obj, err = e.image(opts, style)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, e.Kind)
	}

	if e.ID != "" {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			return nil, fmt.Errorf("id: %w", err)
		}
		obj.SetID(id)
	}
	return obj, nil
}

func (e Entry) text() (*objects.Text, error) {
	if e.Pos == nil {
		return nil, errors.New("missing pos")
	}
	f, err := e.Font.font()
	if err != nil {
		return nil, err
	}
	var align render.Alignment
	if e.Align != nil {
		align = render.Alignment(*e.Align)
	}
	t := objects.NewText(e.Text, e.Pos.pt(), align)
	t.Font = f
	if e.Height > 0 {
		t.Height = e.Height
	}
	if e.Color != nil {
		t.Color = render.Color(*e.Color)
	}
	return t, nil
}

func (e Entry) image(opts Options, style objects.Style) (*objects.Image, error) {
	if e.Pos == nil || e.Width <= 0 || e.Height <= 0 {
		return nil, errors.New("missing pos, width or height")
	}
	var img image.Image
	if e.File != "" && !opts.SkipImages {
		var err error
		if img, err = readImage(resolve(opts.Dir, e.File)); err != nil {
			return nil, err
		}
	}
	o := objects.NewImage(img, e.Pos.pt(), e.Width, e.Height)
	o.Source = e.File
	o.Border = e.Border
	o.Style = style
	return o, nil
}

func resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Encode writes d as a YAML document. Every object must come from the
// objects package.
//
// A diagram whose only layer is the visible default layer is written as a
// plain object list. Otherwise every layer is written under layers.
func Encode(w io.Writer, d *diagram.Diagram) error {
	file := File{Name: d.Name()}
	if bg := d.Background(); bg != render.White {
		file.Background = colorOf(bg)
	}

	layers := d.Layers()
	if l := layers[0]; len(layers) == 1 && l.Name() == diagram.DefaultLayerName && l.Visible() {
		entries, err := entriesOf(l, "")
		if err != nil {
			return err
		}
		file.Objects = entries
	} else {
		for _, l := range layers {
			entries, err := entriesOf(l, l.Name())
			if err != nil {
				return err
			}
			file.Layers = append(file.Layers, LayerEntry{Name: l.Name(), Hidden: !l.Visible(), Objects: entries})
		}
		file.Active = d.ActiveLayer().Name()
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&file); err != nil {
		return fmt.Errorf("docfile: %w", err)
	}
	return enc.Close()
}

func entriesOf(l *diagram.Layer, layer string) ([]Entry, error) {
	out := make([]Entry, 0, l.Len())
	for i, o := range l.Objects() {
		e, err := entryOf(o)
		if err != nil {
			if layer != "" {
				return nil, fmt.Errorf("docfile: layer %q: object %d: %w", layer, i, err)
			}
			return nil, fmt.Errorf("docfile: object %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// SaveFile writes d to path.
func SaveFile(path string, d *diagram.Diagram) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("docfile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("docfile: %w", cerr)
		}
	}()
	return Encode(f, d)
}

func withStyle(e Entry, s objects.Style) Entry {
	def := objects.DefaultStyle()
	if s.LineWidth != def.LineWidth {
		lw := s.LineWidth
		e.LineWidth = &lw
	}
	if s.LineColor != def.LineColor {
		e.LineColor = colorOf(s.LineColor)
	}
	if s.LineStyle != def.LineStyle {
		ls := LineStyle(s.LineStyle)
		e.LineStyle = &ls
	}
	if s.DashLength != def.DashLength {
		e.DashLength = s.DashLength
	}
	e.Caps = capsName(s.Caps)
	e.Join = joinName(s.Join)
	if s.Fill != nil {
		e.Fill = colorOf(*s.Fill)
	}
	return e
}

func entryOf(o diagram.Object) (Entry, error) {
	switch o := o.(type) {
	case *objects.Box:
		e := Entry{Kind: "box", ID: o.ID(), Rect: rectOf(o.Rect), Radius: o.Radius}
		return withStyle(e, o.Style), nil
	case *objects.Ellipse:
		w, h := o.Width/2, o.Height/2
		r := &Rect{o.Center.X - w, o.Center.Y - h, o.Center.X + w, o.Center.Y + h}
		return withStyle(Entry{Kind: "ellipse", ID: o.ID(), Rect: r}, o.Style), nil
	case *objects.Line:
		e := Entry{Kind: "line", ID: o.ID(), Points: []Point{pointOf(o.Start), pointOf(o.End)}}
		return withStyle(e, o.Style), nil
	case *objects.Polyline:
		return withStyle(Entry{Kind: "polyline", ID: o.ID(), Points: fromGeom(o.Points)}, o.Style), nil
	case *objects.Polygon:
		return withStyle(Entry{Kind: "polygon", ID: o.ID(), Points: fromGeom(o.Points)}, o.Style), nil
	case *objects.Arc:
		w, h := o.Width/2, o.Height/2
		e := Entry{
			Kind:   "arc",
			ID:     o.ID(),
			Rect:   &Rect{o.Center.X - w, o.Center.Y - h, o.Center.X + w, o.Center.Y + h},
			Angle1: o.Angle1,
			Angle2: o.Angle2,
		}
		return withStyle(e, o.Style), nil
	case *objects.Bezier:
		path := make([]Seg, len(o.Points))
		for i, p := range o.Points {
			path[i] = segOf(p)
		}
		return withStyle(Entry{Kind: "bezier", ID: o.ID(), Path: path, Closed: o.Closed}, o.Style), nil
	case *objects.Text:
		pos := pointOf(o.Pos)
		align := Alignment(o.Align)
		e := Entry{Kind: "text", ID: o.ID(), Text: o.Text, Pos: &pos, Font: fontSpecOf(o.Font), Height: o.Height}
		if o.Align != render.AlignLeft {
			e.Align = &align
		}
		if o.Color != render.Black {
			e.Color = colorOf(o.Color)
		}
		return e, nil
	case *objects.Image:
		pos := pointOf(o.Pos)
		e := Entry{Kind: "image", ID: o.ID(), Pos: &pos, Width: o.Width, Height: o.Height, File: o.Source, Border: o.Border}
		return withStyle(e, o.Style), nil
	}
	return Entry{}, fmt.Errorf("%w: %T", ErrUnsupportedObject, o)
}

func toGeom(pts []Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = p.pt()
	}
	return out
}

func fromGeom(pts []geom.Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = pointOf(p)
	}
	return out
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
