package recording

import (
	"fmt"
	"image"
	"io"
	"slices"

	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// Recorder captures renderer calls as commands.
// Use FinishRecording to obtain an immutable Recording that can be
// replayed to different renderers.
//
// Example:
//
//	rec := recording.NewRecorder()
//	rec.BeginRender(nil)
//	rec.DrawLine(geom.Pt(0, 0), geom.Pt(1, 1), render.Black)
//	rec.EndRender()
//	recording := rec.FinishRecording()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	render.State
	commands []Command
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{commands: make([]Command, 0, 64)}
}

// Commands returns the commands recorded so far.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Reset discards all recorded commands.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Count returns how many commands of the given types were recorded, or
// the number of drawing commands when no type is given.
func (r *Recorder) Count(types ...CommandType) int {
	n := 0
	for _, c := range r.commands {
		if (len(types) == 0 && c.Type.IsDraw()) || slices.Contains(types, c.Type) {
			n++
		}
	}
	return n
}

// FinishRecording returns an immutable Recording containing all recorded
// commands. After calling FinishRecording, the Recorder should not be used
// again.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{commands: r.commands}
}

func (r *Recorder) add(c Command) {
	r.commands = append(r.commands, c)
}

func (r *Recorder) BeginRender(clip *geom.Rectangle) {
	r.Begin("recording")
	c := Command{Type: CmdBeginRender}
	if clip != nil {
		cl := *clip
		c.Clip = &cl
	}
	r.add(c)
}

func (r *Recorder) EndRender() {
	r.End("recording")
	r.add(Command{Type: CmdEndRender})
}

func (r *Recorder) SetLineWidth(width float64) {
	r.add(Command{Type: CmdSetLineWidth, Values: []float64{width}})
}

func (r *Recorder) SetLineCaps(caps render.LineCaps) {
	r.add(Command{Type: CmdSetLineCaps, Values: []float64{float64(caps)}})
}

func (r *Recorder) SetLineJoin(join render.LineJoin) {
	r.add(Command{Type: CmdSetLineJoin, Values: []float64{float64(join)}})
}

func (r *Recorder) SetLineStyle(style render.LineStyle) {
	r.add(Command{Type: CmdSetLineStyle, Values: []float64{float64(style)}})
}

func (r *Recorder) SetDashLength(length float64) {
	r.add(Command{Type: CmdSetDashLength, Values: []float64{length}})
}

func (r *Recorder) SetFillStyle(style render.FillStyle) {
	r.add(Command{Type: CmdSetFillStyle, Values: []float64{float64(style)}})
}

func (r *Recorder) SetFont(f font.Font, height float64) {
	r.add(Command{Type: CmdSetFont, Font: f, Values: []float64{height}})
}

func (r *Recorder) DrawLine(start, end geom.Point, c render.Color) {
	r.add(Command{Type: CmdDrawLine, Points: []geom.Point{start, end}, Color: c})
}

func (r *Recorder) DrawPolyline(points []geom.Point, c render.Color) {
	r.add(Command{Type: CmdDrawPolyline, Points: slices.Clone(points), Color: c})
}

func (r *Recorder) DrawPolygon(points []geom.Point, c render.Color) {
	r.add(Command{Type: CmdDrawPolygon, Points: slices.Clone(points), Color: c})
}

func (r *Recorder) FillPolygon(points []geom.Point, c render.Color) {
	r.add(Command{Type: CmdFillPolygon, Points: slices.Clone(points), Color: c})
}

func (r *Recorder) DrawRect(ul, lr geom.Point, c render.Color) {
	r.add(Command{Type: CmdDrawRect, Points: []geom.Point{ul, lr}, Color: c})
}

func (r *Recorder) FillRect(ul, lr geom.Point, c render.Color) {
	r.add(Command{Type: CmdFillRect, Points: []geom.Point{ul, lr}, Color: c})
}

func (r *Recorder) DrawArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	r.add(Command{Type: CmdDrawArc, Points: []geom.Point{center}, Values: []float64{width, height, angle1, angle2}, Color: c})
}

func (r *Recorder) FillArc(center geom.Point, width, height, angle1, angle2 float64, c render.Color) {
	r.add(Command{Type: CmdFillArc, Points: []geom.Point{center}, Values: []float64{width, height, angle1, angle2}, Color: c})
}

func (r *Recorder) DrawEllipse(center geom.Point, width, height float64, c render.Color) {
	r.add(Command{Type: CmdDrawEllipse, Points: []geom.Point{center}, Values: []float64{width, height}, Color: c})
}

func (r *Recorder) FillEllipse(center geom.Point, width, height float64, c render.Color) {
	r.add(Command{Type: CmdFillEllipse, Points: []geom.Point{center}, Values: []float64{width, height}, Color: c})
}

func (r *Recorder) DrawBezier(points []render.BezPoint, c render.Color) {
	r.add(Command{Type: CmdDrawBezier, Bezier: slices.Clone(points), Color: c})
}

func (r *Recorder) FillBezier(points []render.BezPoint, c render.Color) {
	r.add(Command{Type: CmdFillBezier, Bezier: slices.Clone(points), Color: c})
}

func (r *Recorder) DrawString(text string, pos geom.Point, align render.Alignment, c render.Color) {
	r.add(Command{Type: CmdDrawString, Text: text, Points: []geom.Point{pos}, Align: align, Color: c})
}

func (r *Recorder) DrawImage(pos geom.Point, width, height float64, img image.Image) {
	r.add(Command{Type: CmdDrawImage, Points: []geom.Point{pos}, Values: []float64{width, height}, Image: img})
}

// Recording is an immutable list of recorded commands.
type Recording struct {
	commands []Command
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Playback replays the recording onto dst, call for call.
func (r *Recording) Playback(dst render.Renderer) error {
	for i, c := range r.commands {
		if err := replay(dst, c); err != nil {
			return fmt.Errorf("recording: command %d: %w", i, err)
		}
	}
	return nil
}

// WriteTo writes one trace line per command.
func (r *Recording) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, c := range r.commands {
		n, err := fmt.Fprintln(w, c.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func replay(dst render.Renderer, c Command) error {
	need := func(points, values int) error {
		if len(c.Points) < points || len(c.Values) < values {
			return fmt.Errorf("%s: want %d points and %d values, have %d and %d",
				c.Type, points, values, len(c.Points), len(c.Values))
		}
		return nil
	}

	switch c.Type {
	case CmdBeginRender:
		dst.BeginRender(c.Clip)
	case CmdEndRender:
		dst.EndRender()
	case CmdSetLineWidth, CmdSetLineCaps, CmdSetLineJoin, CmdSetLineStyle,
		CmdSetDashLength, CmdSetFillStyle, CmdSetFont:
		if err := need(0, 1); err != nil {
			return err
		}
		v := c.Values[0]
		switch c.Type {
		case CmdSetLineWidth:
			dst.SetLineWidth(v)
		case CmdSetLineCaps:
			dst.SetLineCaps(render.LineCaps(v))
		case CmdSetLineJoin:
			dst.SetLineJoin(render.LineJoin(v))
		case CmdSetLineStyle:
			dst.SetLineStyle(render.LineStyle(v))
		case CmdSetDashLength:
			dst.SetDashLength(v)
		case CmdSetFillStyle:
			dst.SetFillStyle(render.FillStyle(v))
		case CmdSetFont:
			dst.SetFont(c.Font, v)
		}
	case CmdDrawLine, CmdDrawRect, CmdFillRect:
		if err := need(2, 0); err != nil {
			return err
		}
		switch c.Type {
		case CmdDrawLine:
			dst.DrawLine(c.Points[0], c.Points[1], c.Color)
		case CmdDrawRect:
			dst.DrawRect(c.Points[0], c.Points[1], c.Color)
		case CmdFillRect:
			dst.FillRect(c.Points[0], c.Points[1], c.Color)
		}
	case CmdDrawPolyline:
		dst.DrawPolyline(c.Points, c.Color)
	case CmdDrawPolygon:
		dst.DrawPolygon(c.Points, c.Color)
	case CmdFillPolygon:
		dst.FillPolygon(c.Points, c.Color)
	case CmdDrawArc, CmdFillArc:
		if err := need(1, 4); err != nil {
			return err
		}
		v := c.Values
		if c.Type == CmdDrawArc {
			dst.DrawArc(c.Points[0], v[0], v[1], v[2], v[3], c.Color)
		} else {
			dst.FillArc(c.Points[0], v[0], v[1], v[2], v[3], c.Color)
		}
	case CmdDrawEllipse, CmdFillEllipse:
		if err := need(1, 2); err != nil {
			return err
		}
		if c.Type == CmdDrawEllipse {
			dst.DrawEllipse(c.Points[0], c.Values[0], c.Values[1], c.Color)
		} else {
			dst.FillEllipse(c.Points[0], c.Values[0], c.Values[1], c.Color)
		}
	case CmdDrawBezier:
		dst.DrawBezier(c.Bezier, c.Color)
	case CmdFillBezier:
		dst.FillBezier(c.Bezier, c.Color)
	case CmdDrawString:
		if err := need(1, 0); err != nil {
			return err
		}
		dst.DrawString(c.Text, c.Points[0], c.Align, c.Color)
	case CmdDrawImage:
		if err := need(1, 2); err != nil {
			return err
		}
		dst.DrawImage(c.Points[0], c.Values[0], c.Values[1], c.Image)
	default:
		return fmt.Errorf("unknown command type %d", c.Type)
	}
	return nil
}

var _ render.Renderer = (*Recorder)(nil)
