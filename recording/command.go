package recording

import (
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/diagram/font"
	"github.com/gogpu/diagram/geom"
	"github.com/gogpu/diagram/render"
)

// CommandType identifies the renderer call a command records.
type CommandType uint8

const (
	// Frame commands
	CmdBeginRender CommandType = iota
	CmdEndRender

	// Attribute commands
	CmdSetLineWidth
	CmdSetLineCaps
	CmdSetLineJoin
	CmdSetLineStyle
	CmdSetDashLength
	CmdSetFillStyle
	CmdSetFont

	// Drawing commands
	CmdDrawLine
	CmdDrawPolyline
	CmdDrawPolygon
	CmdFillPolygon
	CmdDrawRect
	CmdFillRect
	CmdDrawArc
	CmdFillArc
	CmdDrawEllipse
	CmdFillEllipse
	CmdDrawBezier
	CmdFillBezier
	CmdDrawString
	CmdDrawImage
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdBeginRender:   "BeginRender",
	CmdEndRender:     "EndRender",
	CmdSetLineWidth:  "SetLineWidth",
	CmdSetLineCaps:   "SetLineCaps",
	CmdSetLineJoin:   "SetLineJoin",
	CmdSetLineStyle:  "SetLineStyle",
	CmdSetDashLength: "SetDashLength",
	CmdSetFillStyle:  "SetFillStyle",
	CmdSetFont:       "SetFont",
	CmdDrawLine:      "DrawLine",
	CmdDrawPolyline:  "DrawPolyline",
	CmdDrawPolygon:   "DrawPolygon",
	CmdFillPolygon:   "FillPolygon",
	CmdDrawRect:      "DrawRect",
	CmdFillRect:      "FillRect",
	CmdDrawArc:       "DrawArc",
	CmdFillArc:       "FillArc",
	CmdDrawEllipse:   "DrawEllipse",
	CmdFillEllipse:   "FillEllipse",
	CmdDrawBezier:    "DrawBezier",
	CmdFillBezier:    "FillBezier",
	CmdDrawString:    "DrawString",
	CmdDrawImage:     "DrawImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// IsDraw reports whether c is a drawing command.
func (c CommandType) IsDraw() bool {
	return c >= CmdDrawLine && c <= CmdDrawImage
}

// Command is one recorded renderer call. Only the fields the call uses are
// set.
type Command struct {
	Type CommandType

	// Points holds line end points, polygon vertices, rect corners, the
	// arc/ellipse center or the string/image position.
	Points []geom.Point

	// Bezier holds the path of bezier commands.
	Bezier []render.BezPoint

	// Values holds scalar arguments in call order: width, caps, join,
	// style, dash length, fill style, font height, or arc size and angles.
	Values []float64

	Color render.Color
	Clip  *geom.Rectangle
	Font  font.Font
	Text  string
	Align render.Alignment
	Image image.Image
}

// String formats c as one trace line.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Type.String())
	for _, p := range c.Points {
		fmt.Fprintf(&b, " (%g,%g)", p.X, p.Y)
	}
	for _, bp := range c.Bezier {
		switch bp.Type {
		case render.BezMoveTo:
			fmt.Fprintf(&b, " M(%g,%g)", bp.P1.X, bp.P1.Y)
		case render.BezLineTo:
			fmt.Fprintf(&b, " L(%g,%g)", bp.P1.X, bp.P1.Y)
		case render.BezCurveTo:
			fmt.Fprintf(&b, " C(%g,%g)(%g,%g)(%g,%g)", bp.P1.X, bp.P1.Y, bp.P2.X, bp.P2.Y, bp.P3.X, bp.P3.Y)
		}
	}
	for _, v := range c.Values {
		fmt.Fprintf(&b, " %g", v)
	}
	if c.Type == CmdSetFont {
		fmt.Fprintf(&b, " %q", c.Font.String())
	}
	if c.Type == CmdDrawString {
		fmt.Fprintf(&b, " %q %s", c.Text, c.Align)
	}
	if c.Type == CmdDrawImage && c.Image != nil {
		fmt.Fprintf(&b, " %dx%d", c.Image.Bounds().Dx(), c.Image.Bounds().Dy())
	}
	if c.Clip != nil {
		fmt.Fprintf(&b, " clip=%v", *c.Clip)
	}
	if c.Type.IsDraw() && c.Type != CmdDrawImage {
		fmt.Fprintf(&b, " %s", c.Color.Hex())
	}
	return b.String()
}
