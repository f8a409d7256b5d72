// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/display"
	"github.com/gogpu/diagram/render"
	"github.com/gogpu/diagram/surface"
)

// ErrNotFound is returned when an ID is not registered.
var ErrNotFound = errors.New("app: not found")

// Context owns the open diagrams and their displays.
//
// Context is NOT safe for concurrent use. Like Display, drive it from the
// goroutine that mutates the diagrams.
type Context struct {
	diagrams map[DiagramID]*diagram.Diagram
	displays map[DisplayID]*display.Display
	owner    map[DisplayID]DiagramID

	// Registration order, for stable iteration.
	diagramOrder []DiagramID
	displayOrder []DisplayID
}

// New returns an empty Context.
func New() *Context {
	return &Context{
		diagrams: make(map[DiagramID]*diagram.Diagram),
		displays: make(map[DisplayID]*display.Display),
		owner:    make(map[DisplayID]DiagramID),
	}
}

// NewDiagram creates and registers an empty diagram.
func (c *Context) NewDiagram(name string, opts ...diagram.Option) (DiagramID, *diagram.Diagram) {
	d := diagram.New(name, opts...)
	return c.AddDiagram(d), d
}

// AddDiagram registers an existing diagram, for example one read from a
// file. Registering the same diagram twice returns its existing ID.
func (c *Context) AddDiagram(d *diagram.Diagram) DiagramID {
	for _, id := range c.diagramOrder {
		if c.diagrams[id] == d {
			return id
		}
	}
	id := newDiagramID()
	c.diagrams[id] = d
	c.diagramOrder = append(c.diagramOrder, id)
	d.OnDestroy(func(*diagram.Diagram) { c.forget(id) })
	diagram.Logger().Info("app: diagram opened", "id", id, "name", d.Name())
	return id
}

// Diagram returns the diagram registered under id.
func (c *Context) Diagram(id DiagramID) (*diagram.Diagram, error) {
	d, ok := c.diagrams[id]
	if !ok {
		return nil, fmt.Errorf("diagram %s: %w", id, ErrNotFound)
	}
	return d, nil
}

// Diagrams returns the IDs of the open diagrams in the order they were
// registered.
func (c *Context) Diagrams() []DiagramID {
	return slices.Clone(c.diagramOrder)
}

// OpenDisplay opens a display of the diagram id on surface s, rendering
// through r.
func (c *Context) OpenDisplay(id DiagramID, r render.Interactive, s surface.Surface, opts ...display.Option) (DisplayID, *display.Display, error) {
	d, err := c.Diagram(id)
	if err != nil {
		return "", nil, err
	}
	disp, err := display.New(d, r, s, opts...)
	if err != nil {
		return "", nil, fmt.Errorf("app: open display of %s: %w", id, err)
	}
	did := newDisplayID()
	c.displays[did] = disp
	c.owner[did] = id
	c.displayOrder = append(c.displayOrder, did)
	return did, disp, nil
}

// Display returns the display registered under id.
func (c *Context) Display(id DisplayID) (*display.Display, error) {
	disp, ok := c.displays[id]
	if !ok {
		return nil, fmt.Errorf("display %s: %w", id, ErrNotFound)
	}
	return disp, nil
}

// Displays returns the IDs of the displays showing the diagram id.
func (c *Context) Displays(id DiagramID) []DisplayID {
	var out []DisplayID
	for _, did := range c.displayOrder {
		if c.owner[did] == id {
			out = append(out, did)
		}
	}
	return out
}

// CloseDisplay closes and unregisters a display. Closing the last display
// of a diagram destroys the diagram, which also unregisters it.
func (c *Context) CloseDisplay(id DisplayID) error {
	disp, err := c.Display(id)
	if err != nil {
		return err
	}
	c.dropDisplay(id)
	if err := disp.Close(); err != nil {
		return fmt.Errorf("app: close display %s: %w", id, err)
	}
	return nil
}

// CloseDiagram closes every display of the diagram id and destroys it.
func (c *Context) CloseDiagram(id DiagramID) error {
	d, err := c.Diagram(id)
	if err != nil {
		return err
	}
	var errs []error
	for _, did := range c.Displays(id) {
		errs = append(errs, c.CloseDisplay(did))
	}
	d.Destroy()
	return errors.Join(errs...)
}

// Close closes every diagram.
func (c *Context) Close() error {
	var errs []error
	for _, id := range c.Diagrams() {
		errs = append(errs, c.CloseDiagram(id))
	}
	return errors.Join(errs...)
}

// RedrawAll repaints every open display from scratch. It returns the
// number of displays that re-rendered.
func (c *Context) RedrawAll() int {
	n := 0
	for _, did := range c.displayOrder {
		disp := c.displays[did]
		disp.AddAll()
		n += disp.Flush().Rendered
	}
	return n
}

func (c *Context) dropDisplay(id DisplayID) {
	delete(c.displays, id)
	delete(c.owner, id)
	c.displayOrder = slices.DeleteFunc(c.displayOrder, func(x DisplayID) bool { return x == id })
}

// forget runs when a registered diagram is destroyed.
func (c *Context) forget(id DiagramID) {
	d, ok := c.diagrams[id]
	if !ok {
		return
	}
	for _, did := range c.Displays(id) {
		disp := c.displays[did]
		c.dropDisplay(did)
		if err := disp.Close(); err != nil {
			diagram.Logger().Warn("app: closing orphaned display", "id", did, "error", err)
		}
	}
	delete(c.diagrams, id)
	c.diagramOrder = slices.DeleteFunc(c.diagramOrder, func(x DiagramID) bool { return x == id })
	diagram.Logger().Info("app: diagram closed", "id", id, "name", d.Name())
}
