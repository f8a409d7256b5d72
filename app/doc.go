// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package app keeps track of the open diagrams and the displays showing
// them.
//
// A Context replaces process-wide lists of open documents: every diagram
// and display is registered under a prefixed TypeID and looked up by it.
// Closing the last display of a diagram destroys the diagram and removes
// it from the Context.
//
//	ctx := app.New()
//	id, d := ctx.NewDiagram("network")
//	d.Add(objects.NewBox(geom.Rect(1, 1, 5, 3), objects.DefaultStyle()))
//	did, disp, err := ctx.OpenDisplay(id, raster.New(), surface.NewImageSurface(640, 480))
//	if err != nil {
//	    return err
//	}
//	disp.Flush()
//	_ = ctx.CloseDisplay(did) // destroys "network"
package app
