// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package display shows a diagram through an interactive renderer and keeps
// the visible surface up to date with incremental repaints.
//
// A Display owns a viewport (origin, zoom and pixel size), a
// render.Interactive backend holding the off-screen buffer, and two damage
// lists: diagram-space rectangles waiting to be re-rendered and the pixel
// rectangles that must be copied to the surface afterwards. The Diagram
// reports every visual change through NotifyDamage; Flush turns the
// accumulated damage into one clipped re-render and a blit per dirty pixel
// rectangle.
//
// Basic usage:
//
//	d := diagram.New("untitled")
//	disp, err := display.New(d, raster.New(), surface.NewImageSurface(800, 600))
//	if err != nil {
//	    return err
//	}
//	defer disp.Close()
//
//	d.Add(box)     // damages the box on every display
//	disp.Flush()   // re-renders and blits only the damaged area
//
// # Damage merging
//
// By default damage collapses into a single bounding rectangle per list
// (MergeSingle), which is cheap and may over-paint. MergeBounded keeps a
// small list of rectangles and falls back to a single union when it grows
// past its limit. Neither policy ever under-paints.
package display
