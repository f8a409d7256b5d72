// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package docfile reads and writes diagrams as YAML documents built from
// the standard objects.
//
// A document names the diagram, optionally sets a background colour and
// lists objects in z-order, bottom first:
//
//	name: network
//	background: "#f0f0f0"
//	objects:
//	  - kind: box
//	    rect: [1, 1, 5, 3]
//	    radius: 0.3
//	    fill: "#ffffcc"
//	  - kind: text
//	    text: "router"
//	    pos: [3, 2.2]
//	    align: center
//	  - kind: line
//	    points: [[5, 2], [8, 2]]
//	    line_style: dashed
//
// Objects listed at the top level go to the default layer. Further layers
// stack above it, each with its own objects; a hidden layer is kept but
// not drawn:
//
//	layers:
//	  - name: annotations
//	    hidden: true
//	    objects:
//	      - kind: text
//	        text: "draft"
//	        pos: [1, 8]
//	active_layer: annotations
//
// Coordinates are in centimetres. Unknown kinds fail with ErrUnknownKind
// and unknown fields are rejected. Image files are decoded with the
// image/png, image/jpeg and golang.org/x/image decoders (BMP, TIFF, WebP).
package docfile
