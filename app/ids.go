// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package app

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// ID prefixes.
const (
	PrefixDiagram = "diag"
	PrefixDisplay = "disp"
)

// DiagramID identifies a diagram registered with a Context.
type DiagramID string

// DisplayID identifies a display registered with a Context.
type DisplayID string

func newDiagramID() DiagramID { return DiagramID(typeid.MustGenerate(PrefixDiagram).String()) }

func newDisplayID() DisplayID { return DisplayID(typeid.MustGenerate(PrefixDisplay).String()) }

// ParseDiagramID checks that s is a diagram ID.
func ParseDiagramID(s string) (DiagramID, error) {
	if err := validate(s, PrefixDiagram); err != nil {
		return "", err
	}
	return DiagramID(s), nil
}

// ParseDisplayID checks that s is a display ID.
func ParseDisplayID(s string) (DisplayID, error) {
	if err := validate(s, PrefixDisplay); err != nil {
		return "", err
	}
	return DisplayID(s), nil
}

func validate(id, prefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("app: invalid id %q: %w", id, err)
	}
	if parsed.Prefix() != prefix {
		return fmt.Errorf("app: id %q has prefix %q, want %q", id, parsed.Prefix(), prefix)
	}
	return nil
}
