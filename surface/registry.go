// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Built-in surface kinds.
const (
	KindImage = "image"
	KindNull  = "null"
)

// ErrUnknownKind is returned by New for a kind nobody registered.
var ErrUnknownKind = errors.New("surface: unknown kind")

// Factory creates a surface of width by height pixels.
type Factory func(width, height int) (Surface, error)

var (
	kindsMu sync.RWMutex
	kinds   = make(map[string]Factory)
)

// Register makes a surface kind available to New. Hosts call it from
// init to offer their window surfaces by name.
//
// Register panics if factory is nil or the kind is already registered.
func Register(kind string, factory Factory) {
	kindsMu.Lock()
	defer kindsMu.Unlock()

	if factory == nil {
		panic("surface: Register factory is nil")
	}
	if _, dup := kinds[kind]; dup {
		panic("surface: Register called twice for " + kind)
	}
	kinds[kind] = factory
}

// Unregister removes a kind. It is meant for tests.
func Unregister(kind string) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	delete(kinds, kind)
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	return slices.Sorted(maps.Keys(kinds))
}

// IsRegistered reports whether kind can be passed to New.
func IsRegistered(kind string) bool {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	_, ok := kinds[kind]
	return ok
}

// New creates a surface of the named kind.
func New(kind string, width, height int) (Surface, error) {
	kindsMu.RLock()
	factory, ok := kinds[kind]
	kindsMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	s, err := factory(width, height)
	if err != nil {
		return nil, fmt.Errorf("surface: new %s: %w", kind, err)
	}
	return s, nil
}

func init() {
	Register(KindImage, func(width, height int) (Surface, error) {
		return NewImageSurface(width, height), nil
	})
	Register(KindNull, func(width, height int) (Surface, error) {
		return NewNullSurface(width, height), nil
	})
}
