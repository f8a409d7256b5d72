package export

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/gogpu/diagram/render"
)

// Exporter is a render.Renderer that writes a document to a stream.
// The header is written by BeginRender and the trailer by EndRender; Err
// returns the first write error, if any.
type Exporter interface {
	render.Renderer

	// Err returns the first error met while writing.
	Err() error
}

// Factory creates an exporter writing to w. cfg.Extents is the diagram
// area being exported.
type Factory func(w io.Writer, cfg Config) Exporter

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	formats    = make(map[string]Factory)
)

// Register registers an exporter factory under a format name.
// It is typically called from init() in exporter packages, following the
// database/sql driver pattern:
//
//	func init() {
//	    export.Register("svg", func(w io.Writer, cfg export.Config) export.Exporter {
//	        return New(w, cfg)
//	    })
//	}
//
// Register panics if factory is nil or the format is already registered.
func Register(format string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("export: Register factory is nil")
	}
	if _, dup := formats[format]; dup {
		panic("export: Register called twice for " + format)
	}
	formats[format] = factory
}

// Unregister removes a format from the registry.
// This is primarily useful for testing to clean up between tests.
func Unregister(format string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(formats, format)
}

// New creates an exporter for format writing to w.
//
// Example:
//
//	import _ "github.com/gogpu/diagram/export/svg" // Register SVG exporter
//
//	e, err := export.New("svg", f, cfg)
func New(format string, w io.Writer, cfg Config) (Exporter, error) {
	registryMu.RLock()
	factory, ok := formats[format]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownFormat, format)
	}
	return factory(w, cfg), nil
}

// Formats returns a sorted list of registered format names.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a format with the given name is registered.
func IsRegistered(format string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := formats[format]
	return ok
}
