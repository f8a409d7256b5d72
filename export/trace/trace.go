// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package trace exports a diagram as a plain-text list of the renderer
// calls it makes, one per line. It is meant for debugging objects and for
// golden-file tests.
//
// Importing the package registers the "trace" format.
package trace

import (
	"io"

	"github.com/gogpu/diagram/export"
	"github.com/gogpu/diagram/recording"
)

func init() {
	export.Register("trace", func(w io.Writer, cfg export.Config) export.Exporter {
		return New(w, cfg)
	})
}

// Exporter records every call and writes the trace on EndRender.
type Exporter struct {
	*recording.Recorder

	w   *export.Writer
	cfg export.Config
}

// New returns an exporter writing to w.
func New(w io.Writer, cfg export.Config) *Exporter {
	return &Exporter{
		Recorder: recording.NewRecorder(),
		w:        export.NewWriter(w),
		cfg:      cfg,
	}
}

// Err returns the first write error, or else the first BeginRender or
// EndRender misuse.
func (e *Exporter) Err() error {
	if err := e.w.Err(); err != nil {
		return err
	}
	return e.Recorder.Err()
}

func (e *Exporter) EndRender() {
	e.Recorder.EndRender()
	e.w.Printf("# %s extents=%v\n", e.cfg.Title, e.cfg.Extents)
	// Write errors are latched by e.w.
	_, _ = e.FinishRecording().WriteTo(e.w)
	e.Reset()
}

var _ export.Exporter = (*Exporter)(nil)
