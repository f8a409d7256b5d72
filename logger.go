// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package diagram

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/diagram/render"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for diagram and all its sub-packages.
// By default nothing is logged. Pass nil to restore silence.
//
// Log levels used:
//   - [slog.LevelDebug]: damage and flush traces
//   - [slog.LevelInfo]: lifecycle events (document opened, closed, exported)
//   - [slog.LevelWarn]: degraded primitives, unsupported backend features
//   - [slog.LevelError]: objects that failed while drawing
//
// Example:
//
//	diagram.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	render.SetLogger(l)
}

// Logger returns the current logger. Sub-packages (display, export, app)
// call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
