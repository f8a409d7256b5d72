// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// Writer wraps an io.Writer and latches the first error. Once an error
// occurs further writes are dropped, so exporters can emit freely and
// check Err once at the end.
type Writer struct {
	w   io.Writer
	err error
	n   int64
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err != nil {
		w.err = err
	}
	return n, err
}

// Printf formats into the stream.
func (w *Writer) Printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, format, args...)
}

// WriteString writes s.
func (w *Writer) WriteString(s string) {
	_, _ = w.Write([]byte(s))
}

// Err returns the first error met.
func (w *Writer) Err() error { return w.err }

// Count returns the number of bytes written.
func (w *Writer) Count() int64 { return w.n }

// Num formats v with at most four decimals and no trailing zeros, always
// with '.' as decimal separator.
func Num(v float64) string {
	v = math.Round(v*1e4) / 1e4
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
