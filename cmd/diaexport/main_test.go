package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/diagram/export"
	"github.com/gogpu/diagram/internal/config"
)

const doc = `
name: cli
objects:
  - kind: box
    rect: [0, 0, 2, 1]
    fill: "#ff0000"
  - kind: line
    points: [[0, 0], [2, 1]]
`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func surfaceConfig(t *testing.T, kind string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diaexport.toml")
	if err := os.WriteFile(path, []byte("surface = \""+kind+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestList(t *testing.T) {
	var out bytes.Buffer
	if err := run(t.Context(), []string{"-list"}, &out, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, f := range []string{"eps", "pdf", "png", "svg", "trace"} {
		if !strings.Contains(out.String(), f+"\n") {
			t.Errorf("-list output lacks %q:\n%s", f, out.String())
		}
	}
}

func TestExportByExtension(t *testing.T) {
	in := writeDoc(t)
	tests := []struct {
		ext    string
		prefix string
	}{
		{"svg", "<?xml"},
		{"eps", "%!PS-Adobe-2.0 EPSF-2.0"},
		{"pdf", "%PDF-"},
		{"png", "\x89PNG"},
		{"trace", "# cli"},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out."+tt.ext)
			if err := run(t.Context(), []string{"-o", out, in}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
				t.Fatalf("run: %v", err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte(tt.prefix)) {
				t.Errorf("output starts with %q, want %q", data[:min(len(data), 16)], tt.prefix)
			}
		})
	}
}

func TestExportDefaultOutput(t *testing.T) {
	in := writeDoc(t)
	if err := run(t.Context(), []string{"-format", "svg", in}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(strings.TrimSuffix(in, ".yaml") + ".svg"); err != nil {
		t.Errorf("default output missing: %v", err)
	}
}

func TestFormatFromEnvironment(t *testing.T) {
	in := writeDoc(t)
	t.Setenv("DIA_FORMAT", "trace")
	if err := run(t.Context(), []string{in}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(strings.TrimSuffix(in, ".yaml") + ".trace"); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestDisplaySnapshot(t *testing.T) {
	in := writeDoc(t)
	out := filepath.Join(t.TempDir(), "view.png")
	t.Setenv("DIA_RENDER_BOUNDING_BOXES", "true")
	if err := run(t.Context(), []string{"-display", "64x48", "-o", out, in}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("snapshot is %v, want 64x48", b)
	}
}

func TestDisplayNullSurface(t *testing.T) {
	in := writeDoc(t)
	out := filepath.Join(t.TempDir(), "view.png")
	t.Setenv("DIA_SURFACE", "null")
	var stdout bytes.Buffer
	if err := run(t.Context(), []string{"-display", "64x48", "-o", out, in}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "cli: 2 objects drawn, 1 blits, 3072 pixels") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("null surface wrote %s: %v", out, err)
	}
}

func TestErrors(t *testing.T) {
	in := writeDoc(t)
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"no input", nil, errUsage},
		{"no format", []string{in}, errUsage},
		{"unknown format", []string{"-format", "gif", in}, export.ErrUnknownFormat},
		{"unknown extension", []string{"-o", "x.gif", in}, export.ErrUnknownFormat},
		{"missing input", []string{"-format", "svg", filepath.Join(t.TempDir(), "none.yaml")}, os.ErrNotExist},
		{"unknown surface", []string{"-config", surfaceConfig(t, "opengl"), "-display", "8x8", in}, config.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t.Context(), tt.args, &bytes.Buffer{}, &bytes.Buffer{})
			if !errors.Is(err, tt.is) {
				t.Errorf("run = %v, want %v", err, tt.is)
			}
		})
	}

	if err := run(t.Context(), []string{"-display", "big", in}, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Error("bad display size accepted")
	}
}
