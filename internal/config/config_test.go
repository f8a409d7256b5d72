// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/diagram/render"
	"github.com/gogpu/diagram/surface"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diaexport.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != slog.LevelWarn || cfg.LogFormat != LogText {
		t.Errorf("log settings = %v %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.BoundingBoxes || cfg.Background.Valid || cfg.Scale != 0 || cfg.Surface != surface.KindImage {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if got := len(cfg.ExportOptions()); got != 0 {
		t.Errorf("ExportOptions has %d entries", got)
	}
}

func TestPrecedence(t *testing.T) {
	path := writeFile(t, `
format = "svg"
scale = 10
background = "#ff0000"
render_bounding_boxes = false
log_level = "debug"
`)
	t.Setenv("DIA_SCALE", "40")
	t.Setenv("DIA_RENDER_BOUNDING_BOXES", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"file over default", cfg.Format, "svg"},
		{"env over file", cfg.Scale, 40.0},
		{"env bool", cfg.BoundingBoxes, true},
		{"file color", cfg.Background.Color, render.RGB(1, 0, 0)},
		{"file level", cfg.LogLevel, slog.LevelDebug},
		{"default kept", cfg.LogFormat, LogText},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnvOnly(t *testing.T) {
	t.Setenv("DIA_BACKGROUND", "#00ff00")
	t.Setenv("DIA_LOG_LEVEL", "ERROR")
	t.Setenv("DIA_LOG_FORMAT", "json")
	t.Setenv("DIA_SURFACE", "null")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Background.Valid || cfg.Background.Color != render.RGB(0, 1, 0) {
		t.Errorf("Background = %+v", cfg.Background)
	}
	if cfg.LogLevel != slog.LevelError || cfg.LogFormat != LogJSON {
		t.Errorf("log settings = %v %q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Surface != surface.KindNull {
		t.Errorf("Surface = %q, want null", cfg.Surface)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		is   error
	}{
		{name: "unknown key", file: "colour = \"red\"\n", is: ErrInvalid},
		{name: "bad color", file: "background = \"blue\"\n"},
		{name: "bad toml", file: "scale = \n"},
		{name: "negative scale", file: "scale = -1\n", is: ErrInvalid},
		{name: "log format", file: "log_format = \"xml\"\n", is: ErrInvalid},
		{name: "bad env", env: map[string]string{"DIA_GRID": "wide"}},
		{name: "negative env grid", env: map[string]string{"DIA_GRID": "-2"}, is: ErrInvalid},
		{name: "unknown surface", file: "surface = \"opengl\"\n", is: ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error %v is not %v", err, tt.is)
			}
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load = %v, want ErrNotExist", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Scale = 5
	cfg.Title = "t"
	cfg.Grid = 1
	if err := cfg.Background.UnmarshalText([]byte("#123456")); err != nil {
		t.Fatal(err)
	}
	if got := len(cfg.ExportOptions()); got != 3 {
		t.Errorf("ExportOptions has %d entries, want 3", got)
	}
	if got := len(cfg.DisplayOptions()); got != 3 {
		t.Errorf("DisplayOptions has %d entries, want 3", got)
	}
	text, err := cfg.Background.MarshalText()
	if err != nil || string(text) != "#123456" {
		t.Errorf("MarshalText = %q, %v", text, err)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = LogJSON
	var buf bytes.Buffer
	l := cfg.NewLogger(&buf)
	l.Info("hidden")
	l.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("output = %q", out)
	}
}
