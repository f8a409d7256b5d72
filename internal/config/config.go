// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the settings of the diaexport command.
//
// Settings are layered: built-in defaults, then an optional TOML file,
// then environment variables prefixed with DIA_ (for example
// DIA_RENDER_BOUNDING_BOXES=true). Later layers win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/diagram/display"
	"github.com/gogpu/diagram/export"
	"github.com/gogpu/diagram/render"
	"github.com/gogpu/diagram/surface"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "DIA"

// Log output formats.
const (
	LogText = "text"
	LogJSON = "json"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config holds the command settings.
type Config struct {
	// Format is the export format. Empty means infer it from the output
	// file extension.
	Format string `toml:"format" envconfig:"FORMAT"`

	// Scale overrides the exporter's default scale. Zero keeps it.
	Scale float64 `toml:"scale" envconfig:"SCALE"`

	Title      string `toml:"title" envconfig:"TITLE"`
	Background Color  `toml:"background" envconfig:"BACKGROUND"`

	// BoundingBoxes outlines every object's bounding box on displays.
	BoundingBoxes bool `toml:"render_bounding_boxes" envconfig:"RENDER_BOUNDING_BOXES"`

	// Grid is the display grid spacing in centimetres. Zero hides it.
	Grid float64 `toml:"grid" envconfig:"GRID"`

	// Surface is the surface kind displays paint onto.
	Surface string `toml:"surface" envconfig:"SURFACE"`

	LogLevel  slog.Level `toml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string     `toml:"log_format" envconfig:"LOG_FORMAT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Surface:   surface.KindImage,
		LogLevel:  slog.LevelWarn,
		LogFormat: LogText,
	}
}

// Load returns the defaults overlaid with the TOML file at path, if path
// is not empty, and then with the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.ReadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ReadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReadFile overlays the settings in the TOML file at path.
func (c *Config) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Decode overlays the TOML settings read from r. Unknown keys are an
// error.
func (c *Config) Decode(r io.Reader) error {
	err := toml.NewDecoder(r).DisallowUnknownFields().Decode(c)
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		return fmt.Errorf("%w: %s", ErrInvalid, strict.String())
	}
	return err
}

// ReadEnv overlays the settings found in the environment. Unset variables
// leave the current value alone.
func (c *Config) ReadEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	switch {
	case c.Scale < 0:
		return fmt.Errorf("%w: negative scale %g", ErrInvalid, c.Scale)
	case c.Grid < 0:
		return fmt.Errorf("%w: negative grid spacing %g", ErrInvalid, c.Grid)
	case c.LogFormat != LogText && c.LogFormat != LogJSON:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.LogFormat)
	case !surface.IsRegistered(c.Surface):
		return fmt.Errorf("%w: surface %q, want one of %v", ErrInvalid, c.Surface, surface.Kinds())
	}
	return nil
}

// ExportOptions converts the settings into exporter options.
func (c *Config) ExportOptions() []export.Option {
	var opts []export.Option
	if c.Scale > 0 {
		opts = append(opts, export.WithScale(c.Scale))
	}
	if c.Title != "" {
		opts = append(opts, export.WithTitle(c.Title))
	}
	if c.Background.Valid {
		opts = append(opts, export.WithBackground(c.Background.Color))
	}
	return opts
}

// DisplayOptions converts the settings into display options.
func (c *Config) DisplayOptions() []display.Option {
	opts := []display.Option{display.WithBoundingBoxes(c.BoundingBoxes)}
	if c.Grid > 0 {
		opts = append(opts, display.WithGrid(c.Grid))
	}
	if c.Background.Valid {
		opts = append(opts, display.WithBackground(c.Background.Color))
	}
	return opts
}

// NewLogger returns a logger writing to w in the configured format and
// level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == LogJSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// Color is a "#rrggbb" setting. The zero value is unset.
type Color struct {
	render.Color
	Valid bool
}

func (c *Color) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Color{}
		return nil
	}
	parsed, err := render.ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = Color{Color: parsed, Valid: true}
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	if !c.Valid {
		return nil, nil
	}
	return []byte(c.Hex()), nil
}
