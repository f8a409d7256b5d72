// Command diaexport converts diagram documents to other formats.
//
// Usage:
//
//	diaexport [flags] input.yaml
//
// The output format is taken from -format, the configuration, or the
// extension of -o, in that order. With -display the document is instead
// drawn through an on-screen display of the given size and the view is
// saved as PNG, including the grid and bounding box overlays. With
// DIA_SURFACE=null the display paints nowhere and the flush statistics
// are printed instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gogpu/diagram"
	"github.com/gogpu/diagram/app"
	"github.com/gogpu/diagram/docfile"
	"github.com/gogpu/diagram/export"
	_ "github.com/gogpu/diagram/export/eps"
	_ "github.com/gogpu/diagram/export/pdf"
	_ "github.com/gogpu/diagram/export/png"
	_ "github.com/gogpu/diagram/export/svg"
	_ "github.com/gogpu/diagram/export/trace"
	"github.com/gogpu/diagram/internal/config"
	"github.com/gogpu/diagram/render/raster"
	"github.com/gogpu/diagram/surface"
)

var errUsage = errors.New("usage: diaexport [flags] input.yaml")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			slog.Error("diaexport", "error", err)
		}
		os.Exit(1)
	}
}

type options struct {
	config  string
	format  string
	output  string
	scale   float64
	display string
	list    bool
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options
	fs := flag.NewFlagSet("diaexport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.config, "config", "", "TOML configuration file")
	fs.StringVar(&o.format, "format", "", "output format (see -list)")
	fs.StringVar(&o.output, "o", "", "output file (default: input name with the format's extension)")
	fs.Float64Var(&o.scale, "scale", 0, "exporter scale (0 keeps the format default)")
	fs.StringVar(&o.display, "display", "", "render through a WxH pixel display and save it as PNG")
	fs.BoolVar(&o.list, "list", false, "list export formats and exit")
	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, rest, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.list {
		for _, f := range export.Formats() {
			fmt.Fprintln(stdout, f)
		}
		return nil
	}
	if len(rest) != 1 {
		return errUsage
	}
	input := rest[0]

	cfg, err := config.Load(o.config)
	if err != nil {
		return err
	}
	if o.format != "" {
		cfg.Format = o.format
	}
	if o.scale != 0 {
		cfg.Scale = o.scale
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.NewLogger(stderr)
	slog.SetDefault(logger)
	diagram.SetLogger(logger)
	defer diagram.SetLogger(nil)

	d, err := docfile.LoadFile(input)
	if err != nil {
		return err
	}

	if o.display != "" {
		w, h, err := parseSize(o.display)
		if err != nil {
			return err
		}
		out := o.output
		if out == "" {
			out = replaceExt(input, "png")
		}
		return snapshot(d, cfg, w, h, out, stdout)
	}

	format, out, err := target(cfg.Format, o.output, input)
	if err != nil {
		return err
	}
	if err := export.ToFile(ctx, d, format, out, cfg.ExportOptions()...); err != nil {
		return err
	}
	logger.Info("exported", "input", input, "output", out, "format", format)
	return nil
}

// target picks the format and output path from whichever of them is known.
func target(format, output, input string) (string, string, error) {
	if format == "" {
		if output == "" {
			return "", "", fmt.Errorf("%w: need -format or -o", errUsage)
		}
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(output), "."))
	}
	if !export.IsRegistered(format) {
		return "", "", fmt.Errorf("%w %q", export.ErrUnknownFormat, format)
	}
	if output == "" {
		output = replaceExt(input, format)
	}
	return format, output, nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid display size %q, want WxH", s)
	}
	return w, h, nil
}

// snapshot shows d in a display of w by h pixels and writes what the
// display shows to path. A null surface keeps no pixels, so only the
// flush statistics are printed.
func snapshot(d *diagram.Diagram, cfg *config.Config, w, h int, path string, stdout io.Writer) (err error) {
	actx := app.New()
	defer func() {
		if cerr := actx.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	id := actx.AddDiagram(d)
	s, err := surface.New(cfg.Surface, w, h)
	if err != nil {
		return err
	}
	defer s.Close()

	r := raster.New()
	_, disp, err := actx.OpenDisplay(id, r, s, cfg.DisplayOptions()...)
	if err != nil {
		_ = r.Close()
		return err
	}
	stats := disp.Flush()
	diagram.Logger().Debug("diaexport: display flushed",
		"objects", stats.Objects, "blitted", stats.Blitted)

	if ns, ok := s.(*surface.NullSurface); ok {
		_, err := fmt.Fprintf(stdout, "%s: %d objects drawn, %d blits, %d pixels\n",
			d.Name(), stats.Objects, ns.Blits(), ns.Pixels())
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, s.Snapshot()); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
