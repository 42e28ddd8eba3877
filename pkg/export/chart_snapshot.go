package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/compassviz/pkg/debug"
	"github.com/vanderheijden86/compassviz/pkg/scene"
)

// ErrNoScene is returned when a render is requested without a scene.
var ErrNoScene = errors.New("no scene to export")

// Format is an output encoding for a chart scene.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
)

// ParseFormat accepts "svg", ".svg", "PNG" and so on.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatSVG, FormatPNG, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want svg, png or json)", s)
	}
}

// ChartOptions controls chart export behaviour.
type ChartOptions struct {
	Path   string       // Output path; format inferred from extension when Format empty
	Format string       // "svg", "png" or "json" (case-insensitive). If empty, inferred from Path.
	Scene  *scene.Scene // Scene to render
}

// resolve fills in the format and normalizes the path. A path without an
// extension gets ".svg".
func (o ChartOptions) resolve() (ChartOptions, Format, error) {
	if o.Scene == nil {
		return o, "", ErrNoScene
	}
	if o.Path == "" {
		return o, "", fmt.Errorf("output path is required")
	}
	if o.Format != "" {
		f, err := ParseFormat(o.Format)
		return o, f, err
	}
	ext := filepath.Ext(o.Path)
	if ext == "" {
		o.Path += ".svg"
		return o, FormatSVG, nil
	}
	f, err := ParseFormat(ext)
	return o, f, err
}

// SaveChart renders a scene to disk, creating parent directories as needed.
func SaveChart(opts ChartOptions) error {
	opts, format, err := opts.resolve()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	file, err := os.Create(opts.Path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(file)
	if err := Render(bw, format, opts.Scene); err != nil {
		file.Close()
		return fmt.Errorf("render %s: %w", opts.Path, err)
	}
	if err := bw.Flush(); err != nil {
		file.Close()
		return err
	}
	debug.Log("export: wrote %s (%s)", opts.Path, format)
	return file.Close()
}

// Render writes the scene to w in the given format.
func Render(w io.Writer, format Format, s *scene.Scene) error {
	switch format {
	case FormatSVG:
		return RenderSVG(w, s)
	case FormatPNG:
		return RenderPNG(w, s)
	case FormatJSON:
		return RenderJSON(w, s)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// errWriter remembers the first write error so renderers built on
// fire-and-forget writers can report it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
