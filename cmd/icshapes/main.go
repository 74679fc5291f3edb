// Command icshapes loads a technology fixture and draws one of its cells.
//
// Usage:
//
//	icshapes -fixture inverter.toml -cell inverter -output inverter.svg
//
// The renderer is chosen by -renderer or, when empty, by the output file
// extension: .png uses the raster renderer and .svg the SVG renderer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/icgeom"
	"github.com/gogpu/icgeom/cell"
	"github.com/gogpu/icgeom/internal/fixture"
	"github.com/gogpu/icgeom/shape"
	"github.com/gogpu/icgeom/shrink"
	"github.com/gogpu/icgeom/sink"
	"github.com/gogpu/icgeom/tech"

	_ "github.com/gogpu/icgeom/sink/raster"
	_ "github.com/gogpu/icgeom/sink/svg"
)

// margin is added around the drawn cell, in lambda.
const margin = 2

type config struct {
	fixture    string
	cell       string
	output     string
	renderer   string
	width      int
	height     int
	reasonable bool
	electrical bool
	ports      bool
	functions  string
	verbose    bool
	lang       string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "icshapes:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cfg config
	fs := flag.NewFlagSet("icshapes", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.fixture, "fixture", "", "technology and cells (.toml, .yaml)")
	fs.StringVar(&cfg.cell, "cell", "", "cell to draw (default: first cell)")
	fs.StringVar(&cfg.output, "output", "cell.png", "output file")
	fs.StringVar(&cfg.renderer, "renderer", "", "renderer name: "+strings.Join(sink.Renderers(), ", "))
	fs.IntVar(&cfg.width, "width", 800, "output width")
	fs.IntVar(&cfg.height, "height", 600, "output height")
	fs.BoolVar(&cfg.reasonable, "reasonable", false, "draw only the outer ring of large cut arrays")
	fs.BoolVar(&cfg.electrical, "electrical", false, "draw only electrically meaningful wire layers")
	fs.BoolVar(&cfg.ports, "ports", false, "draw port outlines")
	fs.StringVar(&cfg.functions, "functions", "", "comma-separated layer functions to draw (default: all)")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.StringVar(&cfg.lang, "lang", "en", "language for the summary numbers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.fixture == "" {
		fs.Usage()
		return errors.New("-fixture is required")
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	icgeom.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer icgeom.SetLogger(nil)

	f, err := fixture.Load(cfg.fixture)
	if err != nil {
		return err
	}
	c, err := pickCell(f, cfg.cell)
	if err != nil {
		return err
	}
	opts, err := cfg.options(f.Tech)
	if err != nil {
		return err
	}

	st, err := draw(c, cfg, opts)
	if err != nil {
		return err
	}
	icgeom.Logger().Info("icshapes: wrote", "file", cfg.output, "renderer", st.renderer, "shapes", st.shapes)

	p := message.NewPrinter(language.Make(cfg.lang))
	p.Fprintf(stdout, "%s: %d nodes, %d wires, %d shapes\n", c.Name, len(c.Nodes()), len(c.Arcs()), st.shapes)
	p.Fprintf(stdout, "bounds: %.1f x %.1f lambda at (%.1f, %.1f)\n",
		icgeom.ToLambda(st.bounds.Max.X-st.bounds.Min.X), icgeom.ToLambda(st.bounds.Max.Y-st.bounds.Min.Y),
		icgeom.ToLambda(st.bounds.Min.X), icgeom.ToLambda(st.bounds.Min.Y))
	p.Fprintf(stdout, "%s: %d bytes (%s)\n", cfg.output, st.bytes, st.renderer)
	return nil
}

func pickCell(f *fixture.Fixture, name string) (*cell.Cell, error) {
	if len(f.Cells) == 0 {
		return nil, errors.New("fixture has no cells")
	}
	if name == "" {
		return f.Cells[0], nil
	}
	if c := f.Cell(name); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("no cell %q", name)
}

func (cfg *config) options(t *tech.Technology) ([]shape.Option, error) {
	opts := []shape.Option{shape.WithShrinkage(shrink.NewCache(0))}
	if cfg.reasonable {
		opts = append(opts, shape.WithReasonable())
	}
	if cfg.electrical {
		opts = append(opts, shape.WithElectrical(t))
	}
	if cfg.functions != "" {
		var fs []tech.Function
		for name := range strings.SplitSeq(cfg.functions, ",") {
			fn, ok := tech.ParseFunction(strings.TrimSpace(name))
			if !ok {
				return nil, fmt.Errorf("unknown layer function %q", name)
			}
			fs = append(fs, fn)
		}
		opts = append(opts, shape.WithFunctions(tech.NewFunctionSet(fs...)))
	}
	return opts, nil
}

func rendererFor(name, output string) (string, error) {
	if name != "" {
		return name, nil
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".png":
		return "raster", nil
	case ".svg":
		return "svg", nil
	}
	return "", fmt.Errorf("cannot choose a renderer for %q; use -renderer", output)
}

type stats struct {
	renderer string
	shapes   int
	bounds   icgeom.Rect
	bytes    int64
}

// draw records the cell once, then replays it into the renderer with a view
// fitted to the recorded bounds.
func draw(c *cell.Cell, cfg config, opts []shape.Option) (stats, error) {
	st := stats{}
	var err error
	if st.renderer, err = rendererFor(cfg.renderer, cfg.output); err != nil {
		return st, err
	}
	r, err := sink.NewRenderer(st.renderer)
	if err != nil {
		return st, err
	}

	rec := sink.NewRecorder()
	var bb sink.Bounds
	b := shape.NewBuilder(sink.Tee(rec, &bb), opts...)
	st.shapes = b.ShapeOfCell(c)
	if cfg.ports {
		for _, n := range c.Nodes() {
			st.shapes += b.ShapeOfPorts(n)
		}
	}
	view, ok := bb.Rect()
	if !ok {
		return st, fmt.Errorf("cell %s has nothing to draw", c.Name)
	}
	st.bounds = view
	m := icgeom.FromLambda(margin)
	view = icgeom.Box(view.Min.X-m, view.Min.Y-m, view.Max.X+m, view.Max.Y+m)

	if err := r.Begin(view, cfg.width, cfg.height); err != nil {
		return st, err
	}
	rec.Replay(r)
	if err := r.End(); err != nil {
		return st, err
	}

	out, err := os.Create(cfg.output)
	if err != nil {
		return st, err
	}
	st.bytes, err = r.WriteTo(out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return st, fmt.Errorf("write %s: %w", cfg.output, err)
	}
	return st, nil
}
