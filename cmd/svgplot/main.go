// Command svgplot converts an SVG document into a plain text listing of
// plotter motion commands, one travel or extrude per line, coordinates
// in millimeters.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/plotkit/svgplot/plotter"
	"github.com/plotkit/svgplot/svgdom"
	"github.com/plotkit/svgplot/svgfont"
)

// profile is the machine description loaded from a YAML file.
type profile struct {
	ResolutionMM float64  `yaml:"resolution_mm"`
	MachineWidth float64  `yaml:"machine_width"`
	MachineDepth float64  `yaml:"machine_depth"`
	Fonts        []string `yaml:"fonts"`
}

func main() {
	var (
		profilePath = flag.String("profile", "", "YAML machine profile")
		resolution  = flag.Float64("resolution", plotter.DefaultResolutionMM, "curve resolution in mm")
		width       = flag.Float64("width", 210, "machine width in mm")
		depth       = flag.Float64("depth", 210, "machine depth in mm")
		output      = flag.String("o", "", "output file (default stdout)")
		verbose     = flag.Bool("v", false, "log diagnostics for tolerated document faults")
	)
	flag.Parse()

	level := slog.LevelError
	if *verbose {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	prof := profile{ResolutionMM: *resolution, MachineWidth: *width, MachineDepth: *depth}
	if *profilePath != "" {
		data, err := os.ReadFile(*profilePath)
		if err != nil {
			fatal("reading profile: %s", err)
		}
		if err := yaml.Unmarshal(data, &prof); err != nil {
			fatal("parsing profile: %s", err)
		}
	}

	var in io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fatal("%s", err)
		}
		defer f.Close()
		in = f
	}

	root, err := svgdom.ReadDocumentStream(in)
	if err != nil {
		fatal("parsing svg: %s", err)
	}
	svgdom.DereferenceUses(root, logger)
	tree := svgdom.Cascade(root, logger)

	p := plotter.New(plotter.Config{
		ResolutionMM: prof.ResolutionMM,
		MachineWidth: prof.MachineWidth,
		MachineDepth: prof.MachineDepth,
	})
	p.SetLogger(logger)
	if len(prof.Fonts) > 0 {
		fonts := svgfont.NewCollection(logger)
		for _, path := range prof.Fonts {
			if err := fonts.AddFile(path); err != nil {
				logger.Warn("cannot load font", "path", path, "err", err)
			}
		}
		p.SetFontSource(fonts)
	}

	var out io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fatal("%s", err)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	for command := range p.Plot(tree) {
		switch c := command.(type) {
		case plotter.Travel:
			fmt.Fprintf(w, "travel %.4f %.4f\n", c.X, c.Y)
		case plotter.Extrude:
			fmt.Fprintf(w, "extrude %.4f %.4f %.4f\n", c.X, c.Y, c.Width)
		}
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "svgplot: "+format+"\n", args...)
	os.Exit(1)
}
