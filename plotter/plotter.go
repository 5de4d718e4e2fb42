package plotter

import (
	"log/slog"

	"github.com/plotkit/svgplot/svgdom"
	"github.com/plotkit/svgplot/svgfont"
)

// Config is the device configuration of a Plotter.
type Config struct {
	// ResolutionMM is the chord tolerance in device space: flattened
	// curve segments deviate from the true curve by at most roughly
	// this distance.
	ResolutionMM float64
	// MachineWidth and MachineDepth (mm) form the default viewport when
	// the document declares no viewBox.
	MachineWidth float64
	MachineDepth float64
}

// DefaultResolutionMM is used when Config.ResolutionMM is not positive.
const DefaultResolutionMM = 0.05

// Plotter turns cascaded SVG trees into motion command streams. A
// Plotter is immutable once configured; each Plot call owns its
// traversal state, so independent traversals may run concurrently.
type Plotter struct {
	cfg    Config
	fonts  svgfont.Source
	logger *slog.Logger
}

// New returns a Plotter with the given device configuration.
func New(cfg Config) *Plotter {
	if cfg.ResolutionMM <= 0 {
		cfg.ResolutionMM = DefaultResolutionMM
	}
	return &Plotter{cfg: cfg, logger: slog.Default()}
}

// SetLogger replaces the diagnostics logger. Must be called before Plot.
func (p *Plotter) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// SetFontSource installs the glyph provider used for <text> elements.
// Without one, text elements are skipped with a warning.
func (p *Plotter) SetFontSource(fonts svgfont.Source) { p.fonts = fonts }

// Plot walks the cascaded tree and lazily produces the motion commands
// drawing it. Abandoning the iteration stops the walk; the stream can
// only be consumed once, but Plot may be called again for a fresh walk.
func (p *Plotter) Plot(root *svgdom.Element) Stream {
	return func(yield func(Command) bool) {
		e := &emitter{
			res:    p.cfg.ResolutionMM,
			fonts:  p.fonts,
			logger: p.logger,
			yield:  yield,
			vp: viewport{
				w: p.cfg.MachineWidth, h: p.cfg.MachineDepth,
				imageW: p.cfg.MachineWidth, imageH: p.cfg.MachineDepth,
				unitW: 1, unitH: 1,
			},
		}
		e.element(root)
	}
}

// emitter is the per-traversal state: the current viewport scope, the
// dash state of the shape being drawn and the output hook.
type emitter struct {
	res    float64
	fonts  svgfont.Source
	logger *slog.Logger

	vp   viewport
	dash dashState

	yield   func(Command) bool
	stopped bool
}

// emit forwards one command to the consumer. After the consumer stops
// the iteration every further emit is a no-op, unwinding the walk.
func (e *emitter) emit(c Command) bool {
	if e.stopped {
		return false
	}
	if !e.yield(c) {
		e.stopped = true
	}
	return !e.stopped
}

// travel emits a Travel to the transformed point, shifted by the
// viewport origin.
func (e *emitter) travel(x, y float64, m matrix) {
	tx, ty := m.apply(x, y)
	e.emit(Travel{tx - e.vp.x*e.vp.unitW, ty - e.vp.y*e.vp.unitH})
}

// extrudeLine draws the straight segment through the dash sequencer.
func (e *emitter) extrudeLine(sx, sy, ex, ey, width float64, m matrix) {
	e.dash = e.dash.split(sx, sy, ex, ey, width, m, e.vp, e.emit)
}
