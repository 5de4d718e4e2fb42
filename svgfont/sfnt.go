package svgfont

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Glyph coordinates come out of sfnt in 26.6 fixed point pixels at 96
// dpi, y down; mmPerPixel converts them to millimeters.
const mmPerPixel = 25.4 / 96

// ErrNoFonts is returned by Resolve on an empty collection.
var ErrNoFonts = errors.New("svgfont: no fonts loaded")

// Collection is a Source over a set of parsed font files, grouped by
// family name. The zero value is not usable; call NewCollection.
type Collection struct {
	families map[string][]*collectionEntry
	all      []*collectionEntry
	logger   *slog.Logger
}

type collectionEntry struct {
	font   *sfnt.Font
	family string
	bold   bool
	italic bool
}

func NewCollection(logger *slog.Logger) *Collection {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection{families: map[string][]*collectionEntry{}, logger: logger}
}

// Add parses a TrueType or OpenType font and registers it under its
// family name. Style flags are read from the subfamily name.
func (c *Collection) Add(data []byte) error {
	f, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("svgfont: parsing font: %w", err)
	}
	var buf sfnt.Buffer
	family, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		return fmt.Errorf("svgfont: reading family name: %w", err)
	}
	family = strings.ToLower(family)
	subfamily, _ := f.Name(&buf, sfnt.NameIDSubfamily)
	subfamily = strings.ToLower(subfamily)

	entry := &collectionEntry{
		font:   f,
		family: family,
		bold:   strings.Contains(subfamily, "bold"),
		italic: strings.Contains(subfamily, "italic") || strings.Contains(subfamily, "oblique"),
	}
	c.families[family] = append(c.families[family], entry)
	c.all = append(c.all, entry)
	return nil
}

// AddFile reads and registers one font file.
func (c *Collection) AddFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.Add(data)
}

// Resolve picks the font matching the request best: the requested
// family if present (any family otherwise), then the candidate
// satisfying the most of the bold and italic attributes. It only fails
// when the collection is empty.
func (c *Collection) Resolve(spec Spec) (Face, error) {
	if len(c.all) == 0 {
		return nil, ErrNoFonts
	}
	candidates := c.families[strings.ToLower(spec.Family)]
	if len(candidates) == 0 {
		c.logger.Warn("font family not available, substituting", "family", spec.Family)
		candidates = c.all
	}

	wantItalic := spec.Style == "italic"
	best := candidates[0]
	bestScore := -1
	for _, candidate := range candidates {
		score := 0
		if candidate.italic == wantItalic {
			score++
		}
		if candidate.bold == spec.Bold() {
			score++
		}
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	ppem := fixed.Int26_6(math.Round(spec.SizeMM / mmPerPixel * 64))
	if ppem <= 0 {
		ppem = 1
	}
	return &sfntFace{
		font:   best.font,
		ppem:   ppem,
		sizeMM: spec.SizeMM,
		bold:   best.bold,
		italic: best.italic,
	}, nil
}

var _ Source = (*Collection)(nil)

// sfntFace adapts one sfnt font at a fixed size. The shared sfnt.Buffer
// makes it single-threaded, as the Face contract allows.
type sfntFace struct {
	font   *sfnt.Font
	buf    sfnt.Buffer
	ppem   fixed.Int26_6
	sizeMM float64
	bold   bool
	italic bool
}

func (f *sfntFace) Style() (bold, italic bool) { return f.bold, f.italic }

func (f *sfntFace) Glyph(r rune) (Glyph, bool) {
	index, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return Glyph{}, false
	}
	// index 0 is .notdef, which draws the customary tofu box
	segments, err := f.font.LoadGlyph(&f.buf, index, f.ppem, nil)
	if err != nil {
		return Glyph{}, false
	}

	var g Glyph
	var contour []ContourPoint
	flush := func() {
		if len(contour) > 0 {
			g.Contours = append(g.Contours, contour)
			contour = nil
		}
	}
	for _, s := range segments {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			contour = append(contour, onPoint(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			contour = append(contour, onPoint(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			contour = append(contour, offPoint(s.Args[0], false), onPoint(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			contour = append(contour, offPoint(s.Args[0], true), offPoint(s.Args[1], true), onPoint(s.Args[2]))
		}
	}
	flush()

	advance, err := f.font.GlyphAdvance(&f.buf, index, f.ppem, font.HintingNone)
	if err == nil {
		g.AdvanceMM = fixedToMM(advance)
	}
	return g, true
}

func (f *sfntFace) Kern(prev, next rune) float64 {
	prevIndex, err := f.font.GlyphIndex(&f.buf, prev)
	if err != nil || prevIndex == 0 {
		return 0
	}
	nextIndex, err := f.font.GlyphIndex(&f.buf, next)
	if err != nil || nextIndex == 0 {
		return 0
	}
	kern, err := f.font.Kern(&f.buf, prevIndex, nextIndex, f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToMM(kern)
}

func (f *sfntFace) Metrics() Metrics {
	m, err := f.font.Metrics(&f.buf, f.ppem, font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	out := Metrics{
		AscentMM:    fixedToMM(m.Ascent),
		HeightMM:    fixedToMM(m.Height),
		UnderlineMM: fixedToMM(m.Descent) / 2,
	}
	if post := f.font.PostTable(); post != nil && post.UnderlinePosition != 0 {
		// the post table position is in font units, negative below the
		// baseline
		upem := float64(f.font.UnitsPerEm())
		out.UnderlineMM = -float64(post.UnderlinePosition) / upem * f.sizeMM
	}
	return out
}

func onPoint(p fixed.Point26_6) ContourPoint {
	return ContourPoint{X: fixedToMM(p.X), Y: fixedToMM(p.Y), OnCurve: true}
}

func offPoint(p fixed.Point26_6, cubic bool) ContourPoint {
	return ContourPoint{X: fixedToMM(p.X), Y: fixedToMM(p.Y), Cubic: cubic}
}

func fixedToMM(v fixed.Int26_6) float64 {
	return float64(v) / 64 * mmPerPixel
}
