// Package svgfont provides glyph outlines for the plotter's text
// renderer. A Source resolves a font request to a Face; a Face hands
// out glyph contours in millimeters with TrueType on/off-curve
// semantics, plus the metrics the renderer needs for decorations.
package svgfont

// Spec is a resolved font request: everything is already cascaded and
// converted, so a Source only has to match it against the fonts it
// holds.
type Spec struct {
	Family string  // lowercased family name, e.g. "serif"
	Style  string  // "normal", "italic" or "oblique"
	Weight float64 // CSS font-weight scale, 400 is regular
	SizeMM float64 // em size in millimeters
}

// Bold reports whether the requested weight calls for a bold face.
func (s Spec) Bold() bool { return s.Weight >= 550 }

// ContourPoint is one point of a glyph contour. Off-curve points are
// quadratic control points between their on-curve neighbours; two
// adjacent off-curve points imply an on-curve midpoint between them.
// Points with Cubic set are cubic control points instead, coming in
// pairs (PostScript-flavoured outlines).
type ContourPoint struct {
	X, Y    float64 // mm relative to the glyph origin, y down
	OnCurve bool
	Cubic   bool
}

// Glyph is the outline of a single character at the requested size.
type Glyph struct {
	Contours  [][]ContourPoint // closed loops; the first point is on-curve
	AdvanceMM float64
}

// Metrics are the face-wide measures used to place text decorations.
type Metrics struct {
	AscentMM    float64 // baseline to top of a line
	HeightMM    float64 // full line height
	UnderlineMM float64 // baseline to underline, positive down
}

// Face is a font scaled to a specific size. A Face is not safe for
// concurrent use; resolve one per traversal.
type Face interface {
	Glyph(r rune) (Glyph, bool)
	// Kern returns the kerning adjustment in mm between two runes.
	Kern(prev, next rune) float64
	Metrics() Metrics
	// Style reports the design of the face itself, letting the caller
	// synthesize oblique or bold when the request was not satisfied.
	Style() (bold, italic bool)
}

// Source resolves font requests. Implementations should fall back to
// the closest available face rather than fail when the exact family or
// style is missing.
type Source interface {
	Resolve(spec Spec) (Face, error)
}
