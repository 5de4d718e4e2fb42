package svgfont

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func testCollection(t *testing.T) *Collection {
	t.Helper()
	c := NewCollection(testLogger)
	require.NoError(t, c.Add(goregular.TTF))
	return c
}

func TestCollectionResolve(t *testing.T) {
	c := testCollection(t)
	face, err := c.Resolve(Spec{Family: "go", Style: "normal", Weight: 400, SizeMM: 10})
	require.NoError(t, err)
	require.NotNil(t, face)

	bold, italic := face.Style()
	assert.False(t, bold)
	assert.False(t, italic)
}

func TestCollectionResolveUnknownFamilySubstitutes(t *testing.T) {
	c := testCollection(t)
	face, err := c.Resolve(Spec{Family: "comic sans ms", Style: "normal", Weight: 400, SizeMM: 10})
	require.NoError(t, err)
	assert.NotNil(t, face)
}

func TestCollectionResolveEmpty(t *testing.T) {
	c := NewCollection(testLogger)
	_, err := c.Resolve(Spec{Family: "serif", SizeMM: 10})
	assert.ErrorIs(t, err, ErrNoFonts)
}

func TestFaceGlyph(t *testing.T) {
	c := testCollection(t)
	face, err := c.Resolve(Spec{Family: "go", Style: "normal", Weight: 400, SizeMM: 10})
	require.NoError(t, err)

	glyph, ok := face.Glyph('A')
	require.True(t, ok)
	require.NotEmpty(t, glyph.Contours, "A has at least an outer contour")
	assert.Greater(t, glyph.AdvanceMM, 0.0)
	assert.Less(t, glyph.AdvanceMM, 10.0, "advance is below the em size")

	for _, contour := range glyph.Contours {
		require.NotEmpty(t, contour)
		assert.True(t, contour[0].OnCurve, "contours start on the curve")
		for _, p := range contour {
			// glyphs sit on the baseline, extending upward (negative y)
			assert.GreaterOrEqual(t, p.Y, -12.0)
			assert.LessOrEqual(t, p.Y, 4.0)
			assert.GreaterOrEqual(t, p.X, -2.0)
			assert.LessOrEqual(t, p.X, 12.0)
		}
	}
}

func TestFaceGlyphScalesWithSize(t *testing.T) {
	c := testCollection(t)
	small, err := c.Resolve(Spec{Family: "go", Weight: 400, SizeMM: 5})
	require.NoError(t, err)
	large, err := c.Resolve(Spec{Family: "go", Weight: 400, SizeMM: 10})
	require.NoError(t, err)

	sg, ok := small.Glyph('M')
	require.True(t, ok)
	lg, ok := large.Glyph('M')
	require.True(t, ok)
	assert.InDelta(t, 2, lg.AdvanceMM/sg.AdvanceMM, 0.05)
}

func TestFaceMetrics(t *testing.T) {
	c := testCollection(t)
	face, err := c.Resolve(Spec{Family: "go", Weight: 400, SizeMM: 10})
	require.NoError(t, err)

	m := face.Metrics()
	assert.Greater(t, m.AscentMM, 0.0)
	assert.Greater(t, m.HeightMM, m.AscentMM)
	assert.Greater(t, m.UnderlineMM, 0.0, "underline sits below the baseline")
	assert.Less(t, m.UnderlineMM, m.AscentMM)
}

func TestSpecBold(t *testing.T) {
	assert.False(t, Spec{Weight: 400}.Bold())
	assert.True(t, Spec{Weight: 700}.Bold())
	assert.True(t, Spec{Weight: 550}.Bold())
}

func TestCollectionAddInvalid(t *testing.T) {
	c := NewCollection(testLogger)
	assert.Error(t, c.Add([]byte("not a font")))
}
