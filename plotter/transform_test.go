package plotter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func applyTo(m matrix, x, y float64) [2]float64 {
	tx, ty := m.apply(x, y)
	return [2]float64{tx, ty}
}

func TestParseTransformTranslateScale(t *testing.T) {
	m := parseTransform("translate(10, 5) scale(2)", testLogger)
	assert.InDelta(t, 10, applyTo(m, 0, 0)[0], 1e-9)
	assert.InDelta(t, 5, applyTo(m, 0, 0)[1], 1e-9)
	assert.InDelta(t, 12, applyTo(m, 1, 1)[0], 1e-9)
	assert.InDelta(t, 7, applyTo(m, 1, 1)[1], 1e-9)
}

func TestParseTransformFunctions(t *testing.T) {
	for _, tt := range []struct {
		transform string
		x, y      float64
		wantX     float64
		wantY     float64
	}{
		{"matrix(1,0,0,1,7,8)", 1, 1, 8, 9},
		{"translate(5)", 1, 1, 6, 1},
		{"translateX(5)", 1, 1, 6, 1},
		{"translateY(5)", 1, 1, 1, 6},
		{"scale(3)", 1, 2, 3, 6},
		{"scale(3,4)", 1, 2, 3, 8},
		{"scaleX(3)", 1, 2, 3, 2},
		{"scaleY(4)", 1, 2, 1, 8},
		{"rotate(90)", 1, 0, 0, 1},
		{"rotateZ(90)", 1, 0, 0, 1},
		{"rotate(90, 1, 1)", 1, 0, 2, 1},
		{"skewX(45)", 0, 1, 1, 1},
		{"skewY(45)", 1, 0, 1, 1},
		{"none", 1, 2, 1, 2},
		{"scale(2) initial", 1, 2, 1, 2},
	} {
		m := parseTransform(tt.transform, testLogger)
		got := applyTo(m, tt.x, tt.y)
		assert.InDelta(t, tt.wantX, got[0], 1e-9, "%s x", tt.transform)
		assert.InDelta(t, tt.wantY, got[1], 1e-9, "%s y", tt.transform)
	}
}

func TestParseTransformMalformedSkipped(t *testing.T) {
	// each malformed call is skipped individually, valid ones apply
	m := parseTransform("bogus(1) translate(1,2 scale() matrix(1,2) translate(3,4)", testLogger)
	got := applyTo(m, 0, 0)
	assert.InDelta(t, 3, got[0], 1e-9)
	assert.InDelta(t, 4, got[1], 1e-9)
}

func TestParseTransformEmpty(t *testing.T) {
	assert.Equal(t, identity, parseTransform("", testLogger))
	assert.Equal(t, identity, parseTransform("   ", testLogger))
}

func TestMatrixMult(t *testing.T) {
	// rightmost applies first
	m := translation(10, 0).mult(scaling(2, 2))
	got := applyTo(m, 1, 1)
	assert.InDelta(t, 12, got[0], 1e-9)
	assert.InDelta(t, 2, got[1], 1e-9)
}
