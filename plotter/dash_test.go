package plotter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDashState(t *testing.T) {
	vp := viewport{imageW: 100, imageH: 100, unitW: 1, unitH: 1}

	d := newDashState(vp, "2mm 3mm 4mm")
	require.Len(t, d.pattern, 6, "odd patterns are doubled")
	assert.Equal(t, []float64{2, 3, 4, 2, 3, 4}, d.pattern)
	assert.InDelta(t, 18, d.total, 1e-9)

	d = newDashState(vp, "2mm, 2mm")
	assert.Equal(t, []float64{2, 2}, d.pattern)

	assert.Empty(t, newDashState(vp, "").pattern)
	assert.Empty(t, newDashState(vp, "none").pattern)
	assert.Empty(t, newDashState(vp, "-1mm 0").pattern, "non-positive entries are dropped")
}

func TestDashSplitAlternates(t *testing.T) {
	e, rec := newTestEmitter(0.05)
	e.dash = dashState{pattern: []float64{2, 2}, total: 4}
	e.extrudeLine(0, 0, 10, 0, 0.4, identity)

	// 2mm on, 2mm off over 10mm, plus the closing extrude to the endpoint
	require.Len(t, rec.commands, 6)
	assert.Equal(t, Extrude{2, 0, 0.4}, rec.commands[0])
	assert.Equal(t, Travel{4, 0}, rec.commands[1])
	assert.Equal(t, Extrude{6, 0, 0.4}, rec.commands[2])
	assert.Equal(t, Travel{8, 0}, rec.commands[3])
	assert.Equal(t, Extrude{10, 0, 0.4}, rec.commands[4])
	assert.Equal(t, Extrude{10, 0, 0.4}, rec.commands[5], "exact endpoint is always extruded")
}

func TestDashSplitOffsetCarriesOver(t *testing.T) {
	e, rec := newTestEmitter(0.05)
	e.dash = dashState{pattern: []float64{2, 2}, total: 4}

	e.extrudeLine(0, 0, 3, 0, 0.4, identity)
	assert.InDelta(t, 3, e.dash.offset, 1e-9, "offset advances by segment length")

	rec.commands = nil
	e.extrudeLine(3, 0, 6, 0, 0.4, identity)
	// 3mm into the pattern: 1mm of gap left, then 2mm on
	assert.Equal(t, Travel{4, 0}, rec.commands[0])
	assert.Equal(t, Extrude{6, 0, 0.4}, rec.commands[1])
}

func TestDashSplitNegativeOffset(t *testing.T) {
	e, rec := newTestEmitter(0.05)
	e.dash = dashState{pattern: []float64{2, 2}, total: 4, offset: -1}
	e.extrudeLine(0, 0, 4, 0, 0.4, identity)

	// -1 normalizes to 3: 1mm gap, then 2mm on, then 1mm gap
	assert.Equal(t, Travel{1, 0}, rec.commands[0])
	assert.Equal(t, Extrude{3, 0, 0.4}, rec.commands[1])
}

func TestDashSplitNoPattern(t *testing.T) {
	e, rec := newTestEmitter(0.05)
	e.extrudeLine(1, 1, 5, 5, 0.4, identity)
	require.Len(t, rec.commands, 1)
	assert.Equal(t, Extrude{5, 5, 0.4}, rec.commands[0])
}

func TestDashSplitDeviceSpaceLengths(t *testing.T) {
	// the dash pattern applies after the transform: a scaled 5mm line
	// is 10mm of pattern
	e, _ := newTestEmitter(0.05)
	e.dash = dashState{pattern: []float64{2, 2}, total: 4}
	e.extrudeLine(0, 0, 5, 0, 0.4, scaling(2, 2))
	assert.InDelta(t, 10, e.dash.offset, 1e-9)
}
