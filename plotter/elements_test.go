package plotter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docHeader = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="100mm" height="100mm">`

func unitConfig() Config {
	return Config{ResolutionMM: 0.1, MachineWidth: 100, MachineDepth: 100}
}

func TestRectSharpCorners(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<rect x="5" y="5" width="10" height="5"/></svg>`)
	require.Len(t, commands, 5, "travel plus one extrude per edge")
	assert.Equal(t, Travel{5, 5}, commands[0])
	assert.Equal(t, Extrude{15, 5, 0.35}, commands[1])
	assert.Equal(t, Extrude{15, 10, 0.35}, commands[2])
	assert.Equal(t, Extrude{5, 10, 0.35}, commands[3])
	assert.Equal(t, Extrude{5, 5, 0.35}, commands[4], "the outline is closed")
}

func TestRectZeroSizeSkipped(t *testing.T) {
	assert.Empty(t, plotDoc(t, unitConfig(), docHeader+`<rect width="0" height="5"/></svg>`))
	assert.Empty(t, plotDoc(t, unitConfig(), docHeader+`<rect width="5"/></svg>`))
}

func TestRectRoundedCornersClamped(t *testing.T) {
	// rx/ry larger than half the rectangle behave as half
	a := plotDoc(t, unitConfig(), docHeader+`<rect width="10" height="10" rx="50" ry="50"/></svg>`)
	b := plotDoc(t, unitConfig(), docHeader+`<rect width="10" height="10" rx="5" ry="5"/></svg>`)
	assert.Equal(t, b, a)
}

func TestCircle(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<circle cx="50" cy="50" r="10"/></svg>`)
	require.NotEmpty(t, commands)
	assert.Equal(t, Travel{60, 50}, commands[0], "starts at the rightmost point")
	for _, c := range commands[1:] {
		ex, ok := c.(Extrude)
		require.True(t, ok)
		dx, dy := ex.X-50, ex.Y-50
		assert.InDelta(t, 100, dx*dx+dy*dy, 4, "chord endpoints stay near the circle")
	}
	last := commands[len(commands)-1].(Extrude)
	assert.InDelta(t, 60, last.X, 1e-6)
	assert.InDelta(t, 50, last.Y, 1e-6)
}

func TestCircleWithoutRadiusSkipped(t *testing.T) {
	assert.Empty(t, plotDoc(t, unitConfig(), docHeader+`<circle cx="50" cy="50"/></svg>`))
}

func TestEllipseNeedsBothRadii(t *testing.T) {
	assert.Empty(t, plotDoc(t, unitConfig(), docHeader+`<ellipse rx="5"/></svg>`))
	assert.NotEmpty(t, plotDoc(t, unitConfig(), docHeader+`<ellipse rx="5" ry="3"/></svg>`))
}

func TestLine(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<line x1="1" y1="2" x2="11" y2="2"/></svg>`)
	require.Len(t, commands, 2)
	assert.Equal(t, Travel{1, 2}, commands[0])
	assert.Equal(t, Extrude{11, 2, 0.35}, commands[1])
}

func TestPolygonCloses(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<polygon points="0,0 10,0 10,10"/></svg>`)
	require.Len(t, commands, 4)
	assert.Equal(t, Travel{0, 0}, commands[0])
	assert.Equal(t, Extrude{0, 0, 0.35}, commands[3], "polygon closes on the first point")
}

func TestPolylineStaysOpen(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<polyline points="0,0 10,0 10,10"/></svg>`)
	require.Len(t, commands, 3)
	assert.Equal(t, Extrude{10, 10, 0.35}, commands[2])
}

func TestPolygonMalformedPointsDropped(t *testing.T) {
	a := plotDoc(t, unitConfig(), docHeader+`<polygon points="0,0 x,y 10,0 10,10 5"/></svg>`)
	b := plotDoc(t, unitConfig(), docHeader+`<polygon points="0,0 10,0 10,10"/></svg>`)
	assert.Equal(t, b, a)
}

func TestGroupRecurses(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<g><line x2="5"/><line x2="6"/></g></svg>`)
	assert.Len(t, commands, 4)
}

func TestGroupTransformAppliesToChildren(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<g transform="translate(10,20)"><line x2="5"/></g></svg>`)
	require.Len(t, commands, 2)
	assert.Equal(t, Travel{10, 20}, commands[0])
	assert.Equal(t, Extrude{15, 20, 0.35}, commands[1])
}

func TestSwitchRendersFirstEligibleBranch(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<switch>
		<line x2="1" requiredFeatures="http://example.com/unsupported"/>
		<line x2="2"/>
		<line x2="3"/>
	</switch></svg>`)
	require.Len(t, commands, 2, "only the first eligible branch renders")
	assert.Equal(t, Extrude{2, 0, 0.35}, commands[1])
}

func TestSwitchSupportedFeatureList(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<switch>
		<line x2="1" requiredFeatures="http://www.w3.org/TR/SVG11/feature#Shape, http://www.w3.org/TR/SVG11/feature#BasicText"/>
	</switch></svg>`)
	assert.Len(t, commands, 2)
}

func TestNestedSVGViewportRestored(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`
		<svg viewBox="0 0 10 10" width="20mm" height="20mm">
			<line x2="10"/>
		</svg>
		<line x2="10"/>
	</svg>`)
	require.Len(t, commands, 4)
	assert.Equal(t, Extrude{20, 0, 0.35}, commands[1], "inner units are 2mm per user unit")
	assert.Equal(t, Extrude{10, 0, 0.35}, commands[3], "outer units are restored")
}

func TestViewportOriginSubtracted(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="5 5 100 100" width="100mm" height="100mm">
		<line x1="5" y1="5" x2="15" y2="5"/>
	</svg>`
	commands := plotDoc(t, unitConfig(), doc)
	require.Len(t, commands, 2)
	assert.Equal(t, Travel{0, 0}, commands[0])
	assert.Equal(t, Extrude{10, 0, 0.35}, commands[1])
}

func TestUnknownElementSkipped(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<blink/><line x2="5"/></svg>`)
	assert.Len(t, commands, 2)
}

func TestForeignNamespaceIgnored(t *testing.T) {
	commands := plotDoc(t, unitConfig(), `<svg xmlns="http://www.w3.org/2000/svg" xmlns:x="http://example.com/ns" viewBox="0 0 100 100" width="100mm" height="100mm">
		<x:line x2="5"/>
		<line x2="5"/>
	</svg>`)
	assert.Len(t, commands, 2)
}

func TestStrokeWidthCascades(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`<g style="stroke-width: 3mm"><line x2="5"/></g></svg>`)
	require.Len(t, commands, 2)
	assert.Equal(t, Extrude{5, 0, 3}, commands[1])
}

func TestUseRendersReferencedShape(t *testing.T) {
	commands := plotDoc(t, unitConfig(), docHeader+`
		<defs><line id="l" x2="5"/></defs>
		<use href="#l" x="10" y="0"/>
	</svg>`)
	require.Len(t, commands, 2)
	assert.Equal(t, Travel{10, 0}, commands[0])
	assert.Equal(t, Extrude{15, 0, 0.35}, commands[1])
}
