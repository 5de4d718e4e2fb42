package plotter

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/plotkit/svgplot/svgdom"
	"github.com/plotkit/svgplot/svgfont"
)

// obliqueSkewDeg is the artificial slant applied when an italic or
// oblique face is requested but the font only offers an upright design.
const obliqueSkewDeg = -10

// plotText strokes the outlines of a <text> element character by
// character. Glyph contours come from the configured font source and go
// through the same flattener as path curves.
func (e *emitter) plotText(el *svgdom.Element) {
	if e.fonts == nil {
		e.logger.Warn("no font source configured, skipping text element")
		return
	}
	x := e.vp.length(el.AttrDefault("x", "0"), false)
	y := e.vp.length(el.AttrDefault("y", "0"), true)
	x += e.vp.length(el.AttrDefault("dx", "0"), false)
	y += e.vp.length(el.AttrDefault("dy", "0"), true)
	rotate, _ := strconv.ParseFloat(strings.TrimSpace(el.AttrDefault("rotate", "0")), 64)
	width := e.vp.length(el.Style["stroke-width"], false)
	m := parseTransform(el.Style["transform"], e.logger)
	e.dash = newDashState(e.vp, el.Style["stroke-dasharray"])
	baseOffset := e.vp.length(el.Style["stroke-dashoffset"], false)

	text := strings.Join(strings.Fields(el.Text()), " ")
	switch el.Style["text-transform"] {
	case "capitalize":
		text = cases.Title(language.Und).String(text)
	case "uppercase":
		text = strings.ToUpper(text)
	case "lowercase":
		text = strings.ToLower(text)
	}

	weight, err := strconv.ParseFloat(el.Style["font-weight"], 64)
	if err != nil {
		weight = 400
	}
	spec := svgfont.Spec{
		Family: strings.ToLower(el.Style["font-family"]),
		Style:  el.Style["font-style"],
		Weight: weight,
		SizeMM: e.vp.length(el.Style["font-size"], false),
	}
	face, err := e.fonts.Resolve(spec)
	if err != nil {
		e.logger.Warn("cannot resolve font, skipping text element", "family", spec.Family, "err", err)
		return
	}
	faceBold, faceItalic := face.Style()
	oblique := spec.Style == "oblique"
	if spec.Style == "italic" && !faceItalic {
		oblique = true // artificial italics, the true slant is unknown
	}
	stretchX := 1.0
	if spec.Bold() != faceBold {
		if spec.Bold() {
			stretchX = weight / 400
		} else {
			stretchX = 400 / weight
		}
	}
	metrics := face.Metrics()

	var charX, charY float64
	var prev rune
	first := true
	for _, r := range text {
		if e.stopped {
			return
		}
		if !first {
			charX += face.Kern(prev, r)
		}
		pc := m.mult(translation(x+charX, y+charY))
		pc = pc.mult(scaling(stretchX, 1))
		if oblique {
			// slant around the ascent line so the baseline stays put
			pc = pc.mult(translation(0, -metrics.AscentMM))
			pc = pc.mult(skewing(obliqueSkewDeg/180.0*math.Pi, 0))
			pc = pc.mult(translation(0, metrics.AscentMM))
		}
		pc = pc.mult(rotation(rotate / 180 * math.Pi))
		pc = pc.mult(translation(-(x + charX), -(y + charY)))

		glyph, ok := face.Glyph(r)
		if !ok {
			e.logger.Warn("cannot load glyph, skipping character", "rune", string(r))
			continue
		}
		for _, contour := range glyph.Contours {
			e.dash.offset = baseOffset
			e.strokeContour(contour, x+charX, y+charY, width, pc)
		}
		charX += glyph.AdvanceMM
		prev = r
		first = false
	}

	e.textDecorations(el, face, x, y, charX, width, m)
}

// strokeContour draws one closed glyph contour. Quadratic control
// points are promoted to cubic handle pairs (with implied on-curve
// midpoints between adjacent controls), so every span between on-curve
// points becomes a line, a quadratic or a chain of cubics.
func (e *emitter) strokeContour(contour []svgfont.ContourPoint, offX, offY, width float64, m matrix) {
	if len(contour) == 0 {
		return
	}
	points := append(append([]svgfont.ContourPoint(nil), contour...), contour[0])

	curX, curY := points[0].X, points[0].Y
	e.travel(offX+curX, offY+curY, m)

	var curve [][2]float64
	for i := 1; i < len(points); i++ {
		p := points[i]
		if p.OnCurve {
			curve = append(curve, [2]float64{p.X, p.Y})
			for len(curve) > 0 {
				switch len(curve) {
				case 1:
					e.extrudeLine(offX+curX, offY+curY, offX+curve[0][0], offY+curve[0][1], width, m)
					curX, curY = curve[0][0], curve[0][1]
					curve = nil
				case 2:
					// malformed font, salvage as a quadratic
					e.extrudeQuadratic(offX+curX, offY+curY,
						offX+curve[0][0], offY+curve[0][1],
						offX+curve[1][0], offY+curve[1][1], width, m)
					curX, curY = curve[1][0], curve[1][1]
					curve = nil
				case 3:
					e.extrudeCubic(offX+curX, offY+curY,
						offX+curve[0][0], offY+curve[0][1],
						offX+curve[1][0], offY+curve[1][1],
						offX+curve[2][0], offY+curve[2][1], width, m)
					curX, curY = curve[2][0], curve[2][1]
					curve = nil
				default:
					// chained curves meet at the midpoint of adjacent
					// handles
					endX := (curve[1][0] + curve[2][0]) / 2
					endY := (curve[1][1] + curve[2][1]) / 2
					e.extrudeCubic(offX+curX, offY+curY,
						offX+curve[0][0], offY+curve[0][1],
						offX+curve[1][0], offY+curve[1][1],
						offX+endX, offY+endY, width, m)
					curX, curY = endX, endY
					curve = curve[2:]
				}
			}
			continue
		}
		if p.Cubic || i >= len(points)-1 {
			curve = append(curve, [2]float64{p.X, p.Y})
			continue
		}
		// quadratic control: promote to a cubic handle pair, using the
		// implied midpoints when the neighbours are off-curve too
		nextX, nextY := points[i+1].X, points[i+1].Y
		if !points[i+1].OnCurve {
			nextX, nextY = (p.X+nextX)/2, (p.Y+nextY)/2
		}
		prevX, prevY := points[i-1].X, points[i-1].Y
		if !points[i-1].OnCurve {
			prevX, prevY = (p.X+prevX)/2, (p.Y+prevY)/2
		}
		curve = append(curve,
			[2]float64{prevX + 2.0/3.0*(p.X-prevX), prevY + 2.0/3.0*(p.Y-prevY)},
			[2]float64{nextX + 2.0/3.0*(p.X-nextX), nextY + 2.0/3.0*(p.Y-nextY)})
	}
}

// textDecorations draws underline, overline and line-through strokes
// over the width of the rendered text, in the requested style.
func (e *emitter) textDecorations(el *svgdom.Element, face svgfont.Face, x, y, totalWidth, width float64, m matrix) {
	lines := strings.Fields(el.Style["text-decoration-line"])
	style := el.Style["text-decoration-style"]
	// the shorthand mixes lines and styles in any order
	for _, token := range strings.Fields(el.Style["text-decoration"]) {
		switch token {
		case "overline", "underline", "line-through", "none":
			lines = append(lines, token)
		case "solid", "double", "wavy", "dotted", "dashed":
			style = token
		}
	}
	metrics := face.Metrics()

	for _, line := range lines {
		var lineY float64
		switch line {
		case "underline":
			lineY = y + metrics.UnderlineMM
		case "overline":
			lineY = y - metrics.HeightMM
		case "line-through":
			lineY = y - metrics.AscentMM/2
		default:
			continue
		}

		switch style {
		case "solid", "double", "wavy":
			e.dash = dashState{}
		case "dotted":
			e.dash = dashState{pattern: []float64{width, width}, total: width * 2}
		case "dashed":
			e.dash = dashState{pattern: []float64{width * 3, width * 3}, total: width * 6}
		}

		switch style {
		case "solid", "dotted", "dashed", "double":
			e.travel(x, lineY, m)
			e.extrudeLine(x, lineY, x+totalWidth, lineY, width, m)
		}
		if style == "double" {
			secondY := lineY + width*2
			e.travel(x, secondY, m)
			e.extrudeLine(x, secondY, x+totalWidth, secondY, width, m)
		}
		if style == "wavy" {
			amplitude := metrics.AscentMM / 16
			if amplitude <= 0 {
				continue
			}
			e.travel(x, lineY+amplitude, m)
			waveX := x
			for waveX < x+totalWidth {
				e.extrudeQuadratic(waveX, lineY+amplitude,
					math.Min(waveX+amplitude, waveX+totalWidth), lineY+amplitude*2,
					math.Min(waveX+amplitude*2, waveX+totalWidth), lineY+amplitude, width, m)
				waveX += amplitude * 2
				if waveX < x+totalWidth {
					e.extrudeQuadratic(waveX, lineY+amplitude,
						math.Min(waveX+amplitude, waveX+totalWidth), lineY,
						math.Min(waveX+amplitude*2, waveX+totalWidth), lineY+amplitude, width, m)
					waveX += amplitude * 2
				}
				if e.stopped {
					return
				}
			}
		}
	}
}
