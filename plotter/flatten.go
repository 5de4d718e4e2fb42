package plotter

import "math"

// Curves are flattened to chords of roughly one resolution step in
// device space. Each step bisects the parameter interval until the
// chord length is within convergeMM of the resolution, then emits the
// chord through the dash sequencer. The bisection gives identical
// output for identical input, regardless of the curve's size.
const convergeMM = 0.001

// extrudeArc draws an elliptical arc between two endpoints, following
// the endpoint-to-center parameterization of SVG arcs. rotation is in
// degrees. Degenerate arcs (zero radius, endpoints closer than one
// resolution step) collapse to a straight segment.
func (e *emitter) extrudeArc(sx, sy, rx, ry, rotation float64, largeArc, sweep bool, ex, ey, width float64, m matrix) {
	if sx == ex && sy == ey {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		e.extrudeLine(sx, sy, ex, ey, width, m)
		return
	}
	stx, sty := m.apply(sx, sy)
	etx, ety := m.apply(ex, ey)
	if (etx-stx)*(etx-stx)+(ety-sty)*(ety-sty) <= e.res*e.res {
		e.extrudeLine(sx, sy, ex, ey, width, m)
		return
	}

	sinR, cosR := math.Sincos(rotation / 180 * math.Pi)
	x1 := cosR*(sx-ex)/2 + sinR*(sy-ey)/2
	y1 := -sinR*(sx-ex)/2 + cosR*(sy-ey)/2

	// scale up undersized radii
	lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry)
	if lambda > 1 {
		scale := math.Sqrt(lambda)
		rx *= scale
		ry *= scale
	}

	sumSquares := rx*y1*rx*y1 + ry*x1*ry*x1
	coefficient := math.Sqrt(math.Abs((rx*ry*rx*ry - sumSquares) / sumSquares))
	if largeArc == sweep {
		coefficient = -coefficient
	}
	cxPrime := coefficient * rx * y1 / ry
	cyPrime := -coefficient * ry * x1 / rx
	cx := cosR*cxPrime - sinR*cyPrime + (sx+ex)/2
	cy := sinR*cxPrime + cosR*cyPrime + (sy+ey)/2

	startRatioX := (x1 - cxPrime) / rx
	startRatioY := (y1 - cyPrime) / ry
	endRatioX := (-x1 - cxPrime) / rx
	endRatioY := (-y1 - cyPrime) / ry

	mod := math.Hypot(startRatioX, startRatioY)
	startAngle := math.Acos(clamp(startRatioX/mod, -1, 1))
	if startRatioY < 0 {
		startAngle = -startAngle
	}
	dot := startRatioX*endRatioX + startRatioY*endRatioY
	mod = math.Sqrt((startRatioX*startRatioX + startRatioY*startRatioY) *
		(endRatioX*endRatioX + endRatioY*endRatioY))
	delta := math.Acos(clamp(dot/mod, -1, 1))
	if startRatioX*endRatioY-startRatioY*endRatioX < 0 {
		delta = -delta
	}
	delta = math.Mod(delta, 2*math.Pi)
	if delta < 0 {
		delta += 2 * math.Pi
	}
	if !sweep {
		delta -= 2 * math.Pi
	}
	endAngle := startAngle + delta

	arcPoint := func(angle float64) (float64, float64) {
		px := math.Cos(angle) * rx
		py := math.Sin(angle) * ry
		return cosR*px - sinR*py + cx, sinR*px + cosR*py + cy
	}

	curX, curY := sx, sy
	curTX, curTY := stx, sty
	for (etx-curTX)*(etx-curTX)+(ety-curTY)*(ety-curTY) > e.res*e.res {
		if e.stopped {
			return
		}
		lower, upper := startAngle, endAngle
		angle := lower
		newX, newY := curX, curY
		newTX, newTY := curTX, curTY
		chordError := -e.res
		for math.Abs(chordError) > convergeMM {
			angle = (lower + upper) / 2
			if angle == lower || angle == upper {
				break // interval collapsed to float resolution
			}
			newX, newY = arcPoint(angle)
			newTX, newTY = m.apply(newX, newY)
			chordError = math.Hypot(newTX-curTX, newTY-curTY) - e.res
			if chordError > 0 {
				upper = angle
			} else {
				lower = angle
			}
		}
		if angle == startAngle {
			break // no progress possible, finish with the closing chord
		}
		e.extrudeLine(curX, curY, newX, newY, width, m)
		curX, curY = newX, newY
		curTX, curTY = newTX, newTY
		startAngle = angle
	}
	e.extrudeLine(curX, curY, ex, ey, width, m)
}

// extrudeCubic draws a cubic Bezier curve. The next chord endpoint is
// searched with a bisection biased towards the low bound, which keeps
// steps small where curvature is high.
func (e *emitter) extrudeCubic(sx, sy, h1x, h1y, h2x, h2y, ex, ey, width float64, m matrix) {
	etx, ety := m.apply(ex, ey)

	curX, curY := sx, sy
	curTX, curTY := m.apply(sx, sy)
	pMin := 0.0
	for (etx-curTX)*(etx-curTX)+(ety-curTY)*(ety-curTY) > e.res*e.res {
		if e.stopped {
			return
		}
		lower, upper := pMin, 1.0
		p := lower
		newX, newY := curX, curY
		newTX, newTY := curTX, curTY
		chordError := -e.res
		for math.Abs(chordError) > convergeMM {
			p = (3*lower + upper) / 4
			if p == lower || p == upper {
				break
			}
			newX, newY = cubicPoint(sx, sy, h1x, h1y, h2x, h2y, ex, ey, p)
			newTX, newTY = m.apply(newX, newY)
			chordError = math.Hypot(newTX-curTX, newTY-curTY) - e.res
			if chordError > 0 {
				upper = p
			} else {
				lower = p
			}
		}
		if p == pMin {
			break
		}
		e.extrudeLine(curX, curY, newX, newY, width, m)
		curX, curY = newX, newY
		curTX, curTY = newTX, newTY
		pMin = p
	}
	e.extrudeLine(curX, curY, ex, ey, width, m)
}

// extrudeQuadratic draws a quadratic Bezier curve. Degenerate curves
// whose handle lies on the segment between the endpoints collapse to a
// straight line.
func (e *emitter) extrudeQuadratic(sx, sy, hx, hy, ex, ey, width float64, m matrix) {
	switch {
	case sx == ex:
		if hx == sx && between(sy, hy, ey) {
			e.extrudeLine(sx, sy, ex, ey, width, m)
			return
		}
	case sy == ey:
		if hy == sy && between(sx, hx, ex) {
			e.extrudeLine(sx, sy, ex, ey, width, m)
			return
		}
	default:
		slopeDeviation := (hx-sx)/(ex-sx) - (hy-sy)/(ey-sy)
		if slopeDeviation == 0 && between(sx, hx, ex) {
			e.extrudeLine(sx, sy, ex, ey, width, m)
			return
		}
	}

	etx, ety := m.apply(ex, ey)
	curX, curY := sx, sy
	curTX, curTY := m.apply(sx, sy)
	pMin := 0.0
	for (etx-curTX)*(etx-curTX)+(ety-curTY)*(ety-curTY) > e.res*e.res {
		if e.stopped {
			return
		}
		lower, upper := pMin, 1.0
		p := lower
		newX, newY := curX, curY
		newTX, newTY := curTX, curTY
		chordError := -e.res
		for math.Abs(chordError) > convergeMM {
			p = (lower + upper) / 2
			if p == lower || p == upper {
				break
			}
			newX, newY = quadraticPoint(sx, sy, hx, hy, ex, ey, p)
			newTX, newTY = m.apply(newX, newY)
			chordError = math.Hypot(newTX-curTX, newTY-curTY) - e.res
			if chordError > 0 {
				upper = p
			} else {
				lower = p
			}
		}
		if p == pMin {
			break
		}
		e.extrudeLine(curX, curY, newX, newY, width, m)
		curX, curY = newX, newY
		curTX, curTY = newTX, newTY
		pMin = p
	}
	e.extrudeLine(curX, curY, ex, ey, width, m)
}

// cubicPoint evaluates the curve at parameter p by de Casteljau
// interpolation.
func cubicPoint(sx, sy, h1x, h1y, h2x, h2y, ex, ey, p float64) (float64, float64) {
	ax, ay := lerp(sx, sy, h1x, h1y, p)
	bx, by := lerp(h1x, h1y, h2x, h2y, p)
	cx, cy := lerp(h2x, h2y, ex, ey, p)
	abx, aby := lerp(ax, ay, bx, by, p)
	bcx, bcy := lerp(bx, by, cx, cy, p)
	return lerp(abx, aby, bcx, bcy, p)
}

func quadraticPoint(sx, sy, hx, hy, ex, ey, p float64) (float64, float64) {
	ax, ay := lerp(sx, sy, hx, hy, p)
	bx, by := lerp(hx, hy, ex, ey, p)
	return lerp(ax, ay, bx, by, p)
}

func lerp(ax, ay, bx, by, p float64) (float64, float64) {
	return ax + (bx-ax)*p, ay + (by-ay)*p
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// between reports whether mid lies within [a, b] in either order.
func between(a, mid, b float64) bool {
	return (a <= mid && mid <= b) || (a >= mid && mid >= b)
}
