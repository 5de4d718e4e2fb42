package plotter

import (
	"regexp"
	"strconv"

	"github.com/plotkit/svgplot/svgdom"
)

// The d attribute splits on command letters (E and e belong to numbers,
// not commands). Numbers that are not properly formatted floats are
// ignored.
var (
	rePathCommand = regexp.MustCompile(`[A-DF-Za-df-z][^A-DF-Za-df-z]*`)
	rePathNumber  = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?`)
)

// plotPath interprets the d attribute of a <path> element. Coordinates
// are user units, scaled to mm through the viewport. Commands with too
// few parameters are skipped; surplus parameters repeat the command.
func (e *emitter) plotPath(el *svgdom.Element) {
	width := e.vp.length(el.Style["stroke-width"], false)
	m := parseTransform(el.Style["transform"], e.logger)
	e.dash = newDashState(e.vp, el.Style["stroke-dasharray"])
	baseOffset := e.vp.length(el.Style["stroke-dashoffset"], false)
	e.dash.offset = baseOffset

	uw, uh := e.vp.unitW, e.vp.unitH
	var (
		x, y           float64 // current position, mm
		startX, startY float64 // subpath start, for Z
		prevQX, prevQY float64 // last quadratic handle, for T mirroring
		prevCX, prevCY float64 // last second cubic handle, for S mirroring
	)

	for _, command := range rePathCommand.FindAllString(el.AttrDefault("d", ""), -1) {
		name := command[0]
		var params []float64
		for _, match := range rePathNumber.FindAllString(command[1:], -1) {
			f, err := strconv.ParseFloat(match, 64)
			if err != nil {
				continue
			}
			params = append(params, f)
		}
		if e.stopped {
			return
		}

		// moves first: their surplus parameters belong to an implied
		// line command
		if name == 'M' {
			if len(params) < 2 {
				continue
			}
			x, y = params[0]*uw, params[1]*uh
			e.travel(x, y, m)
			e.dash.offset = baseOffset
			name = 'L'
			params = params[2:]
			startX, startY = x, y
		}
		if name == 'm' {
			if len(params) < 2 {
				continue
			}
			x += params[0] * uw
			y += params[1] * uh
			e.travel(x, y, m)
			e.dash.offset = baseOffset
			name = 'l'
			params = params[2:]
			startX, startY = x, y
		}

		switch name {
		case 'A', 'a':
			for len(params) >= 7 {
				if (params[3] != 0 && params[3] != 1) || (params[4] != 0 && params[4] != 1) {
					params = params[7:]
					continue // flags must be 0 or 1
				}
				ex, ey := params[5]*uw, params[6]*uh
				if name == 'a' {
					ex += x
					ey += y
				}
				e.extrudeArc(x, y, params[0]*uw, params[1]*uh, params[2],
					params[3] != 0, params[4] != 0, ex, ey, width, m)
				x, y = ex, ey
				params = params[7:]
			}
		case 'C', 'c':
			for len(params) >= 6 {
				var bx, by float64
				if name == 'c' {
					bx, by = x, y
				}
				h1x, h1y := bx+params[0]*uw, by+params[1]*uh
				prevCX, prevCY = bx+params[2]*uw, by+params[3]*uh
				ex, ey := bx+params[4]*uw, by+params[5]*uh
				e.extrudeCubic(x, y, h1x, h1y, prevCX, prevCY, ex, ey, width, m)
				x, y = ex, ey
				params = params[6:]
			}
		case 'S', 's':
			for len(params) >= 4 {
				h1x := x + (x - prevCX)
				h1y := y + (y - prevCY)
				var bx, by float64
				if name == 's' {
					bx, by = x, y
				}
				prevCX, prevCY = bx+params[0]*uw, by+params[1]*uh
				ex, ey := bx+params[2]*uw, by+params[3]*uh
				e.extrudeCubic(x, y, h1x, h1y, prevCX, prevCY, ex, ey, width, m)
				x, y = ex, ey
				params = params[4:]
			}
		case 'Q', 'q':
			for len(params) >= 4 {
				var bx, by float64
				if name == 'q' {
					bx, by = x, y
				}
				prevQX, prevQY = bx+params[0]*uw, by+params[1]*uh
				ex, ey := bx+params[2]*uw, by+params[3]*uh
				e.extrudeQuadratic(x, y, prevQX, prevQY, ex, ey, width, m)
				x, y = ex, ey
				params = params[4:]
			}
		case 'T', 't':
			for len(params) >= 2 {
				prevQX = x + (x - prevQX)
				prevQY = y + (y - prevQY)
				var bx, by float64
				if name == 't' {
					bx, by = x, y
				}
				ex, ey := bx+params[0]*uw, by+params[1]*uh
				e.extrudeQuadratic(x, y, prevQX, prevQY, ex, ey, width, m)
				x, y = ex, ey
				params = params[2:]
			}
		case 'L', 'l':
			for len(params) >= 2 {
				var bx, by float64
				if name == 'l' {
					bx, by = x, y
				}
				ex, ey := bx+params[0]*uw, by+params[1]*uh
				e.extrudeLine(x, y, ex, ey, width, m)
				x, y = ex, ey
				params = params[2:]
			}
		case 'H', 'h':
			for len(params) >= 1 {
				ex := params[0] * uw
				if name == 'h' {
					ex += x
				}
				e.extrudeLine(x, y, ex, y, width, m)
				x = ex
				params = params[1:]
			}
		case 'V', 'v':
			for len(params) >= 1 {
				ey := params[0] * uh
				if name == 'v' {
					ey += y
				}
				e.extrudeLine(x, y, x, ey, width, m)
				y = ey
				params = params[1:]
			}
		case 'Z', 'z':
			e.extrudeLine(x, y, startX, startY, width, m)
			x, y = startX, startY
		default:
			// unrecognised commands are ignored
		}

		// a handle only mirrors directly after its own curve family;
		// any other command resets it to the current position
		if name != 'Q' && name != 'q' && name != 'T' && name != 't' {
			prevQX, prevQY = x, y
		}
		if name != 'C' && name != 'c' && name != 'S' && name != 's' {
			prevCX, prevCY = x, y
		}
	}
}
