package plotter

import (
	"math"
	"strings"
)

// dashState carries the dash pattern of the current shape and the
// running offset into it. The offset accumulates by device-space length
// across segments and is reset to the shape's stroke-dashoffset at each
// new subpath, so dashes flow continuously through a subpath.
type dashState struct {
	pattern []float64 // mm, always even length
	total   float64   // sum of pattern
	offset  float64   // mm into the pattern
}

// newDashState parses a stroke-dasharray value, resolving each entry
// through the viewport. Odd patterns are repeated once so the sequence
// always alternates draw/skip consistently. Non-positive entries are
// dropped.
func newDashState(vp viewport, dasharray string) dashState {
	var d dashState
	dasharray = strings.TrimSpace(dasharray)
	if dasharray == "" || strings.EqualFold(dasharray, "none") {
		return d
	}
	for _, field := range strings.FieldsFunc(dasharray, func(r rune) bool { return r == ',' || r == ' ' }) {
		mm := vp.length(field, false)
		if mm <= 0 {
			continue
		}
		d.pattern = append(d.pattern, mm)
		d.total += mm
	}
	if len(d.pattern)%2 == 1 {
		d.pattern = append(d.pattern, d.pattern...)
		d.total *= 2
	}
	return d
}

// split walks the straight segment from (sx,sy) to (ex,ey) (pre-transform
// coordinates), alternating Extrude and Travel commands according to the
// pattern, and returns the state with the offset advanced by the
// segment's device-space length. The segment always ends with an Extrude
// to the exact transformed endpoint, so endpoints stay exact even when
// the final dash lands short of it.
func (d dashState) split(sx, sy, ex, ey, width float64, m matrix, vp viewport, emit func(Command) bool) dashState {
	offX := vp.x * vp.unitW
	offY := vp.y * vp.unitH
	etx, ety := m.apply(ex, ey)
	if len(d.pattern) > 0 {
		stx, sty := m.apply(sx, sy)
		dx, dy := etx-stx, ety-sty
		segment := math.Hypot(dx, dy)

		d.offset = math.Mod(d.offset, d.total)
		if d.offset < 0 {
			d.offset += d.total
		}
		cumulative := 0.0
		index := 0
		for cumulative+d.pattern[index] < d.offset {
			cumulative += d.pattern[index]
			index = (index + 1) % len(d.pattern)
		}
		partial := d.offset - cumulative
		extruding := index%2 == 0

		dirX, dirY := dx/segment, dy/segment
		pos := 0.0
		for pos < segment {
			pos += d.pattern[index] - partial
			partial = 0
			if pos > segment {
				pos = segment
			}
			x := stx + dirX*pos - offX
			y := sty + dirY*pos - offY
			if extruding {
				if !emit(Extrude{x, y, width}) {
					return d
				}
			} else {
				if !emit(Travel{x, y}) {
					return d
				}
			}
			index = (index + 1) % len(d.pattern)
			extruding = !extruding
		}
		d.offset += segment
	}
	emit(Extrude{etx - offX, ety - offY, width})
	return d
}
