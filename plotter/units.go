package plotter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// viewport is the unit scope of one <svg> element: the user-unit view
// box, the physical image size and the derived mm-per-user-unit scale.
// Nested <svg> elements push a new scope and restore the old one on the
// way out.
type viewport struct {
	x, y, w, h     float64 // viewBox, user units
	imageW, imageH float64 // mm
	unitW, unitH   float64 // mm per user unit
}

var reNumber = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?`)

// length resolves a CSS dimension ("12pt", "50%", "3") to millimeters.
// Percentages resolve against the image size on the given axis.
func (v viewport) length(dim string, vertical bool) float64 {
	return v.lengthIn(dim, vertical, math.NaN())
}

// lengthIn is length with an explicit parent size for percentages.
func (v viewport) lengthIn(dim string, vertical bool, parent float64) float64 {
	dim = strings.TrimSpace(dim)
	loc := reNumber.FindStringIndex(dim)
	if loc == nil || loc[0] != 0 {
		return 0
	}
	n, err := strconv.ParseFloat(dim[:loc[1]], 64)
	if err != nil {
		return 0
	}
	unit := strings.ToLower(strings.TrimSpace(dim[loc[1]:]))
	switch unit {
	case "mm":
		return n
	case "cm":
		return n * 10
	case "q":
		return n / 4
	case "in":
		return n * 25.4
	case "pc":
		return n * 25.4 / 6
	case "pt":
		return n * 25.4 / 72
	case "px":
		return n * 25.4 / 96
	case "%":
		if math.IsNaN(parent) {
			if vertical {
				parent = v.imageH
			} else {
				parent = v.imageW
			}
		}
		return n / 100 * parent
	case "vw", "vi":
		return n / 100 * v.imageW
	case "vh", "vb":
		return n / 100 * v.imageH
	case "vmin":
		return n / 100 * math.Min(v.imageW, v.imageH)
	case "vmax":
		return n / 100 * math.Max(v.imageW, v.imageH)
	default:
		// bare numbers and unsupported font-relative units are user
		// units of the current viewport
		if vertical {
			return n * v.unitH
		}
		return n * v.unitW
	}
}
