package plotter

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// parseTransform compiles a transform attribute value into a single
// matrix. Functions are applied left to right, meaning the rightmost
// function transforms the point first. Malformed function calls are
// skipped individually; "none" is a no-op and "initial" resets the
// accumulated matrix.
func parseTransform(transform string, logger *slog.Logger) matrix {
	// normalize so that each "name(args)" group is one field
	transform = strings.ReplaceAll(transform, ")", ") ")
	transform = strings.ReplaceAll(transform, ", ", ",")
	transform = strings.ReplaceAll(transform, " ,", ",")

	m := identity
	for _, call := range strings.Fields(transform) {
		switch strings.ToLower(call) {
		case "none":
			continue
		case "initial":
			m = identity
			continue
		}
		name, rest, found := strings.Cut(call, "(")
		if !found {
			logger.Warn("transform function without arguments, skipping", "function", call)
			continue
		}
		rest, _, found = strings.Cut(rest, ")")
		if !found {
			logger.Warn("transform function without closing parenthesis, skipping", "function", call)
			continue
		}
		values, ok := parseTransformArgs(rest)
		if !ok {
			logger.Warn("transform function with malformed arguments, skipping", "function", call)
			continue
		}

		switch strings.ToLower(name) {
		case "matrix":
			if len(values) != 6 {
				logger.Warn("matrix transform needs 6 arguments, skipping", "got", len(values))
				continue
			}
			m = m.mult(matrix{values[0], values[1], values[2], values[3], values[4], values[5]})
		case "translate":
			if len(values) == 1 {
				values = append(values, 0)
			}
			if len(values) != 2 {
				continue
			}
			m = m.mult(translation(values[0], values[1]))
		case "translatex":
			if len(values) != 1 {
				continue
			}
			m = m.mult(translation(values[0], 0))
		case "translatey":
			if len(values) != 1 {
				continue
			}
			m = m.mult(translation(0, values[0]))
		case "scale":
			if len(values) == 1 {
				values = append(values, values[0])
			}
			if len(values) != 2 {
				continue
			}
			m = m.mult(scaling(values[0], values[1]))
		case "scalex":
			if len(values) != 1 {
				continue
			}
			m = m.mult(scaling(values[0], 1))
		case "scaley":
			if len(values) != 1 {
				continue
			}
			m = m.mult(scaling(1, values[0]))
		case "rotate", "rotatez":
			if len(values) == 1 {
				values = append(values, 0, 0)
			}
			if len(values) != 3 {
				continue
			}
			rad := values[0] / 180 * math.Pi
			px, py := values[1], values[2]
			m = m.mult(translation(px, py)).mult(rotation(rad)).mult(translation(-px, -py))
		case "skew":
			if len(values) != 2 {
				continue
			}
			m = m.mult(skewing(values[0]/180*math.Pi, values[1]/180*math.Pi))
		case "skewx":
			if len(values) != 1 {
				continue
			}
			m = m.mult(skewing(values[0]/180*math.Pi, 0))
		case "skewy":
			if len(values) != 1 {
				continue
			}
			m = m.mult(skewing(0, values[0]/180*math.Pi))
		default:
			logger.Warn("unknown transform function, skipping", "function", name)
		}
	}
	return m
}

func parseTransformArgs(args string) ([]float64, bool) {
	fields := strings.FieldsFunc(args, func(r rune) bool { return r == ',' || r == ' ' })
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, false
		}
		values = append(values, f)
	}
	return values, true
}
