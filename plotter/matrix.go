package plotter

import "math"

// matrix is a 2D affine transformation:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type matrix struct {
	a, b, c, d, e, f float64
}

var identity = matrix{1, 0, 0, 1, 0, 0}

// mult composes the two transformations; n is applied to the point
// first, then m.
func (m matrix) mult(n matrix) matrix {
	return matrix{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

func (m matrix) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

func translation(x, y float64) matrix {
	return matrix{1, 0, 0, 1, x, y}
}

func scaling(x, y float64) matrix {
	return matrix{x, 0, 0, y, 0, 0}
}

// rotation is a clockwise rotation by rad (the y axis points down).
func rotation(rad float64) matrix {
	sin, cos := math.Sincos(rad)
	return matrix{cos, sin, -sin, cos, 0, 0}
}

func skewing(xRad, yRad float64) matrix {
	return matrix{1, math.Tan(yRad), math.Tan(xRad), 1, 0, 0}
}
