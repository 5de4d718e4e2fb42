package plotter

import (
	"strconv"
	"strings"

	"github.com/plotkit/svgplot/svgdom"
)

// elementFuncs maps lowercased tag names to their handlers. Tags
// without geometry of their own (defs, style, title, desc) are known
// no-ops; anything else is skipped with a warning, as SVG requires.
var elementFuncs map[string]func(*emitter, *svgdom.Element)

func init() {
	elementFuncs = map[string]func(*emitter, *svgdom.Element){
		"circle":   (*emitter).plotCircle,
		"defs":     func(*emitter, *svgdom.Element) {},
		"desc":     func(*emitter, *svgdom.Element) {},
		"ellipse":  (*emitter).plotEllipse,
		"g":        (*emitter).plotGroup,
		"line":     (*emitter).plotLine,
		"path":     (*emitter).plotPath,
		"polygon":  (*emitter).plotPolygon,
		"polyline": (*emitter).plotPolyline,
		"rect":     (*emitter).plotRect,
		"style":    func(*emitter, *svgdom.Element) {},
		"svg":      (*emitter).plotSVG,
		"switch":   (*emitter).plotSwitch,
		"text":     (*emitter).plotText,
		"title":    func(*emitter, *svgdom.Element) {},
	}
}

func (e *emitter) element(el *svgdom.Element) {
	if e.stopped {
		return
	}
	if el.Space != "" && el.Space != svgdom.SVGNamespace {
		return // foreign namespaces are not ours to draw
	}
	fn, ok := elementFuncs[strings.ToLower(el.Tag)]
	if !ok {
		e.logger.Warn("unknown svg element, skipping", "tag", el.Tag)
		return
	}
	fn(e, el)
}

// shapeStroke resolves the stroke properties shared by every shape:
// line width, transform and the dash state (installed on the emitter).
func (e *emitter) shapeStroke(el *svgdom.Element) (width float64, m matrix) {
	width = e.vp.length(el.Style["stroke-width"], false)
	m = parseTransform(el.Style["transform"], e.logger)
	e.dash = newDashState(e.vp, el.Style["stroke-dasharray"])
	e.dash.offset = e.vp.length(el.Style["stroke-dashoffset"], false)
	return width, m
}

// plotCircle draws the circle as four quarter arcs, starting at the
// rightmost point and going through the top first.
func (e *emitter) plotCircle(el *svgdom.Element) {
	cx := e.vp.length(el.AttrDefault("cx", "0"), false)
	cy := e.vp.length(el.AttrDefault("cy", "0"), true)
	r := e.vp.length(el.AttrDefault("r", "0"), false)
	if r == 0 {
		return
	}
	width, m := e.shapeStroke(el)

	e.travel(cx+r, cy, m)
	e.extrudeArc(cx+r, cy, r, r, 0, false, false, cx, cy-r, width, m)
	e.extrudeArc(cx, cy-r, r, r, 0, false, false, cx-r, cy, width, m)
	e.extrudeArc(cx-r, cy, r, r, 0, false, false, cx, cy+r, width, m)
	e.extrudeArc(cx, cy+r, r, r, 0, false, false, cx+r, cy, width, m)
}

func (e *emitter) plotEllipse(el *svgdom.Element) {
	cx := e.vp.length(el.AttrDefault("cx", "0"), false)
	cy := e.vp.length(el.AttrDefault("cy", "0"), true)
	rx := e.vp.length(el.AttrDefault("rx", "0"), false)
	if rx == 0 {
		return
	}
	ry := e.vp.length(el.AttrDefault("ry", "0"), true)
	if ry == 0 {
		return
	}
	width, m := e.shapeStroke(el)

	e.travel(cx+rx, cy, m)
	e.extrudeArc(cx+rx, cy, rx, ry, 0, false, false, cx, cy-ry, width, m)
	e.extrudeArc(cx, cy-ry, rx, ry, 0, false, false, cx-rx, cy, width, m)
	e.extrudeArc(cx-rx, cy, rx, ry, 0, false, false, cx, cy+ry, width, m)
	e.extrudeArc(cx, cy+ry, rx, ry, 0, false, false, cx+rx, cy, width, m)
}

// plotGroup has no geometry of its own; the cascade already folded its
// attributes into the children.
func (e *emitter) plotGroup(el *svgdom.Element) {
	for _, child := range el.Children {
		e.element(child)
	}
}

func (e *emitter) plotLine(el *svgdom.Element) {
	width, m := e.shapeStroke(el)
	x1 := e.vp.length(el.AttrDefault("x1", "0"), false)
	y1 := e.vp.length(el.AttrDefault("y1", "0"), true)
	x2 := e.vp.length(el.AttrDefault("x2", "0"), false)
	y2 := e.vp.length(el.AttrDefault("y2", "0"), true)

	e.travel(x1, y1, m)
	e.extrudeLine(x1, y1, x2, y2, width, m)
}

func (e *emitter) plotPolygon(el *svgdom.Element) {
	width, m := e.shapeStroke(el)

	var firstX, firstY, prevX, prevY float64
	first := true
	for _, p := range parsePoints(el.AttrDefault("points", "")) {
		x, y := p[0]*e.vp.unitW, p[1]*e.vp.unitH
		if first {
			firstX, firstY = x, y
			e.travel(x, y, m)
			first = false
		} else {
			e.extrudeLine(prevX, prevY, x, y, width, m)
		}
		prevX, prevY = x, y
	}
	if !first {
		e.extrudeLine(prevX, prevY, firstX, firstY, width, m)
	}
}

func (e *emitter) plotPolyline(el *svgdom.Element) {
	width, m := e.shapeStroke(el)

	var prevX, prevY float64
	first := true
	for _, p := range parsePoints(el.AttrDefault("points", "")) {
		x, y := p[0]*e.vp.unitW, p[1]*e.vp.unitH
		if first {
			e.travel(x, y, m)
			first = false
		} else {
			e.extrudeLine(prevX, prevY, x, y, width, m)
		}
		prevX, prevY = x, y
	}
}

func (e *emitter) plotRect(el *svgdom.Element) {
	x := e.vp.length(el.AttrDefault("x", "0"), false)
	y := e.vp.length(el.AttrDefault("y", "0"), true)
	rx := e.vp.length(el.AttrDefault("rx", "0"), false)
	ry := e.vp.length(el.AttrDefault("ry", "0"), true)
	w := e.vp.length(el.AttrDefault("width", "0"), false)
	h := e.vp.length(el.AttrDefault("height", "0"), true)
	if w == 0 || h == 0 {
		return
	}
	width, m := e.shapeStroke(el)

	// rounded corners never exceed half the rectangle
	rx = min(rx, w/2)
	ry = min(ry, h/2)
	e.travel(x+rx, y, m)
	e.extrudeLine(x+rx, y, x+w-rx, y, width, m)
	e.extrudeArc(x+w-rx, y, rx, ry, 0, false, true, x+w, y+ry, width, m)
	e.extrudeLine(x+w, y+ry, x+w, y+h-ry, width, m)
	e.extrudeArc(x+w, y+h-ry, rx, ry, 0, false, true, x+w-rx, y+h, width, m)
	e.extrudeLine(x+w-rx, y+h, x+rx, y+h, width, m)
	e.extrudeArc(x+rx, y+h, rx, ry, 0, false, true, x, y+h-ry, width, m)
	e.extrudeLine(x, y+h-ry, x, y+ry, width, m)
	e.extrudeArc(x, y+ry, rx, ry, 0, false, true, x+rx, y, width, m)
}

// plotSVG opens a new viewport scope from the element's viewBox and
// physical size, draws the children in it and restores the outer scope.
func (e *emitter) plotSVG(el *svgdom.Element) {
	saved := e.vp
	defer func() { e.vp = saved }()

	if vb, ok := el.Attr("viewBox"); ok {
		parts := strings.Fields(vb)
		if len(parts) == 4 {
			var values [4]float64
			valid := true
			for i, part := range parts {
				f, err := strconv.ParseFloat(part, 64)
				if err != nil {
					valid = false
					break
				}
				values[i] = f
			}
			if valid {
				e.vp.x, e.vp.y, e.vp.w, e.vp.h = values[0], values[1], values[2], values[3]
			}
		}
	}
	// the outer scope's units still apply to the size attributes
	imageW := e.vp.length(el.AttrDefault("width", "100%"), false)
	imageH := e.vp.length(el.AttrDefault("height", "100%"), true)
	e.vp.imageW, e.vp.imageH = imageW, imageH
	e.vp.unitW = imageW / e.vp.w
	e.vp.unitH = imageH / e.vp.h

	for _, child := range el.Children {
		e.element(child)
	}
}

// supportedFeatures is the requiredFeatures allow-list for <switch>.
// Some entries are generous: the bulk of each feature set is supported,
// which covers nearly every document that asks for them.
var supportedFeatures = map[string]bool{
	"": true,
	"http://www.w3.org/TR/SVG11/feature#SVG":                   true,
	"http://www.w3.org/TR/SVG11/feature#SVGDOM":                true,
	"http://www.w3.org/TR/SVG11/feature#SVG-static":            true,
	"http://www.w3.org/TR/SVG11/feature#SVGDOM-static":         true,
	"http://www.w3.org/TR/SVG11/feature#CoreAttribute":         true,
	"http://www.w3.org/TR/SVG11/feature#Structure":             true,
	"http://www.w3.org/TR/SVG11/feature#BasicStructure":        true,
	"http://www.w3.org/TR/SVG11/feature#ConditionalProcessing": true,
	"http://www.w3.org/TR/SVG11/feature#Style":                 true,
	"http://www.w3.org/TR/SVG11/feature#Shape":                 true,
	"http://www.w3.org/TR/SVG11/feature#BasicText":             true,
	"http://www.w3.org/TR/SVG11/feature#PaintAttribute":        true,
	"http://www.w3.org/TR/SVG11/feature#BasicPaintAttribute":   true,
	"http://www.w3.org/TR/SVG11/feature#ColorProfile":          true,
	"http://www.w3.org/TR/SVG11/feature#Gradient":              true,
}

// plotSwitch draws the first child whose requiredFeatures are all
// supported, and nothing else.
func (e *emitter) plotSwitch(el *svgdom.Element) {
	for _, child := range el.Children {
		eligible := true
		for _, feature := range strings.Split(child.AttrDefault("requiredFeatures", ""), ",") {
			if !supportedFeatures[strings.TrimSpace(feature)] {
				eligible = false
				break
			}
		}
		if eligible {
			e.element(child)
			return
		}
	}
}

// parsePoints reads a points attribute into coordinate pairs. Tokens
// that do not parse as floats are dropped, as is a trailing odd value.
func parsePoints(points string) [][2]float64 {
	var values []float64
	for _, field := range strings.FieldsFunc(points, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}) {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			continue
		}
		values = append(values, f)
	}
	pairs := make([][2]float64, 0, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		pairs = append(pairs, [2]float64{values[i], values[i+1]})
	}
	return pairs
}
