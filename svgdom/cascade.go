package svgdom

import (
	"log/slog"
	"strconv"
	"strings"
)

// Style holds the resolved value of every tracked property.
type Style map[string]string

// Element is a node annotated with its resolved style. The cascade is a
// pure pass: the underlying Node tree is left untouched and may be
// cascaded again.
type Element struct {
	Space    string
	Tag      string
	Style    Style
	Children []*Element

	node *Node
}

// Attr returns the raw attribute with the given local name.
func (e *Element) Attr(name string) (string, bool) { return e.node.Attr(name) }

// AttrDefault returns the raw attribute value, or def when absent.
func (e *Element) AttrDefault(name, def string) string { return e.node.AttrDefault(name, def) }

// Text returns the character data directly inside the element.
func (e *Element) Text() string { return e.node.Text }

// Cascade resolves the style of every node top-down. Each element ends up
// with all tracked properties present: a property declared on the element
// wins, otherwise the parent's resolved value is taken, otherwise the
// default. transform is the exception: parent and element values are
// concatenated so nested transforms compose.
func Cascade(root *Node, logger *slog.Logger) *Element {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := make(Style, len(tracked))
	for property, spec := range tracked {
		defaults[property] = spec.def
	}
	return cascade(root, defaults, logger)
}

func cascade(n *Node, parent Style, logger *slog.Logger) *Element {
	own := declared(n, logger)

	style := make(Style, len(tracked))
	for property := range tracked {
		if property == "transform" {
			continue
		}
		if v, ok := own[property]; ok {
			style[property] = v
		} else {
			style[property] = parent[property]
		}
	}
	style["transform"] = strings.TrimSpace(parent["transform"] + " " + own["transform"])

	el := &Element{Space: n.Space, Tag: n.Tag, Style: style, node: n}
	for _, child := range n.Children {
		el.Children = append(el.Children, cascade(child, style, logger))
	}
	return el
}

// declared gathers the properties explicitly set on one element, lowest
// precedence first: presentation attributes, then <style> children, then
// the style attribute.
func declared(n *Node, logger *slog.Logger) map[string]string {
	css := map[string]string{}
	if v, ok := n.Attr("transform"); ok {
		css["transform"] = v
	}
	if v, ok := n.Attr("stroke-width"); ok {
		// bare numbers only here; lengths with units come in below with
		// the other presentation attributes
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			css["stroke-width"] = strconv.FormatFloat(f, 'g', -1, 64)
		}
	}
	if v, ok := n.Attr("stroke-dasharray"); ok {
		css["stroke-dasharray"] = v
	}
	if v, ok := n.Attr("stroke-dashoffset"); ok {
		css["stroke-dashoffset"] = v
	}
	for _, child := range n.Children {
		if strings.EqualFold(child.Tag, "style") {
			for property, value := range ParseDeclarations(child.Text, logger) {
				css[property] = value
			}
		}
	}
	if v, ok := n.Attr("style"); ok {
		for property, value := range ParseDeclarations(v, logger) {
			css[property] = value
		}
	}
	for property := range tracked {
		if _, in := css[property]; in {
			continue
		}
		if v, ok := n.Attr(property); ok {
			css[property] = v
		}
	}
	return css
}
