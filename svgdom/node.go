// Package svgdom parses SVG documents into an element tree, dereferences
// <use> links and resolves the style cascade, producing the annotated
// tree consumed by the plotter package.
package svgdom

// SVGNamespace is the XML namespace of SVG elements. Elements from other
// namespaces are kept in the tree but ignored by consumers.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Node is one element of the raw document tree.
type Node struct {
	Space    string // namespace URL, may be empty
	Tag      string // local name
	Attrs    []Attr // document order
	Children []*Node
	Text     string // character data directly inside the element
}

// Attr is a single XML attribute. Name is the local name.
type Attr struct {
	Space string
	Name  string
	Value string
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrDefault returns the attribute value, or def when absent.
func (n *Node) AttrDefault(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

func (n *Node) setAttr(name, value string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

func (n *Node) removeAttr(name string) {
	for i, a := range n.Attrs {
		if a.Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// clone returns a deep copy of the node.
func (n *Node) clone() *Node {
	out := &Node{Space: n.Space, Tag: n.Tag, Text: n.Text}
	out.Attrs = append([]Attr(nil), n.Attrs...)
	out.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		out.Children[i] = c.clone()
	}
	return out
}
