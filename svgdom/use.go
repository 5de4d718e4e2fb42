package svgdom

import (
	"log/slog"
	"strings"
)

// maxUseDepth bounds <use> dereferencing so that cyclic references
// terminate instead of recursing forever.
const maxUseDepth = 64

// DereferenceUses replaces every <use> element in the tree with a deep
// copy of the element it references, prepending the use's position and
// transform to the copy. References to external documents and unknown ids
// degrade to a warning, dropping the <use>.
func DereferenceUses(root *Node, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	defs := map[string]*Node{}
	collectIDs(root, defs)
	dereference(root, defs, 0, logger)
}

func collectIDs(n *Node, defs map[string]*Node) {
	if id, ok := n.Attr("id"); ok && id != "" {
		defs[id] = n
	}
	for _, c := range n.Children {
		collectIDs(c, defs)
	}
}

func dereference(n *Node, defs map[string]*Node, depth int, logger *slog.Logger) {
	for i := 0; i < len(n.Children); {
		// a replacement may itself be a <use>, so expand the slot until
		// it settles or the depth budget runs out
		steps := depth
		for strings.EqualFold(n.Children[i].Tag, "use") {
			if steps >= maxUseDepth {
				logger.Warn("use references nested too deeply, dropping", "depth", steps)
				n.Children[i] = nil
				break
			}
			n.Children[i] = resolveUse(n.Children[i], defs, logger)
			if n.Children[i] == nil {
				break
			}
			steps++
		}
		if n.Children[i] == nil {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			continue
		}
		i++
	}
	for _, child := range n.Children {
		dereference(child, defs, depth+1, logger)
	}
}

// resolveUse builds the replacement for one <use> element, or nil when
// the reference cannot be satisfied.
func resolveUse(use *Node, defs map[string]*Node, logger *slog.Logger) *Node {
	href, ok := use.Attr("href")
	if !ok {
		logger.Warn("use element without href, skipping")
		return nil
	}
	if !strings.HasPrefix(href, "#") {
		logger.Warn("use references external document, skipping", "href", href)
		return nil
	}
	target, ok := defs[href[1:]]
	if !ok {
		logger.Warn("use references unknown id, skipping", "href", href)
		return nil
	}

	copied := target.clone()
	transform := copied.AttrDefault("transform", "")
	if t, ok := use.Attr("transform"); ok {
		transform = t + " " + transform
	}
	x := use.AttrDefault("x", "0")
	y := use.AttrDefault("y", "0")
	copied.setAttr("transform", "translate("+x+","+y+") "+transform)
	copied.removeAttr("id") // the copy must not shadow the definition
	return copied
}
