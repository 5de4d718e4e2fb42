package svgdom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// errNoRoot is returned when the stream contains no element at all.
var errNoRoot = errors.New("svgdom: document has no root element")

// ReadDocument reads and parses the SVG file found at `path`.
func ReadDocument(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDocumentStream(f)
}

// ReadDocumentStream parses the given SVG stream into a raw element tree.
// The decoder is tolerant of non-UTF-8 encodings.
func ReadDocumentStream(stream io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
	)
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			node := &Node{Space: se.Name.Space, Tag: se.Name.Local}
			for _, a := range se.Attr {
				node.Attrs = append(node.Attrs, Attr{Space: a.Name.Space, Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("svgdom: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errors.New("svgdom: unbalanced end element")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) != 0 {
				cur := stack[len(stack)-1]
				cur.Text += string(se)
			}
		}
	}
	if root == nil {
		return nil, errNoRoot
	}
	return root, nil
}
