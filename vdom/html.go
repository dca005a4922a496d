package vdom

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// WriteHTML serializes the VNode tree as HTML. Event handlers are dropped,
// boolean attributes are written bare when true and omitted when false.
func WriteHTML(w io.Writer, n *VNode) error {
	if n == nil {
		return nil
	}
	if err := html.Render(w, toHTMLNode(n)); err != nil {
		return fmt.Errorf("render %s: %w", n.Tag, err)
	}
	return nil
}

// HTML is a convenience for tests and debugging. It returns the serialized
// tree, or "" when WriteHTML fails (a void element with children, say).
// Callers that need the error use WriteHTML.
func HTML(n *VNode) string {
	var b strings.Builder
	if err := WriteHTML(&b, n); err != nil {
		return ""
	}
	return b.String()
}

func toHTMLNode(n *VNode) *html.Node {
	if n.Tag == TextTag {
		return &html.Node{Type: html.TextNode, Data: n.Content}
	}

	el := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}

	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := n.Attributes[k].(type) {
		case bool:
			if v {
				el.Attr = append(el.Attr, html.Attribute{Key: k})
			}
		case func(), nil:
			// handlers and unset values have no markup
		default:
			el.Attr = append(el.Attr, html.Attribute{Key: k, Val: fmt.Sprint(v)})
		}
	}

	if n.Content != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.Content})
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		el.AppendChild(toHTMLNode(child))
	}
	return el
}
