/*
Package selector matches CSS selectors against hast trees.

We use cascadia for selector matching:

	github.com/andybalholm/cascadia

cascadia operates on golang.org/x/net/html nodes. A Mirror builds a
read-only x/net/html copy of a hast tree and maps matched nodes back to
their hast elements. Attributes in the mirror carry their HTML names and
serialized values, so selectors are written as for HTML:

	sel, _ := selector.Compile("ul.contains-task-list > li[aria-label]")
	elements := sel.Select(root)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package selector

import (
	"github.com/andybalholm/cascadia"
	"github.com/nomorechokedboy/markdown-vue/engine/dom/schema"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'mdvue.selector'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.selector")
}

// Selector is a compiled CSS selector.
type Selector struct {
	source string
	sel    cascadia.Selector
}

// Compile parses a CSS selector.
func Compile(sel string) (*Selector, error) {
	s, err := cascadia.Compile(sel)
	if err != nil {
		tracer().Errorf("cannot compile selector %q: %v", sel, err)
		return nil, err
	}
	return &Selector{source: sel, sel: s}, nil
}

func (s *Selector) String() string {
	return s.source
}

// Select returns all elements below root matching the selector, in
// document order.
func (s *Selector) Select(root hast.Node) []*hast.Element {
	m := NewMirror(root)
	return m.Elements(s.sel.MatchAll(m.Root))
}

// Matches reports whether an element of the tree below root matches.
func (s *Selector) Matches(root hast.Node, e *hast.Element) bool {
	m := NewMirror(root)
	n, ok := m.nodes[e]
	return ok && s.sel.Match(n)
}

// Select is a shortcut for compiling sel and selecting from root.
func Select(root hast.Node, sel string) ([]*hast.Element, error) {
	s, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	return s.Select(root), nil
}

// Mirror is an x/net/html copy of a hast tree.
type Mirror struct {
	Root     *html.Node
	elements map[*html.Node]*hast.Element
	nodes    map[*hast.Element]*html.Node
}

// NewMirror copies a hast tree. Raw nodes and comments are not copied.
func NewMirror(root hast.Node) *Mirror {
	m := &Mirror{
		elements: make(map[*html.Node]*hast.Element),
		nodes:    make(map[*hast.Element]*html.Node),
	}
	m.Root = m.mirror(root, schema.HTML)
	return m
}

// Elements maps mirrored nodes back to hast elements.
func (m *Mirror) Elements(nodes []*html.Node) []*hast.Element {
	var result []*hast.Element
	for _, n := range nodes {
		if e, ok := m.elements[n]; ok {
			result = append(result, e)
		}
	}
	return result
}

func (m *Mirror) mirror(n hast.Node, sch *schema.Schema) *html.Node {
	switch node := n.(type) {
	case *hast.Root:
		doc := &html.Node{Type: html.DocumentNode}
		m.appendChildren(doc, node, sch)
		return doc
	case *hast.Element:
		if node.TagName == "svg" {
			sch = schema.SVG
		}
		e := &html.Node{Type: html.ElementNode, Data: node.TagName, DataAtom: atom.Lookup([]byte(node.TagName))}
		for _, prop := range node.Properties {
			if prop.Value == nil || prop.Value == false {
				continue
			}
			info := schema.Find(sch, prop.Name)
			e.Attr = append(e.Attr, html.Attribute{Key: info.Attribute, Val: info.Format(prop.Value)})
		}
		m.elements[e] = node
		m.nodes[node] = e
		m.appendChildren(e, node, sch)
		return e
	case *hast.Text:
		return &html.Node{Type: html.TextNode, Data: node.Value}
	}
	return nil
}

func (m *Mirror) appendChildren(to *html.Node, p hast.Parent, sch *schema.Schema) {
	for _, ch := range p.ChildNodes() {
		if n := m.mirror(ch, sch); n != nil {
			to.AppendChild(n)
		}
	}
}
