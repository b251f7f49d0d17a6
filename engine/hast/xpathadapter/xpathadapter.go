/*
Package xpathadapter implements an xpath.NodeNavigator for hast trees.

We use this library for XPath queries:

	github.com/antchfx/xpath

hast nodes do not link to their parents, therefore the navigator keeps the
path from the root to the current node. Attributes are presented with their
HTML names (class, aria-describedby), not with their property names.

For a description of the various methods of interface xpath.NodeNavigator
please refer to the documentation of antchfx/xpath. It is not replicated here.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package xpathadapter

import (
	"errors"

	"github.com/antchfx/xpath"
	"github.com/nomorechokedboy/markdown-vue/engine/dom/schema"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdvue.xpath'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.xpath")
}

type step struct {
	parent hast.Parent
	index  int
}

// NodeNavigator navigates a hast tree for package xpath.
type NodeNavigator struct {
	root, current hast.Node
	path          []step // from root to the parent of current
	attr          int    // attributes index
}

// NewNavigator creates a new xpath.NodeNavigator for a hast tree.
func NewNavigator(root hast.Node) *NodeNavigator {
	return &NodeNavigator{
		current: root,
		root:    root,
		attr:    -1,
	}
}

// CurrentNode returns the node the navigator is positioned at.
func CurrentNode(nav xpath.NodeNavigator) (hast.Node, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type xpathadapter.NodeNavigator")
	}
	return mynav.current, nil
}

// Parent returns the parent of the current node and the index of the node
// within its parent. For the root node, parent is nil.
func (nav *NodeNavigator) Parent() (hast.Parent, int) {
	if len(nav.path) == 0 {
		return nil, -1
	}
	top := nav.path[len(nav.path)-1]
	return top.parent, top.index
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	switch nav.current.(type) {
	case *hast.Root:
		return xpath.RootNode
	case *hast.Element:
		if nav.attr != -1 {
			return xpath.AttributeNode
		}
		return xpath.ElementNode
	case *hast.Comment:
		return xpath.CommentNode
	}
	return xpath.TextNode
}

func (nav *NodeNavigator) LocalName() string {
	e, ok := nav.current.(*hast.Element)
	if !ok {
		return ""
	}
	if nav.attr != -1 {
		return nav.attrInfo().Attribute
	}
	return e.TagName
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	switch n := nav.current.(type) {
	case *hast.Element:
		if nav.attr != -1 {
			return nav.attrInfo().Format(n.Properties[nav.attr].Value)
		}
		return hast.TextContent(n)
	case *hast.Text:
		return n.Value
	case *hast.Raw:
		return n.Value
	case *hast.Comment:
		return n.Value
	}
	return hast.TextContent(nav.current)
}

// attrInfo looks up the current attribute, in the SVG schema below an svg
// element.
func (nav *NodeNavigator) attrInfo() schema.Info {
	e := nav.current.(*hast.Element)
	sch := schema.HTML
	if e.TagName == "svg" {
		sch = schema.SVG
	}
	for _, s := range nav.path {
		if hast.IsElement(s.parent, "svg") {
			sch = schema.SVG
		}
	}
	return schema.Find(sch, e.Properties[nav.attr].Name)
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	n.path = append([]step(nil), nav.path...)
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.current = nav.root
	nav.path = nav.path[:0]
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if len(nav.path) == 0 {
		return false
	}
	nav.current = nav.path[len(nav.path)-1].parent
	nav.path = nav.path[:len(nav.path)-1]
	return true
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	e, ok := nav.current.(*hast.Element)
	if !ok || nav.attr >= len(e.Properties)-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	p, ok := nav.current.(hast.Parent)
	if !ok || len(p.ChildNodes()) == 0 {
		return false
	}
	nav.path = append(nav.path, step{parent: p, index: 0})
	nav.current = p.ChildNodes()[0]
	return true
}

func (nav *NodeNavigator) MoveToFirst() bool {
	return nav.moveToSibling(func(int) int { return 0 })
}

func (nav *NodeNavigator) MoveToNext() bool {
	return nav.moveToSibling(func(i int) int { return i + 1 })
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	return nav.moveToSibling(func(i int) int { return i - 1 })
}

func (nav *NodeNavigator) moveToSibling(target func(int) int) bool {
	if nav.attr != -1 || len(nav.path) == 0 {
		return false
	}
	top := &nav.path[len(nav.path)-1]
	i := target(top.index)
	if i == top.index || i < 0 || i >= len(top.parent.ChildNodes()) {
		return false
	}
	top.index = i
	nav.current = top.parent.ChildNodes()[i]
	return true
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.path = append(nav.path[:0], n.path...)
	nav.attr = n.attr
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

var _ xpath.NodeNavigator = &NodeNavigator{}

// --- Queries ---------------------------------------------------------------

// Match is a node selected by a query, together with its parent.
type Match struct {
	Node   hast.Node
	Parent hast.Parent // nil for the root
	Index  int         // index of Node in Parent's children
}

// Select evaluates an XPath expression and returns all matching nodes in
// document order.
func Select(root hast.Node, expr string) ([]Match, error) {
	x, err := xpath.Compile(expr)
	if err != nil {
		tracer().Errorf("cannot compile XPath %q: %v", expr, err)
		return nil, err
	}
	var matches []Match
	it := x.Select(NewNavigator(root))
	for it.MoveNext() {
		nav, ok := it.Current().(*NodeNavigator)
		if !ok || nav.attr != -1 {
			continue
		}
		parent, index := nav.Parent()
		matches = append(matches, Match{Node: nav.current, Parent: parent, Index: index})
	}
	tracer().Debugf("XPath %q selected %d nodes", expr, len(matches))
	return matches, nil
}

// SelectElements evaluates an XPath expression and returns the matching
// elements.
func SelectElements(root hast.Node, expr string) ([]*hast.Element, error) {
	matches, err := Select(root, expr)
	if err != nil {
		return nil, err
	}
	var elements []*hast.Element
	for _, m := range matches {
		if e, ok := m.Node.(*hast.Element); ok {
			elements = append(elements, e)
		}
	}
	return elements, nil
}
