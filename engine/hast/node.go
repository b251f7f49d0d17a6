/*
Package hast defines the HTML-like syntax tree a Markdown document is converted
to before it is rendered into UI components.

The tree mirrors the hast format of the unified ecosystem: elements carry a tag
name, an ordered list of properties (named in property style, e.g. className or
ariaDescribedBy) and children; text, raw and comment nodes carry a value. A
root node appears exactly once, at the top of a tree.

Clients dispatch on nodes with type switches:

	switch n := node.(type) {
	case *hast.Element:
	    …
	case *hast.Text:
	    …
	}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package hast

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdvue.hast'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.hast")
}

// NodeType discriminates the variants of Node.
type NodeType int8

// Node types of a syntax tree.
const (
	RootNode NodeType = iota
	ElementNode
	TextNode
	RawNode
	CommentNode
)

func (t NodeType) String() string {
	switch t {
	case RootNode:
		return "root"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case RawNode:
		return "raw"
	case CommentNode:
		return "comment"
	}
	return "unknown"
}

// Node is a node of a syntax tree. The set of implementations is closed:
// *Root, *Element, *Text, *Raw and *Comment.
type Node interface {
	Type() NodeType
	isNode()
}

// Parent is a node which may have children, i.e. *Root or *Element.
type Parent interface {
	Node
	ChildNodes() []Node
	SetChildNodes([]Node)
}

// Root is the top node of a tree.
type Root struct {
	Children []Node
}

// Element is an HTML element.
type Element struct {
	TagName    string
	Properties Properties
	Children   []Node
	Position   *Position // nil for nodes created by plugins
}

// Text is literal text content.
type Text struct {
	Value    string
	Position *Position
}

// Raw is markup which has not been parsed into elements.
type Raw struct {
	Value    string
	Position *Position
}

// Comment is an HTML comment.
type Comment struct {
	Value string
}

func (*Root) Type() NodeType    { return RootNode }
func (*Element) Type() NodeType { return ElementNode }
func (*Text) Type() NodeType    { return TextNode }
func (*Raw) Type() NodeType     { return RawNode }
func (*Comment) Type() NodeType { return CommentNode }

func (*Root) isNode()    {}
func (*Element) isNode() {}
func (*Text) isNode()    {}
func (*Raw) isNode()     {}
func (*Comment) isNode() {}

// ChildNodes is part of interface Parent.
func (r *Root) ChildNodes() []Node { return r.Children }

// SetChildNodes is part of interface Parent.
func (r *Root) SetChildNodes(ch []Node) { r.Children = ch }

// ChildNodes is part of interface Parent.
func (e *Element) ChildNodes() []Node { return e.Children }

// SetChildNodes is part of interface Parent.
func (e *Element) SetChildNodes(ch []Node) { e.Children = ch }

var _ Parent = &Root{}
var _ Parent = &Element{}

// NewRoot creates a root node.
func NewRoot(children ...Node) *Root {
	return &Root{Children: children}
}

// NewElement creates an element node. props may be nil.
func NewElement(tag string, props Properties, children ...Node) *Element {
	return &Element{TagName: tag, Properties: props, Children: children}
}

// NewText creates a text node.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// Property returns the value of a property of e.
func (e *Element) Property(name string) (interface{}, bool) {
	return e.Properties.Get(name)
}

// StringProperty returns a property of e if it is of type string, or "".
func (e *Element) StringProperty(name string) string {
	if v, ok := e.Properties.Get(name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsElement returns true if n is an element with one of the given tag
// names. Without any tag names it checks for elements in general.
func IsElement(n Node, tags ...string) bool {
	e, ok := n.(*Element)
	if !ok {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if e.TagName == t {
			return true
		}
	}
	return false
}

// Elements returns the element children of a parent.
func Elements(p Parent) []*Element {
	var elems []*Element
	for _, ch := range p.ChildNodes() {
		if e, ok := ch.(*Element); ok {
			elems = append(elems, e)
		}
	}
	return elems
}

// TextContent concatenates the values of all text nodes below n.
func TextContent(n Node) string {
	var sb strings.Builder
	Visit(n, func(node Node, _ int, _ Parent) WalkResult {
		if t, ok := node.(*Text); ok {
			sb.WriteString(t.Value)
		}
		return WalkContinue
	})
	return sb.String()
}
