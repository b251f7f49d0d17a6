/*
Package vdom is a small virtual DOM: a tree of UI component invocations,
as produced from a syntax tree by package transform.

A Node is either an element with a tag name, a key, attributes and children,
or a plain text node. Elements carry an optional Context with contextual
properties (heading level, list depth, table header role, …). Context values
are meant for component renderers and never appear in serialized markup.

Components are either built-in tags or functions rendering a node:

	components := map[string]vdom.Component{
	    "h1": vdom.Tag("h2"),
	    "em": vdom.RenderFunc(func(p vdom.Props, ch []*vdom.Node) *vdom.Node {
	        return vdom.H("i", p.Attrs, ch...)
	    }),
	}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package vdom

import (
	"github.com/nomorechokedboy/markdown-vue/engine/dom/style"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdvue.vdom'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.vdom")
}

// Kind discriminates element nodes from text nodes.
type Kind int8

// Kinds of nodes.
const (
	ElementKind Kind = iota
	TextKind
)

// Node is a node of a virtual DOM.
type Node struct {
	Kind     Kind
	Tag      string
	Key      string
	Attrs    Attrs
	Children []*Node
	Text     string   // for text nodes
	Context  *Context // contextual properties, may be nil
}

// Context holds contextual properties of an element. These are passed to
// component renderers and never serialized.
type Context struct {
	Node           *hast.Element  // the syntax tree node
	Level          int            // heading level 1…6, 0 for other elements
	Inline         bool           // code outside of pre
	Ordered        bool           // li in ol, or ol itself
	Depth          int            // nesting depth of ol/ul
	Checked        *bool          // task list state of li, nil if none
	Index          int            // number of preceding element siblings
	SiblingCount   int            // number of element siblings, including itself
	IsHeader       bool           // th, or tr in thead
	SourcePosition *hast.Position // raw source position
}

// Attr is an attribute of an element. Values are of type string, bool, int,
// float64 or style.Declarations.
type Attr struct {
	Name  string
	Value interface{}
}

// Attrs is an ordered list of attributes with unique names.
type Attrs []Attr

// Get returns the value of an attribute.
func (a Attrs) Get(name string) (interface{}, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Has returns true if an attribute is present.
func (a Attrs) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Set sets an attribute, keeping the position of an existing one.
func (a *Attrs) Set(name string, value interface{}) {
	for i := range *a {
		if (*a)[i].Name == name {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Name: name, Value: value})
}

// Delete removes an attribute.
func (a *Attrs) Delete(name string) {
	for i := range *a {
		if (*a)[i].Name == name {
			*a = append((*a)[:i], (*a)[i+1:]...)
			return
		}
	}
}

// Style returns the style attribute, if any.
func (a Attrs) Style() (style.Declarations, bool) {
	v, ok := a.Get("style")
	if !ok {
		return nil, false
	}
	d, ok := v.(style.Declarations)
	return d, ok
}

// H creates an element node.
func H(tag string, attrs Attrs, children ...*Node) *Node {
	return &Node{Kind: ElementKind, Tag: tag, Attrs: attrs, Children: children}
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{Kind: TextKind, Text: s}
}

// Attr returns the value of an attribute of n.
func (n *Node) Attr(name string) (interface{}, bool) {
	return n.Attrs.Get(name)
}

// --- Components ------------------------------------------------------------

// Props are the properties an element is rendered with.
type Props struct {
	Key     string
	Attrs   Attrs
	Context *Context
}

// Component renders an element. Implementations are Tag and RenderFunc.
type Component interface {
	isComponent()
}

// Tag is a built-in component rendering an element with the given tag name.
type Tag string

// RenderFunc is a user component. It may return nil to render nothing.
type RenderFunc func(props Props, children []*Node) *Node

func (Tag) isComponent()        {}
func (RenderFunc) isComponent() {}

// Render invokes a component. Built-in tags produce an element carrying
// props; render functions get a key assigned if they do not set one.
func Render(c Component, props Props, children []*Node) *Node {
	switch comp := c.(type) {
	case Tag:
		return &Node{
			Kind:     ElementKind,
			Tag:      string(comp),
			Key:      props.Key,
			Attrs:    props.Attrs,
			Children: children,
			Context:  props.Context,
		}
	case RenderFunc:
		n := comp(props, children)
		if n != nil && n.Key == "" {
			n.Key = props.Key
		}
		return n
	}
	tracer().Errorf("unknown component type %T", c)
	return nil
}
