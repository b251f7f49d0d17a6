/*
Package transform converts a syntax tree into a virtual DOM.

Each element of the tree is rendered by a component: either the built-in tag
of the same name or a user supplied override. While walking the tree, the
transformer translates property names into attribute names, sanitizes link
targets and computes contextual properties (heading level, list depth and
ordering, checked state of task list items, table header role, inline code),
which are handed to components in a vdom.Context.

Render state which depends on the position in the tree (list depth, HTML or
SVG property space) is kept in group-scoped registers, see package
core/parameters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package transform

import (
	"math"
	"strconv"
	"strings"

	"github.com/nomorechokedboy/markdown-vue/core/parameters"
	"github.com/nomorechokedboy/markdown-vue/engine/dom/schema"
	"github.com/nomorechokedboy/markdown-vue/engine/dom/style"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/nomorechokedboy/markdown-vue/engine/uri"
	"github.com/nomorechokedboy/markdown-vue/engine/vdom"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdvue.transform'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.transform")
}

// LinkURIFunc transforms the href of a link. title is "" if the link has no
// title.
type LinkURIFunc func(href string, children []hast.Node, title string) string

// LinkTargetFunc computes the target of a link. Returning the empty string
// leaves the link without a target attribute; a missing title is passed
// as "".
type LinkTargetFunc func(href string, children []hast.Node, title string) string

// ImageURIFunc transforms the src of an image.
type ImageURIFunc func(src, alt, title string) string

// Options control the transformation. The zero value is ready to use.
type Options struct {
	Components              map[string]vdom.Component // overrides by tag name
	SkipHTML                bool                      // drop raw nodes instead of rendering them as text
	SourcePos               bool                      // add a data-sourcepos attribute
	RawSourcePos            bool                      // put positions into the context
	IncludeElementIndex     bool                      // put sibling index and count into the context
	TransformLinkURI        LinkURIFunc               // nil for the default sanitizer
	DisableLinkURITransform bool                      // leave hrefs alone
	TransformImageURI       ImageURIFunc
	LinkTarget              string
	LinkTargetFunc          LinkTargetFunc // has precedence over LinkTarget
}

// transformer holds the state of a single transformation.
type transformer struct {
	opts *Options
	regs *parameters.Registers
}

// Children converts the children of root into virtual DOM nodes.
func Children(opts *Options, root hast.Parent) []*vdom.Node {
	if opts == nil {
		opts = &Options{}
	}
	t := &transformer{opts: opts, regs: parameters.NewRegisters()}
	children := t.children(root)
	if t.regs.Level() != 0 {
		tracer().Errorf("render registers unbalanced at level %d", t.regs.Level())
	}
	return children
}

var tableElements = map[string]bool{
	"table": true, "thead": true, "tbody": true, "tfoot": true, "tr": true,
}

func (t *transformer) children(parent hast.Parent) []*vdom.Node {
	var children []*vdom.Node
	inTable := false
	if e, ok := parent.(*hast.Element); ok {
		inTable = tableElements[e.TagName]
	}
	for i, ch := range parent.ChildNodes() {
		switch node := ch.(type) {
		case *hast.Element:
			if vnode := t.element(node, i, parent); vnode != nil {
				children = append(children, vnode)
			}
		case *hast.Text:
			if !inTable || node.Value != "\n" {
				children = append(children, vdom.Text(node.Value))
			}
		case *hast.Raw:
			if !t.opts.SkipHTML {
				children = append(children, vdom.Text(node.Value))
			}
		case *hast.Comment:
		default:
			tracer().Debugf("ignoring child of type %v", ch.Type())
		}
	}
	return children
}

func (t *transformer) element(e *hast.Element, index int, parent hast.Parent) *vdom.Node {
	name := e.TagName
	t.regs.Begingroup()
	defer t.regs.Endgroup()
	if t.regs.S(parameters.P_SPACE) == parameters.SpaceHTML && name == "svg" {
		t.regs.Push(parameters.P_SPACE, parameters.SpaceSVG)
	}
	sch := schema.ForSpace(t.regs.S(parameters.P_SPACE))
	var attrs vdom.Attrs
	for _, prop := range e.Properties {
		addProperty(&attrs, prop.Name, prop.Value, sch)
	}
	ctx := &vdom.Context{Node: e}
	if name == "ol" || name == "ul" {
		ctx.Depth = t.regs.N(parameters.P_LISTDEPTH)
		ctx.Ordered = name == "ol"
		t.regs.Push(parameters.P_LISTDEPTH, ctx.Depth+1)
	}
	children := t.children(e)
	var component vdom.Component = vdom.Tag(name)
	if c, ok := t.opts.Components[name]; ok && c != nil {
		component = c
	}
	pos := e.Position
	if pos == nil {
		pos = &hast.Position{}
	}
	key := strings.Join([]string{name, intOrEmpty(pos.Start.Line), intOrEmpty(pos.Start.Column),
		strconv.Itoa(index)}, "-")
	title := ""
	if s, ok := attrString(attrs, "title"); ok {
		title = s
	}
	if name == "a" {
		href, _ := attrString(attrs, "href")
		target := t.opts.LinkTarget
		if t.opts.LinkTargetFunc != nil {
			target = t.opts.LinkTargetFunc(href, e.Children, title)
		}
		if target != "" {
			attrs.Set("target", target)
		}
		if !t.opts.DisableLinkURITransform {
			if t.opts.TransformLinkURI != nil {
				attrs.Set("href", t.opts.TransformLinkURI(href, e.Children, title))
			} else {
				attrs.Set("href", uri.Sanitize(href))
			}
		}
	}
	if name == "img" && t.opts.TransformImageURI != nil {
		src, _ := attrString(attrs, "src")
		alt, _ := attrString(attrs, "alt")
		attrs.Set("src", t.opts.TransformImageURI(src, alt, title))
	}
	if name == "code" && hast.IsElement(parent) && !hast.IsElement(parent, "pre") {
		ctx.Inline = true
	}
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		ctx.Level = int(name[1] - '0')
	}
	if name == "li" && hast.IsElement(parent) {
		if input := firstInput(e); input != nil {
			checked := hast.Truthy(propertyValue(input, "checked"))
			ctx.Checked = &checked
		}
		ctx.Index = elementsBefore(parent, e)
		ctx.Ordered = hast.IsElement(parent, "ol")
	}
	if name == "td" || name == "th" {
		foldAlign(&attrs)
		ctx.IsHeader = name == "th"
	}
	if name == "tr" && hast.IsElement(parent) {
		ctx.IsHeader = hast.IsElement(parent, "thead")
	}
	if t.opts.SourcePos {
		attrs.Set("data-sourcepos", pos.String())
	}
	if t.opts.RawSourcePos {
		ctx.SourcePosition = e.Position
	}
	if t.opts.IncludeElementIndex {
		ctx.Index = elementsBefore(parent, e)
		ctx.SiblingCount = len(hast.Elements(parent))
	}
	if len(children) == 0 {
		children = nil
	}
	return vdom.Render(component, vdom.Props{Key: key, Attrs: attrs, Context: ctx}, children)
}

// addProperty adds a syntax tree property as an attribute. nil and NaN
// values are skipped.
func addProperty(attrs *vdom.Attrs, name string, value interface{}, sch *schema.Schema) {
	if value == nil {
		return
	}
	if f, ok := value.(float64); ok && math.IsNaN(f) {
		return
	}
	info := schema.Find(sch, name)
	if list, ok := value.([]string); ok {
		value = info.Join(list)
	}
	if s, ok := value.(string); ok && info.Property == "style" {
		value = style.Parse(s)
	}
	if info.Attribute == "" {
		tracer().Debugf("property %q without attribute name", name)
		return
	}
	attrs.Set(info.Attribute, value)
}

// foldAlign moves an align attribute of a table cell into its style.
func foldAlign(attrs *vdom.Attrs) {
	align, ok := attrs.Get("align")
	if !ok || !hast.Truthy(align) {
		return
	}
	decls, _ := attrs.Style()
	decls = append(style.Declarations(nil), decls...)
	decls.Set("text-align", style.Property(toString(align)))
	attrs.Set("style", decls)
	attrs.Delete("align")
}

func firstInput(e *hast.Element) *hast.Element {
	for _, ch := range e.Children {
		if hast.IsElement(ch, "input") {
			return ch.(*hast.Element)
		}
	}
	return nil
}

// elementsBefore counts the element siblings preceding node.
func elementsBefore(parent hast.Parent, node hast.Node) int {
	count := 0
	for _, ch := range parent.ChildNodes() {
		if ch == node {
			break
		}
		if hast.IsElement(ch) {
			count++
		}
	}
	return count
}

func propertyValue(e *hast.Element, name string) interface{} {
	v, _ := e.Property(name)
	return v
}

func attrString(attrs vdom.Attrs, name string) (string, bool) {
	v, ok := attrs.Get(name)
	if !ok || !hast.Truthy(v) {
		return "", false
	}
	return toString(v), true
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case style.Declarations:
		return x.String()
	}
	return ""
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
