/*
Package html parses raw HTML into hast nodes.

Markdown may contain raw HTML, which the Markdown front end keeps as
hast.Raw nodes. ExpandRaw replaces these nodes by the hast nodes they
describe, parsing the raw text together with its sibling nodes. This way an
opening tag and its closing tag, which Markdown keeps in separate raw nodes,
enclose the content between them:

	I am <b>bold</b>   →   Text("I am "), Raw("<b>"), Text("bold"), Raw("</b>")
	                   →   Text("I am "), Element(b, Text("bold"))

Parsing follows the HTML5 algorithm of golang.org/x/net/html.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package html

import (
	"strconv"
	"strings"

	"github.com/nomorechokedboy/markdown-vue/engine/dom/schema"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'mdvue.html'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.html")
}

// ParseFragment parses a fragment of HTML in the context of a body element.
func ParseFragment(raw string) ([]hast.Node, error) {
	return parseIn(raw, "body")
}

func parseIn(raw string, context string) ([]hast.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: context, DataAtom: atom.Lookup([]byte(context))}
	nodes, err := html.ParseFragment(strings.NewReader(raw), ctx)
	if err != nil {
		tracer().Errorf("unable to parse HTML fragment: %v", err)
		return nil, err
	}
	var result []hast.Node
	for _, n := range nodes {
		if h := fromHTML(n, schema.HTML, nil); h != nil {
			result = append(result, h)
		}
	}
	return result, nil
}

// fromHTML converts an x/net/html node. Elements listed in slots are
// replaced by the hast node they stand for.
func fromHTML(n *html.Node, sch *schema.Schema, slots []hast.Node) hast.Node {
	switch n.Type {
	case html.TextNode:
		return hast.NewText(n.Data)
	case html.CommentNode:
		return &hast.Comment{Value: n.Data}
	case html.ElementNode:
		if n.Data == slotTag {
			return slotFor(n, slots)
		}
		if n.Data == "svg" {
			sch = schema.SVG
		}
		e := hast.NewElement(n.Data, nil)
		for _, attr := range n.Attr {
			name := attr.Key
			if attr.Namespace != "" {
				name = attr.Namespace + ":" + attr.Key
			}
			info := schema.Find(sch, name)
			e.Properties.Set(info.Property, propertyValue(info, attr.Val))
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			if h := fromHTML(ch, sch, slots); h != nil {
				e.Children = append(e.Children, h)
			}
		}
		if n.DataAtom == atom.Template {
			tracer().Debugf("template content is not converted")
		}
		return e
	}
	tracer().Debugf("ignoring HTML node of type %d", n.Type)
	return nil
}

// propertyValue converts an attribute value to a property value.
func propertyValue(info schema.Info, value string) interface{} {
	switch {
	case info.Boolean:
		return true
	case info.SpaceSeparated:
		return strings.Fields(value)
	case info.CommaSeparated:
		var list []string
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				list = append(list, v)
			}
		}
		return list
	case info.Number:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return value
}

// --- Expanding raw nodes ---------------------------------------------------

// slotTag marks the place of an already parsed sibling in the HTML text
// given to the parser.
const slotTag = "mdvue-slot"

func slotFor(n *html.Node, slots []hast.Node) hast.Node {
	for _, attr := range n.Attr {
		if attr.Key == "data-slot" {
			if i, err := strconv.Atoi(attr.Val); err == nil && i >= 0 && i < len(slots) {
				return slots[i]
			}
		}
	}
	tracer().Errorf("lost a slot in raw HTML expansion")
	return nil
}

// ExpandRaw replaces all raw nodes below root by parsed HTML. Parsing errors
// leave the raw nodes of the parent in place.
func ExpandRaw(root hast.Parent) error {
	var err error
	expand(root, &err)
	return err
}

func expand(parent hast.Parent, errp *error) {
	hasRaw := false
	for _, ch := range parent.ChildNodes() {
		switch node := ch.(type) {
		case *hast.Raw:
			hasRaw = true
		case *hast.Element:
			expand(node, errp)
		}
	}
	if !hasRaw {
		return
	}
	var sb strings.Builder
	var slots []hast.Node
	for _, ch := range parent.ChildNodes() {
		switch node := ch.(type) {
		case *hast.Raw:
			sb.WriteString(node.Value)
		case *hast.Text:
			sb.WriteString(html.EscapeString(node.Value))
		default:
			sb.WriteString("<" + slotTag + " data-slot=\"" + strconv.Itoa(len(slots)) + "\"></" + slotTag + ">")
			slots = append(slots, ch)
		}
	}
	context := "body"
	if e, ok := parent.(*hast.Element); ok {
		context = e.TagName
	}
	ctx := &html.Node{Type: html.ElementNode, Data: context, DataAtom: atom.Lookup([]byte(context))}
	nodes, err := html.ParseFragment(strings.NewReader(sb.String()), ctx)
	if err != nil {
		tracer().Errorf("unable to parse raw HTML in <%s>: %v", context, err)
		if *errp == nil {
			*errp = err
		}
		return
	}
	sch := schema.HTML
	if context == "svg" {
		sch = schema.SVG
	}
	var children []hast.Node
	for _, n := range nodes {
		if h := fromHTML(n, sch, slots); h != nil {
			children = append(children, h)
		}
	}
	tracer().Debugf("expanded raw HTML in <%s> into %d nodes", context, len(children))
	parent.SetChildNodes(children)
}
