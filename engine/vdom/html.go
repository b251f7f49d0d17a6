package vdom

import (
	"strconv"
	"strings"

	"github.com/nomorechokedboy/markdown-vue/engine/dom/style"
)

// VoidElements are elements which never have content and are serialized
// without a closing tag.
var VoidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true, "br": true,
	"col": true, "embed": true, "frame": true, "hr": true, "image": true,
	"img": true, "input": true, "keygen": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoid returns true for void elements.
func IsVoid(tag string) bool {
	return VoidElements[tag]
}

// RenderHTML serializes n, including n itself, to HTML.
func RenderHTML(n *Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

// InnerHTML serializes the children of n to HTML.
func InnerHTML(n *Node) string {
	var sb strings.Builder
	if n != nil {
		for _, ch := range n.Children {
			writeNode(&sb, ch)
		}
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	if n.Kind == TextKind {
		sb.WriteString(escapeText(n.Text))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, attr := range n.Attrs {
		value, ok := attrValue(attr.Value)
		if !ok {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(value))
		sb.WriteByte('"')
	}
	sb.WriteByte('>')
	if IsVoid(n.Tag) {
		if len(n.Children) > 0 {
			tracer().Debugf("children of void element <%s> not serialized", n.Tag)
		}
		return
	}
	for _, ch := range n.Children {
		writeNode(sb, ch)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

// attrValue converts an attribute value to its serialized text. It returns
// false if the attribute is to be omitted.
func attrValue(v interface{}) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", false
	case string:
		return value, true
	case bool:
		return "", value
	case int:
		return strconv.Itoa(value), true
	case float64:
		if value != value {
			return "", false
		}
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case []string:
		return strings.Join(value, " "), true
	case style.Declarations:
		if value.IsEmpty() {
			return "", false
		}
		return value.String(), true
	}
	tracer().Errorf("attribute value of unsupported type %T", v)
	return "", false
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\u00a0", "&nbsp;")

var attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "\u00a0", "&nbsp;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
