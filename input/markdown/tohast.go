package markdown

import (
	"strconv"
	"strings"

	"github.com/nomorechokedboy/markdown-vue/engine/dom/schema"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	emojiast "github.com/yuin/goldmark-emoji/ast"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// converter holds the state of a single conversion.
type converter struct {
	source    []byte
	opts      Options
	lines     *lineIndex
	extents   map[ast.Node]extent
	footnotes []*extast.Footnote // referenced definitions, by index
	labels    map[int]string     // footnote index → identifier
	refCounts map[int]int        // footnote index → number of references
}

// ToHast converts a goldmark document into a hast tree.
func ToHast(doc ast.Node, source []byte, opts Options) *hast.Root {
	c := &converter{
		source:    source,
		opts:      opts.withDefaults(),
		lines:     newLineIndex(source),
		extents:   make(map[ast.Node]extent),
		labels:    make(map[int]string),
		refCounts: make(map[int]int),
	}
	c.collectFootnotes(doc)
	root := hast.NewRoot(wrap(c.blocks(doc), false)...)
	if foot := c.footer(); foot != nil {
		root.Children = append(root.Children, hast.NewText("\n"), foot)
	}
	tracer().Debugf("converted markdown into %d top-level hast nodes", len(root.Children))
	return root
}

// wrap joins nodes with newline texts. Loose wrapping adds a newline at
// the start and, if there are nodes, at the end.
func wrap(nodes []hast.Node, loose bool) []hast.Node {
	var result []hast.Node
	if loose {
		result = append(result, hast.NewText("\n"))
	}
	for i, n := range nodes {
		if i > 0 {
			result = append(result, hast.NewText("\n"))
		}
		result = append(result, n)
	}
	if loose && len(nodes) > 0 {
		result = append(result, hast.NewText("\n"))
	}
	return result
}

// blocks converts the children of a block container.
func (c *converter) blocks(parent ast.Node) []hast.Node {
	var result []hast.Node
	for ch := parent.FirstChild(); ch != nil; ch = ch.NextSibling() {
		result = append(result, c.block(ch)...)
	}
	return result
}

func (c *converter) element(n ast.Node, tag string, props hast.Properties, children ...hast.Node) *hast.Element {
	e := hast.NewElement(tag, props, children...)
	if n != nil {
		e.Position = c.position(n)
		c.addAttributes(e, n)
	}
	return e
}

// addAttributes copies attributes set on goldmark nodes, e.g. heading ids.
func (c *converter) addAttributes(e *hast.Element, n ast.Node) {
	for _, attr := range n.Attributes() {
		name := string(attr.Name)
		var value string
		switch v := attr.Value.(type) {
		case []byte:
			value = string(v)
		case string:
			value = v
		default:
			continue
		}
		info := schema.Find(schema.HTML, name)
		if info.SpaceSeparated || info.CommaSeparated {
			e.Properties.Set(info.Property, strings.Fields(strings.ReplaceAll(value, ",", " ")))
		} else {
			e.Properties.Set(info.Property, value)
		}
	}
}

func (c *converter) block(n ast.Node) []hast.Node {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if n.Lines().Len() == 0 && !n.HasChildren() {
			return nil // held link reference definitions only
		}
		return one(c.element(n, "p", nil, c.inlines(n)...))
	case *ast.Heading:
		return one(c.element(n, "h"+strconv.Itoa(node.Level), nil, c.inlines(n)...))
	case *ast.ThematicBreak:
		return one(c.element(n, "hr", nil))
	case *ast.Blockquote:
		return one(c.element(n, "blockquote", nil, wrap(c.blocks(n), true)...))
	case *ast.List:
		return one(c.list(node))
	case *ast.ListItem:
		return one(c.listItem(node, true))
	case *ast.CodeBlock:
		return one(c.code(n, ""))
	case *ast.FencedCodeBlock:
		lang := ""
		if node.Info != nil {
			info := node.Info.Segment.Value(c.source)
			if i := indexSpace(info); i >= 0 {
				info = info[:i]
			}
			lang = decode(info)
		}
		return one(c.code(n, lang))
	case *ast.HTMLBlock:
		var sb strings.Builder
		for i := 0; i < node.Lines().Len(); i++ {
			seg := node.Lines().At(i)
			sb.Write(seg.Value(c.source))
		}
		if node.HasClosure() {
			sb.Write(node.ClosureLine.Value(c.source))
		}
		return c.raw(n, strings.TrimRight(sb.String(), "\r\n"))
	case *extast.Table:
		return one(c.table(node))
	case *extast.FootnoteList:
		return nil // rendered by footer
	}
	tracer().Debugf("unknown block node %s, converting children", n.Kind())
	if n.Type() == ast.TypeBlock && n.FirstChild() != nil && n.FirstChild().Type() == ast.TypeInline {
		return c.inlines(n)
	}
	return c.blocks(n)
}

func one(n hast.Node) []hast.Node {
	return []hast.Node{n}
}

func (c *converter) raw(n ast.Node, value string) []hast.Node {
	if !c.opts.AllowDangerousHTML {
		return nil
	}
	return one(&hast.Raw{Value: value, Position: c.position(n)})
}

func indexSpace(b []byte) int {
	for i, c := range b {
		if c == ' ' || c == '\t' {
			return i
		}
	}
	return -1
}

// code creates pre > code for code blocks. The value carries exactly one
// trailing newline unless empty.
func (c *converter) code(n ast.Node, lang string) *hast.Element {
	var sb strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		seg := n.Lines().At(i)
		sb.Write(seg.Value(c.source))
	}
	value := strings.TrimRight(sb.String(), "\n")
	if value != "" {
		value += "\n"
	}
	var props hast.Properties
	if lang != "" {
		props = hast.Props("className", []string{"language-" + lang})
	}
	code := hast.NewElement("code", props, hast.NewText(value))
	pre := c.element(n, "pre", nil, code)
	code.Position = pre.Position
	return pre
}

// --- Lists -----------------------------------------------------------------

func (c *converter) list(list *ast.List) *hast.Element {
	var items []hast.Node
	var props hast.Properties
	if list.IsOrdered() && list.Start != 1 {
		props.Set("start", list.Start)
	}
	loose := !list.IsTight
	for ch := list.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if item, ok := ch.(*ast.ListItem); ok {
			li := c.listItem(item, loose)
			if hasClass(li, "task-list-item") && !props.Has("className") {
				props.Set("className", []string{"contains-task-list"})
			}
			items = append(items, li)
		} else {
			items = append(items, c.block(ch)...)
		}
	}
	tag := "ul"
	if list.IsOrdered() {
		tag = "ol"
	}
	return c.element(list, tag, props, wrap(items, true)...)
}

func hasClass(e *hast.Element, class string) bool {
	if v, ok := e.Property("className"); ok {
		if classes, ok := v.([]string); ok {
			for _, cl := range classes {
				if cl == class {
					return true
				}
			}
		}
	}
	return false
}

// taskCheckBox finds a task list check box at the start of an item.
func taskCheckBox(item *ast.ListItem) *extast.TaskCheckBox {
	if first := item.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
			return box
		}
	}
	return nil
}

func isP(n hast.Node) bool {
	return hast.IsElement(n, "p")
}

func (c *converter) listItem(item *ast.ListItem, loose bool) *hast.Element {
	results := c.blocks(item)
	var props hast.Properties
	if box := taskCheckBox(item); box != nil {
		var paragraph *hast.Element
		if len(results) > 0 && isP(results[0]) {
			paragraph = results[0].(*hast.Element)
		} else {
			paragraph = hast.NewElement("p", nil)
			results = append([]hast.Node{paragraph}, results...)
		}
		if len(paragraph.Children) > 0 {
			paragraph.Children = append([]hast.Node{hast.NewText(" ")}, paragraph.Children...)
		}
		input := hast.NewElement("input", hast.Props("type", "checkbox", "checked", box.IsChecked, "disabled", true))
		paragraph.Children = append([]hast.Node{input}, paragraph.Children...)
		props.Set("className", []string{"task-list-item"})
	}
	var children []hast.Node
	for i, child := range results {
		// newlines before nodes, except for a first paragraph in tight items
		if loose || i != 0 || !isP(child) {
			children = append(children, hast.NewText("\n"))
		}
		if isP(child) && !loose {
			children = append(children, child.(*hast.Element).Children...)
		} else {
			children = append(children, child)
		}
	}
	if len(results) > 0 {
		if tail := results[len(results)-1]; loose || !isP(tail) {
			children = append(children, hast.NewText("\n"))
		}
	}
	return c.element(item, "li", props, children...)
}

// --- Tables ----------------------------------------------------------------

func (c *converter) table(table *extast.Table) *hast.Element {
	var rows []ast.Node
	for ch := table.FirstChild(); ch != nil; ch = ch.NextSibling() {
		rows = append(rows, ch)
	}
	var content []hast.Node
	if len(rows) > 0 {
		head := c.element(rows[0], "thead", nil, wrap(one(c.tableRow(table, rows[0], "th")), true)...)
		content = append(content, head)
	}
	if len(rows) > 1 {
		var body []hast.Node
		for _, row := range rows[1:] {
			body = append(body, c.tableRow(table, row, "td"))
		}
		tbody := hast.NewElement("tbody", nil, wrap(body, true)...)
		first, last := c.extentOf(rows[1]), c.extentOf(rows[len(rows)-1])
		if first.known() && last.known() {
			tbody.Position = c.lines.span(first.start, last.stop)
		}
		content = append(content, tbody)
	}
	return c.element(table, "table", nil, wrap(content, true)...)
}

func (c *converter) tableRow(table *extast.Table, row ast.Node, tag string) *hast.Element {
	var cells []ast.Node
	for ch := row.FirstChild(); ch != nil; ch = ch.NextSibling() {
		cells = append(cells, ch)
	}
	length := len(table.Alignments)
	if length == 0 {
		length = len(cells)
	}
	var result []hast.Node
	for i := 0; i < length; i++ {
		var props hast.Properties
		if i < len(table.Alignments) {
			if align := alignment(table.Alignments[i]); align != "" {
				props.Set("align", align)
			}
		}
		if i < len(cells) {
			result = append(result, c.element(cells[i], tag, props, c.inlines(cells[i])...))
		} else {
			result = append(result, hast.NewElement(tag, props))
		}
	}
	tr := hast.NewElement("tr", nil, wrap(result, true)...)
	tr.Position = c.position(row)
	return tr
}

func alignment(a extast.Alignment) string {
	switch a {
	case extast.AlignLeft:
		return "left"
	case extast.AlignRight:
		return "right"
	case extast.AlignCenter:
		return "center"
	}
	return ""
}

// --- Inlines ---------------------------------------------------------------

// inlines converts the inline children of n, merging adjacent texts.
func (c *converter) inlines(n ast.Node) []hast.Node {
	var result []hast.Node
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		for _, h := range c.inline(ch) {
			result = appendMerged(result, h)
		}
	}
	return result
}

// appendMerged appends n, merging it into a preceding text node.
func appendMerged(nodes []hast.Node, n hast.Node) []hast.Node {
	t, ok := n.(*hast.Text)
	if !ok || len(nodes) == 0 {
		return append(nodes, n)
	}
	prev, ok := nodes[len(nodes)-1].(*hast.Text)
	if !ok || prev.Value == "\n" || t.Value == "\n" {
		return append(nodes, n)
	}
	merged := &hast.Text{Value: prev.Value + t.Value}
	if prev.Position != nil && t.Position != nil {
		merged.Position = hast.Span(prev.Position.Start, t.Position.End)
	}
	nodes[len(nodes)-1] = merged
	return nodes
}

func (c *converter) text(n ast.Node, value string) *hast.Text {
	return &hast.Text{Value: value, Position: c.position(n)}
}

func (c *converter) inline(n ast.Node) []hast.Node {
	switch node := n.(type) {
	case *ast.Text:
		var value string
		if node.IsRaw() {
			value = string(node.Segment.Value(c.source))
		} else {
			value = decode(node.Segment.Value(c.source))
		}
		if node.HardLineBreak() {
			return []hast.Node{c.text(n, value), hast.NewElement("br", nil), hast.NewText("\n")}
		}
		if node.SoftLineBreak() {
			value += "\n"
		}
		return one(c.text(n, value))
	case *ast.String:
		if node.IsRaw() || node.IsCode() {
			return one(hast.NewText(string(node.Value)))
		}
		return one(hast.NewText(decode(node.Value)))
	case *ast.CodeSpan:
		var sb strings.Builder
		for ch := node.FirstChild(); ch != nil; ch = ch.NextSibling() {
			switch t := ch.(type) {
			case *ast.Text:
				v := t.Segment.Value(c.source)
				if len(v) > 0 && v[len(v)-1] == '\n' {
					v = append(v[:len(v)-1:len(v)-1], ' ')
				}
				sb.Write(v)
			case *ast.String:
				sb.Write(t.Value)
			}
		}
		return one(c.element(n, "code", nil, hast.NewText(sb.String())))
	case *ast.Emphasis:
		tag := "em"
		if node.Level == 2 {
			tag = "strong"
		}
		return one(c.element(n, tag, nil, c.inlines(n)...))
	case *extast.Strikethrough:
		return one(c.element(n, "del", nil, c.inlines(n)...))
	case *ast.Link:
		props := hast.Props("href", string(util.URLEscape(node.Destination, true)))
		if len(node.Title) > 0 {
			props.Set("title", decode(node.Title))
		}
		return one(c.element(n, "a", props, c.inlines(n)...))
	case *ast.Image:
		props := hast.Props("src", string(util.URLEscape(node.Destination, true)),
			"alt", c.plainText(n))
		if len(node.Title) > 0 {
			props.Set("title", decode(node.Title))
		}
		return one(c.element(n, "img", props))
	case *ast.AutoLink:
		url := node.URL(c.source)
		if node.AutoLinkType == ast.AutoLinkEmail && !hasPrefixFold(url, "mailto:") {
			url = append([]byte("mailto:"), url...)
		}
		props := hast.Props("href", string(util.URLEscape(url, false)))
		return one(c.element(n, "a", props, hast.NewText(string(node.Label(c.source)))))
	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			sb.Write(seg.Value(c.source))
		}
		return c.raw(n, sb.String())
	case *extast.TaskCheckBox:
		return nil // rendered by listItem
	case *extast.FootnoteLink:
		return one(c.footnoteReference(node))
	case *extast.FootnoteBacklink:
		return nil // rendered by footer
	case *emojiast.Emoji:
		if node.Value != nil && len(node.Value.Unicode) > 0 {
			return one(hast.NewText(string(node.Value.Unicode)))
		}
		return one(hast.NewText(":" + string(node.ShortName) + ":"))
	}
	tracer().Debugf("unknown inline node %s, converting children", n.Kind())
	return c.inlines(n)
}

// plainText is the text content of inline nodes, as used for image alts.
func (c *converter) plainText(n ast.Node) string {
	var sb strings.Builder
	for _, h := range c.inlines(n) {
		sb.WriteString(hast.TextContent(h))
	}
	return sb.String()
}

func hasPrefixFold(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && strings.EqualFold(string(b[:len(prefix)]), prefix)
}
