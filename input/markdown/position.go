package markdown

import (
	"sort"
	"unicode/utf8"

	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// lineIndex maps byte offsets of a source text to line/column points.
type lineIndex struct {
	source []byte
	starts []int // byte offsets of line starts
}

func newLineIndex(source []byte) *lineIndex {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{source: source, starts: starts}
}

// point returns the 1-based line and column of a byte offset. Columns
// count runes.
func (li *lineIndex) point(offset int) hast.Point {
	if offset < 0 || offset > len(li.source) {
		return hast.Point{}
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	col := utf8.RuneCount(li.source[li.starts[line]:offset]) + 1
	return hast.Pt(line+1, col, offset)
}

func (li *lineIndex) span(start, stop int) *hast.Position {
	if start < 0 || stop < start {
		return nil
	}
	return hast.Span(li.point(start), li.point(stop))
}

// lineStart returns the offset of the start of the line containing offset.
func (li *lineIndex) lineStart(offset int) int {
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	return li.starts[line]
}

// lineEnd returns the offset of the line break (or end of text) of the line
// containing offset.
func (li *lineIndex) lineEnd(offset int) int {
	for i := offset; i < len(li.source); i++ {
		if li.source[i] == '\n' {
			return i
		}
	}
	return len(li.source)
}

// --- Extents of goldmark nodes ---------------------------------------------

// extent is a byte range [start, stop) of a node in the source, with
// start < 0 if unknown.
type extent struct {
	start, stop int
}

var unknown = extent{-1, -1}

func (e extent) known() bool {
	return e.start >= 0 && e.stop >= e.start
}

// extentOf determines the source range of a node, best effort.
func (c *converter) extentOf(n ast.Node) extent {
	if x, ok := c.extents[n]; ok {
		return x
	}
	x := c.computeExtent(n)
	c.extents[n] = x
	return x
}

func (c *converter) computeExtent(n ast.Node) extent {
	src := c.source
	switch node := n.(type) {
	case *ast.Text:
		return extent{node.Segment.Start, node.Segment.Stop}
	case *ast.RawHTML:
		if node.Segments.Len() == 0 {
			return unknown
		}
		return extent{node.Segments.At(0).Start, node.Segments.At(node.Segments.Len() - 1).Stop}
	case *ast.Emphasis:
		return c.delimited(n, node.Level, node.Level)
	case *extast.Strikethrough:
		x := c.childExtent(n)
		if !x.known() {
			return unknown
		}
		l, r := 0, 0
		for x.start-l > 0 && src[x.start-l-1] == '~' {
			l++
		}
		for x.stop+r < len(src) && src[x.stop+r] == '~' {
			r++
		}
		return extent{x.start - l, x.stop + r}
	case *ast.CodeSpan:
		x := c.childExtent(n)
		if !x.known() {
			return unknown
		}
		start, stop := x.start, x.stop
		for start > 0 && (src[start-1] == '`' || src[start-1] == ' ') {
			start--
		}
		for stop < len(src) && (src[stop] == '`' || src[stop] == ' ') {
			stop++
		}
		return extent{start, stop}
	case *ast.Link:
		return c.linkExtent(n, 1)
	case *ast.Image:
		return c.linkExtent(n, 2)
	}
	if n.Type() != ast.TypeBlock {
		return c.childExtent(n)
	}
	return c.blockExtent(n)
}

// childExtent spans the extents of the first and last child of n.
func (c *converter) childExtent(n ast.Node) extent {
	start, stop := -1, -1
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if x := c.extentOf(ch); x.known() {
			start = x.start
			break
		}
	}
	for ch := n.LastChild(); ch != nil; ch = ch.PreviousSibling() {
		if x := c.extentOf(ch); x.known() {
			stop = x.stop
			break
		}
	}
	if start < 0 || stop < start {
		return unknown
	}
	return extent{start, stop}
}

// delimited widens the extent of the children of n by delimiter runs.
func (c *converter) delimited(n ast.Node, left, right int) extent {
	x := c.childExtent(n)
	if !x.known() || x.start-left < 0 || x.stop+right > len(c.source) {
		return unknown
	}
	return extent{x.start - left, x.stop + right}
}

// linkExtent covers "[label](destination)", "[label][ref]" and "[label]".
// open is the length of the opening delimiter.
func (c *converter) linkExtent(n ast.Node, open int) extent {
	src := c.source
	x := c.childExtent(n)
	if !x.known() || x.start-open < 0 || x.stop >= len(src) || src[x.stop] != ']' {
		return unknown
	}
	stop := x.stop + 1
	if stop < len(src) {
		switch src[stop] {
		case '(':
			depth := 0
			for i := stop; i < len(src); i++ {
				if src[i] == '\\' {
					i++
					continue
				}
				if src[i] == '(' {
					depth++
				} else if src[i] == ')' {
					depth--
					if depth == 0 {
						return extent{x.start - open, i + 1}
					}
				}
			}
		case '[':
			if i := indexByteFrom(src, stop, ']'); i >= 0 {
				return extent{x.start - open, i + 1}
			}
		}
	}
	return extent{x.start - open, stop}
}

func (c *converter) blockExtent(n ast.Node) extent {
	src := c.source
	if lines := n.Lines(); lines != nil && lines.Len() > 0 {
		start := lines.At(0).Start
		stop := lines.At(lines.Len() - 1).Stop
		switch node := n.(type) {
		case *ast.FencedCodeBlock:
			// include the fences
			if ls := c.lines.lineStart(start); ls > 0 {
				start = firstNonSpace(src, c.lines.lineStart(ls-1))
			}
			if stop < len(src) {
				stop = c.lines.lineEnd(stop)
			}
			return extent{start, trimRight(src, start, stop)}
		case *ast.Heading:
			for start > 0 && (src[start-1] == '#' || src[start-1] == ' ' || src[start-1] == '\t') {
				start--
			}
			if node.Level > 0 {
				stop = trimRight(src, start, stop)
				for stop < len(src) && (src[stop] == ' ' || src[stop] == '#') {
					stop++
				}
			}
			return extent{start, trimRight(src, start, stop)}
		case *ast.HTMLBlock:
			if node.HasClosure() {
				stop = node.ClosureLine.Stop
			}
		}
		return extent{start, trimRight(src, start, stop)}
	}
	switch n.(type) {
	case *ast.Blockquote, *ast.List, *ast.ListItem, *extast.Footnote:
		x := c.childExtent(n)
		if !x.known() {
			return unknown
		}
		start := x.start
		for start > 0 && isMarkerByte(src[start-1]) {
			start--
		}
		return extent{start, x.stop}
	case *extast.Table, *extast.TableHeader, *extast.TableRow, *extast.TableCell:
		return c.childExtent(n)
	}
	// Blocks without lines, e.g. thematic breaks: take the first non-blank
	// line after the preceding sibling.
	from := 0
	if prev := n.PreviousSibling(); prev != nil {
		if x := c.extentOf(prev); x.known() {
			from = x.stop
		}
	} else if p := n.Parent(); p != nil && p.Kind() != ast.KindDocument {
		return unknown
	}
	for from < len(src) {
		ls := c.lines.lineStart(from)
		le := c.lines.lineEnd(from)
		if ls < from { // rest of a preceding line
			from = le + 1
			continue
		}
		if start := firstNonSpace(src, ls); start < le {
			return extent{start, trimRight(src, start, le)}
		}
		from = le + 1
	}
	return unknown
}

func isMarkerByte(b byte) bool {
	switch b {
	case '>', ' ', '\t', '-', '*', '+', '.', ')', '[', '^', ']', ':':
		return true
	}
	return b >= '0' && b <= '9'
}

func firstNonSpace(src []byte, from int) int {
	for from < len(src) && (src[from] == ' ' || src[from] == '\t') {
		from++
	}
	return from
}

// trimRight moves stop left over trailing white space, but not before start.
func trimRight(src []byte, start, stop int) int {
	if stop > len(src) {
		stop = len(src)
	}
	for stop > start {
		switch src[stop-1] {
		case '\n', '\r', ' ', '\t':
			stop--
			continue
		}
		break
	}
	return stop
}

func indexByteFrom(src []byte, from int, b byte) int {
	for i := from; i < len(src); i++ {
		if src[i] == b {
			return i
		}
	}
	return -1
}

// position returns the hast position of a node, or nil if unknown.
func (c *converter) position(n ast.Node) *hast.Position {
	x := c.extentOf(n)
	if !x.known() {
		return nil
	}
	return c.lines.span(x.start, x.stop)
}
