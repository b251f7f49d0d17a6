/*
Package markdown is the Markdown front end. It parses Markdown with goldmark
and converts the resulting syntax tree into a hast tree, following the
conversion rules of the unified ecosystem (mdast-util-to-hast): block
content is separated by newline text nodes, tight list items unwrap their
paragraphs, tables are split into thead and tbody, task list items get a
disabled checkbox and footnotes are collected into a closing section.

	md := markdown.New(extension.GFM)
	doc, source := markdown.Parse(md, "# Hello")
	root := markdown.ToHast(doc, source, markdown.Options{})

Positions of hast nodes are derived from goldmark's text segments. They are
best effort: goldmark does not record the extent of every construct, and
positions are nil where they cannot be determined.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package markdown

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// tracer traces with key 'mdvue.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.markdown")
}

// Options configure the conversion to hast.
type Options struct {
	AllowDangerousHTML   bool   // keep raw HTML as hast.Raw nodes; dropped otherwise
	ClobberPrefix        string // prefix for footnote ids; defaults to "user-content-"
	FootnoteLabel        string // defaults to "Footnotes"
	FootnoteLabelTagName string // defaults to "h2"
	FootnoteBackLabel    string // defaults to "Back to content"
}

// Defaults for Options.
const (
	DefaultClobberPrefix        = "user-content-"
	DefaultFootnoteLabel        = "Footnotes"
	DefaultFootnoteLabelTagName = "h2"
	DefaultFootnoteBackLabel    = "Back to content"
)

func (o Options) withDefaults() Options {
	if o.ClobberPrefix == "" {
		o.ClobberPrefix = DefaultClobberPrefix
	}
	if o.FootnoteLabel == "" {
		o.FootnoteLabel = DefaultFootnoteLabel
	}
	if o.FootnoteLabelTagName == "" {
		o.FootnoteLabelTagName = DefaultFootnoteLabelTagName
	}
	if o.FootnoteBackLabel == "" {
		o.FootnoteBackLabel = DefaultFootnoteBackLabel
	}
	return o
}

// New creates a CommonMark parser extended by the given extenders.
func New(extenders ...goldmark.Extender) goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extenders...))
}

// Parse parses Markdown source text. It returns the document node and the
// source bytes the node's segments refer to.
func Parse(md goldmark.Markdown, source string) (ast.Node, []byte) {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))
	tracer().Debugf("parsed %d bytes of markdown", len(src))
	return doc, src
}
