/*
Package plugins holds ready-made plugins for the rendering pipeline.

Remark plugins extend the Markdown parser. They are goldmark extenders and
run before the conversion to hast:

	mdvue.Options{RemarkPlugins: []goldmark.Extender{plugins.GFM(), plugins.Emoji()}}

Rehype plugins transform the hast tree after the conversion. Each one may
modify the tree in place or return a replacement; a plugin returning a
tree without a root node makes rendering fail.

	mdvue.Options{RehypePlugins: []plugins.RehypePlugin{plugins.Raw(), plugins.TOC("")}}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package plugins

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// tracer traces with key 'mdvue.plugins'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.plugins")
}

// GFM enables GitHub flavored Markdown: tables, strikethrough, autolinks
// and task lists.
func GFM() goldmark.Extender {
	return extension.GFM
}

// Footnotes enables footnote references and definitions.
func Footnotes() goldmark.Extender {
	return extension.Footnote
}

// Emoji replaces emoji short names like :smile: by their Unicode symbols.
func Emoji() goldmark.Extender {
	return emoji.Emoji
}

// HeadingIDs gives headings an id attribute derived from their text.
func HeadingIDs() goldmark.Extender {
	return headingIDs{}
}

type headingIDs struct{}

func (headingIDs) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithAutoHeadingID())
}
