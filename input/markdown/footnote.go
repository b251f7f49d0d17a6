package markdown

import (
	"strconv"
	"strings"

	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

// collectFootnotes records the identifiers of all referenced footnote
// definitions. goldmark numbers footnotes in order of first reference.
func (c *converter) collectFootnotes(doc ast.Node) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fn, ok := n.(*extast.Footnote); ok && fn.Index > 0 {
			c.footnotes = append(c.footnotes, fn)
			c.labels[fn.Index] = string(fn.Ref)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// safeID turns a footnote identifier into a URL-safe id fragment.
func safeID(label string) string {
	id := strings.ToLower(strings.Join(strings.Fields(label), " "))
	return string(util.URLEscape([]byte(id), false))
}

func (c *converter) footnoteReference(link *extast.FootnoteLink) hast.Node {
	label, ok := c.labels[link.Index]
	if !ok {
		label = strconv.Itoa(link.Index)
	}
	id := safeID(label)
	c.refCounts[link.Index]++
	n := c.refCounts[link.Index]
	refID := c.opts.ClobberPrefix + "fnref-" + id
	if n > 1 {
		refID += "-" + strconv.Itoa(n)
	}
	a := hast.NewElement("a", hast.Props(
		"href", "#"+c.opts.ClobberPrefix+"fn-"+id,
		"id", refID,
		"dataFootnoteRef", true,
		"ariaDescribedBy", []string{"footnote-label"},
	), hast.NewText(strconv.Itoa(link.Index)))
	sup := hast.NewElement("sup", nil, a)
	sup.Position = c.position(link)
	return sup
}

// footer creates the footnote section, or nil if nothing was referenced.
func (c *converter) footer() *hast.Element {
	var items []hast.Node
	for _, fn := range c.footnotes {
		count := c.refCounts[fn.Index]
		if count == 0 {
			continue
		}
		id := safeID(c.labels[fn.Index])
		var backRefs []hast.Node
		for k := 1; k <= count; k++ {
			if k > 1 {
				backRefs = append(backRefs, hast.NewText(" "))
			}
			href := "#" + c.opts.ClobberPrefix + "fnref-" + id
			if k > 1 {
				href += "-" + strconv.Itoa(k)
			}
			backRefs = append(backRefs, hast.NewElement("a", hast.Props(
				"href", href,
				"dataFootnoteBackref", "",
				"className", []string{"data-footnote-backref"},
				"ariaLabel", c.opts.FootnoteBackLabel,
			), hast.NewText("↩")))
		}
		content := c.blocks(fn)
		if len(content) > 0 && isP(content[len(content)-1]) {
			p := content[len(content)-1].(*hast.Element)
			if last := len(p.Children) - 1; last >= 0 {
				if t, ok := p.Children[last].(*hast.Text); ok {
					p.Children[last] = &hast.Text{Value: t.Value + " ", Position: t.Position}
				} else {
					p.Children = append(p.Children, hast.NewText(" "))
				}
			} else {
				p.Children = append(p.Children, hast.NewText(" "))
			}
			p.Children = append(p.Children, backRefs...)
		} else {
			content = append(content, backRefs...)
		}
		li := hast.NewElement("li", hast.Props("id", c.opts.ClobberPrefix+"fn-"+id), wrap(content, true)...)
		li.Position = c.position(fn)
		items = append(items, li)
	}
	if len(items) == 0 {
		return nil
	}
	tracer().Debugf("collected %d footnotes", len(items))
	label := hast.NewElement(c.opts.FootnoteLabelTagName,
		hast.Props("className", []string{"sr-only"}, "id", "footnote-label"),
		hast.NewText(c.opts.FootnoteLabel))
	return hast.NewElement("section",
		hast.Props("dataFootnotes", true, "className", []string{"footnotes"}),
		label, hast.NewText("\n"),
		hast.NewElement("ol", nil, wrap(items, true)...), hast.NewText("\n"))
}
