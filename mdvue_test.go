package mdvue

import (
	"errors"
	"strings"
	"testing"

	"github.com/nomorechokedboy/markdown-vue/core"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/nomorechokedboy/markdown-vue/engine/uri"
	"github.com/nomorechokedboy/markdown-vue/engine/vdom"
	"github.com/nomorechokedboy/markdown-vue/input/markdown"
	"github.com/nomorechokedboy/markdown-vue/plugins"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

var gfm = []goldmark.Extender{plugins.GFM()}

// prepend is a rehype plugin inserting nodes in front of the content.
func prepend(nodes ...hast.Node) plugins.RehypePlugin {
	return plugins.RehypeFunc(func(root hast.Node) (hast.Node, error) {
		r := root.(*hast.Root)
		r.Children = append(append([]hast.Node(nil), nodes...), r.Children...)
		return root, nil
	})
}

// passThrough renders an element unchanged, reporting its context.
func passThrough(tag string, report func(*vdom.Context)) vdom.Component {
	return vdom.RenderFunc(func(p vdom.Props, children []*vdom.Node) *vdom.Node {
		report(p.Context)
		return vdom.H(tag, p.Attrs, children...)
	})
}

func TestRenderTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	heading := func(level int) vdom.Component {
		return vdom.RenderFunc(func(p vdom.Props, children []*vdom.Node) *vdom.Node {
			class := "heading level-" + string(rune('0'+p.Context.Level))
			return vdom.H("span", vdom.Attrs{{Name: "class", Value: class}}, children...)
		})
	}
	table := []struct {
		name     string
		source   string
		opts     Options
		expected string
	}{
		{"single paragraph", "Test", Options{}, "<p>Test</p>"},
		{"link", "This is [a link](https://rust-lang.org/) to Rust Lang", Options{},
			`<p>This is <a href="https://rust-lang.org/">a link</a> to Rust Lang</p>`},
		{"uppercase protocol", "This is [a link](HTTPS://RUST-LANG.ORG/) to Rust Lang", Options{},
			`<p>This is <a href="HTTPS://RUST-LANG.ORG/">a link</a> to Rust Lang</p>`},
		{"link target", "This is [a link](https://rust-lang.org/) to Rust Lang", Options{LinkTarget: "_blank"},
			`<p>This is <a href="https://rust-lang.org/" target="_blank">a link</a> to Rust Lang</p>`},
		{"empty link with uri transformer", "Empty: []()", Options{
			TransformLinkURI: func(href string, _ []hast.Node, _ string) string { return href },
		}, `<p>Empty: <a href=""></a></p>`},
		{"link target func", "Empty: [](a \"b\")", Options{
			LinkTargetFunc: func(href string, _ []hast.Node, title string) string {
				assert.Equal(t, "a", href)
				assert.Equal(t, "b", title)
				return ""
			},
		}, `<p>Empty: <a href="a" title="b"></a></p>`},
		{"custom link transformer", "Received a great [pull request](https://github.com/remarkjs/react-markdown/pull/15) today", Options{
			TransformLinkURI: func(href string, _ []hast.Node, _ string) string {
				return strings.TrimPrefix(href, "https://github.com")
			},
		}, `<p>Received a great <a href="/remarkjs/react-markdown/pull/15">pull request</a> today</p>`},
		{"disabled link transform", "[a](data:text/html,<script>alert(1)</script>)", Options{DisableLinkURITransform: true},
			`<p><a href="data:text/html,%3Cscript%3Ealert(1)%3C/script%3E">a</a></p>`},
		{"image reference with transformer", "This is ![The Waffle NinJA][ninJA].\n\n[ninJA]: https://some.host/img.png", Options{
			TransformImageURI: func(src, alt, _ string) string {
				assert.Equal(t, "The Waffle NinJA", alt)
				return strings.Replace(src, ".png", ".jpg", 1)
			},
		}, `<p>This is <img src="https://some.host/img.jpg" alt="The Waffle NinJA">.</p>`},
		{"image reference without url", "![][a]\n\n[a]: <>", Options{}, `<p><img src="" alt=""></p>`},
		{"skip inline html", "I am having <strong>so</strong> much fun", Options{SkipHTML: true},
			"<p>I am having so much fun</p>"},
		{"escape html blocks", "This is a regular paragraph.\n\n<table>\n    <tr>\n        <td>Foo</td>\n    </tr>\n</table>\n\nThis is another regular paragraph.",
			Options{}, "<p>This is a regular paragraph.</p>\n&lt;table&gt;\n    &lt;tr&gt;\n        &lt;td&gt;Foo&lt;/td&gt;\n    &lt;/tr&gt;\n&lt;/table&gt;\n<p>This is another regular paragraph.</p>"},
		{"skip html blocks", "This is a regular paragraph.\n\n<table>\n    <tr>\n        <td>Foo</td>\n    </tr>\n</table>\n\nThis is another regular paragraph.",
			Options{SkipHTML: true}, "<p>This is a regular paragraph.</p>\n\n<p>This is another regular paragraph.</p>"},
		{"source positions", "Foo\n\n------------\n\nBar", Options{SourcePos: true},
			`<p data-sourcepos="1:1-1:4">Foo</p>` + "\n" + `<hr data-sourcepos="3:1-3:13">` + "\n" + `<p data-sourcepos="5:1-5:4">Bar</p>`},
		{"allowed elements", "# Header\n\nParagraph\n## New header\n1. List item\n2. List item 2",
			Options{AllowedElements: []string{"p", "ol", "li"}},
			"\n<p>Paragraph</p>\n\n<ol>\n<li>List item</li>\n<li>List item 2</li>\n</ol>"},
		{"disallowed elements", "# Header\n\nParagraph\n## New header\n1. List item\n2. List item 2\n\nFoo",
			Options{DisallowedElements: []string{"li"}},
			"<h1>Header</h1>\n<p>Paragraph</p>\n<h2>New header</h2>\n<ol>\n\n\n</ol>\n<p>Foo</p>"},
		{"unwrap disallowed", "Espen *~~initiated~~ had the initial commit*, but has had several **contributors**",
			Options{RemarkPlugins: gfm, DisallowedElements: []string{"em", "strong"}, UnwrapDisallowed: true},
			"<p>Espen <del>initiated</del> had the initial commit, but has had several contributors</p>"},
		{"allow element", "# Header\n\n[react-markdown](https://github.com/remarkjs/react-markdown/) is a nice helper\n\nAlso check out [my website](https://espen.codes/)",
			Options{AllowElement: func(e *hast.Element, _ int, _ hast.Parent) bool {
				return e.TagName != "a" || strings.HasPrefix(e.StringProperty("href"), "https://github.com/")
			}},
			"<h1>Header</h1>\n<p><a href=\"https://github.com/remarkjs/react-markdown/\">react-markdown</a> is a nice helper</p>\n<p>Also check out </p>"},
		{"override components", "# Header\n\nParagraph\n## New header\n1. List item\n2. List item 2\n\nFoo",
			Options{Components: map[string]vdom.Component{"h1": heading(1), "h2": heading(2)}},
			"<span class=\"heading level-1\">Header</span>\n<p>Paragraph</p>\n<span class=\"heading level-2\">New header</span>\n<ol>\n<li>List item</li>\n<li>List item 2</li>\n</ol>\n<p>Foo</p>"},
		{"tables", "Languages are fun, right?\n\n| ID  | English | Norwegian | Italian |\n| :-- | :-----: | --------: | ------- |\n| 1   | one     | en        | uno     |\n",
			Options{RemarkPlugins: gfm},
			`<p>Languages are fun, right?</p>` + "\n" + `<table><thead><tr><th style="text-align: left;">ID</th><th style="text-align: center;">English</th>` +
				`<th style="text-align: right;">Norwegian</th><th>Italian</th></tr></thead><tbody><tr><td style="text-align: left;">1</td>` +
				`<td style="text-align: center;">one</td><td style="text-align: right;">en</td><td>uno</td></tr></tbody></table>`},
		{"aria properties", "c", Options{RehypePlugins: []plugins.RehypePlugin{prepend(
			hast.NewElement("input", hast.Props("id", "a", "ariaDescribedBy", "b", "required", true)))}},
			`<input id="a" aria-describedby="b" required=""><p>c</p>`},
		{"data properties", "b", Options{RehypePlugins: []plugins.RehypePlugin{prepend(
			hast.NewElement("i", hast.Props("dataWhatever", "a")))}},
			`<i data-whatever="a"></i><p>b</p>`},
		{"comma separated properties", "c", Options{RehypePlugins: []plugins.RehypePlugin{prepend(
			hast.NewElement("i", hast.Props("accept", []string{"a", "b"})))}},
			`<i accept="a, b"></i><p>c</p>`},
		{"style properties", "a", Options{RehypePlugins: []plugins.RehypePlugin{prepend(
			hast.NewElement("i", hast.Props("style", "color: red; font-weight: bold")))}},
			`<i style="color: red; font-weight: bold;"></i><p>a</p>`},
		{"broken style properties", "a", Options{RehypePlugins: []plugins.RehypePlugin{prepend(
			hast.NewElement("i", hast.Props("style", "broken")))}},
			`<i></i><p>a</p>`},
		{"svg elements", "a", Options{RehypePlugins: []plugins.RehypePlugin{prepend(
			hast.NewElement("svg", hast.Props("xmlns", "http://www.w3.org/2000/svg", "viewBox", "0 0 500 500"),
				hast.NewElement("title", nil, hast.NewText("SVG `<circle>` element")),
				hast.NewElement("circle", hast.Props("cx", 120, "cy", 120, "r", 100)),
				hast.NewElement("path", hast.Props("strokeMiterLimit", "-1"))))}},
			`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 500"><title>SVG ` + "`&lt;circle&gt;`" +
				` element</title><circle cx="120" cy="120" r="100"></circle><path stroke-miterlimit="-1"></path></svg><p>a</p>`},
		{"comments", "a", Options{RehypePlugins: []plugins.RehypePlugin{prepend(&hast.Comment{Value: "things!"})}},
			"<p>a</p>"},
		{"table cells with style", "| a  |\n| :- |", Options{RemarkPlugins: gfm, RehypePlugins: []plugins.RehypePlugin{
			plugins.RehypeFunc(func(root hast.Node) (hast.Node, error) {
				for _, th := range hast.FindAll(root, "th") {
					th.Properties.Set("style", "color: red")
				}
				return root, nil
			})}},
			`<table><thead><tr><th style="color: red; text-align: left;">a</th></tr></thead></table>`},
		{"footnote options", "This is a statement[^1] with a citation.\n\n[^1]: This is a footnote for the citation.",
			Options{RemarkPlugins: []goldmark.Extender{plugins.GFM(), plugins.Footnotes()},
				RemarkRehypeOptions: markdown.Options{ClobberPrefix: "main-", FootnoteLabel: "Notes", FootnoteLabelTagName: "h3"}},
			`<p>This is a statement<sup><a href="#main-fn-1" id="main-fnref-1" data-footnote-ref="" aria-describedby="footnote-label">1</a></sup> with a citation.</p>` +
				"\n" + `<section data-footnotes="" class="footnotes"><h3 class="sr-only" id="footnote-label">Notes</h3>` + "\n" +
				`<ol>` + "\n" + `<li id="main-fn-1">` + "\n" + `<p>This is a footnote for the citation. <a href="#main-fnref-1" data-footnote-backref="" ` +
				`class="data-footnote-backref" aria-label="Back to content">↩</a></p>` + "\n</li>\n</ol>\n</section>"},
		{"funky definition keys", "[][__proto__] and [][constructor]\n\n[__proto__]: a\n[constructor]: b", Options{},
			`<p><a href="a"></a> and <a href="b"></a></p>`},
		{"rehype plugins without effect", "a", Options{RehypePlugins: []plugins.RehypePlugin{
			plugins.RehypeFunc(func(root hast.Node) (hast.Node, error) { return root, nil })}},
			"<p>a</p>"},
		{"empty source", "", Options{}, ""},
	}
	for _, tc := range table {
		opts := tc.opts
		out, err := RenderHTML(tc.source, &opts)
		if assert.NoError(t, err, tc.name) {
			assert.Equal(t, tc.expected, out, tc.name)
		}
	}
}

func TestRootClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	root, err := Render("Test", &Options{Class: "test-class"})
	require.NoError(t, err)
	assert.Equal(t, `<div class="test-class"><p>Test</p></div>`, vdom.RenderHTML(root))
	root, err = Render("Test", nil)
	require.NoError(t, err)
	assert.Equal(t, `<div><p>Test</p></div>`, vdom.RenderHTML(root))
}

func TestHeadingLevels(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	for level := 1; level <= 6; level++ {
		root, err := Render(strings.Repeat("#", level)+" Awesome", nil)
		require.NoError(t, err)
		require.Len(t, root.Children, 1)
		h := root.Children[0]
		assert.Equal(t, "h"+string(rune('0'+level)), h.Tag)
		require.NotNil(t, h.Context)
		assert.Equal(t, level, h.Context.Level)
		assert.Equal(t, "Awesome", h.Children[0].Text)
	}
}

func TestConfigurationError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	_, err := Render("", &Options{AllowedElements: []string{"p"}, DisallowedElements: []string{"a"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Contains(t, strings.ToLower(err.Error()), "only one of")
	_, err = Render("", &Options{AllowedElements: []string{}, DisallowedElements: []string{}, SkipHTML: true})
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestPluginReplacingRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	replace := plugins.RehypeFunc(func(hast.Node) (hast.Node, error) {
		return &hast.Comment{Value: "things!"}, nil
	})
	_, err := Render("a", &Options{RehypePlugins: []plugins.RehypePlugin{replace}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructure))
	assert.Contains(t, err.Error(), "Expected a `root` node")
}

func TestPluginError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	boom := errors.New("boom")
	failing := plugins.RehypeFunc(func(hast.Node) (hast.Node, error) { return nil, boom })
	_, err := Render("a", &Options{RehypePlugins: []plugins.RehypePlugin{failing}})
	assert.True(t, errors.Is(err, boom))
}

func TestSanitizeLinks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	input := strings.Join([]string{
		`# [Much fun](javascript:alert("foo"))`,
		`Can be had with [XSS links](vbscript:foobar('test'))`,
		`> And [other](VBSCRIPT:bap) nonsense... [files](file:///etc/passwd) for instance`,
		`## [Entities]( javascript&#x3A;alert("bazinga")) can be tricky, too`,
		`Regular [links](https://foo.bar) must [be]() allowed`,
		`[Some ref][xss]`,
		`[xss]: javascript:alert("foo") "Dangerous stuff"`,
		`Should allow [mailto](mailto:ex@ample.com) and [tel](tel:13133) links tho`,
		`Also, [protocol-agnostic](//google.com) should be allowed`,
		`local [paths](/foo/bar) should be [allowed](foo)`,
		`allow [weird](?javascript:foo) query strings and [hashes](foo#vbscript:orders)`,
	}, "\n\n")
	out, err := RenderHTML(input, nil)
	require.NoError(t, err)
	u := uri.Unsafe
	expected := `<h1><a href="` + u + `">Much fun</a></h1>` + "\n" +
		`<p>Can be had with <a href="` + u + `">XSS links</a></p>` + "\n" +
		"<blockquote>\n" + `<p>And <a href="` + u + `">other</a> nonsense... <a href="` + u + `">files</a> for instance</p>` + "\n</blockquote>\n" +
		`<h2><a href="` + u + `">Entities</a> can be tricky, too</h2>` + "\n" +
		`<p>Regular <a href="https://foo.bar">links</a> must <a href="">be</a> allowed</p>` + "\n" +
		`<p><a href="` + u + `" title="Dangerous stuff">Some ref</a></p>` + "\n" +
		`<p>Should allow <a href="mailto:ex@ample.com">mailto</a> and <a href="tel:13133">tel</a> links tho</p>` + "\n" +
		`<p>Also, <a href="//google.com">protocol-agnostic</a> should be allowed</p>` + "\n" +
		`<p>local <a href="/foo/bar">paths</a> should be <a href="foo">allowed</a></p>` + "\n" +
		`<p>allow <a href="?javascript:foo">weird</a> query strings and <a href="foo#vbscript:orders">hashes</a></p>`
	assert.Equal(t, expected, out)
}

func TestListContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	var items []vdom.Context
	li := passThrough("li", func(ctx *vdom.Context) { items = append(items, *ctx) })
	out, err := RenderHTML("* [x] a\n* [ ] b\n* c", &Options{
		RemarkPlugins: gfm,
		Components:    map[string]vdom.Component{"li": li},
	})
	require.NoError(t, err)
	assert.Equal(t, "<ul class=\"contains-task-list\">\n"+
		"<li class=\"task-list-item\"><input type=\"checkbox\" checked=\"\" disabled=\"\"> a</li>\n"+
		"<li class=\"task-list-item\"><input type=\"checkbox\" disabled=\"\"> b</li>\n<li>c</li>\n</ul>", out)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, i, item.Index)
		assert.False(t, item.Ordered)
	}
	require.NotNil(t, items[0].Checked)
	assert.True(t, *items[0].Checked)
	require.NotNil(t, items[1].Checked)
	assert.False(t, *items[1].Checked)
	assert.Nil(t, items[2].Checked)
}

func TestListDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	depths := map[string][]int{}
	record := func(tag string) vdom.Component {
		return passThrough(tag, func(ctx *vdom.Context) {
			depths[tag] = append(depths[tag], ctx.Depth)
			assert.Equal(t, tag == "ol", ctx.Ordered)
		})
	}
	source := "- a\n  1. b\n     - c\n  2. d\n- e\n\n---\n\n1. f\n"
	_, err := Render(source, &Options{Components: map[string]vdom.Component{
		"ul": record("ul"), "ol": record("ol"),
	}})
	require.NoError(t, err)
	// components are invoked after their children
	assert.Equal(t, []int{2, 0}, depths["ul"])
	assert.Equal(t, []int{1, 0}, depths["ol"])
	//
	out, err := RenderHTML("- foo\n\n  2. bar\n  3. baz\n\n- root\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "<ul>\n<li>\n<p>foo</p>\n<ol start=\"2\">\n<li>bar</li>\n<li>baz</li>\n</ol>\n</li>\n<li>\n<p>root</p>\n</li>\n</ul>", out)
}

func TestTableContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	var rows, cells []bool
	opts := &Options{
		RemarkPlugins: gfm,
		Components: map[string]vdom.Component{
			"tr": passThrough("tr", func(ctx *vdom.Context) { rows = append(rows, ctx.IsHeader) }),
			"th": passThrough("th", func(ctx *vdom.Context) { cells = append(cells, ctx.IsHeader) }),
			"td": passThrough("td", func(ctx *vdom.Context) { cells = append(cells, ctx.IsHeader) }),
		},
	}
	out, err := RenderHTML("| a |\n| - |\n| b |\n| c |", opts)
	require.NoError(t, err)
	assert.Equal(t, "<table><thead><tr><th>a</th></tr></thead><tbody><tr><td>b</td></tr><tr><td>c</td></tr></tbody></table>", out)
	assert.Equal(t, []bool{true, false, false}, rows)
	assert.Equal(t, []bool{true, false, false}, cells)
}

func TestInlineCode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	var inline []bool
	out, err := RenderHTML("```\na\n```\n\n\tb\n\n`c`", &Options{Components: map[string]vdom.Component{
		"code": passThrough("code", func(ctx *vdom.Context) { inline = append(inline, ctx.Inline) }),
	}})
	require.NoError(t, err)
	assert.Equal(t, "<pre><code>a\n</code></pre>\n<pre><code>b\n</code></pre>\n<p><code>c</code></p>", out)
	assert.Equal(t, []bool{false, false, true}, inline)
}

func TestRawSourcePosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	var pos *hast.Position
	em := vdom.RenderFunc(func(p vdom.Props, children []*vdom.Node) *vdom.Node {
		pos = p.Context.SourcePosition
		return vdom.H("em", vdom.Attrs{{Name: "class", Value: "custom"}}, children...)
	})
	out, err := RenderHTML("*Foo*\n\n------------\n\n__Bar__", &Options{
		RawSourcePos: true,
		Components:   map[string]vdom.Component{"em": em},
	})
	require.NoError(t, err)
	assert.Equal(t, "<p><em class=\"custom\">Foo</em></p>\n<hr>\n<p><strong>Bar</strong></p>", out)
	require.NotNil(t, pos)
	assert.Equal(t, 1, *pos.Start.Line)
	assert.Equal(t, 1, *pos.Start.Column)
	assert.Equal(t, 0, *pos.Start.Offset)
	assert.Equal(t, 1, *pos.End.Line)
	assert.Equal(t, 6, *pos.End.Column)
	assert.Equal(t, 5, *pos.End.Offset)
}

func TestElementIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	var indices, counts []int
	_, err := Render("Foo\n\nBar\n\nBaz", &Options{
		IncludeElementIndex: true,
		Components: map[string]vdom.Component{
			"p": passThrough("p", func(ctx *vdom.Context) {
				indices = append(indices, ctx.Index)
				counts = append(counts, ctx.SiblingCount)
			}),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, indices)
	assert.Equal(t, []int{3, 3, 3}, counts)
}

func TestKeysAreUnique(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue")
	defer teardown()
	//
	root, err := Render("# a\n\nb *c* d\n\n- e\n- f", nil)
	require.NoError(t, err)
	seen := map[string]bool{}
	var walk func(n *vdom.Node)
	walk = func(n *vdom.Node) {
		if n.Kind == vdom.ElementKind && n != root {
			assert.NotEmpty(t, n.Key)
			assert.False(t, seen[n.Key], n.Key)
			seen[n.Key] = true
		}
		for _, ch := range n.Children {
			walk(ch)
		}
	}
	walk(root)
	assert.True(t, seen["h1-1-1-0"])
}
