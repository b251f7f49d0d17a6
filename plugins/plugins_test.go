package plugins_test

import (
	"strings"
	"testing"

	mdvue "github.com/nomorechokedboy/markdown-vue"
	"github.com/nomorechokedboy/markdown-vue/plugins"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func render(t *testing.T, source string, remark []goldmark.Extender, rehype ...plugins.RehypePlugin) string {
	out, err := mdvue.RenderHTML(source, &mdvue.Options{RemarkPlugins: remark, RehypePlugins: rehype})
	require.NoError(t, err)
	return out
}

func TestRaw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.plugins")
	defer teardown()
	//
	assert.Equal(t, "<p>I am <b>bold</b></p>", render(t, "I am <b>bold</b>", nil, plugins.Raw()))
	assert.Equal(t, "<p>I am &lt;b&gt;bold&lt;/b&gt;</p>", render(t, "I am <b>bold</b>", nil))
}

func TestSanitizeRaw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.plugins")
	defer teardown()
	//
	source := "<div onclick=\"steal()\">hi</div>\n\n<script>alert(1)</script>\n\ntext"
	out := render(t, source, nil, plugins.SanitizeRaw(nil), plugins.Raw())
	assert.Contains(t, out, "<div>hi</div>")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "script")
	assert.Contains(t, out, "<p>text</p>")
}

func TestHighlight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.plugins")
	defer teardown()
	//
	source := "```go\nfunc main() {}\n```"
	out := render(t, source, nil, plugins.Highlight(""))
	assert.True(t, strings.HasPrefix(out, `<pre class="chroma"><code class="language-go">`), out)
	assert.Contains(t, out, `<span class="kd">func</span>`)
	out = render(t, source, nil, plugins.Highlight("monokai"))
	assert.Regexp(t, `<span style="color: #[0-9a-f]{6};">func</span>`, out)
	// unknown languages and plain code stay untouched
	assert.Equal(t, "<pre><code class=\"language-nosuchlang\">x\n</code></pre>",
		render(t, "```nosuchlang\nx\n```", nil, plugins.Highlight("")))
	assert.Equal(t, "<pre><code>x\n</code></pre>", render(t, "    x", nil, plugins.Highlight("")))
}

func TestTOC(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.plugins")
	defer teardown()
	//
	source := strings.Join([]string{
		"# Header",
		"## Table of Contents",
		"## First Section",
		"## Second Section",
		"### Subsection",
		"## Third Section",
	}, "\n")
	toc, err := plugins.TOC("")
	require.NoError(t, err)
	expected := "<h1>Header</h1>\n<h2>Table of Contents</h2>\n<ul>\n" +
		"<li>\n<p><a href=\"#first-section\">First Section</a></p>\n</li>\n" +
		"<li>\n<p><a href=\"#second-section\">Second Section</a></p>\n<ul>\n<li><a href=\"#subsection\">Subsection</a></li>\n</ul>\n</li>\n" +
		"<li>\n<p><a href=\"#third-section\">Third Section</a></p>\n</li>\n</ul>\n" +
		"<h2>First Section</h2>\n<h2>Second Section</h2>\n<h3>Subsection</h3>\n<h2>Third Section</h2>"
	assert.Equal(t, expected, render(t, source, nil, toc))
}

func TestTOCReplacesContentAndUsesIDs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.plugins")
	defer teardown()
	//
	source := "## Contents\n\nold list\n\n## Über uns\n\n## Über uns"
	toc, err := plugins.TOC("")
	require.NoError(t, err)
	out := render(t, source, nil, toc)
	assert.NotContains(t, out, "old list")
	assert.Contains(t, out, `<a href="#über-uns">Über uns</a>`)
	assert.Contains(t, out, `<a href="#über-uns-1">Über uns</a>`)
	//
	out = render(t, "# Toc\n\n# A b", []goldmark.Extender{plugins.HeadingIDs()}, toc)
	assert.Contains(t, out, `<h1 id="a-b">A b</h1>`)
	assert.Contains(t, out, `<a href="#a-b">A b</a>`)
	//
	_, err = plugins.TOC("(")
	assert.Error(t, err)
}

func TestClassNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.plugins")
	defer teardown()
	//
	cn, err := plugins.ClassNames("ul > li:first-child", "first", "item")
	require.NoError(t, err)
	out := render(t, "- a\n- b", nil, cn)
	assert.Equal(t, "<ul>\n<li class=\"first item\">a</li>\n<li>b</li>\n</ul>", out)
	_, err = plugins.ClassNames("ul >")
	assert.Error(t, err)
}

func TestRemoveXPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.plugins")
	defer teardown()
	//
	out := render(t, "a *b* c\n\n> quote\n\nd", nil, plugins.RemoveXPath("//em|//blockquote"))
	assert.Equal(t, "<p>a  c</p>\n\n<p>d</p>", out)
	_, err := mdvue.RenderHTML("a", &mdvue.Options{RehypePlugins: []plugins.RehypePlugin{plugins.RemoveXPath("//[")}})
	assert.Error(t, err)
}

func TestRemarkPlugins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.plugins")
	defer teardown()
	//
	assert.Equal(t, "<p>I am 😄</p>", render(t, "I am :smile:", []goldmark.Extender{plugins.Emoji()}))
	assert.Equal(t, "<p>a <del>b</del> c</p>", render(t, "a ~b~ c", []goldmark.Extender{plugins.GFM()}))
	out := render(t, "x[^1]\n\n[^1]: y", []goldmark.Extender{plugins.Footnotes()})
	assert.Contains(t, out, `<section data-footnotes="" class="footnotes">`)
}
