package filter

import (
	"errors"
	"testing"

	"github.com/nomorechokedboy/markdown-vue/core"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tree for "Espen *~~initiated~~ had the initial commit*, but has had several **contributors**"
func espen() *hast.Root {
	return hast.NewRoot(
		hast.NewElement("p", nil,
			hast.NewText("Espen "),
			hast.NewElement("em", nil,
				hast.NewElement("del", nil, hast.NewText("initiated")),
				hast.NewText(" had the initial commit"),
			),
			hast.NewText(", but has had several "),
			hast.NewElement("strong", nil, hast.NewText("contributors")),
		),
	)
}

func tags(n hast.Node) []string {
	var t []string
	hast.VisitElements(n, func(e *hast.Element, _ int, _ hast.Parent) hast.WalkResult {
		t = append(t, e.TagName)
		return hast.WalkContinue
	})
	return t
}

func TestBothListsIsConfigurationError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.filter")
	defer teardown()
	//
	cfg := &Config{AllowedElements: []string{"p"}, DisallowedElements: []string{}}
	err := Apply(espen(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrConfiguration))
	assert.Contains(t, err.Error(), "Only one of `allowedElements` and `disallowedElements` should be defined")
}

func TestNoopWithoutConfig(t *testing.T) {
	root := espen()
	require.NoError(t, Apply(root, nil))
	require.NoError(t, Apply(root, &Config{UnwrapDisallowed: true}))
	assert.Equal(t, []string{"p", "em", "del", "strong"}, tags(root))
}

func TestDisallowed(t *testing.T) {
	root := espen()
	require.NoError(t, Apply(root, &Config{DisallowedElements: []string{"em"}}))
	assert.Equal(t, []string{"p", "strong"}, tags(root))
	assert.Equal(t, "Espen , but has had several contributors", hast.TextContent(root))
}

func TestAllowed(t *testing.T) {
	root := espen()
	require.NoError(t, Apply(root, &Config{AllowedElements: []string{"p", "em"}}))
	assert.Equal(t, []string{"p", "em"}, tags(root))
	assert.Equal(t, "Espen  had the initial commit, but has had several ", hast.TextContent(root))
}

func TestEmptyAllowListRemovesAll(t *testing.T) {
	root := espen()
	require.NoError(t, Apply(root, &Config{AllowedElements: []string{}}))
	assert.Empty(t, root.Children)
}

func TestUnwrapDisallowed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdvue.filter")
	defer teardown()
	//
	root := espen()
	cfg := &Config{DisallowedElements: []string{"em", "strong"}, UnwrapDisallowed: true}
	require.NoError(t, Apply(root, cfg))
	assert.Equal(t, []string{"p", "del"}, tags(root))
	assert.Equal(t, "Espen initiated had the initial commit, but has had several contributors",
		hast.TextContent(root))
}

func TestUnwrapRevisitsPromotedChildren(t *testing.T) {
	root := espen()
	cfg := &Config{DisallowedElements: []string{"em", "del"}, UnwrapDisallowed: true}
	require.NoError(t, Apply(root, cfg))
	assert.Equal(t, []string{"p", "strong"}, tags(root))
	p := root.Children[0].(*hast.Element)
	assert.Len(t, p.Children, 5)
}

func TestAllowElementPredicate(t *testing.T) {
	root := espen()
	var seen []int
	cfg := &Config{
		AllowElement: func(e *hast.Element, index int, parent hast.Parent) bool {
			seen = append(seen, index)
			assert.Same(t, e, parent.ChildNodes()[index])
			return e.TagName != "del"
		},
	}
	require.NoError(t, Apply(root, cfg))
	assert.Equal(t, []string{"p", "em", "strong"}, tags(root))
	assert.Equal(t, []int{0, 1, 0, 3}, seen)
}

func TestPredicateNotCalledForRemoved(t *testing.T) {
	root := espen()
	calls := 0
	cfg := &Config{
		DisallowedElements: []string{"em"},
		AllowElement: func(*hast.Element, int, hast.Parent) bool {
			calls++
			return true
		},
	}
	require.NoError(t, Apply(root, cfg))
	assert.Equal(t, 2, calls) // p and strong
}
