package mdvue

import (
	"github.com/nomorechokedboy/markdown-vue/core"
	"github.com/nomorechokedboy/markdown-vue/engine/filter"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/nomorechokedboy/markdown-vue/engine/transform"
	"github.com/nomorechokedboy/markdown-vue/engine/vdom"
	"github.com/nomorechokedboy/markdown-vue/input/markdown"
	"github.com/nomorechokedboy/markdown-vue/plugins"
	"github.com/yuin/goldmark"
)

// Errors returned by rendering match one of these with errors.Is.
var (
	ErrConfiguration = core.ErrConfiguration
	ErrStructure     = core.ErrStructure
)

// Options configure rendering. The zero value renders CommonMark.
type Options struct {
	RemarkPlugins       []goldmark.Extender    // parser extensions, e.g. plugins.GFM()
	RehypePlugins       []plugins.RehypePlugin // hast transformations, applied in order
	RemarkRehypeOptions markdown.Options       // AllowDangerousHTML is always set

	Components map[string]vdom.Component // overrides by tag name

	AllowedElements    []string         // if non-nil, only these tags are kept
	DisallowedElements []string         // if non-nil, these tags are removed
	AllowElement       filter.AllowFunc // predicate for elements passing the lists
	UnwrapDisallowed   bool             // keep the children of removed elements

	SkipHTML            bool // drop raw HTML instead of rendering it as text
	SourcePos           bool // add data-sourcepos attributes
	RawSourcePos        bool // hand source positions to components
	IncludeElementIndex bool // hand sibling index and count to components

	TransformLinkURI        transform.LinkURIFunc // nil for the default sanitizer
	DisableLinkURITransform bool
	TransformImageURI       transform.ImageURIFunc
	LinkTarget              string
	LinkTargetFunc          transform.LinkTargetFunc // "" means no target attribute

	Class string // class of the wrapping div
}

func (opts *Options) filterConfig() *filter.Config {
	return &filter.Config{
		AllowedElements:    opts.AllowedElements,
		DisallowedElements: opts.DisallowedElements,
		AllowElement:       opts.AllowElement,
		UnwrapDisallowed:   opts.UnwrapDisallowed,
	}
}

func (opts *Options) transformOptions() *transform.Options {
	return &transform.Options{
		Components:              opts.Components,
		SkipHTML:                opts.SkipHTML,
		SourcePos:               opts.SourcePos,
		RawSourcePos:            opts.RawSourcePos,
		IncludeElementIndex:     opts.IncludeElementIndex,
		TransformLinkURI:        opts.TransformLinkURI,
		DisableLinkURITransform: opts.DisableLinkURITransform,
		TransformImageURI:       opts.TransformImageURI,
		LinkTarget:              opts.LinkTarget,
		LinkTargetFunc:          opts.LinkTargetFunc,
	}
}

// Render renders Markdown source text. It returns a div element wrapping
// the rendered content. opts may be nil.
func Render(source string, opts *Options) (*vdom.Node, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := opts.filterConfig().Validate(); err != nil {
		return nil, err
	}
	md := markdown.New(opts.RemarkPlugins...)
	doc, src := markdown.Parse(md, source)
	hopts := opts.RemarkRehypeOptions
	hopts.AllowDangerousHTML = true
	root := markdown.ToHast(doc, src, hopts)
	tracer().Infof("markdown converted, running %d rehype plugins", len(opts.RehypePlugins))
	return RenderNode(root, opts)
}

// RenderNode renders a hast tree, which is handed to the rehype plugins
// first. The plugins may modify root. opts may be nil.
func RenderNode(root hast.Node, opts *Options) (*vdom.Node, error) {
	if opts == nil {
		opts = &Options{}
	}
	cfg := opts.filterConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var err error
	for i, plugin := range opts.RehypePlugins {
		if root, err = plugin.Transform(root); err != nil {
			tracer().Errorf("rehype plugin #%d failed: %v", i, err)
			return nil, core.WrapError(err, core.EINTERNAL, "rehype plugin #%d failed", i)
		}
	}
	top, ok := root.(*hast.Root)
	if !ok {
		return nil, core.StructuralError("Expected a `root` node")
	}
	if err := filter.Apply(top, cfg); err != nil {
		return nil, err
	}
	children := transform.Children(opts.transformOptions(), top)
	var attrs vdom.Attrs
	if opts.Class != "" {
		attrs.Set("class", opts.Class)
	}
	tracer().Debugf("rendered %d top-level nodes", len(children))
	return vdom.H("div", attrs, children...), nil
}

// RenderHTML renders Markdown source text to HTML. The wrapping div is not
// part of the result.
func RenderHTML(source string, opts *Options) (string, error) {
	root, err := Render(source, opts)
	if err != nil {
		return "", err
	}
	return vdom.InnerHTML(root), nil
}
