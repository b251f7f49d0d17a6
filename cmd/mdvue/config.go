package main

import (
	"os"

	mdvue "github.com/nomorechokedboy/markdown-vue"
	"github.com/nomorechokedboy/markdown-vue/input/markdown"
	"github.com/nomorechokedboy/markdown-vue/plugins"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// config is the YAML form of the render options.
type config struct {
	// remark plugins
	GFM        bool `yaml:"gfm"`
	Footnotes  bool `yaml:"footnotes"`
	Emoji      bool `yaml:"emoji"`
	HeadingIDs bool `yaml:"heading_ids"`

	// rehype plugins, applied in this order
	Sanitize  bool                `yaml:"sanitize"` // sanitize raw HTML with bluemonday's UGC policy
	Raw       bool                `yaml:"raw"`      // parse raw HTML
	Highlight string              `yaml:"highlight"`
	TOC       string              `yaml:"toc"` // heading pattern, "default" for the standard one
	Classes   map[string][]string `yaml:"classes"` // CSS selector → class names
	Remove    []string            `yaml:"remove"`  // XPath expressions

	// conversion
	ClobberPrefix        string `yaml:"clobber_prefix"`
	FootnoteLabel        string `yaml:"footnote_label"`
	FootnoteLabelTagName string `yaml:"footnote_label_tag"`
	FootnoteBackLabel    string `yaml:"footnote_back_label"`

	// filtering and rendering
	AllowedElements         []string `yaml:"allowed_elements"`
	DisallowedElements      []string `yaml:"disallowed_elements"`
	UnwrapDisallowed        bool     `yaml:"unwrap_disallowed"`
	SkipHTML                bool     `yaml:"skip_html"`
	SourcePos               bool     `yaml:"source_pos"`
	DisableLinkURITransform bool     `yaml:"disable_link_uri_transform"`
	LinkTarget              string   `yaml:"link_target"`
	Class                   string   `yaml:"class"`
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*config, error) {
	cfg := &config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	tracer().Debugf("config = %+v", cfg)
	return cfg, nil
}

// options creates render options from a configuration.
func (cfg *config) options() (*mdvue.Options, error) {
	opts := &mdvue.Options{
		RemarkRehypeOptions: markdown.Options{
			ClobberPrefix:        cfg.ClobberPrefix,
			FootnoteLabel:        cfg.FootnoteLabel,
			FootnoteLabelTagName: cfg.FootnoteLabelTagName,
			FootnoteBackLabel:    cfg.FootnoteBackLabel,
		},
		AllowedElements:         cfg.AllowedElements,
		DisallowedElements:      cfg.DisallowedElements,
		UnwrapDisallowed:        cfg.UnwrapDisallowed,
		SkipHTML:                cfg.SkipHTML,
		SourcePos:               cfg.SourcePos,
		DisableLinkURITransform: cfg.DisableLinkURITransform,
		LinkTarget:              cfg.LinkTarget,
		Class:                   cfg.Class,
	}
	for _, ext := range []struct {
		on bool
		x  goldmark.Extender
	}{
		{cfg.GFM, plugins.GFM()},
		{cfg.Footnotes, plugins.Footnotes()},
		{cfg.Emoji, plugins.Emoji()},
		{cfg.HeadingIDs, plugins.HeadingIDs()},
	} {
		if ext.on {
			opts.RemarkPlugins = append(opts.RemarkPlugins, ext.x)
		}
	}
	if cfg.Sanitize {
		opts.RehypePlugins = append(opts.RehypePlugins, plugins.SanitizeRaw(nil))
	}
	if cfg.Raw {
		opts.RehypePlugins = append(opts.RehypePlugins, plugins.Raw())
	}
	if cfg.Highlight != "" {
		style := cfg.Highlight
		if style == "classes" {
			style = ""
		}
		opts.RehypePlugins = append(opts.RehypePlugins, plugins.Highlight(style))
	}
	if cfg.TOC != "" {
		heading := cfg.TOC
		if heading == "default" {
			heading = ""
		}
		toc, err := plugins.TOC(heading)
		if err != nil {
			return nil, err
		}
		opts.RehypePlugins = append(opts.RehypePlugins, toc)
	}
	for sel, classes := range cfg.Classes {
		cn, err := plugins.ClassNames(sel, classes...)
		if err != nil {
			return nil, err
		}
		opts.RehypePlugins = append(opts.RehypePlugins, cn)
	}
	for _, expr := range cfg.Remove {
		opts.RehypePlugins = append(opts.RehypePlugins, plugins.RemoveXPath(expr))
	}
	return opts, nil
}
