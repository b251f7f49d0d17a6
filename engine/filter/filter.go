/*
Package filter removes elements from a syntax tree before it is rendered.

Elements may be selected for removal by tag name, either with a list of
allowed or a list of disallowed tag names, and additionally by a predicate.
Removed elements either vanish together with their content or, if
UnwrapDisallowed is set, are replaced by their children.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package filter

import (
	"github.com/nomorechokedboy/markdown-vue/core"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdvue.filter'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.filter")
}

// AllowFunc decides whether an element stays in the tree. It is called with
// the element, its index within its parent's children and the parent.
type AllowFunc func(e *hast.Element, index int, parent hast.Parent) bool

// Config configures filtering. AllowedElements and DisallowedElements are
// mutually exclusive.
type Config struct {
	AllowedElements    []string
	DisallowedElements []string
	AllowElement       AllowFunc
	UnwrapDisallowed   bool
}

// Validate checks for contradicting settings.
func (cfg *Config) Validate() error {
	if cfg != nil && cfg.AllowedElements != nil && cfg.DisallowedElements != nil {
		return core.ConfigurationError("Only one of `allowedElements` and `disallowedElements` should be defined")
	}
	return nil
}

// IsActive returns true if cfg will remove anything at all.
func (cfg *Config) IsActive() bool {
	return cfg != nil &&
		(cfg.AllowedElements != nil || cfg.DisallowedElements != nil || cfg.AllowElement != nil)
}

// Apply filters the tree below root in place. Elements are visited depth
// first in document order; children promoted by unwrapping are visited as
// well. root itself is never removed.
func Apply(root hast.Node, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.IsActive() {
		return nil
	}
	if p, ok := root.(hast.Parent); ok {
		cfg.filterChildren(p)
	}
	return nil
}

func (cfg *Config) filterChildren(parent hast.Parent) {
	for i := 0; i < len(parent.ChildNodes()); {
		e, ok := parent.ChildNodes()[i].(*hast.Element)
		if !ok {
			i++
			continue
		}
		if cfg.remove(e, i, parent) {
			var replacement []hast.Node
			if cfg.UnwrapDisallowed {
				replacement = e.Children
			}
			tracer().Debugf("removing <%s> at index %d, promoting %d children", e.TagName, i, len(replacement))
			parent.SetChildNodes(splice(parent.ChildNodes(), i, replacement))
			continue // re-visit index i
		}
		cfg.filterChildren(e)
		i++
	}
}

func (cfg *Config) remove(e *hast.Element, index int, parent hast.Parent) bool {
	remove := false
	if cfg.AllowedElements != nil {
		remove = !contains(cfg.AllowedElements, e.TagName)
	} else if cfg.DisallowedElements != nil {
		remove = contains(cfg.DisallowedElements, e.TagName)
	}
	if !remove && cfg.AllowElement != nil {
		remove = !cfg.AllowElement(e, index, parent)
	}
	return remove
}

// splice replaces nodes[i] by replacement, returning a fresh slice.
func splice(nodes []hast.Node, i int, replacement []hast.Node) []hast.Node {
	result := make([]hast.Node, 0, len(nodes)-1+len(replacement))
	result = append(result, nodes[:i]...)
	result = append(result, replacement...)
	return append(result, nodes[i+1:]...)
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
