package plugins

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/nomorechokedboy/markdown-vue/engine/hast/selector"
	"github.com/nomorechokedboy/markdown-vue/engine/hast/xpathadapter"
	"github.com/nomorechokedboy/markdown-vue/input/html"
)

// RehypePlugin transforms a hast tree. It returns the tree to continue
// with, usually root itself.
type RehypePlugin interface {
	Transform(root hast.Node) (hast.Node, error)
}

// RehypeFunc adapts a function to a RehypePlugin.
type RehypeFunc func(root hast.Node) (hast.Node, error)

// Transform calls f(root).
func (f RehypeFunc) Transform(root hast.Node) (hast.Node, error) {
	return f(root)
}

// Raw parses raw HTML nodes into hast nodes.
func Raw() RehypePlugin {
	return RehypeFunc(func(root hast.Node) (hast.Node, error) {
		if p, ok := root.(hast.Parent); ok {
			return root, html.ExpandRaw(p)
		}
		return root, nil
	})
}

// SanitizeRaw cleans the HTML of raw nodes with a bluemonday policy. A nil
// policy stands for bluemonday's policy for user generated content.
// Install it before Raw.
func SanitizeRaw(policy *bluemonday.Policy) RehypePlugin {
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}
	return RehypeFunc(func(root hast.Node) (hast.Node, error) {
		count := 0
		hast.Visit(root, func(n hast.Node, _ int, _ hast.Parent) hast.WalkResult {
			if raw, ok := n.(*hast.Raw); ok {
				raw.Value = policy.Sanitize(raw.Value)
				count++
			}
			return hast.WalkContinue
		})
		tracer().Debugf("sanitized %d raw nodes", count)
		return root, nil
	})
}

// ClassNames adds class names to all elements matching a CSS selector.
func ClassNames(sel string, classes ...string) (RehypePlugin, error) {
	s, err := selector.Compile(sel)
	if err != nil {
		return nil, err
	}
	return RehypeFunc(func(root hast.Node) (hast.Node, error) {
		for _, e := range s.Select(root) {
			addClasses(e, classes...)
		}
		return root, nil
	}), nil
}

func addClasses(e *hast.Element, classes ...string) {
	var list []string
	if v, ok := e.Property("className"); ok {
		switch c := v.(type) {
		case []string:
			list = append(list, c...)
		case string:
			list = append(list, c)
		}
	}
outer:
	for _, cl := range classes {
		for _, have := range list {
			if have == cl {
				continue outer
			}
		}
		list = append(list, cl)
	}
	e.Properties.Set("className", list)
}

// RemoveXPath removes all nodes selected by an XPath expression, together
// with their children.
func RemoveXPath(expr string) RehypePlugin {
	return RehypeFunc(func(root hast.Node) (hast.Node, error) {
		matches, err := xpathadapter.Select(root, expr)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if m.Parent == nil {
				continue // the root stays
			}
			removeChild(m.Parent, m.Node)
		}
		tracer().Debugf("removed %d nodes", len(matches))
		return root, nil
	})
}

func removeChild(parent hast.Parent, child hast.Node) {
	children := parent.ChildNodes()
	for i, ch := range children {
		if ch == child {
			rest := make([]hast.Node, 0, len(children)-1)
			rest = append(rest, children[:i]...)
			rest = append(rest, children[i+1:]...)
			parent.SetChildNodes(rest)
			return
		}
	}
}
