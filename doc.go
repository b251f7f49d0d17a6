/*
Package mdvue renders Markdown to a tree of UI components.

The rendering pipeline is

	Markdown ──goldmark──▶ syntax tree ──▶ hast ──rehype plugins──▶ filter ──▶ vdom

Markdown is parsed by goldmark, extended by remark plugins (goldmark
extenders). The syntax tree is converted to a hast tree (HTML abstract
syntax tree), which rehype plugins may modify. After removing unwanted
elements, the tree is transformed into virtual DOM nodes. Every element is
rendered by a component, either the tag of the same name or a user supplied
override, which receives contextual properties like a heading's level or a
list item's checked state:

	root, err := mdvue.Render("# Hello *world*", &mdvue.Options{
		Components: map[string]vdom.Component{
			"h1": vdom.RenderFunc(func(p vdom.Props, children []*vdom.Node) *vdom.Node {
				return vdom.H("span", vdom.Attrs{{Name: "class", Value: "title"}}, children...)
			}),
		},
	})

The result is a div element holding the rendered children. Function
RenderHTML serializes it the way a browser serializes its DOM.

Rendering is synchronous and keeps no state between calls; options and
component tables may be shared between goroutines as long as they are not
modified.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package mdvue

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'mdvue'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue")
}
