package plugins

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/nomorechokedboy/markdown-vue/engine/hast"
)

// Highlight colors code blocks with a language class ("language-go") using
// chroma. With a style name, tokens get inline styles of that chroma style;
// without, they get chroma's short class names ("k", "nf", …) and the pre
// element gets class "chroma".
func Highlight(styleName string) RehypePlugin {
	var style *chroma.Style
	if styleName != "" {
		style = styles.Get(styleName)
	}
	return RehypeFunc(func(root hast.Node) (hast.Node, error) {
		hast.VisitElements(root, func(pre *hast.Element, _ int, _ hast.Parent) hast.WalkResult {
			if pre.TagName != "pre" || len(pre.Children) != 1 || !hast.IsElement(pre.Children[0], "code") {
				return hast.WalkContinue
			}
			code := pre.Children[0].(*hast.Element)
			lang := codeLanguage(code)
			if lang == "" {
				return hast.WalkSkip
			}
			lexer := lexers.Get(lang)
			if lexer == nil {
				tracer().Debugf("no lexer for language %q", lang)
				return hast.WalkSkip
			}
			spans, err := highlight(chroma.Coalesce(lexer), hast.TextContent(code), style)
			if err != nil {
				tracer().Errorf("cannot highlight %s code: %v", lang, err)
				return hast.WalkSkip
			}
			code.Children = spans
			if style == nil {
				addClasses(pre, "chroma")
			}
			return hast.WalkSkip
		})
		return root, nil
	})
}

func codeLanguage(code *hast.Element) string {
	v, ok := code.Property("className")
	if !ok {
		return ""
	}
	classes, _ := v.([]string)
	for _, cl := range classes {
		if strings.HasPrefix(cl, "language-") {
			return strings.TrimPrefix(cl, "language-")
		}
	}
	return ""
}

func highlight(lexer chroma.Lexer, text string, style *chroma.Style) ([]hast.Node, error) {
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return nil, err
	}
	var nodes []hast.Node
	for _, token := range it.Tokens() {
		if token.Value == "" {
			continue
		}
		var props hast.Properties
		if style != nil {
			if css := inlineStyle(style.Get(token.Type)); css != "" {
				props.Set("style", css)
			}
		} else if class := chroma.StandardTypes[token.Type]; class != "" {
			props.Set("className", []string{class})
		}
		if len(props) == 0 {
			nodes = append(nodes, hast.NewText(token.Value))
			continue
		}
		nodes = append(nodes, hast.NewElement("span", props, hast.NewText(token.Value)))
	}
	return nodes, nil
}

func inlineStyle(entry chroma.StyleEntry) string {
	var decls []string
	if entry.Colour.IsSet() {
		decls = append(decls, "color: "+entry.Colour.String())
	}
	if entry.Bold == chroma.Yes {
		decls = append(decls, "font-weight: bold")
	}
	if entry.Italic == chroma.Yes {
		decls = append(decls, "font-style: italic")
	}
	if entry.Underline == chroma.Yes {
		decls = append(decls, "text-decoration: underline")
	}
	return strings.Join(decls, "; ")
}
