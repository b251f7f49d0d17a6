package plugins

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/nomorechokedboy/markdown-vue/engine/hast"
	"github.com/nomorechokedboy/markdown-vue/engine/hast/xpathadapter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultTOCHeading matches the headings TOC fills in.
const DefaultTOCHeading = "(table[ -]of[ -])?contents?|toc"

const headingsXPath = "//*[self::h1 or self::h2 or self::h3 or self::h4 or self::h5 or self::h6]"

// TOC generates a table of contents below the first heading whose text
// matches the regular expression heading (case-insensitive, whole text).
// An empty heading means DefaultTOCHeading. The table lists all following
// headings as nested lists of links to "#" + slug. Content between the
// TOC heading and the next heading of the same or higher rank is replaced.
func TOC(heading string) (RehypePlugin, error) {
	if heading == "" {
		heading = DefaultTOCHeading
	}
	re, err := regexp.Compile("(?i)^(" + heading + ")$")
	if err != nil {
		return nil, err
	}
	return RehypeFunc(func(root hast.Node) (hast.Node, error) {
		matches, err := xpathadapter.Select(root, headingsXPath)
		if err != nil {
			return nil, err
		}
		at := -1
		for i, m := range matches {
			if re.MatchString(strings.TrimSpace(hast.TextContent(m.Node))) {
				at = i
				break
			}
		}
		if at < 0 {
			tracer().Debugf("no TOC heading found")
			return root, nil
		}
		tocHeading := matches[at]
		rank := headingRank(tocHeading.Node.(*hast.Element))
		var entries []tocEntry
		slugs := newSlugger()
		for _, m := range matches[at+1:] {
			e := m.Node.(*hast.Element)
			id := e.StringProperty("id")
			if id == "" {
				id = slugs.slug(hast.TextContent(e))
			}
			entries = append(entries, tocEntry{
				rank:    headingRank(e),
				id:      id,
				content: cloneInline(e.Children),
			})
		}
		if len(entries) == 0 {
			return root, nil
		}
		top := entries[0].rank
		for _, e := range entries {
			if e.rank < top {
				top = e.rank
			}
		}
		list, _ := tocList(entries, top)
		insertTOC(tocHeading.Parent, tocHeading.Node, rank, list)
		tracer().Debugf("TOC with %d entries", len(entries))
		return root, nil
	}), nil
}

func headingRank(e *hast.Element) int {
	return int(e.TagName[1] - '0')
}

type tocEntry struct {
	rank    int
	id      string
	content []hast.Node
}

// tocList builds a list from entries down to the first entry of a rank
// lower than rank. It returns the list and the number of entries used.
func tocList(entries []tocEntry, rank int) (*hast.Element, int) {
	type item struct {
		link    *hast.Element
		sublist *hast.Element
	}
	var items []item
	i := 0
	for i < len(entries) && entries[i].rank >= rank {
		if entries[i].rank > rank && len(items) > 0 && items[len(items)-1].sublist == nil {
			sub, n := tocList(entries[i:], entries[i].rank)
			items[len(items)-1].sublist = sub
			i += n
			continue
		}
		e := entries[i]
		link := hast.NewElement("a", hast.Props("href", "#"+e.id), e.content...)
		items = append(items, item{link: link})
		i++
	}
	loose := false
	for _, it := range items {
		if it.sublist != nil {
			loose = true
		}
	}
	var lis []hast.Node
	for _, it := range items {
		var content []hast.Node
		if loose {
			content = append(content, hast.NewText("\n"), hast.NewElement("p", nil, it.link))
		} else {
			content = append(content, it.link)
		}
		if it.sublist != nil {
			content = append(content, hast.NewText("\n"), it.sublist)
		}
		if loose || it.sublist != nil {
			content = append(content, hast.NewText("\n"))
		}
		lis = append(lis, hast.NewElement("li", nil, content...))
	}
	var children []hast.Node
	children = append(children, hast.NewText("\n"))
	for j, li := range lis {
		if j > 0 {
			children = append(children, hast.NewText("\n"))
		}
		children = append(children, li)
	}
	children = append(children, hast.NewText("\n"))
	return hast.NewElement("ul", nil, children...), i
}

// insertTOC puts list after the TOC heading, replacing the content up to
// the next heading of rank <= rank.
func insertTOC(parent hast.Parent, heading hast.Node, rank int, list *hast.Element) {
	children := parent.ChildNodes()
	at := -1
	for i, ch := range children {
		if ch == heading {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	end := len(children)
	for i := at + 1; i < len(children); i++ {
		if e, ok := children[i].(*hast.Element); ok && isHeading(e) && headingRank(e) <= rank {
			end = i
			break
		}
	}
	// keep the newline in front of the next heading
	if end > at+1 && end < len(children) {
		if t, ok := children[end-1].(*hast.Text); ok && t.Value == "\n" {
			end--
		}
	}
	result := make([]hast.Node, 0, len(children)+2)
	result = append(result, children[:at+1]...)
	result = append(result, hast.NewText("\n"), list)
	result = append(result, children[end:]...)
	parent.SetChildNodes(result)
}

func isHeading(e *hast.Element) bool {
	return hast.IsElement(e, "h1", "h2", "h3", "h4", "h5", "h6")
}

// cloneInline copies heading content for use in links, dropping nested
// links.
func cloneInline(nodes []hast.Node) []hast.Node {
	var result []hast.Node
	for _, n := range nodes {
		switch node := n.(type) {
		case *hast.Text:
			result = append(result, hast.NewText(node.Value))
		case *hast.Element:
			if node.TagName == "a" {
				result = append(result, cloneInline(node.Children)...)
				continue
			}
			props := append(hast.Properties(nil), node.Properties...)
			props.Delete("id")
			result = append(result, hast.NewElement(node.TagName, props, cloneInline(node.Children)...))
		}
	}
	return result
}

// slugger creates GitHub style heading slugs, unique per document.
type slugger struct {
	lower  cases.Caser
	counts map[string]int
}

func newSlugger() *slugger {
	return &slugger{lower: cases.Lower(language.Und), counts: make(map[string]int)}
}

func (s *slugger) slug(text string) string {
	text = s.lower.String(norm.NFC.String(text))
	var sb strings.Builder
	for _, r := range text {
		switch {
		case r == ' ':
			sb.WriteByte('-')
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r):
			sb.WriteRune(r)
		}
	}
	base := sb.String()
	slug := base
	if n := s.counts[base]; n > 0 {
		slug = base + "-" + strconv.Itoa(n)
	}
	s.counts[base]++
	return slug
}
