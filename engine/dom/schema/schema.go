/*
Package schema knows about the properties of HTML and SVG elements.

Syntax trees name element properties in camel case (className, htmlFor,
ariaDescribedBy, strokeMiterLimit), while markup uses attribute names (class,
for, aria-describedby, stroke-miterlimit). A Schema translates between the two
and tells clients how values of a property are to be handled: as a boolean
flag, a number, or a list of space- or comma-separated tokens.

Lookup is case-insensitive and accepts either form of a name:

	info := schema.Find(schema.HTML, "className")   // info.Attribute == "class"
	info = schema.Find(schema.HTML, "data-foo-bar") // info.Property == "dataFooBar"

Unknown names are passed through unchanged.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdvue.schema'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.schema")
}

// Names of property spaces.
const (
	SpaceHTML  = "html"
	SpaceSVG   = "svg"
	SpaceXLink = "xlink"
	SpaceXML   = "xml"
	SpaceXMLNS = "xmlns"
)

// Info describes a property.
type Info struct {
	Property              string // camel-cased property name, e.g. "className"
	Attribute             string // markup attribute name, e.g. "class"
	Space                 string // empty for unknown properties and aria
	Boolean               bool
	BooleanIsh            bool
	OverloadedBoolean     bool
	Number                bool
	SpaceSeparated        bool
	CommaSeparated        bool
	CommaOrSpaceSeparated bool
	Defined               bool // known to the schema, or a data property
}

type mask uint16

const (
	boolean mask = 1 << iota
	booleanish
	overloadedBoolean
	number
	spaceSeparated
	commaSeparated
	commaOrSpaceSeparated
)

func (m mask) has(f mask) bool {
	return m&f != 0
}

// Schema is a set of properties of a space, e.g. HTML or SVG.
type Schema struct {
	Space    string
	property map[string]Info
	normal   *trie.Trie // normalized property and attribute names → property
}

// HTML is the schema for elements in HTML space.
var HTML *Schema

// SVG is the schema for elements in SVG space.
var SVG *Schema

func init() {
	HTML = merge(SpaceHTML, xmlSpace(), xlinkSpace(), xmlnsSpace(), ariaSpace(), htmlSpace())
	SVG = merge(SpaceSVG, xmlSpace(), xlinkSpace(), xmlnsSpace(), ariaSpace(), svgSpace())
}

// ForSpace returns the schema for a space name, i.e. SVG for "svg" and HTML
// for everything else.
func ForSpace(space string) *Schema {
	if space == SpaceSVG {
		return SVG
	}
	return HTML
}

// Find looks up a property by property name or attribute name.
func Find(s *Schema, name string) Info {
	if info, ok := s.lookup(name); ok {
		return info
	}
	lc := normalize(name)
	if len(lc) > 4 && lc[:4] == "data" && isValidData(name) {
		return dataInfo(name)
	}
	return Info{Property: name, Attribute: name}
}

// lookup returns the info for a property known to s.
func (s *Schema) lookup(name string) (Info, bool) {
	node, ok := s.normal.Find(normalize(name))
	if !ok {
		return Info{}, false
	}
	prop, ok := node.Meta().(string)
	if !ok {
		tracer().Errorf("schema %s: corrupt index entry for %q", s.Space, name)
		return Info{}, false
	}
	info, ok := s.property[prop]
	return info, ok
}

// dataInfo converts between data-foo-bar and dataFooBar.
func dataInfo(name string) Info {
	prop, attr := name, name
	if name[4] == '-' {
		rest := dashToCamel(name[5:])
		if rest != "" {
			rest = strings.ToUpper(rest[:1]) + rest[1:]
		}
		prop = "data" + rest
	} else {
		rest := name[4:]
		if !hasDashLower(rest) {
			dashes := camelToDash(rest)
			if !strings.HasPrefix(dashes, "-") {
				dashes = "-" + dashes
			}
			attr = "data" + dashes
		}
	}
	return Info{Property: prop, Attribute: attr, Defined: true}
}

// Join joins a list value the way the property expects.
func (info Info) Join(list []string) string {
	if info.CommaSeparated {
		return strings.Join(list, ", ")
	}
	return strings.Join(list, " ")
}

// Format renders a property value as an attribute value. Boolean true is
// the empty string.
func (info Info) Format(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return info.Join(v)
	case bool:
		if v {
			return ""
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(value)
}

func normalize(name string) string {
	return strings.ToLower(name)
}

// isValidData matches /^data[-\w.:]+$/i.
func isValidData(name string) bool {
	if len(name) <= 4 {
		return false
	}
	for _, c := range name[4:] {
		switch {
		case c == '-' || c == '_' || c == '.' || c == ':':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

// hasDashLower matches /-[a-z]/.
func hasDashLower(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '-' && s[i+1] >= 'a' && s[i+1] <= 'z' {
			return true
		}
	}
	return false
}

// dashToCamel replaces each "-x" by "X" for lowercase x.
func dashToCamel(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '-' && i+1 < len(s) && s[i+1] >= 'a' && s[i+1] <= 'z' {
			sb.WriteByte(s[i+1] - 'a' + 'A')
			i++
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// camelToDash replaces each uppercase X by "-x".
func camelToDash(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			sb.WriteByte('-')
			sb.WriteByte(s[i] - 'A' + 'a')
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// --- Schema construction ---------------------------------------------------

type space struct {
	name       string
	properties map[string]mask
	attributes map[string]string
	transform  func(attributes map[string]string, property string) string
}

func merge(name string, spaces ...space) *Schema {
	s := &Schema{
		Space:    name,
		property: make(map[string]Info),
		normal:   trie.New(),
	}
	for _, sp := range spaces {
		for prop, m := range sp.properties {
			info := Info{
				Property:              prop,
				Attribute:             sp.transform(sp.attributes, prop),
				Space:                 sp.name,
				Boolean:               m.has(boolean),
				BooleanIsh:            m.has(booleanish),
				OverloadedBoolean:     m.has(overloadedBoolean),
				Number:                m.has(number),
				SpaceSeparated:        m.has(spaceSeparated),
				CommaSeparated:        m.has(commaSeparated),
				CommaOrSpaceSeparated: m.has(commaOrSpaceSeparated),
				Defined:               true,
			}
			s.property[prop] = info
			s.normal.Add(normalize(prop), prop)
			s.normal.Add(normalize(info.Attribute), prop)
		}
	}
	tracer().Debugf("schema %s has %d properties", name, len(s.property))
	return s
}

func caseSensitiveTransform(attributes map[string]string, attribute string) string {
	if a, ok := attributes[attribute]; ok {
		return a
	}
	return attribute
}

func caseInsensitiveTransform(attributes map[string]string, property string) string {
	return caseSensitiveTransform(attributes, strings.ToLower(property))
}

func prefixTransform(prefix string, cut int) func(map[string]string, string) string {
	return func(_ map[string]string, property string) string {
		return prefix + strings.ToLower(property[cut:])
	}
}
