package hast

import (
	"fmt"
	"strconv"
)

// Property is a named property of an element. Values are of type string,
// int, float64, bool, []string or nil.
type Property struct {
	Name  string
	Value interface{}
}

// Properties is an ordered list of element properties. Property names are
// unique within a list.
type Properties []Property

// Props creates properties from alternating names and values:
//
//	hast.Props("href", "/a", "title", "A")
//
func Props(kv ...interface{}) Properties {
	if len(kv)%2 != 0 {
		panic("hast.Props called with odd number of arguments")
	}
	props := make(Properties, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		props.Set(kv[i].(string), kv[i+1])
	}
	return props
}

// Get returns the value of a property.
func (p Properties) Get(name string) (interface{}, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return nil, false
}

// Has returns true if a property is present.
func (p Properties) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Set sets a property, keeping the position of an existing one.
func (p *Properties) Set(name string, value interface{}) {
	for i := range *p {
		if (*p)[i].Name == name {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, Property{Name: name, Value: value})
}

// Delete removes a property.
func (p *Properties) Delete(name string) {
	for i := range *p {
		if (*p)[i].Name == name {
			*p = append((*p)[:i], (*p)[i+1:]...)
			return
		}
	}
}

// Names returns the property names in order.
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}

// Truthy reports whether a property value counts as set, in the sense of
// an HTML boolean attribute.
func Truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case float64:
		return v != 0 && v == v
	case []string:
		return true
	}
	return true
}

// --- Positions -------------------------------------------------------------

// Point is a place in the source text. Fields are nil if unknown.
// Lines and columns are 1-based, columns count runes, offsets count bytes.
type Point struct {
	Line   *int
	Column *int
	Offset *int
}

// Position is a span in the source text.
type Position struct {
	Start Point
	End   Point
}

// Pt creates a point with all fields known.
func Pt(line, column, offset int) Point {
	return Point{Line: &line, Column: &column, Offset: &offset}
}

// Span creates a position from two points.
func Span(start, end Point) *Position {
	return &Position{Start: start, End: end}
}

// Known returns true if a point carries line and column information.
func (pt Point) Known() bool {
	return pt.Line != nil && pt.Column != nil
}

func (pt Point) String() string {
	return intOrNull(pt.Line) + ":" + intOrNull(pt.Column)
}

// String flattens a position to "line:col-line:col". A nil position or
// unknown fields render as "null".
func (pos *Position) String() string {
	if pos == nil {
		pos = &Position{}
	}
	return fmt.Sprintf("%s-%s", pos.Start, pos.End)
}

func intOrNull(n *int) string {
	if n == nil {
		return "null"
	}
	return strconv.Itoa(*n)
}
