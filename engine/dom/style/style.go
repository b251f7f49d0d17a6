/*
Package style handles inline CSS styles of elements.

An inline style is kept as an ordered list of declarations. Parsing is done
with douceur; broken input never produces an error but an empty style.

	decls := style.Parse("color: red; font-weight: bold")
	decls.Set("text-align", "left")
	decls.String() // "color: red; font-weight: bold; text-align: left;"

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package style

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdvue.style'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.style")
}

// Property is the value of a CSS property, e.g. "red" or "1px solid".
type Property string

func (p Property) String() string {
	return string(p)
}

// IsEmpty returns true for the empty property value.
func (p Property) IsEmpty() bool {
	return p == ""
}

// Declaration is a single CSS declaration, e.g. "color: red".
type Declaration struct {
	Name  string
	Value Property
}

// Declarations is an ordered list of CSS declarations with unique names.
type Declarations []Declaration

// Parse parses the text of a style attribute. Parse errors are traced and
// result in an empty list; declarations without name or value are dropped.
// The last declaration need not be terminated by a semicolon.
func Parse(text string) Declarations {
	text = strings.TrimSpace(text)
	if text != "" && !strings.HasSuffix(text, ";") {
		text += ";" // douceur drops an unterminated last declaration
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		tracer().Debugf("cannot parse style %q: %v", text, err)
		return Declarations{}
	}
	d := make(Declarations, 0, len(decls))
	for _, decl := range decls {
		name := strings.TrimSpace(decl.Property)
		value := strings.TrimSpace(decl.Value)
		if name == "" || value == "" {
			continue
		}
		if decl.Important {
			value += " !important"
		}
		d.Set(name, Property(value))
	}
	return d
}

// Get returns the value of a declaration.
func (d Declarations) Get(name string) (Property, bool) {
	for _, decl := range d {
		if decl.Name == name {
			return decl.Value, true
		}
	}
	return "", false
}

// Set sets a declaration, keeping the position of an existing one.
func (d *Declarations) Set(name string, value Property) {
	for i := range *d {
		if (*d)[i].Name == name {
			(*d)[i].Value = value
			return
		}
	}
	*d = append(*d, Declaration{Name: name, Value: value})
}

// IsEmpty returns true if there are no declarations.
func (d Declarations) IsEmpty() bool {
	return len(d) == 0
}

// String serializes declarations the way browsers do for inline styles:
// "color: red; text-align: left;".
func (d Declarations) String() string {
	var sb strings.Builder
	for i, decl := range d {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(decl.Name)
		sb.WriteString(": ")
		sb.WriteString(string(decl.Value))
		sb.WriteByte(';')
	}
	return sb.String()
}
