/*
Package parameters holds group-scoped render registers.

Rendering a syntax tree carries a small amount of state down the recursion,
e.g. the nesting depth of lists or the attribute space (HTML or SVG) in
effect. Registers work like TeX's grouping: a client opens a group when
entering a subtree, pushes values which shadow outer ones, and closes the
group when leaving the subtree, which restores the outer values.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package parameters

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdvue.core'.
func tracer() tracing.Trace {
	return tracing.Select("mdvue.core")
}

// RenderParameter is a key into the render registers.
type RenderParameter int

//go:generate stringer -type=RenderParameter
const (
	none RenderParameter = iota
	P_LISTDEPTH
	P_SPACE
	P_STOPPER
)

// Attribute spaces for P_SPACE.
const (
	SpaceHTML = "html"
	SpaceSVG  = "svg"
)

type parameterGroup struct {
	params map[RenderParameter]interface{}
	level  int
}

// Registers is a set of render parameters with group scoping.
// The zero value is not usable, call NewRegisters.
type Registers struct {
	base       [P_STOPPER]interface{}
	groups     *arraystack.Stack // of *parameterGroup, innermost on top
	grouplevel int
}

// ----------------------------------------------------------------------

// NewRegisters creates a set of registers with initial values.
func NewRegisters() *Registers {
	regs := &Registers{groups: arraystack.New()}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_LISTDEPTH] = 0     // an int
	p[P_SPACE] = SpaceHTML // a string
}

// Begingroup opens a new group. Values pushed afterwards are dropped on the
// matching Endgroup.
func (regs *Registers) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the innermost group and restores the values in effect
// before the matching Begingroup.
func (regs *Registers) Endgroup() {
	if regs.grouplevel == 0 {
		tracer().Errorf("render registers: endgroup without begingroup")
		return
	}
	if top, ok := regs.groups.Peek(); ok && top.(*parameterGroup).level == regs.grouplevel {
		regs.groups.Pop()
	}
	regs.grouplevel--
}

// Level returns the current group nesting level.
func (regs *Registers) Level() int {
	return regs.grouplevel
}

// Push sets a parameter for the current group. Outside of any group the
// base value is overwritten.
func (regs *Registers) Push(key RenderParameter, value interface{}) {
	checkKey(key)
	if regs.grouplevel == 0 {
		regs.base[key] = value
		return
	}
	var g *parameterGroup
	if top, ok := regs.groups.Peek(); ok && top.(*parameterGroup).level == regs.grouplevel {
		g = top.(*parameterGroup)
	} else {
		g = &parameterGroup{
			params: make(map[RenderParameter]interface{}),
			level:  regs.grouplevel,
		}
		regs.groups.Push(g)
	}
	g.params[key] = value
}

// Get returns the innermost value of a parameter.
func (regs *Registers) Get(key RenderParameter) interface{} {
	checkKey(key)
	it := regs.groups.Iterator() // iterates top to bottom
	for it.Next() {
		if value, ok := it.Value().(*parameterGroup).params[key]; ok {
			return value
		}
	}
	return regs.base[key]
}

// S returns a string parameter.
func (regs *Registers) S(key RenderParameter) string {
	return regs.Get(key).(string)
}

// N returns an integer parameter.
func (regs *Registers) N(key RenderParameter) int {
	return regs.Get(key).(int)
}

func checkKey(key RenderParameter) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of render parameters")
	}
}
