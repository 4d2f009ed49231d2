package fenvm

import (
	"fmt"
	"strings"
)

// AliasName builds the internal register name the parser uses when a
// declaration shadows an enclosing block's local. The '#' keeps aliases out
// of the namespace scripts can spell, so they never collide with real names
// and stay out of export maps.
func AliasName(name string, serial int) string {
	return fmt.Sprintf("%s#%d", name, serial)
}

// IsAliasName reports whether name is an internal register alias.
func IsAliasName(name string) bool {
	return strings.ContainsRune(name, '#')
}

// Scope is the compile-time symbol table of one function. It hands out a
// register for every parameter and local, resolves names against the
// enclosing function with single-hop hoisting, and materializes frames for
// activations. Scopes are built by the parser and never change afterwards,
// so every activation of a function shares one Scope.
type Scope struct {
	parent    *Scope
	registers map[string]int
	names     []string
	parmCount int
	hoisted   map[int]int
}

// NewScope returns an empty scope. parent is the scope of the enclosing
// function, nil for a program's top level.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:    parent,
		registers: make(map[string]int),
	}
}

// Parent returns the scope of the enclosing function.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// DeclareParameter assigns the next register to a parameter. Parameters must
// all be declared before the first local; the parser guarantees that, so a
// late parameter is a bug and panics. A repeated name returns the register
// it already has.
func (s *Scope) DeclareParameter(name string) int {
	if len(s.names) > s.parmCount {
		panic(fmt.Sprintf("fenvm: parameter %q declared after a local", name))
	}
	if register, ok := s.registers[name]; ok {
		return register
	}
	register := len(s.names)
	s.registers[name] = register
	s.names = append(s.names, name)
	s.parmCount++
	return register
}

// DeclareVariable assigns the next register to a local. A repeated name
// returns the register it already has.
func (s *Scope) DeclareVariable(name string) int {
	if register, ok := s.registers[name]; ok {
		return register
	}
	register := len(s.names)
	s.registers[name] = register
	s.names = append(s.names, name)
	return register
}

// Resolve looks a name up in this scope. When hoist is set and the name is
// only known to the parent, a fresh local register is allocated here and
// recorded as capturing the parent's register. The parent lookup runs with
// hoisting off, so one Resolve reaches at most one scope up; deeper captures
// happen hop by hop as each intermediate function resolves the name itself.
func (s *Scope) Resolve(name string, hoist bool) (int, bool) {
	if register, ok := s.registers[name]; ok {
		return register, true
	}
	if !hoist || s.parent == nil {
		return 0, false
	}
	parentRegister, ok := s.parent.Resolve(name, false)
	if !ok {
		return 0, false
	}
	register := s.DeclareVariable(name)
	if s.hoisted == nil {
		s.hoisted = make(map[int]int)
	}
	s.hoisted[register] = parentRegister
	return register, true
}

// RegisterOf returns the register a name was declared with.
func (s *Scope) RegisterOf(name string) (int, bool) {
	register, ok := s.registers[name]
	return register, ok
}

// NameOf returns the name a register was declared under.
func (s *Scope) NameOf(register int) string {
	if register < 0 || register >= len(s.names) {
		return ""
	}
	return s.names[register]
}

// IsCaptured reports whether the register mirrors a register of the
// enclosing function.
func (s *Scope) IsCaptured(register int) bool {
	_, ok := s.hoisted[register]
	return ok
}

// CapturedBy returns the local register that captures the given register of
// the parent scope.
func (s *Scope) CapturedBy(parentRegister int) (int, bool) {
	for local, parent := range s.hoisted {
		if parent == parentRegister {
			return local, true
		}
	}
	return 0, false
}

// CreateFrame builds the register storage for a new activation, copying the
// current cell of every captured register out of the caller's frame. With a
// nil caller the captured registers stay unbound.
func (s *Scope) CreateFrame(caller *Frame) *Frame {
	f := &Frame{
		scope: s,
		cells: make([]cell, len(s.names)),
	}
	if caller != nil {
		for local, parent := range s.hoisted {
			f.cells[local] = caller.cells[parent]
		}
	}
	return f
}

// ParameterCount returns how many registers are parameters.
func (s *Scope) ParameterCount() int {
	return s.parmCount
}

// RegisterCount returns how many registers the scope has allocated.
func (s *Scope) RegisterCount() int {
	return len(s.names)
}

// Parameters returns the parameter names after the first n, in declaration
// order. Currying uses n to report only the parameters still unfilled.
func (s *Scope) Parameters(after int) []string {
	if after < 0 {
		after = 0
	}
	if after >= s.parmCount {
		return nil
	}
	out := make([]string, s.parmCount-after)
	copy(out, s.names[after:s.parmCount])
	return out
}

// Names returns all declared names in register order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}
