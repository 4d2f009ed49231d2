package fenvm

// cellState tells apart a register that was never given a value, one whose
// block has been left, and one holding a value. The value held may itself be
// nil, which still counts as bound.
type cellState uint8

const (
	cellUnbound cellState = iota
	cellUndefined
	cellBound
)

type cell struct {
	state cellState
	value any
}

// Frame is the flat register storage of one function activation. Registers
// are allocated by the Scope at parse time, so indices arriving here are
// trusted. The bound cursor tracks how many parameter registers currying has
// filled so far.
type Frame struct {
	scope *Scope
	cells []cell
	bound int
}

// Scope returns the compile-time scope this frame was created from.
func (f *Frame) Scope() *Scope {
	return f.scope
}

// Bound returns the curry cursor, the count of parameter registers already
// filled by Assign.
func (f *Frame) Bound() int {
	return f.bound
}

// Get returns the value of a register, nil when it is unbound or its block
// has been left.
func (f *Frame) Get(register int) any {
	c := f.cells[register]
	if c.state != cellBound {
		return nil
	}
	return c.value
}

// Set binds the register to value. An explicit nil is a bound value.
func (f *Frame) Set(register int, value any) {
	f.cells[register] = cell{state: cellBound, value: value}
}

// Has reports whether the register currently holds a value. A register set
// to nil has one, an unbound or popped register does not.
func (f *Frame) Has(register int) bool {
	return f.cells[register].state == cellBound
}

// undefine marks the register as out of scope.
func (f *Frame) undefine(register int) {
	f.cells[register] = cell{state: cellUndefined}
}

// clone copies the frame so an activation can write locals without touching
// the original.
func (f *Frame) clone() *Frame {
	cells := make([]cell, len(f.cells))
	copy(cells, f.cells)
	return &Frame{
		scope: f.scope,
		cells: cells,
		bound: f.bound,
	}
}

// Assign copies the frame and binds the supplied values to parameter
// registers starting at the curry cursor. Values beyond the parameter count
// are dropped, and every parameter slot past the last one filled is set to
// an explicit nil, so a call that supplies too few arguments still observes
// defined values. Assigning a then b yields the same frame as assigning
// a followed by b in one call, whatever the split. With no values the frame
// is returned unchanged.
func (f *Frame) Assign(values ...any) *Frame {
	if len(values) == 0 {
		return f
	}
	next := &Frame{
		scope: f.scope,
		cells: make([]cell, len(f.cells)),
		bound: f.bound,
	}
	copy(next.cells, f.cells)
	parms := f.scope.parmCount
	n := min(len(values), parms-next.bound)
	for i := 0; i < n; i++ {
		next.cells[next.bound+i] = cell{state: cellBound, value: values[i]}
	}
	next.bound += n
	for i := next.bound; i < parms; i++ {
		next.cells[i] = cell{state: cellBound, value: nil}
	}
	return next
}
