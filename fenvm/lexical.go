package fenvm

// LexicalScope tracks the registers declared directly inside one block and
// chains to the enclosing block, so a redeclaration anywhere in the chain of
// one activation is caught. Blocks only gate declarations; the values stay
// in the activation's Frame.
type LexicalScope struct {
	SymbolSet
	parent *LexicalScope
}

// Declared reports whether the register is declared in this block or in any
// enclosing block of the chain.
func (s *LexicalScope) Declared(register int) bool {
	for b := s; b != nil; b = b.parent {
		if b.Test(register) {
			return true
		}
	}
	return false
}

// declare adds the register to this block unless some block of the chain
// already has it.
func (s *LexicalScope) declare(register int) bool {
	if s.Declared(register) {
		return false
	}
	return s.SymbolSet.Declare(register)
}

type undoEntry struct {
	register int
	prior    cell
}

// LexicalFrame pairs a block's LexicalScope with the Frame of its
// activation. When a block redeclares a captured register, the register's
// prior cell is pushed onto an undo log first, so Pop can put back exactly
// what was there, whether that was a value, a nil, or nothing at all.
type LexicalFrame struct {
	LexicalScope
	frame *Frame
	undo  []undoEntry
}

// NewLexicalFrame enters a block. parent is the enclosing block of the same
// activation, nil at function-body level.
func NewLexicalFrame(parent *LexicalFrame, frame *Frame) *LexicalFrame {
	f := &LexicalFrame{frame: frame}
	if parent != nil {
		f.LexicalScope.parent = &parent.LexicalScope
	}
	return f
}

// DefineArgs declares every parameter register in the function-body block,
// so a var statement cannot redeclare a parameter. It returns the frame for
// chaining on activation entry.
func (f *LexicalFrame) DefineArgs() *LexicalFrame {
	for register := 0; register < f.frame.scope.parmCount; register++ {
		f.SymbolSet.Declare(register)
	}
	return f
}

// Declare records a declaration made directly in this block, reporting false
// when the register is already declared somewhere in the chain. captured
// marks registers hoisted from the enclosing function; their current cell is
// saved so Pop restores it.
func (f *LexicalFrame) Declare(register int, captured bool) bool {
	if !f.declare(register) {
		return false
	}
	if captured {
		f.undo = append(f.undo, undoEntry{
			register: register,
			prior:    f.frame.cells[register],
		})
	}
	return true
}

// Pop leaves the block. Registers declared here drop out of scope first,
// then the undo log replays newest first, giving shadowed captured registers
// their prior cells back.
func (f *LexicalFrame) Pop() {
	f.each(func(register int) {
		f.frame.undefine(register)
	})
	for i := len(f.undo) - 1; i >= 0; i-- {
		e := f.undo[i]
		f.frame.cells[e.register] = e.prior
	}
	f.undo = nil
}
