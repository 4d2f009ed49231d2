package fenvm

import "math/bits"

const lowRegisters = 64

// SymbolSet records which registers a lexical block has declared. Registers
// below 64 live in one inline word so the common block allocates nothing;
// higher registers spill into a growable word slice.
type SymbolSet struct {
	low   uint64
	high  []uint64
	count int
}

// Test reports whether the register is in the set.
func (s *SymbolSet) Test(register int) bool {
	if register < lowRegisters {
		return s.low&(1<<uint(register)) != 0
	}
	i := (register - lowRegisters) / lowRegisters
	if i >= len(s.high) {
		return false
	}
	return s.high[i]&(1<<uint((register-lowRegisters)%lowRegisters)) != 0
}

// Declare adds the register to the set. It reports false if the register was
// already present, leaving the set unchanged.
func (s *SymbolSet) Declare(register int) bool {
	if s.Test(register) {
		return false
	}
	if register < lowRegisters {
		s.low |= 1 << uint(register)
	} else {
		i := (register - lowRegisters) / lowRegisters
		for i >= len(s.high) {
			s.high = append(s.high, 0)
		}
		s.high[i] |= 1 << uint((register-lowRegisters)%lowRegisters)
	}
	s.count++
	return true
}

// Count returns the number of registers in the set.
func (s *SymbolSet) Count() int {
	return s.count
}

// each calls fn for every register in the set, inline word first, then the
// overflow words in ascending order.
func (s *SymbolSet) each(fn func(register int)) {
	word := s.low
	for word != 0 {
		b := bits.TrailingZeros64(word)
		fn(b)
		word &^= 1 << uint(b)
	}
	for i, w := range s.high {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(lowRegisters + i*lowRegisters + b)
			w &^= 1 << uint(b)
		}
	}
}
