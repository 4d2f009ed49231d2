package fenvm

import (
	"encoding/gob"
	"io"
)

// Program is a compiled script: a synthetic top-level lambda wrapping the
// whole source. SourceName is carried for error messages and cache keys.
type Program struct {
	SourceName string
	Top        *Lambda
}

// Encode writes the program in gob form. Native function values embedded in
// literals lose their Go func and must be rebound by name after decoding.
func (p *Program) Encode(w io.Writer) error {
	return gob.NewEncoder(w).Encode(p)
}

// DecodeProgram reads a program written by Encode.
func DecodeProgram(r io.Reader) (*Program, error) {
	var p Program
	if err := gob.NewDecoder(r).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
