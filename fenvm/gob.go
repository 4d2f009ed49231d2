package fenvm

import (
	"bytes"
	"encoding/gob"
)

func init() {
	gob.Register(&Literal{})
	gob.Register(&ListLit{})
	gob.Register(&Ident{})
	gob.Register(&VarDecl{})
	gob.Register(&Assign{})
	gob.Register(&IndexAssign{})
	gob.Register(&Unary{})
	gob.Register(&Binary{})
	gob.Register(&Index{})
	gob.Register(&Call{})
	gob.Register(&Lambda{})
	gob.Register(&Block{})
	gob.Register(&If{})
	gob.Register(&While{})
	gob.Register(&Return{})
	gob.Register(&Break{})
	gob.Register(&Continue{})
	gob.Register(NativeFunc{})
	gob.Register(&List{})
	gob.Register([]any{})
	gob.Register(map[string]any{})
}

type scopeGob struct {
	Names     []string
	ParmCount int
	Hoisted   map[int]int
}

var _ gob.GobEncoder = new(Scope)

var _ gob.GobDecoder = new(Scope)

// GobEncode serializes the scope without its parent link. Decoded programs
// only create frames and look registers up by index, they are never parsed
// again, so the link is not needed.
func (s *Scope) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(scopeGob{
		Names:     s.names,
		ParmCount: s.parmCount,
		Hoisted:   s.hoisted,
	})
	return buf.Bytes(), err
}

func (s *Scope) GobDecode(data []byte) error {
	var g scopeGob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	s.parent = nil
	s.names = g.Names
	s.parmCount = g.ParmCount
	s.hoisted = g.Hoisted
	s.registers = make(map[string]int, len(g.Names))
	for i, name := range g.Names {
		s.registers[name] = i
	}
	return nil
}
