package fenvm

// Pos locates a node in its source.
type Pos struct {
	Line   int
	Column int
}

// Node is an AST node. All node types carry the position their first token
// came from.
type Node interface {
	Position() Pos
}

// OpKind enumerates the unary and binary operators.
type OpKind uint8

const (
	OpInvalid OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpNot
	OpNeg
)

var opNames = map[OpKind]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpLe:  "<=",
	OpGt:  ">",
	OpGe:  ">=",
	OpAnd: "&&",
	OpOr:  "||",
	OpNot: "!",
	OpNeg: "-",
}

func (o OpKind) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return "?"
}

// Literal is a constant: nil, bool, int64, float64 or string.
type Literal struct {
	Pos   Pos
	Value any
}

// ListLit builds a list from element expressions.
type ListLit struct {
	Pos   Pos
	Elems []Node
}

// Ident reads a variable. Register is the frame slot the parser resolved the
// name to; Context marks names no scope knew, which fall through to the
// host context. Captured marks registers hoisted from the enclosing
// function.
type Ident struct {
	Pos      Pos
	Name     string
	Register int
	Captured bool
	Context  bool
}

// VarDecl declares a local and binds its initial value. Captured marks a
// declaration that reuses a hoisted register, which block scoping must
// restore when the block is left.
type VarDecl struct {
	Pos      Pos
	Name     string
	Register int
	Captured bool
	Value    Node
}

// Assign writes a variable, either a frame register or a context name.
type Assign struct {
	Pos    Pos
	Target *Ident
	Value  Node
}

// IndexAssign writes an element of a list or map.
type IndexAssign struct {
	Pos    Pos
	Target Node
	Key    Node
	Value  Node
}

// Unary applies OpNot or OpNeg.
type Unary struct {
	Pos Pos
	Op  OpKind
	X   Node
}

// Binary applies an arithmetic, comparison or logical operator. OpAnd and
// OpOr short-circuit.
type Binary struct {
	Pos  Pos
	Op   OpKind
	L, R Node
}

// Index reads an element of a list, map or string.
type Index struct {
	Pos Pos
	X   Node
	Key Node
}

// Call applies a callee to arguments.
type Call struct {
	Pos    Pos
	Callee Node
	Args   []Node
}

// Lambda is a function literal. Scope holds its register allocation; Name is
// set for the named statement form and empty for anonymous literals. Top
// marks the synthetic lambda wrapping a whole program.
type Lambda struct {
	Pos   Pos
	Name  string
	Scope *Scope
	Body  *Block
	Top   bool
}

// Block is a braced statement sequence. Its value is the value of the last
// statement executed.
type Block struct {
	Pos   Pos
	Stmts []Node
}

// If evaluates Then or Else depending on Cond. Else is a *Block, another
// *If, or nil.
type If struct {
	Pos  Pos
	Cond Node
	Then *Block
	Else Node
}

// While loops Body as long as Cond holds.
type While struct {
	Pos  Pos
	Cond Node
	Body *Block
}

// Return unwinds to the nearest function boundary. Value may be nil.
type Return struct {
	Pos   Pos
	Value Node
}

// Break exits the nearest loop.
type Break struct {
	Pos Pos
}

// Continue jumps to the next iteration of the nearest loop.
type Continue struct {
	Pos Pos
}

func (n *Literal) Position() Pos     { return n.Pos }
func (n *ListLit) Position() Pos     { return n.Pos }
func (n *Ident) Position() Pos       { return n.Pos }
func (n *VarDecl) Position() Pos     { return n.Pos }
func (n *Assign) Position() Pos      { return n.Pos }
func (n *IndexAssign) Position() Pos { return n.Pos }
func (n *Unary) Position() Pos       { return n.Pos }
func (n *Binary) Position() Pos      { return n.Pos }
func (n *Index) Position() Pos       { return n.Pos }
func (n *Call) Position() Pos        { return n.Pos }
func (n *Lambda) Position() Pos      { return n.Pos }
func (n *Block) Position() Pos       { return n.Pos }
func (n *If) Position() Pos          { return n.Pos }
func (n *While) Position() Pos       { return n.Pos }
func (n *Return) Position() Pos      { return n.Pos }
func (n *Break) Position() Pos       { return n.Pos }
func (n *Continue) Position() Pos    { return n.Pos }
