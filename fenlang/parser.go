package fenlang

import (
	"fmt"

	"github.com/fenlang/fen/fenvm"
)

var keywords = map[string]bool{
	"var":      true,
	"fn":       true,
	"return":   true,
	"break":    true,
	"continue": true,
	"while":    true,
	"if":       true,
	"else":     true,
	"true":     true,
	"false":    true,
	"null":     true,
}

type parser struct {
	tz     *Tokenizer
	src    *Source
	scope  *fenvm.Scope
	blocks *blockNames
	serial int
	loop   int
}

// blockNames is the parse-time mirror of a runtime block: the names declared
// directly in it and the link to the enclosing block of the same function.
// Lambda parsing starts a fresh chain, so lookups never cross a function
// boundary; captures go through the scope instead.
type blockNames struct {
	parent *blockNames
	names  map[string]int
}

// Parse compiles a source into a program: a synthetic top-level lambda
// whose scope holds the register allocation of the program's own names.
func Parse(src *Source) (*fenvm.Program, error) {
	p := &parser{
		tz:     NewSourceTokenizer(src),
		src:    src,
		scope:  fenvm.NewScope(nil),
		blocks: &blockNames{names: make(map[string]int)},
	}

	var stmts []fenvm.Node
	for {
		t, err := p.tz.Current()
		if err != nil {
			return nil, err
		}
		if t.Kind == TokenEOF {
			break
		}
		if p.isSymbol(t, ";") {
			p.tz.Consume()
			continue
		}
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}

	return &fenvm.Program{
		SourceName: src.Name,
		Top: &fenvm.Lambda{
			Top:   true,
			Scope: p.scope,
			Body:  &fenvm.Block{Stmts: stmts},
		},
	}, nil
}

func (p *parser) errAt(pos fenvm.Pos, format string, args ...any) error {
	return WithPos(fmt.Errorf(format, args...), p.src, pos)
}

func (p *parser) isSymbol(t *Token, text string) bool {
	return t.Kind == TokenSymbol && t.Text == text
}

func (p *parser) expectSymbol(text string) (fenvm.Pos, error) {
	t, err := p.tz.Current()
	if err != nil {
		return fenvm.Pos{}, err
	}
	if !p.isSymbol(t, text) {
		return t.Pos, p.errAt(t.Pos, "expected %q, got %s", text, describe(t))
	}
	p.tz.Consume()
	return t.Pos, nil
}

func (p *parser) expectName() (*Token, error) {
	t, err := p.tz.Current()
	if err != nil {
		return nil, err
	}
	if t.Kind != TokenIdentifier {
		return nil, p.errAt(t.Pos, "expected a name, got %s", describe(t))
	}
	if keywords[t.Text] {
		return nil, p.errAt(t.Pos, "%s is a keyword", t.Text)
	}
	p.tz.Consume()
	return t, nil
}

func describe(t *Token) string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenString:
		return "string"
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

// lookupBlocks finds a name declared by a block of the current function.
func (p *parser) lookupBlocks(name string) (int, bool) {
	for b := p.blocks; b != nil; b = b.parent {
		if r, ok := b.names[name]; ok {
			return r, true
		}
	}
	return 0, false
}

func (p *parser) lookupOuterBlocks(name string) (int, bool) {
	if p.blocks == nil {
		return 0, false
	}
	for b := p.blocks.parent; b != nil; b = b.parent {
		if r, ok := b.names[name]; ok {
			return r, true
		}
	}
	return 0, false
}

// resolveHoisting finds name in s or any enclosing scope, capturing it hop
// by hop: each intermediate scope resolves the name itself first, so every
// single Resolve call still reaches only one scope up, and the capture
// chain forms level by level.
func resolveHoisting(s *fenvm.Scope, name string) (int, bool) {
	if r, ok := s.RegisterOf(name); ok {
		return r, true
	}
	if s.Parent() == nil {
		return 0, false
	}
	if _, ok := resolveHoisting(s.Parent(), name); !ok {
		return 0, false
	}
	return s.Resolve(name, true)
}

// resolveIdent resolves a name use: innermost block of the current function
// first, then the function's scope, then the enclosing functions through
// hoisting, and finally the host context.
func (p *parser) resolveIdent(pos fenvm.Pos, name string) *fenvm.Ident {
	if r, ok := p.lookupBlocks(name); ok {
		return &fenvm.Ident{Pos: pos, Name: name, Register: r, Captured: p.scope.IsCaptured(r)}
	}
	if r, ok := p.scope.RegisterOf(name); ok {
		return &fenvm.Ident{Pos: pos, Name: name, Register: r, Captured: p.scope.IsCaptured(r)}
	}
	if r, ok := resolveHoisting(p.scope, name); ok {
		return &fenvm.Ident{Pos: pos, Name: name, Register: r, Captured: true}
	}
	return &fenvm.Ident{Pos: pos, Name: name, Context: true}
}

// declareVar allocates the register for a var statement. A name already
// declared in the same block or as a parameter is an error. A name that is
// a captured register of this function shadows in place on the same
// register; the block will restore it on exit. A name declared by an
// enclosing block gets a fresh register under an internal alias, so the
// shadowed local keeps its own cell.
func (p *parser) declareVar(pos fenvm.Pos, name string) (int, bool, error) {
	if _, ok := p.blocks.names[name]; ok {
		return 0, false, p.errAt(pos, "%s: variable is already declared", name)
	}
	if r, ok := p.scope.RegisterOf(name); ok {
		if r < p.scope.ParameterCount() {
			return 0, false, p.errAt(pos, "%s: variable is already declared as a parameter", name)
		}
		if p.scope.IsCaptured(r) {
			p.blocks.names[name] = r
			return r, true, nil
		}
	}
	if _, shadowing := p.lookupOuterBlocks(name); shadowing {
		p.serial++
		r := p.scope.DeclareVariable(fenvm.AliasName(name, p.serial))
		p.blocks.names[name] = r
		return r, false, nil
	}
	r := p.scope.DeclareVariable(name)
	p.blocks.names[name] = r
	return r, false, nil
}

func (p *parser) parseStmt() (fenvm.Node, error) {
	t, err := p.tz.Current()
	if err != nil {
		return nil, err
	}

	if t.Kind == TokenIdentifier {
		switch t.Text {
		case "var":
			return p.parseVar(t.Pos)
		case "fn":
			p.tz.Consume()
			return p.parseFnDecl(t.Pos)
		case "return":
			return p.parseReturn(t.Pos)
		case "break":
			p.tz.Consume()
			if p.loop == 0 {
				return nil, p.errAt(t.Pos, "break outside a loop")
			}
			return &fenvm.Break{Pos: t.Pos}, nil
		case "continue":
			p.tz.Consume()
			if p.loop == 0 {
				return nil, p.errAt(t.Pos, "continue outside a loop")
			}
			return &fenvm.Continue{Pos: t.Pos}, nil
		case "while":
			return p.parseWhile(t.Pos)
		}
	}

	return p.parseExprStmt()
}

func (p *parser) parseVar(pos fenvm.Pos) (fenvm.Node, error) {
	p.tz.Consume()
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	register, captured, err := p.declareVar(name.Pos, name.Text)
	if err != nil {
		return nil, err
	}

	var value fenvm.Node
	t, err := p.tz.Current()
	if err != nil {
		return nil, err
	}
	if p.isSymbol(t, "=") {
		p.tz.Consume()
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}

	return &fenvm.VarDecl{
		Pos:      pos,
		Name:     name.Text,
		Register: register,
		Captured: captured,
		Value:    value,
	}, nil
}

// parseFnDecl handles the named statement form, which declares the name
// before the body parses, so the body can capture it for self-calls.
func (p *parser) parseFnDecl(pos fenvm.Pos) (fenvm.Node, error) {
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	register, captured, err := p.declareVar(name.Pos, name.Text)
	if err != nil {
		return nil, err
	}
	lambda, err := p.parseLambdaTail(pos, name.Text)
	if err != nil {
		return nil, err
	}
	return &fenvm.VarDecl{
		Pos:      pos,
		Name:     name.Text,
		Register: register,
		Captured: captured,
		Value:    lambda,
	}, nil
}

// parseLambdaTail parses "(params) { body }" into a lambda with its own
// scope and a fresh block chain.
func (p *parser) parseLambdaTail(pos fenvm.Pos, name string) (*fenvm.Lambda, error) {
	if _, err := p.expectSymbol("("); err != nil {
		return nil, err
	}

	scope := fenvm.NewScope(p.scope)
	savedScope, savedBlocks, savedLoop := p.scope, p.blocks, p.loop
	p.scope, p.blocks, p.loop = scope, &blockNames{names: make(map[string]int)}, 0
	defer func() {
		p.scope, p.blocks, p.loop = savedScope, savedBlocks, savedLoop
	}()

	for {
		t, err := p.tz.Current()
		if err != nil {
			return nil, err
		}
		if p.isSymbol(t, ")") {
			p.tz.Consume()
			break
		}
		param, err := p.expectName()
		if err != nil {
			return nil, err
		}
		scope.DeclareParameter(param.Text)
		t, err = p.tz.Current()
		if err != nil {
			return nil, err
		}
		if p.isSymbol(t, ",") {
			p.tz.Consume()
		} else if !p.isSymbol(t, ")") {
			return nil, p.errAt(t.Pos, "expected \",\" or \")\", got %s", describe(t))
		}
	}

	body, err := p.parseBlockNode()
	if err != nil {
		return nil, err
	}

	return &fenvm.Lambda{
		Pos:   pos,
		Name:  name,
		Scope: scope,
		Body:  body,
	}, nil
}

func (p *parser) parseBlockNode() (*fenvm.Block, error) {
	pos, err := p.expectSymbol("{")
	if err != nil {
		return nil, err
	}

	p.blocks = &blockNames{parent: p.blocks, names: make(map[string]int)}
	defer func() {
		p.blocks = p.blocks.parent
	}()

	var stmts []fenvm.Node
	for {
		t, err := p.tz.Current()
		if err != nil {
			return nil, err
		}
		if p.isSymbol(t, "}") {
			p.tz.Consume()
			break
		}
		if p.isSymbol(t, ";") {
			p.tz.Consume()
			continue
		}
		if t.Kind == TokenEOF {
			return nil, p.errAt(t.Pos, "expected \"}\", got end of input")
		}
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}

	return &fenvm.Block{Pos: pos, Stmts: stmts}, nil
}

func (p *parser) parseReturn(pos fenvm.Pos) (fenvm.Node, error) {
	p.tz.Consume()
	t, err := p.tz.Current()
	if err != nil {
		return nil, err
	}
	if t.Kind == TokenEOF || p.isSymbol(t, "}") || p.isSymbol(t, ";") {
		return &fenvm.Return{Pos: pos}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &fenvm.Return{Pos: pos, Value: value}, nil
}

func (p *parser) parseWhile(pos fenvm.Pos) (fenvm.Node, error) {
	p.tz.Consume()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.loop++
	body, err := p.parseBlockNode()
	p.loop--
	if err != nil {
		return nil, err
	}
	return &fenvm.While{Pos: pos, Cond: cond, Body: body}, nil
}

func (p *parser) parseIf(pos fenvm.Pos) (fenvm.Node, error) {
	p.tz.Consume()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlockNode()
	if err != nil {
		return nil, err
	}

	var els fenvm.Node
	t, err := p.tz.Current()
	if err != nil {
		return nil, err
	}
	if t.Kind == TokenIdentifier && t.Text == "else" {
		p.tz.Consume()
		t, err = p.tz.Current()
		if err != nil {
			return nil, err
		}
		if t.Kind == TokenIdentifier && t.Text == "if" {
			els, err = p.parseIf(t.Pos)
		} else {
			els, err = p.parseBlockNode()
		}
		if err != nil {
			return nil, err
		}
	}

	return &fenvm.If{Pos: pos, Cond: cond, Then: then, Else: els}, nil
}

func (p *parser) parseExprStmt() (fenvm.Node, error) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	t, err := p.tz.Current()
	if err != nil {
		return nil, err
	}
	if !p.isSymbol(t, "=") {
		return e, nil
	}

	switch target := e.(type) {
	case *fenvm.Ident:
		p.tz.Consume()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &fenvm.Assign{Pos: target.Pos, Target: target, Value: value}, nil
	case *fenvm.Index:
		p.tz.Consume()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &fenvm.IndexAssign{
			Pos:    target.Pos,
			Target: target.X,
			Key:    target.Key,
			Value:  value,
		}, nil
	}
	return nil, p.errAt(t.Pos, "cannot assign to this expression")
}

var (
	orOps  = map[string]fenvm.OpKind{"||": fenvm.OpOr}
	andOps = map[string]fenvm.OpKind{"&&": fenvm.OpAnd}
	eqOps  = map[string]fenvm.OpKind{
		"==": fenvm.OpEq,
		"!=": fenvm.OpNe,
	}
	cmpOps = map[string]fenvm.OpKind{
		"<":  fenvm.OpLt,
		"<=": fenvm.OpLe,
		">":  fenvm.OpGt,
		">=": fenvm.OpGe,
	}
	addOps = map[string]fenvm.OpKind{
		"+": fenvm.OpAdd,
		"-": fenvm.OpSub,
	}
	mulOps = map[string]fenvm.OpKind{
		"*": fenvm.OpMul,
		"/": fenvm.OpDiv,
		"%": fenvm.OpMod,
	}
)

func (p *parser) parseBinary(ops map[string]fenvm.OpKind, next func() (fenvm.Node, error)) (fenvm.Node, error) {
	l, err := next()
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.tz.Current()
		if err != nil {
			return nil, err
		}
		if t.Kind != TokenSymbol {
			return l, nil
		}
		op, ok := ops[t.Text]
		if !ok {
			return l, nil
		}
		p.tz.Consume()
		r, err := next()
		if err != nil {
			return nil, err
		}
		l = &fenvm.Binary{Pos: t.Pos, Op: op, L: l, R: r}
	}
}

func (p *parser) parseExpr() (fenvm.Node, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (fenvm.Node, error) {
	return p.parseBinary(orOps, p.parseAnd)
}

func (p *parser) parseAnd() (fenvm.Node, error) {
	return p.parseBinary(andOps, p.parseEquality)
}

func (p *parser) parseEquality() (fenvm.Node, error) {
	return p.parseBinary(eqOps, p.parseComparison)
}

func (p *parser) parseComparison() (fenvm.Node, error) {
	return p.parseBinary(cmpOps, p.parseAdditive)
}

func (p *parser) parseAdditive() (fenvm.Node, error) {
	return p.parseBinary(addOps, p.parseMultiplicative)
}

func (p *parser) parseMultiplicative() (fenvm.Node, error) {
	return p.parseBinary(mulOps, p.parseUnary)
}

func (p *parser) parseUnary() (fenvm.Node, error) {
	t, err := p.tz.Current()
	if err != nil {
		return nil, err
	}
	if p.isSymbol(t, "!") || p.isSymbol(t, "-") {
		p.tz.Consume()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		op := fenvm.OpNot
		if t.Text == "-" {
			op = fenvm.OpNeg
		}
		return &fenvm.Unary{Pos: t.Pos, Op: op, X: x}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (fenvm.Node, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.tz.Current()
		if err != nil {
			return nil, err
		}
		switch {
		case p.isSymbol(t, "("):
			p.tz.Consume()
			var args []fenvm.Node
			for {
				at, err := p.tz.Current()
				if err != nil {
					return nil, err
				}
				if p.isSymbol(at, ")") {
					p.tz.Consume()
					break
				}
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				at, err = p.tz.Current()
				if err != nil {
					return nil, err
				}
				if p.isSymbol(at, ",") {
					p.tz.Consume()
				} else if !p.isSymbol(at, ")") {
					return nil, p.errAt(at.Pos, "expected \",\" or \")\", got %s", describe(at))
				}
			}
			e = &fenvm.Call{Pos: t.Pos, Callee: e, Args: args}
		case p.isSymbol(t, "["):
			p.tz.Consume()
			key, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSymbol("]"); err != nil {
				return nil, err
			}
			e = &fenvm.Index{Pos: t.Pos, X: e, Key: key}
		default:
			return e, nil
		}
	}
}

func (p *parser) parsePrimary() (fenvm.Node, error) {
	t, err := p.tz.Current()
	if err != nil {
		return nil, err
	}

	switch t.Kind {

	case TokenNumber:
		p.tz.Consume()
		if t.Value == nil {
			return nil, p.errAt(t.Pos, "invalid number: %s", t.Text)
		}
		return &fenvm.Literal{Pos: t.Pos, Value: t.Value}, nil

	case TokenString:
		p.tz.Consume()
		return &fenvm.Literal{Pos: t.Pos, Value: t.Text}, nil

	case TokenIdentifier:
		switch t.Text {
		case "true":
			p.tz.Consume()
			return &fenvm.Literal{Pos: t.Pos, Value: true}, nil
		case "false":
			p.tz.Consume()
			return &fenvm.Literal{Pos: t.Pos, Value: false}, nil
		case "null":
			p.tz.Consume()
			return &fenvm.Literal{Pos: t.Pos}, nil
		case "fn":
			p.tz.Consume()
			return p.parseLambdaTail(t.Pos, "")
		case "if":
			return p.parseIf(t.Pos)
		}
		if keywords[t.Text] {
			return nil, p.errAt(t.Pos, "unexpected %s", t.Text)
		}
		p.tz.Consume()
		return p.resolveIdent(t.Pos, t.Text), nil

	case TokenSymbol:
		switch t.Text {
		case "(":
			p.tz.Consume()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSymbol(")"); err != nil {
				return nil, err
			}
			return e, nil
		case "[":
			p.tz.Consume()
			var elems []fenvm.Node
			for {
				et, err := p.tz.Current()
				if err != nil {
					return nil, err
				}
				if p.isSymbol(et, "]") {
					p.tz.Consume()
					break
				}
				elem, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				elems = append(elems, elem)
				et, err = p.tz.Current()
				if err != nil {
					return nil, err
				}
				if p.isSymbol(et, ",") {
					p.tz.Consume()
				} else if !p.isSymbol(et, "]") {
					return nil, p.errAt(et.Pos, "expected \",\" or \"]\", got %s", describe(et))
				}
			}
			return &fenvm.ListLit{Pos: t.Pos, Elems: elems}, nil
		case "{":
			return p.parseBlockNode()
		}
	}

	return nil, p.errAt(t.Pos, "unexpected %s", describe(t))
}
