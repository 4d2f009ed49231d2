package fenvm

import (
	"context"
	"testing"
)

// addProgram builds: var add = fn add(a, b) { return a + b }; return add
func addProgram() *Program {
	top := NewScope(nil)
	addReg := top.DeclareVariable("add")

	fnScope := NewScope(top)
	a := fnScope.DeclareParameter("a")
	b := fnScope.DeclareParameter("b")
	lambda := &Lambda{
		Name:  "add",
		Scope: fnScope,
		Body: &Block{Stmts: []Node{
			&Return{Value: &Binary{
				Op: OpAdd,
				L:  &Ident{Name: "a", Register: a},
				R:  &Ident{Name: "b", Register: b},
			}},
		}},
	}

	return &Program{
		SourceName: "add.fen",
		Top: &Lambda{
			Top:   true,
			Scope: top,
			Body: &Block{Stmts: []Node{
				&VarDecl{Name: "add", Register: addReg, Value: lambda},
				&Return{Value: &Ident{Name: "add", Register: addReg}},
			}},
		},
	}
}

// countProgram builds a self-recursive function:
// var count = fn count(n) { if 0 < n { return count(n - 1) }; return n }
// return count
func countProgram() *Program {
	top := NewScope(nil)
	countReg := top.DeclareVariable("count")

	fnScope := NewScope(top)
	n := fnScope.DeclareParameter("n")
	self, _ := fnScope.Resolve("count", true)

	lambda := &Lambda{
		Name:  "count",
		Scope: fnScope,
		Body: &Block{Stmts: []Node{
			&If{
				Cond: &Binary{
					Op: OpLt,
					L:  &Literal{Value: int64(0)},
					R:  &Ident{Name: "n", Register: n},
				},
				Then: &Block{Stmts: []Node{
					&Return{Value: &Call{
						Callee: &Ident{Name: "count", Register: self, Captured: true},
						Args: []Node{&Binary{
							Op: OpSub,
							L:  &Ident{Name: "n", Register: n},
							R:  &Literal{Value: int64(1)},
						}},
					}},
				}},
			},
			&Return{Value: &Ident{Name: "n", Register: n}},
		}},
	}

	return &Program{
		SourceName: "count.fen",
		Top: &Lambda{
			Top:   true,
			Scope: top,
			Body: &Block{Stmts: []Node{
				&VarDecl{Name: "count", Register: countReg, Value: lambda},
				&Return{Value: &Ident{Name: "count", Register: countReg}},
			}},
		},
	}
}

func TestClosureCurry(t *testing.T) {
	rt := NewRuntime()
	ctx := context.Background()

	v, err := rt.Eval(ctx, addProgram(), nil)
	if err != nil {
		t.Fatal(err)
	}
	add, ok := v.(*Closure)
	if !ok {
		t.Fatalf("expected closure, got %T", v)
	}

	// currying fixes the first argument
	add5 := add.Curry(int64(5))
	res, err := add5.Execute(ctx, nil, int64(3))
	if err != nil {
		t.Fatal(err)
	}
	if res != int64(8) {
		t.Fatalf("got %v", res)
	}

	// the original closure is untouched
	if ps := add.Parameters(); len(ps) != 2 {
		t.Fatalf("got %v", ps)
	}
	if ps := add5.Parameters(); len(ps) != 1 || ps[0] != "b" {
		t.Fatalf("got %v", ps)
	}

	// currying twice equals currying once with both values
	res, err = add.Curry(int64(5)).Curry(int64(3)).Execute(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res != int64(8) {
		t.Fatalf("got %v", res)
	}
	res, err = add.Curry(int64(5), int64(3)).Execute(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res != int64(8) {
		t.Fatalf("got %v", res)
	}

	// a direct call still works
	res, err = add.Execute(ctx, nil, int64(2), int64(2))
	if err != nil {
		t.Fatal(err)
	}
	if res != int64(4) {
		t.Fatalf("got %v", res)
	}
}

func TestClosureSelfRecursion(t *testing.T) {
	rt := NewRuntime()
	ctx := context.Background()

	v, err := rt.Eval(ctx, countProgram(), nil)
	if err != nil {
		t.Fatal(err)
	}
	count, ok := v.(*Closure)
	if !ok {
		t.Fatalf("expected closure, got %T", v)
	}

	res, err := count.Execute(ctx, nil, int64(5))
	if err != nil {
		t.Fatal(err)
	}
	if res != int64(0) {
		t.Fatalf("got %v", res)
	}
}

func TestClosureSetCaptured(t *testing.T) {
	top := NewScope(nil)
	fReg := top.DeclareVariable("f")
	fnScope := NewScope(top)
	self, _ := fnScope.Resolve("f", true)
	lambda := &Lambda{Name: "f", Scope: fnScope, Body: &Block{}}

	rt := NewRuntime()
	c := newClosure(rt, lambda, top.CreateFrame(nil), rt.Options)

	// the register is unbound until the definition site writes through
	if c.frame.Has(self) {
		t.Fatal("capture must start unbound")
	}
	c.SetCaptured(fReg, c)
	if got := c.frame.Get(self); got != any(c) {
		t.Fatalf("got %v", got)
	}

	// registers the lambda does not capture are ignored
	other := top.DeclareVariable("other")
	c.SetCaptured(other, "x")
	if got := c.frame.Get(self); got != any(c) {
		t.Fatal("foreign register must not disturb the capture")
	}
}

func TestClosureEquality(t *testing.T) {
	rt := NewRuntime()
	ctx := context.Background()
	prog := addProgram()

	v1, err := rt.Eval(ctx, prog, nil)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := rt.Eval(ctx, prog, nil)
	if err != nil {
		t.Fatal(err)
	}
	c1 := v1.(*Closure)
	c2 := v2.(*Closure)

	// same lambda, equal frames
	if !c1.Equals(c2) {
		t.Fatal("expected equal closures")
	}
	if c1.Hash() != c2.Hash() {
		t.Fatal("equal closures must hash equal")
	}

	// currying changes the frame
	if c1.Curry(int64(5)).Equals(c2) {
		t.Fatal("curried closure must differ")
	}
	if !c1.Curry(int64(5)).Equals(c2.Curry(int64(5))) {
		t.Fatal("same curry must stay equal")
	}

	// a different runtime breaks equality even for the same lambda
	rt2 := NewRuntime()
	v3, err := rt2.Eval(ctx, prog, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c1.Equals(v3.(*Closure)) {
		t.Fatal("closures of different runtimes must differ")
	}
}

func TestClosureEqualityCycleSafe(t *testing.T) {
	rt := NewRuntime()
	ctx := context.Background()
	prog := countProgram()

	v1, err := rt.Eval(ctx, prog, nil)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := rt.Eval(ctx, prog, nil)
	if err != nil {
		t.Fatal(err)
	}
	c1 := v1.(*Closure)
	c2 := v2.(*Closure)

	// each closure holds itself in its own frame; comparison must not recurse
	// forever and must treat the self-reference as matching
	if !c1.Equals(c1) {
		t.Fatal("closure must equal itself")
	}
	if !c1.Equals(c2) {
		t.Fatal("structurally identical self-recursive closures must be equal")
	}
	if c1.Hash() != c2.Hash() {
		t.Fatal("hashes of equal self-recursive closures must match")
	}
}

func TestClosureEqualityCyclicCapture(t *testing.T) {
	rt := NewRuntime()
	ctx := context.Background()
	prog := addProgram()

	v1, err := rt.Eval(ctx, prog, nil)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := rt.Eval(ctx, prog, nil)
	if err != nil {
		t.Fatal(err)
	}

	l1 := NewList(int64(1))
	l1.Elements[0] = l1
	l2 := NewList(int64(1))
	l2.Elements[0] = l2

	// a cyclic list bound into the frame must not send the comparison
	// around the cycle forever
	c1 := v1.(*Closure).Curry(l1)
	c2 := v2.(*Closure).Curry(l2)
	if !c1.Equals(c1) {
		t.Fatal("closure over a cyclic list must equal itself")
	}
	if !c1.Equals(c2) {
		t.Fatal("closures over equal cyclic lists must be equal")
	}
	if c1.Hash() != c2.Hash() {
		t.Fatal("hashes of closures over equal cyclic lists must match")
	}

	c3 := v2.(*Closure).Curry(NewList(int64(2)))
	if c1.Equals(c3) {
		t.Fatal("closures over different lists must differ")
	}
}
