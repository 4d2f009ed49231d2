package fenvm

import "testing"

func TestLexicalDeclare(t *testing.T) {
	s := NewScope(nil)
	x := s.DeclareVariable("x")
	y := s.DeclareVariable("y")
	f := s.CreateFrame(nil)

	body := NewLexicalFrame(nil, f)
	if !body.Declare(x, false) {
		t.Fatal("first declaration")
	}
	if body.Declare(x, false) {
		t.Fatal("same block redeclaration must fail")
	}

	// a nested block sees declarations of the whole chain
	inner := NewLexicalFrame(body, f)
	if inner.Declare(x, false) {
		t.Fatal("redeclaration across the chain must fail")
	}
	if !inner.Declare(y, false) {
		t.Fatal("a fresh register declares fine")
	}

	// sibling blocks do not see each other
	inner.Pop()
	sibling := NewLexicalFrame(body, f)
	if !sibling.Declare(y, false) {
		t.Fatal("popped declarations must not linger")
	}
}

func TestLexicalDefineArgs(t *testing.T) {
	s := NewScope(nil)
	s.DeclareParameter("a")
	s.DeclareParameter("b")
	x := s.DeclareVariable("x")
	f := s.CreateFrame(nil)

	body := NewLexicalFrame(nil, f).DefineArgs()
	if body.Declare(0, false) {
		t.Fatal("parameter register must already be declared")
	}
	if body.Declare(1, false) {
		t.Fatal("parameter register must already be declared")
	}
	if !body.Declare(x, false) {
		t.Fatal("locals stay declarable")
	}
}

func TestLexicalPop(t *testing.T) {
	s := NewScope(nil)
	x := s.DeclareVariable("x")
	f := s.CreateFrame(nil)

	// declarations fall out of scope on pop
	block := NewLexicalFrame(nil, f)
	block.Declare(x, false)
	f.Set(x, int64(2))
	block.Pop()
	if f.Has(x) {
		t.Fatal("popped register must be out of scope")
	}
}

func TestLexicalPopRestoresCaptured(t *testing.T) {
	outer := NewScope(nil)
	xOuter := outer.DeclareVariable("x")
	inner := NewScope(outer)
	x, _ := inner.Resolve("x", true)

	// prior value comes back
	caller := outer.CreateFrame(nil)
	caller.Set(xOuter, int64(1))
	f := inner.CreateFrame(caller)
	body := NewLexicalFrame(nil, f)
	block := NewLexicalFrame(body, f)
	if !block.Declare(x, true) {
		t.Fatal("shadowing declaration")
	}
	f.Set(x, int64(2))
	block.Pop()
	if !f.Has(x) || f.Get(x) != int64(1) {
		t.Fatalf("expected 1, got %v", f.Get(x))
	}

	// a prior nil comes back as nil, not as unbound
	caller.Set(xOuter, nil)
	f = inner.CreateFrame(caller)
	block = NewLexicalFrame(nil, f)
	block.Declare(x, true)
	f.Set(x, int64(2))
	block.Pop()
	if !f.Has(x) || f.Get(x) != nil {
		t.Fatal("expected explicit nil back")
	}

	// a prior unbound comes back unbound
	f = inner.CreateFrame(nil)
	block = NewLexicalFrame(nil, f)
	block.Declare(x, true)
	f.Set(x, int64(2))
	block.Pop()
	if f.Has(x) {
		t.Fatal("expected unbound back")
	}
}

func TestLexicalUndoOrder(t *testing.T) {
	outer := NewScope(nil)
	xOuter := outer.DeclareVariable("x")
	yOuter := outer.DeclareVariable("y")
	inner := NewScope(outer)
	x, _ := inner.Resolve("x", true)
	y, _ := inner.Resolve("y", true)

	caller := outer.CreateFrame(nil)
	caller.Set(xOuter, int64(10))
	caller.Set(yOuter, int64(20))
	f := inner.CreateFrame(caller)

	block := NewLexicalFrame(nil, f)
	block.Declare(x, true)
	f.Set(x, int64(1))
	block.Declare(y, true)
	f.Set(y, int64(2))
	block.Pop()

	if f.Get(x) != int64(10) || f.Get(y) != int64(20) {
		t.Fatalf("got %v %v", f.Get(x), f.Get(y))
	}
}
