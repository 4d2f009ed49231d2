package fenvm

import "testing"

func TestScopeDeclare(t *testing.T) {
	s := NewScope(nil)

	// parameters form the register prefix
	if r := s.DeclareParameter("a"); r != 0 {
		t.Fatalf("got %v", r)
	}
	if r := s.DeclareParameter("b"); r != 1 {
		t.Fatalf("got %v", r)
	}

	// declaring the same parameter again returns the same register
	if r := s.DeclareParameter("a"); r != 0 {
		t.Fatalf("got %v", r)
	}
	if s.ParameterCount() != 2 {
		t.Fatalf("got %v", s.ParameterCount())
	}

	// locals continue the numbering
	if r := s.DeclareVariable("x"); r != 2 {
		t.Fatalf("got %v", r)
	}
	if r := s.DeclareVariable("x"); r != 2 {
		t.Fatalf("duplicate local, got %v", r)
	}
	if s.RegisterCount() != 3 {
		t.Fatalf("got %v", s.RegisterCount())
	}

	// resolution matches declaration order
	if r, ok := s.Resolve("b", false); !ok || r != 1 {
		t.Fatalf("got %v %v", r, ok)
	}
}

func TestScopeParameterAfterLocal(t *testing.T) {
	s := NewScope(nil)
	s.DeclareParameter("a")
	s.DeclareVariable("x")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	s.DeclareParameter("late")
}

func TestScopeResolveHoist(t *testing.T) {
	outer := NewScope(nil)
	xOuter := outer.DeclareVariable("x")
	inner := NewScope(outer)

	// without hoisting a parent name is not visible
	if _, ok := inner.Resolve("x", false); ok {
		t.Fatal("should not resolve without hoisting")
	}

	// hoisting allocates a local register mirroring the parent's
	xInner, ok := inner.Resolve("x", true)
	if !ok {
		t.Fatal("expected resolve")
	}
	if !inner.IsCaptured(xInner) {
		t.Fatal("expected captured register")
	}
	if local, ok := inner.CapturedBy(xOuter); !ok || local != xInner {
		t.Fatalf("got %v %v", local, ok)
	}

	// resolving again reuses the register
	again, ok := inner.Resolve("x", true)
	if !ok || again != xInner {
		t.Fatalf("got %v %v", again, ok)
	}

	// one hop only: a grandparent name stays invisible
	grandchild := NewScope(inner)
	if _, ok := grandchild.Resolve("y", true); ok {
		t.Fatal("no such name anywhere")
	}
	outer.DeclareVariable("deep")
	if _, ok := grandchild.Resolve("deep", true); ok {
		t.Fatal("two hops must not resolve in one call")
	}

	// the chain forms when the middle scope resolves first
	if _, ok := inner.Resolve("deep", true); !ok {
		t.Fatal("middle hop")
	}
	if _, ok := grandchild.Resolve("deep", true); !ok {
		t.Fatal("inner hop after middle resolved")
	}
}

func TestScopeCreateFrame(t *testing.T) {
	outer := NewScope(nil)
	xOuter := outer.DeclareVariable("x")
	yOuter := outer.DeclareVariable("y")

	inner := NewScope(outer)
	inner.DeclareParameter("p")
	xInner, _ := inner.Resolve("x", true)
	local := inner.DeclareVariable("l")

	// no caller: hoisted registers stay unbound
	f := inner.CreateFrame(nil)
	if f.Has(xInner) {
		t.Fatal("hoisted register must be unbound without a caller")
	}

	// caller present: exactly the hoisted cells are copied
	caller := outer.CreateFrame(nil)
	caller.Set(xOuter, int64(42))
	caller.Set(yOuter, "unrelated")
	f = inner.CreateFrame(caller)
	if !f.Has(xInner) || f.Get(xInner) != int64(42) {
		t.Fatalf("got %v", f.Get(xInner))
	}
	if f.Has(0) {
		t.Fatal("parameter must start unbound")
	}
	if f.Has(local) {
		t.Fatal("local must start unbound")
	}

	// an unbound hoist source stays unbound in the copy
	caller2 := outer.CreateFrame(nil)
	f = inner.CreateFrame(caller2)
	if f.Has(xInner) {
		t.Fatal("unbound source must copy as unbound")
	}
}

func TestScopeParameters(t *testing.T) {
	s := NewScope(nil)
	s.DeclareParameter("a")
	s.DeclareParameter("b")
	s.DeclareParameter("c")
	s.DeclareVariable("x")

	ps := s.Parameters(0)
	if len(ps) != 3 || ps[0] != "a" || ps[2] != "c" {
		t.Fatalf("got %v", ps)
	}
	ps = s.Parameters(2)
	if len(ps) != 1 || ps[0] != "c" {
		t.Fatalf("got %v", ps)
	}
	if ps = s.Parameters(3); ps != nil {
		t.Fatalf("got %v", ps)
	}
}
