package fenvm

import "testing"

func TestFrameBinding(t *testing.T) {
	s := NewScope(nil)
	x := s.DeclareVariable("x")
	f := s.CreateFrame(nil)

	if f.Has(x) {
		t.Fatal("fresh register must be unbound")
	}
	if f.Get(x) != nil {
		t.Fatal("unbound reads as nil")
	}

	f.Set(x, int64(7))
	if !f.Has(x) || f.Get(x) != int64(7) {
		t.Fatalf("got %v", f.Get(x))
	}

	// explicit nil is a value
	f.Set(x, nil)
	if !f.Has(x) {
		t.Fatal("nil is a bound value")
	}

	// leaving scope is not the same as holding nil
	f.undefine(x)
	if f.Has(x) {
		t.Fatal("undefined register must not report a value")
	}
}

func TestFrameAssign(t *testing.T) {
	s := NewScope(nil)
	s.DeclareParameter("a")
	s.DeclareParameter("b")
	s.DeclareParameter("c")
	local := s.DeclareVariable("l")

	base := s.CreateFrame(nil)

	// partial binding advances the cursor and nil-fills the rest
	f1 := base.Assign(int64(1))
	if f1.Bound() != 1 {
		t.Fatalf("got %v", f1.Bound())
	}
	if f1.Get(0) != int64(1) {
		t.Fatalf("got %v", f1.Get(0))
	}
	if !f1.Has(1) || f1.Get(1) != nil {
		t.Fatal("unfilled parameter must hold explicit nil")
	}
	if !f1.Has(2) || f1.Get(2) != nil {
		t.Fatal("unfilled parameter must hold explicit nil")
	}
	if f1.Has(local) {
		t.Fatal("locals are not parameters")
	}

	// the original frame is untouched
	if base.Bound() != 0 || base.Has(0) {
		t.Fatal("assign must copy")
	}

	// binding in two steps equals binding at once
	f2 := f1.Assign(int64(2), int64(3))
	g := base.Assign(int64(1), int64(2), int64(3))
	if f2.Bound() != 3 || g.Bound() != 3 {
		t.Fatalf("got %v %v", f2.Bound(), g.Bound())
	}
	for r := 0; r < 3; r++ {
		if f2.Get(r) != g.Get(r) {
			t.Fatalf("register %d: %v vs %v", r, f2.Get(r), g.Get(r))
		}
	}

	// extra values are dropped
	f3 := base.Assign(int64(1), int64(2), int64(3), int64(4), int64(5))
	if f3.Bound() != 3 {
		t.Fatalf("got %v", f3.Bound())
	}
	if f3.Has(local) {
		t.Fatal("extras must not spill into locals")
	}

	// no values, no copy
	if base.Assign() != base {
		t.Fatal("empty assign should return the frame itself")
	}
}
