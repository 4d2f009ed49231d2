package fenvm

import "testing"

func TestEqual(t *testing.T) {
	// numbers compare across int and float
	if !Equal(int64(1), float64(1)) {
		t.Fatal("1 == 1.0")
	}
	if Equal(int64(1), float64(1.5)) {
		t.Fatal("1 != 1.5")
	}
	if !Equal(nil, nil) {
		t.Fatal("nil == nil")
	}
	if Equal(nil, int64(0)) {
		t.Fatal("nil != 0")
	}
	if Equal(int64(0), false) {
		t.Fatal("0 != false")
	}

	// lists compare by element
	if !Equal(NewList(int64(1), "a"), NewList(float64(1), "a")) {
		t.Fatal("lists with equal elements")
	}
	if Equal(NewList(int64(1)), NewList(int64(1), int64(2))) {
		t.Fatal("lists of different length")
	}

	// maps compare by key and value
	a := map[string]any{"x": int64(1), "y": NewList("z")}
	b := map[string]any{"y": NewList("z"), "x": float64(1)}
	if !Equal(a, b) {
		t.Fatal("equal maps")
	}
	b["x"] = int64(2)
	if Equal(a, b) {
		t.Fatal("different maps")
	}
}

func TestEqualCycles(t *testing.T) {
	// a list holding itself equals itself
	l := NewList(int64(1))
	l.Elements[0] = l
	if !Equal(l, l) {
		t.Fatal("cyclic list must equal itself")
	}

	// two distinct self-referential lists of the same shape
	l2 := NewList(int64(1))
	l2.Elements[0] = l2
	if !Equal(l, l2) {
		t.Fatal("structurally identical cyclic lists must be equal")
	}

	// mutually referential lists
	a := NewList(int64(1), nil)
	b := NewList(int64(1), nil)
	a.Elements[1] = b
	b.Elements[1] = a
	if !Equal(a, b) {
		t.Fatal("mutually cyclic lists must be equal")
	}
	c := NewList(int64(2), nil)
	c.Elements[1] = c
	if Equal(a, c) {
		t.Fatal("cyclic lists with different elements must differ")
	}

	// maps that contain themselves
	m1 := map[string]any{"n": int64(1)}
	m1["self"] = m1
	m2 := map[string]any{"n": int64(1)}
	m2["self"] = m2
	if !Equal(m1, m2) {
		t.Fatal("structurally identical cyclic maps must be equal")
	}
	m3 := map[string]any{"n": int64(2)}
	m3["self"] = m3
	if Equal(m1, m3) {
		t.Fatal("cyclic maps with different entries must differ")
	}
}

func TestHashCycles(t *testing.T) {
	l1 := NewList(int64(1))
	l1.Elements[0] = l1
	l2 := NewList(int64(1))
	l2.Elements[0] = l2
	if Hash(l1) != Hash(l2) {
		t.Fatal("equal cyclic lists must hash equal")
	}

	m1 := map[string]any{"n": int64(1)}
	m1["self"] = m1
	m2 := map[string]any{"n": int64(1)}
	m2["self"] = m2
	if Hash(m1) != Hash(m2) {
		t.Fatal("equal cyclic maps must hash equal")
	}

	// a cycle through a map inside a list still terminates
	inner := map[string]any{}
	outer := NewList(inner)
	inner["up"] = outer
	Hash(outer)

	// a sublist referenced twice hashes like two equal copies
	shared := NewList(int64(1))
	twice := NewList(shared, shared)
	copies := NewList(NewList(int64(1)), NewList(int64(1)))
	if !Equal(twice, copies) {
		t.Fatal("shared and copied sublists must be equal")
	}
	if Hash(twice) != Hash(copies) {
		t.Fatal("shared and copied sublists must hash equal")
	}
}

func TestHashConsistency(t *testing.T) {
	pairs := [][2]any{
		{int64(1), float64(1)},
		{float64(0), -0.0},
		{"ab", "ab"},
		{NewList(int64(1), "a"), NewList(float64(1), "a")},
		{
			map[string]any{"x": int64(1), "y": "z"},
			map[string]any{"y": "z", "x": float64(1)},
		},
	}
	for _, p := range pairs {
		if !Equal(p[0], p[1]) {
			t.Fatalf("expected equal: %v %v", p[0], p[1])
		}
		if Hash(p[0]) != Hash(p[1]) {
			t.Fatalf("equal values must hash equal: %v %v", p[0], p[1])
		}
	}
	if Hash("a") == Hash("b") {
		t.Fatal("distinct strings should not collide here")
	}
}
