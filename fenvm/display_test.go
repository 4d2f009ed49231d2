package fenvm

import "testing"

func TestDisplay(t *testing.T) {
	run := func(v any, expected string) {
		t.Helper()
		if got := Display(v); got != expected {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	}

	run(nil, "null")
	run(true, "true")
	run(int64(42), "42")
	run(float64(2.5), "2.5")
	run("hello", "hello")
	run(NewList(int64(1), "a", nil), `[1, "a", null]`)
	run(map[string]any{
		"b": int64(2),
		"a": "x",
	}, `{a: "x", b: 2}`)
	run(NewList(NewList(int64(1))), "[[1]]")
}

func TestDisplayCycle(t *testing.T) {
	l := NewList(int64(1))
	l.Elements = append(l.Elements, l)
	if got := Display(l); got != "[1, [...]]" {
		t.Fatalf("got %q", got)
	}

	m := map[string]any{}
	m["self"] = m
	if got := Display(m); got != "{self: {...}}" {
		t.Fatalf("got %q", got)
	}
}
