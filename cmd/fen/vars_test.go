package main

import (
	"testing"

	"github.com/fenlang/fen/fenvm"
)

func TestParseVars(t *testing.T) {
	vars := parseVars([]string{
		"n=42",
		"pi=3.5",
		"name=world",
		"on=true",
		"off=false",
		"nothing=null",
		"flag",
		"eq=a=b",
	})

	cases := map[string]any{
		"n":       int64(42),
		"pi":      3.5,
		"name":    "world",
		"on":      true,
		"off":     false,
		"nothing": nil,
		"flag":    true,
		"eq":      "a=b",
	}
	for name, expected := range cases {
		v, ok := vars.Get(name)
		if !ok {
			t.Fatalf("%s missing", name)
		}
		if !fenvm.Equal(v, expected) {
			t.Fatalf("%s: expected %v, got %v", name, expected, v)
		}
	}
}

func TestScriptArgs(t *testing.T) {
	l := scriptArgs([]string{"a", "b"})
	if len(l.Elements) != 2 || l.Elements[0] != "a" || l.Elements[1] != "b" {
		t.Fatalf("got %v", l.Elements)
	}
	if len(scriptArgs(nil).Elements) != 0 {
		t.Fatal()
	}
}
