package fenvm

import (
	"bytes"
	"context"
	"testing"
)

func TestProgramGob(t *testing.T) {
	// var x = 1; var f = fn() { return x }; return f()
	top := NewScope(nil)
	xTop := top.DeclareVariable("x")
	fTop := top.DeclareVariable("f")
	fnScope := NewScope(top)
	xc, _ := fnScope.Resolve("x", true)

	prog := &Program{
		SourceName: "capture.fen",
		Top: &Lambda{
			Top:   true,
			Scope: top,
			Body: &Block{Stmts: []Node{
				&VarDecl{Name: "x", Register: xTop, Value: &Literal{Value: int64(1)}},
				&VarDecl{Name: "f", Register: fTop, Value: &Lambda{
					Scope: fnScope,
					Body: &Block{Stmts: []Node{
						&Return{Value: &Ident{Name: "x", Register: xc, Captured: true}},
					}},
				}},
				&Return{Value: &Call{Callee: &Ident{Name: "f", Register: fTop}}},
			}},
		},
	}

	var buf bytes.Buffer
	if err := prog.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeProgram(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.SourceName != "capture.fen" {
		t.Fatalf("got %v", decoded.SourceName)
	}
	scope := decoded.Top.Scope
	if scope.RegisterCount() != 2 {
		t.Fatalf("got %v", scope.RegisterCount())
	}
	if r, ok := scope.RegisterOf("f"); !ok || r != fTop {
		t.Fatalf("got %v %v", r, ok)
	}

	// the capture map survives, so the decoded program still closes over x
	rt := NewRuntime()
	v, err := rt.Eval(context.Background(), decoded, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(1) {
		t.Fatalf("expected 1, got %v", v)
	}
}

func TestNativeFuncGob(t *testing.T) {
	n := NativeFunc{
		Name: "print",
		Func: func(ip *Interp, args []any) (any, error) {
			return nil, nil
		},
	}
	data, err := n.GobEncode()
	if err != nil {
		t.Fatal(err)
	}
	var decoded NativeFunc
	if err := decoded.GobDecode(data); err != nil {
		t.Fatal(err)
	}
	if decoded.Name != "print" {
		t.Fatalf("got %v", decoded.Name)
	}
	if !decoded.IsMissing() {
		t.Fatal("decoded native must be missing until rebound")
	}
	if _, err := decoded.Call(nil, nil); err == nil {
		t.Fatal("expected error")
	}

	// the runtime rebinds missing natives by name
	rt := NewRuntime()
	rt.Register("print", func(ip *Interp, args []any) (any, error) {
		return "ok", nil
	})
	rebound := rt.Rebind(decoded)
	if rebound.IsMissing() {
		t.Fatal("expected rebound native")
	}
	v, err := rebound.Call(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v != "ok" {
		t.Fatalf("got %v", v)
	}
}
