package fenvm

import (
	"context"
	"io"
	"os"
)

// Runtime owns what outlives a single evaluation: the host natives, the
// default options and the output streams. It also anchors closure identity;
// closures from different runtimes never compare equal.
type Runtime struct {
	Options Options
	Natives map[string]NativeFunc
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewRuntime returns a runtime with lexical block scoping on and no caps.
func NewRuntime() *Runtime {
	return &Runtime{
		Options: Options{
			Lexical: true,
		},
		Natives: make(map[string]NativeFunc),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Register adds a host function under name, replacing any previous one.
func (r *Runtime) Register(name string, fn func(ip *Interp, args []any) (any, error)) {
	r.Natives[name] = NativeFunc{
		Name: name,
		Func: fn,
	}
}

// Rebind fills in the Func of natives that arrived nameless through gob
// decoding. Names the runtime does not know stay missing and fail on call.
func (r *Runtime) Rebind(n NativeFunc) NativeFunc {
	if !n.IsMissing() {
		return n
	}
	if bound, ok := r.Natives[n.Name]; ok {
		return bound
	}
	return n
}

// Eval runs a compiled program under the runtime's default options. vars
// may be nil.
func (r *Runtime) Eval(ctx context.Context, prog *Program, vars Context) (any, error) {
	ip := newInterp(ctx, r, vars)
	return ip.run(prog.Top, prog.Top.Scope.CreateFrame(nil), r.Options)
}

// EvalExports runs the program and also returns its top-level bindings by
// name. Module loading reads a script's definitions out of this map.
// Registers the parser renamed internally are skipped.
func (r *Runtime) EvalExports(ctx context.Context, prog *Program, vars Context) (any, map[string]any, error) {
	ip := newInterp(ctx, r, vars)
	frame := prog.Top.Scope.CreateFrame(nil)
	v, err := ip.run(prog.Top, frame, r.Options)
	if err != nil {
		return nil, nil, err
	}
	exports := make(map[string]any)
	for register, name := range prog.Top.Scope.Names() {
		if IsAliasName(name) {
			continue
		}
		if frame.Has(register) {
			exports[name] = frame.Get(register)
		}
	}
	return v, exports, nil
}
