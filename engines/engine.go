package engines

import (
	"context"
	"os"
	"sync"

	"github.com/fenlang/fen/caches"
	"github.com/fenlang/fen/fenlang"
	"github.com/fenlang/fen/fenvm"
	"github.com/fenlang/fen/logs"
	"github.com/fenlang/fen/syncs"
)

// Engine ties the compiler and the runtime together behind one facade:
// compile with caching, evaluate with span logging, fan batches out over a
// bounded number of goroutines. Compiled programs are immutable and shared.
type Engine struct {
	rt       *fenvm.Runtime
	programs *caches.Programs
	logger   logs.Logger
	newSpan  logs.NewSpan
	sem      syncs.Semaphore
}

func (e *Engine) Runtime() *fenvm.Runtime {
	return e.rt
}

// Register adds a host function to the engine's runtime.
func (e *Engine) Register(name string, fn func(ip *fenvm.Interp, args []any) (any, error)) {
	e.rt.Register(name, fn)
}

// CompileString compiles src under name, serving repeats from cache.
func (e *Engine) CompileString(name string, src string) (*fenvm.Program, error) {
	return e.programs.Load(name+"\x00"+src, func() (*fenvm.Program, error) {
		return fenlang.Compile(name, src)
	})
}

// CompileFile compiles the script at path.
func (e *Engine) CompileFile(path string) (*fenvm.Program, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.CompileString(path, string(content))
}

// Eval runs a compiled program under a fresh span.
func (e *Engine) Eval(ctx context.Context, prog *fenvm.Program, vars fenvm.Context) (any, error) {
	ctx, _ = e.newSpan(ctx, "")
	e.logger.DebugContext(ctx, "eval",
		"source", prog.SourceName,
	)
	v, err := e.rt.Eval(ctx, prog, vars)
	if err != nil {
		return nil, logs.WrapSpan(ctx, err)
	}
	return v, nil
}

// EvalString compiles and runs src. Runtime errors render with the
// offending source line.
func (e *Engine) EvalString(ctx context.Context, name string, src string, vars fenvm.Context) (any, error) {
	prog, err := e.CompileString(name, src)
	if err != nil {
		return nil, err
	}
	v, err := e.Eval(ctx, prog, vars)
	if err != nil {
		return nil, fenlang.WithSource(err, fenlang.NewSource(name, src))
	}
	return v, nil
}

// EvalExports is EvalString returning the script's top-level bindings as
// well. The REPL keeps its session state through this.
func (e *Engine) EvalExports(ctx context.Context, name string, src string, vars fenvm.Context) (any, map[string]any, error) {
	prog, err := e.CompileString(name, src)
	if err != nil {
		return nil, nil, err
	}
	ctx, _ = e.newSpan(ctx, "")
	v, exports, err := e.rt.EvalExports(ctx, prog, vars)
	if err != nil {
		err = fenlang.WithSource(err, fenlang.NewSource(name, src))
		return nil, nil, logs.WrapSpan(ctx, err)
	}
	return v, exports, nil
}

// EvalFile compiles and runs the script at path.
func (e *Engine) EvalFile(ctx context.Context, path string, vars fenvm.Context) (any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.EvalString(ctx, path, string(content), vars)
}

// Unit is one script in a batch evaluation.
type Unit struct {
	Name   string
	Source string
	Vars   fenvm.Context
}

// Result pairs a unit with its outcome.
type Result struct {
	Name  string
	Value any
	Err   error
}

// EvalAll evaluates units in parallel, at most Concurrency at once.
// Results keep unit order.
func (e *Engine) EvalAll(ctx context.Context, units []Unit) []Result {
	results := make([]Result, len(units))
	var wg sync.WaitGroup
	for i, unit := range units {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.sem.Acquire()
			defer e.sem.Release()
			v, err := e.EvalString(ctx, unit.Name, unit.Source, unit.Vars)
			results[i] = Result{
				Name:  unit.Name,
				Value: v,
				Err:   err,
			}
		}()
	}
	wg.Wait()
	return results
}
