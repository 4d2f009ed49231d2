package repl

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fenlang/fen/debugs"
	"github.com/fenlang/fen/engines"
	"github.com/fenlang/fen/fenvm"
	"github.com/reusee/dscope"
)

// Session holds what lives across inputs: the engine, the tap, and the
// variables earlier inputs defined. Each input compiles as its own program,
// so register bindings end with it; continuity comes from exporting the
// input's top-level bindings into vars, which the next input reads back as
// host variables.
type Session struct {
	engine *engines.Engine
	read   ReadInput
	Tap    dscope.Inject[debugs.Tap]
	out    io.Writer
	vars   fenvm.MapContext
	serial int
}

// Vars returns the session variables accumulated so far.
func (s *Session) Vars() fenvm.MapContext {
	return s.vars
}

// Prompt reads one input and dispatches it: slash commands act on the
// session, everything else evaluates.
func (s *Session) Prompt(ctx context.Context) (Phase, error) {
	input, err := s.read(">> ")
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	if input == "" {
		return s.Prompt, nil
	}

	switch input {

	case "/quit", "/exit":
		return nil, nil

	case "/vars":
		for _, name := range slices.Sorted(maps.Keys(s.vars)) {
			fmt.Fprintf(s.out, "%s = %s\n", name, fenvm.Display(s.vars[name]))
		}
		return s.Prompt, nil

	case "/debug":
		s.Tap()(ctx, "tap on session", map[string]any{
			"vars":   map[string]any(s.vars),
			"serial": s.serial,
		})
		return s.Prompt, nil

	}

	return s.evalPhase(input), nil
}

// evalPhase evaluates one input and returns to the prompt. Evaluation
// errors print and the session goes on.
func (s *Session) evalPhase(input string) Phase {
	return func(ctx context.Context) (Phase, error) {
		s.serial++
		name := fmt.Sprintf("repl-%d", s.serial)

		v, exports, err := s.engine.EvalExports(ctx, name, input, s.vars)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return s.Prompt, nil
		}
		maps.Copy(s.vars, exports)

		if v != nil {
			fmt.Fprintln(s.out, fenvm.Display(v))
		}
		return s.Prompt, nil
	}
}
