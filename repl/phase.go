package repl

import (
	"context"

	"github.com/fenlang/fen/procs"
)

// Phase is one step of an interactive session: handle one input, return the
// phase that handles the next. A nil next phase ends the session.
type Phase func(ctx context.Context) (Phase, error)

var _ procs.Proc[context.Context] = Phase(nil)

// Run implements procs.Proc, so a session is a resumable step machine.
func (p Phase) Run(ctx context.Context) (procs.Proc[context.Context], error) {
	next, err := p(ctx)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, nil
	}
	return next, nil
}
