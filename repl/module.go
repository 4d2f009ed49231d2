package repl

import (
	"context"
	"maps"

	"github.com/fenlang/fen/debugs"
	"github.com/fenlang/fen/engines"
	"github.com/fenlang/fen/fenconfigs"
	"github.com/fenlang/fen/fenvm"
	"github.com/fenlang/fen/procs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Engines engines.Module
	Debugs  debugs.Module
}

// NewSession starts a session seeded with the bindings of the config
// scripts, writing to the engine runtime's stdout.
type NewSession func() *Session

func (Module) NewSession(
	engine *engines.Engine,
	read ReadInput,
	inject dscope.InjectStruct,
	configVars fenconfigs.ConfigFenVars,
) NewSession {
	return func() *Session {
		vars := fenvm.MapContext{}
		maps.Copy(vars, configVars)
		session := &Session{
			engine: engine,
			read:   read,
			out:    engine.Runtime().Stdout,
			vars:   vars,
		}
		inject(session)
		return session
	}
}

// Run drives a fresh session phase by phase until it ends.
type Run func(ctx context.Context) error

func (Module) Run(
	newSession NewSession,
) Run {
	return func(ctx context.Context) error {
		session := newSession()
		var proc procs.Proc[context.Context] = Phase(session.Prompt)
		for proc != nil {
			var err error
			proc, err = proc.Run(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	}
}
