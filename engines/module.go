package engines

import (
	"runtime"

	"github.com/fenlang/fen/caches"
	"github.com/fenlang/fen/fenconfigs"
	"github.com/fenlang/fen/fenvm"
	"github.com/fenlang/fen/logs"
	"github.com/fenlang/fen/natives"
	"github.com/fenlang/fen/syncs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs fenconfigs.Module
	Logs    logs.Module
	Natives natives.Module
}

func (Module) EvalOptions(
	maxDepth fenconfigs.MaxCallDepth,
	maxSteps fenconfigs.MaxSteps,
	strict fenconfigs.StrictMode,
	lexical fenconfigs.LexicalMode,
) fenvm.Options {
	return fenvm.Options{
		Strict:   bool(strict),
		Lexical:  bool(lexical),
		MaxDepth: int(maxDepth),
		MaxSteps: int(maxSteps),
	}
}

func (Module) Runtime(
	options fenvm.Options,
	registry natives.Registry,
) *fenvm.Runtime {
	rt := fenvm.NewRuntime()
	rt.Options = options
	registry.Install(rt)
	return rt
}

// Concurrency bounds parallel evaluations in EvalAll.
type Concurrency int

func (Module) Concurrency() Concurrency {
	return Concurrency(runtime.NumCPU())
}

func (Module) Engine(
	rt *fenvm.Runtime,
	logger logs.Logger,
	newSpan logs.NewSpan,
	concurrency Concurrency,
) *Engine {
	return &Engine{
		rt:       rt,
		programs: caches.NewPrograms(),
		logger:   logger,
		newSpan:  newSpan,
		sem:      syncs.NewSemaphore(int(concurrency)),
	}
}
