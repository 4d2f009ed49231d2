package natives

import (
	"fmt"

	"github.com/fenlang/fen/fenvm"
	"github.com/fenlang/fen/logs"
	"github.com/fenlang/fen/modlib"
	"github.com/fenlang/fen/nets"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs   logs.Module
	Nets   nets.Module
	Modlib modlib.Module
}

// Registry is the set of host functions an engine installs into its
// runtime.
type Registry map[string]func(ip *fenvm.Interp, args []any) (any, error)

func (r Registry) Install(rt *fenvm.Runtime) {
	for name, fn := range r {
		rt.Register(name, fn)
	}
}

func (Module) Registry(
	logger logs.Logger,
	httpClient nets.HTTPClient,
	find modlib.Find,
) Registry {
	r := Registry{}
	addCore(r)
	addCurry(r)
	addMemo(r)
	addLoad(r, find, logger)
	addFetch(r, httpClient)
	return r
}

func want(name string, args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s: want %d arguments, got %d", name, n, len(args))
	}
	return nil
}
