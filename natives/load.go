package natives

import (
	"fmt"
	"sync"

	"github.com/fenlang/fen/fenlang"
	"github.com/fenlang/fen/fenvm"
	"github.com/fenlang/fen/logs"
	"github.com/fenlang/fen/modlib"
)

func addLoad(r Registry, find modlib.Find, logger logs.Logger) {
	var mu sync.Mutex
	loaded := make(map[string]map[string]any)
	loading := make(map[string]bool)

	r["load"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("load", args, 1); err != nil {
			return nil, err
		}
		name, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("load: want a module name, got %s", fenvm.TypeName(args[0]))
		}

		path, content, err := find(name)
		if err != nil {
			return nil, err
		}

		mu.Lock()
		if exports, ok := loaded[path]; ok {
			mu.Unlock()
			return exports, nil
		}
		if loading[path] {
			mu.Unlock()
			return nil, fmt.Errorf("load %s: import cycle", path)
		}
		loading[path] = true
		mu.Unlock()
		defer func() {
			mu.Lock()
			delete(loading, path)
			mu.Unlock()
		}()

		prog, err := fenlang.Compile(path, string(content))
		if err != nil {
			return nil, err
		}

		// modules run isolated from the caller's variables
		_, exports, err := ip.Runtime().EvalExports(ip.Ctx(), prog, nil)
		if err != nil {
			return nil, err
		}
		logger.Debug("module loaded",
			"path", path,
		)

		mu.Lock()
		loaded[path] = exports
		mu.Unlock()
		return exports, nil
	}
}
