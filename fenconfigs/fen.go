package fenconfigs

import (
	"context"
	"maps"
	"os"
	"path/filepath"

	"github.com/fenlang/fen/configs"
	"github.com/fenlang/fen/fenlang"
	"github.com/fenlang/fen/fenvm"
	"github.com/reusee/dscope"
)

// FenFork evaluates fen config scripts and forks scope with the
// Configurable values they define. Scripts run in global-to-local order:
// /etc, then the user config dir, then the working directory. Each script
// sees the accumulated bindings of the earlier ones as host variables, so
// local definitions shadow global ones.
func FenFork(scope dscope.Scope) (dscope.Scope, error) {
	var paths []string

	filenames := []string{
		"fen.fen",
		".fen.fen",
	}

	// system wide dir
	for _, filename := range filenames {
		path := filepath.Join("/etc", filename)
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		}
	}

	// user config dir
	configDir, err := os.UserConfigDir()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(configDir, filename)
			_, err := os.Stat(path)
			if err == nil {
				paths = append(paths, path)
			}
		}
	}

	// working directory
	workingDir, err := os.Getwd()
	if err == nil {
		for _, filename := range filenames {
			path := filepath.Join(workingDir, filename)
			_, err := os.Stat(path)
			if err == nil {
				paths = append(paths, path)
			}
		}
	}

	rt := fenvm.NewRuntime()
	merged := make(map[string]any)
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return scope, err
		}
		prog, err := fenlang.Compile(path, string(content))
		if err != nil {
			return scope, err
		}
		_, exports, err := rt.EvalExports(
			context.Background(),
			prog,
			fenvm.MapContext(merged),
		)
		if err != nil {
			return scope, err
		}
		maps.Copy(merged, exports)
	}

	scope, err = configs.FenFork(scope, merged)
	if err != nil {
		return scope, err
	}

	scope = scope.Fork(dscope.Provide(ConfigFenVars(merged)))

	return scope, nil
}

// ConfigFenVars carries the merged config script bindings, usable as host
// variables in later evaluations.
type ConfigFenVars map[string]any

func (Module) ConfigFenVars() ConfigFenVars {
	return nil
}
