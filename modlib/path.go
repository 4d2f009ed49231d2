package modlib

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fenlang/fen/cmds"
	"github.com/fenlang/fen/configs"
	"github.com/fenlang/fen/logs"
	"github.com/fenlang/fen/vars"
	"github.com/xyproto/env/v2"
)

// ModulePath is a colon separated list of directories searched by load().
type ModulePath string

var _ configs.Configurable = ModulePath("")

func (m ModulePath) ConfigExpr() string {
	return "ModulePath"
}

var modulePathFlag = cmds.Var[string]("-module-path")

func (Module) ModulePath(
	loader configs.Loader,
) ModulePath {
	return ModulePath(vars.FirstNonZero(
		*modulePathFlag,
		configs.First[string](loader, "module_path"),
		env.Str("FEN_PATH"),
	))
}

// SearchPath is the resolved list of module directories, working directory
// first.
type SearchPath []string

func (Module) SearchPath(
	modulePath ModulePath,
	logger logs.Logger,
) SearchPath {
	dirs := []string{"."}
	for _, dir := range strings.Split(string(modulePath), ":") {
		if dir == "" {
			continue
		}
		dirs = append(dirs, dir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "fen", "modules"))
	}
	logger.Debug("module search path", "dirs", dirs)
	return dirs
}
