package modlib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenlang/fen/logs"
	"github.com/gabriel-vasile/mimetype"
)

// Find locates a loadable module script by name and returns its path and
// content. Names may omit the .fen extension.
type Find func(name string) (path string, content []byte, err error)

func (Module) Find(
	searchPath SearchPath,
	logger logs.Logger,
) Find {
	return func(name string) (string, []byte, error) {
		if strings.HasPrefix(filepath.Base(name), ".") {
			return "", nil, fmt.Errorf("module %s: hidden names are not loadable", name)
		}

		candidates := []string{name + ".fen", name}
		if filepath.Ext(name) == ".fen" {
			candidates = []string{name}
		}

		for _, dir := range searchPath {
			for _, candidate := range candidates {
				path := filepath.Join(dir, candidate)
				info, err := os.Stat(path)
				if err != nil || info.IsDir() {
					continue
				}
				content, err := os.ReadFile(path)
				if err != nil {
					return "", nil, err
				}
				if !isText(content) {
					return "", nil, fmt.Errorf("module %s: not a text file", path)
				}
				logger.Debug("module found",
					"name", name,
					"path", path,
				)
				return path, content, nil
			}
		}
		return "", nil, fmt.Errorf("module %s not found", name)
	}
}

func isText(content []byte) bool {
	mtype := mimetype.Detect(content)
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return true
		}
	}
	return false
}
