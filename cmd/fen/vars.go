package main

import (
	"strconv"
	"strings"

	"github.com/fenlang/fen/fenvm"
)

// parseVars turns -var name=value definitions into a host context. A bare
// name defines true. Values parse as int, float, bool or null when they
// read as one, and stay strings otherwise.
func parseVars(defs []string) fenvm.MapContext {
	vars := fenvm.MapContext{}
	for _, def := range defs {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			vars[def] = true
			continue
		}
		vars[name] = parseValue(value)
	}
	return vars
}

// scriptArgs exposes command line rest arguments to the script as a list.
func scriptArgs(args []string) *fenvm.List {
	elems := make([]any, len(args))
	for i, arg := range args {
		elems[i] = arg
	}
	return fenvm.NewList(elems...)
}

func parseValue(str string) any {
	if n, err := strconv.ParseInt(str, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return f
	}
	switch str {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	return str
}
