package main

import (
	"github.com/fenlang/fen/engines"
	"github.com/fenlang/fen/repl"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Engines engines.Module
	Repl    repl.Module
}
