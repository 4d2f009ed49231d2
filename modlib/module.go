package modlib

import (
	"github.com/fenlang/fen/configs"
	"github.com/fenlang/fen/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
