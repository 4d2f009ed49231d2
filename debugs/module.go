package debugs

import (
	"github.com/fenlang/fen/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
