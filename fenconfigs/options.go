package fenconfigs

import (
	"github.com/fenlang/fen/cmds"
	"github.com/fenlang/fen/configs"
	"github.com/fenlang/fen/vars"
	"github.com/xyproto/env/v2"
)

// MaxCallDepth caps closure call nesting. Zero means no cap.
type MaxCallDepth int

var _ configs.Configurable = MaxCallDepth(0)

func (m MaxCallDepth) ConfigExpr() string {
	return "MaxCallDepth"
}

var maxCallDepthFlag = cmds.Var[int]("-max-call-depth")

func (Module) MaxCallDepth(
	loader configs.Loader,
) MaxCallDepth {
	return MaxCallDepth(vars.FirstNonZero(
		*maxCallDepthFlag,
		configs.First[int](loader, "max_call_depth"),
	))
}

// MaxSteps caps evaluation steps. Zero means no cap.
type MaxSteps int

var _ configs.Configurable = MaxSteps(0)

func (m MaxSteps) ConfigExpr() string {
	return "MaxSteps"
}

var maxStepsFlag = cmds.Var[int]("-max-steps")

func (Module) MaxSteps(
	loader configs.Loader,
) MaxSteps {
	return MaxSteps(vars.FirstNonZero(
		*maxStepsFlag,
		configs.First[int](loader, "max_steps"),
	))
}

// StrictMode makes reads of undefined variables errors instead of null.
type StrictMode bool

var _ configs.Configurable = StrictMode(false)

func (m StrictMode) ConfigExpr() string {
	return "StrictMode"
}

var strictFlag = cmds.Switch("-strict")

func (Module) StrictMode(
	loader configs.Loader,
) StrictMode {
	if *strictFlag {
		return true
	}
	if configs.First[bool](loader, "strict_mode") {
		return true
	}
	return StrictMode(vars.StrToBool(env.Str("FEN_STRICT")))
}

// LexicalMode enables block scoped var declarations. On unless switched
// off by flag or config.
type LexicalMode bool

var _ configs.Configurable = LexicalMode(false)

func (m LexicalMode) ConfigExpr() string {
	return "LexicalMode"
}

var noLexicalFlag = cmds.Switch("-no-lexical")

func (Module) LexicalMode(
	loader configs.Loader,
) LexicalMode {
	if *noLexicalFlag {
		return false
	}
	for v := range configs.All[bool](loader, "lexical_mode") {
		return LexicalMode(v)
	}
	return true
}
