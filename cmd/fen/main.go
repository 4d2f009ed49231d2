package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fenlang/fen/cmds"
	"github.com/fenlang/fen/engines"
	"github.com/fenlang/fen/fenconfigs"
	"github.com/fenlang/fen/fenlang"
	"github.com/fenlang/fen/fenvm"
	"github.com/fenlang/fen/modes"
	"github.com/fenlang/fen/repl"
	"github.com/fenlang/fen/vars"
	"github.com/reusee/dscope"
	"golang.org/x/term"
)

var (
	evalArgs   = cmds.Var[string]("eval")
	checkArgs  = cmds.Var[string]("check")
	runcArgs   = cmds.Var[string]("runc")
	replSwitch = cmds.Switch("repl")
	varDefs    = cmds.Collect[string]("-var")
)

var (
	runPath       string
	runScriptArgs []string

	compileIn, compileOut string
)

func init() {
	cmds.Define("run", cmds.Func(func(path string, rest []string) {
		runPath = path
		runScriptArgs = rest
	}).Desc("run a script file, remaining arguments go to the script as args"))
	cmds.Define("compile", cmds.Func(func(in string, out *string) {
		compileIn = in
		compileOut = vars.DerefOrZero(out)
	}).Desc("compile a script into a program file"))
}

func main() {
	cmds.MustExecute(os.Args[1:])
	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope, err := fenconfigs.FenFork(scope)
	if err != nil {
		fatal(err)
	}

	scope.Call(func(
		engine *engines.Engine,
		runRepl repl.Run,
	) {
		vars := parseVars(*varDefs)

		switch {

		case *evalArgs != "":
			v, err := engine.EvalString(ctx, "eval", *evalArgs, vars)
			if err != nil {
				fatal(err)
			}
			if v != nil {
				fmt.Println(fenvm.Display(v))
			}

		case runPath != "":
			vars["args"] = scriptArgs(runScriptArgs)
			if _, err := engine.EvalFile(ctx, runPath, vars); err != nil {
				fatal(err)
			}

		case *checkArgs != "":
			content, err := os.ReadFile(*checkArgs)
			if err != nil {
				fatal(err)
			}
			if _, err := fenlang.Compile(*checkArgs, string(content)); err != nil {
				fatal(err)
			}

		case compileIn != "":
			prog, err := engine.CompileFile(compileIn)
			if err != nil {
				fatal(err)
			}
			out := compileOut
			if out == "" {
				out = compileIn + "c"
			}
			f, err := os.Create(out)
			if err != nil {
				fatal(err)
			}
			if err := prog.Encode(f); err != nil {
				fatal(err)
			}
			if err := f.Close(); err != nil {
				fatal(err)
			}

		case *runcArgs != "":
			f, err := os.Open(*runcArgs)
			if err != nil {
				fatal(err)
			}
			prog, err := fenvm.DecodeProgram(f)
			f.Close()
			if err != nil {
				fatal(err)
			}
			if _, err := engine.Eval(ctx, prog, vars); err != nil {
				fatal(err)
			}

		case *replSwitch:
			if err := runRepl(ctx); err != nil {
				fatal(err)
			}

		default:
			// no command: a terminal gets the repl, piped input runs
			if term.IsTerminal(int(os.Stdin.Fd())) {
				if err := runRepl(ctx); err != nil {
					fatal(err)
				}
				return
			}
			content, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal(err)
			}
			if _, err := engine.EvalString(ctx, "stdin", string(content), vars); err != nil {
				fatal(err)
			}

		}
	})
}

func fatal(err error) {
	os.Stderr.WriteString(err.Error())
	os.Stderr.WriteString("\n")
	os.Exit(-1)
}
