package fenvm

import "fmt"

// EvalError is a runtime error carrying the position it arose at. The
// compiler front end attaches source text when rendering it.
type EvalError struct {
	Pos Pos
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%d:%d: %v", e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

func errAt(pos Pos, format string, args ...any) error {
	return &EvalError{
		Pos: pos,
		Err: fmt.Errorf(format, args...),
	}
}

// wrapPos attaches a position to errors that lack one. Control-flow
// unwinding and already positioned errors pass through.
func wrapPos(err error, pos Pos) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *EvalError, ctlReturn, ctlBreak, ctlContinue:
		return err
	}
	return &EvalError{Pos: pos, Err: err}
}

// ctlReturn, ctlBreak and ctlContinue unwind the evaluator through normal
// error returns, so deferred block pops run on the way out. They are
// consumed at function and loop boundaries; one escaping to the caller
// reports a misplaced statement.

type ctlReturn struct {
	value any
}

func (ctlReturn) Error() string {
	return "return outside a function"
}

type ctlBreak struct {
	pos Pos
}

func (ctlBreak) Error() string {
	return "break outside a loop"
}

type ctlContinue struct {
	pos Pos
}

func (ctlContinue) Error() string {
	return "continue outside a loop"
}
