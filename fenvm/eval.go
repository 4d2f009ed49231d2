package fenvm

import "context"

// Interp is one evaluation in progress: a tree walker whose current
// activation is swapped in place on call and restored on return. One Interp
// serves one evaluation at a time; concurrent evaluations each get their
// own.
type Interp struct {
	ctx   context.Context
	rt    *Runtime
	vars  Context
	steps int

	// per-activation, saved and restored around calls
	opts  Options
	frame *Frame
	block *LexicalFrame
	depth int
}

func newInterp(ctx context.Context, rt *Runtime, vars Context) *Interp {
	if ctx == nil {
		ctx = context.Background()
	}
	if vars == nil {
		vars = MapContext{}
	}
	return &Interp{
		ctx:  ctx,
		rt:   rt,
		vars: vars,
	}
}

// Ctx returns the context the evaluation runs under.
func (ip *Interp) Ctx() context.Context {
	return ip.ctx
}

// Runtime returns the owning runtime.
func (ip *Interp) Runtime() *Runtime {
	return ip.rt
}

// Vars returns the host variable context of this evaluation.
func (ip *Interp) Vars() Context {
	return ip.vars
}

// ActiveOptions returns the options of the current activation.
func (ip *Interp) ActiveOptions() Options {
	return ip.opts
}

// CallValue applies a callable script value to args. Natives use it to call
// user callbacks they received as arguments.
func (ip *Interp) CallValue(callee any, args ...any) (any, error) {
	switch fn := callee.(type) {
	case *Closure:
		return ip.invoke(fn, args)
	case NativeFunc:
		return fn.Call(ip, args)
	}
	return nil, errAt(Pos{}, "cannot call %s", TypeName(callee))
}

// invoke runs a closure on a fresh copy of its frozen frame with args bound
// after any curried values.
func (ip *Interp) invoke(c *Closure, args []any) (any, error) {
	frame := c.frame.Assign(args...)
	if frame == c.frame {
		frame = c.frame.clone()
	}
	return ip.run(c.lambda, frame, c.options)
}

// run executes a function body in a new activation. The body statements run
// directly in the function-level block, nested blocks push their own. The
// top-level lambda of a program keeps its locals after the run so callers
// can read exports out of the frame.
func (ip *Interp) run(fn *Lambda, frame *Frame, opts Options) (any, error) {
	if opts.MaxDepth > 0 && ip.depth+1 > opts.MaxDepth {
		return nil, errAt(fn.Pos, "call depth exceeds %d", opts.MaxDepth)
	}

	savedOpts, savedFrame, savedBlock := ip.opts, ip.frame, ip.block
	ip.opts, ip.frame, ip.depth = opts, frame, ip.depth+1
	ip.block = nil
	defer func() {
		ip.opts, ip.frame, ip.block = savedOpts, savedFrame, savedBlock
		ip.depth--
	}()

	if ip.opts.Lexical {
		ip.block = NewLexicalFrame(nil, frame).DefineArgs()
		if !fn.Top {
			defer ip.block.Pop()
		}
	}

	v, err := ip.evalStmts(fn.Body.Stmts)
	if err != nil {
		switch e := err.(type) {
		case ctlReturn:
			return e.value, nil
		case ctlBreak:
			return nil, errAt(e.pos, "break outside a loop")
		case ctlContinue:
			return nil, errAt(e.pos, "continue outside a loop")
		}
		return nil, err
	}
	return v, nil
}

// evalStmts runs statements in order. The value of the sequence is the
// value of the last statement.
func (ip *Interp) evalStmts(stmts []Node) (any, error) {
	var result any
	for _, st := range stmts {
		v, err := ip.eval(st)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (ip *Interp) evalBlock(b *Block) (any, error) {
	if ip.opts.Lexical {
		parent := ip.block
		lf := NewLexicalFrame(parent, ip.frame)
		ip.block = lf
		defer func() {
			lf.Pop()
			ip.block = parent
		}()
	}
	return ip.evalStmts(b.Stmts)
}

func (ip *Interp) eval(n Node) (any, error) {
	ip.steps++
	if ip.opts.MaxSteps > 0 && ip.steps > ip.opts.MaxSteps {
		return nil, errAt(n.Position(), "evaluation exceeds %d steps", ip.opts.MaxSteps)
	}
	if ip.steps&127 == 0 {
		select {
		case <-ip.ctx.Done():
			return nil, ip.ctx.Err()
		default:
		}
	}

	switch n := n.(type) {

	case *Literal:
		return n.Value, nil

	case *ListLit:
		elems := make([]any, 0, len(n.Elems))
		for _, e := range n.Elems {
			v, err := ip.eval(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return NewList(elems...), nil

	case *Ident:
		return ip.readIdent(n)

	case *VarDecl:
		var v any
		if n.Value != nil {
			var err error
			v, err = ip.eval(n.Value)
			if err != nil {
				return nil, err
			}
		}
		if ip.opts.Lexical && ip.block != nil {
			// the undo snapshot must see the cell before the write below
			if !ip.block.Declare(n.Register, n.Captured) {
				return nil, errAt(n.Pos, "%s: variable is already declared", n.Name)
			}
		}
		ip.frame.Set(n.Register, v)
		if c, ok := v.(*Closure); ok {
			c.SetCaptured(n.Register, v)
		}
		return v, nil

	case *Assign:
		v, err := ip.eval(n.Value)
		if err != nil {
			return nil, err
		}
		t := n.Target
		if t.Context {
			if !ip.vars.Set(t.Name, v) {
				return nil, errAt(n.Pos, "%s: cannot assign", t.Name)
			}
			return v, nil
		}
		ip.frame.Set(t.Register, v)
		if c, ok := v.(*Closure); ok {
			c.SetCaptured(t.Register, v)
		}
		return v, nil

	case *IndexAssign:
		return ip.evalIndexAssign(n)

	case *Unary:
		return ip.evalUnary(n)

	case *Binary:
		return ip.evalBinary(n)

	case *Index:
		return ip.evalIndex(n)

	case *Call:
		callee, err := ip.eval(n.Callee)
		if err != nil {
			return nil, err
		}
		args := make([]any, 0, len(n.Args))
		for _, a := range n.Args {
			v, err := ip.eval(a)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return ip.call(n.Pos, callee, args)

	case *Lambda:
		return newClosure(ip.rt, n, ip.frame, ip.opts), nil

	case *Block:
		return ip.evalBlock(n)

	case *If:
		cond, err := ip.eval(n.Cond)
		if err != nil {
			return nil, err
		}
		if Truthy(cond) {
			return ip.eval(n.Then)
		}
		if n.Else != nil {
			return ip.eval(n.Else)
		}
		return nil, nil

	case *While:
		for {
			cond, err := ip.eval(n.Cond)
			if err != nil {
				return nil, err
			}
			if !Truthy(cond) {
				return nil, nil
			}
			if _, err := ip.eval(n.Body); err != nil {
				switch err.(type) {
				case ctlBreak:
					return nil, nil
				case ctlContinue:
					continue
				}
				return nil, err
			}
		}

	case *Return:
		var v any
		if n.Value != nil {
			var err error
			v, err = ip.eval(n.Value)
			if err != nil {
				return nil, err
			}
		}
		return nil, ctlReturn{value: v}

	case *Break:
		return nil, ctlBreak{pos: n.Pos}

	case *Continue:
		return nil, ctlContinue{pos: n.Pos}

	}
	return nil, errAt(n.Position(), "cannot evaluate %T", n)
}

func (ip *Interp) readIdent(n *Ident) (any, error) {
	if n.Context {
		if v, ok := ip.vars.Get(n.Name); ok {
			return v, nil
		}
		if nf, ok := ip.rt.Natives[n.Name]; ok {
			return nf, nil
		}
		if ip.opts.Strict {
			return nil, errAt(n.Pos, "%s: undefined variable", n.Name)
		}
		return nil, nil
	}
	if !ip.frame.Has(n.Register) {
		if ip.opts.Strict {
			return nil, errAt(n.Pos, "%s: undefined variable", n.Name)
		}
		return nil, nil
	}
	return ip.frame.Get(n.Register), nil
}

func (ip *Interp) call(pos Pos, callee any, args []any) (any, error) {
	switch fn := callee.(type) {
	case *Closure:
		return ip.invoke(fn, args)
	case NativeFunc:
		v, err := fn.Call(ip, args)
		if err != nil {
			return nil, wrapPos(err, pos)
		}
		return v, nil
	}
	return nil, errAt(pos, "cannot call %s", TypeName(callee))
}

func (ip *Interp) evalIndex(n *Index) (any, error) {
	x, err := ip.eval(n.X)
	if err != nil {
		return nil, err
	}
	key, err := ip.eval(n.Key)
	if err != nil {
		return nil, err
	}
	switch x := x.(type) {
	case *List:
		i, ok := toInt(key)
		if !ok {
			return nil, errAt(n.Pos, "list index must be an integer, got %s", TypeName(key))
		}
		j, ok := x.index(i)
		if !ok {
			return nil, errAt(n.Pos, "index %d out of range for list of %d", i, x.Len())
		}
		return x.Elements[j], nil
	case map[string]any:
		k, ok := key.(string)
		if !ok {
			return nil, errAt(n.Pos, "map key must be a string, got %s", TypeName(key))
		}
		v, ok := x[k]
		if !ok {
			if ip.opts.Strict {
				return nil, errAt(n.Pos, "%s: no such key", k)
			}
			return nil, nil
		}
		return v, nil
	case string:
		i, ok := toInt(key)
		if !ok {
			return nil, errAt(n.Pos, "string index must be an integer, got %s", TypeName(key))
		}
		runes := []rune(x)
		if i < 0 {
			i += int64(len(runes))
		}
		if i < 0 || i >= int64(len(runes)) {
			return nil, errAt(n.Pos, "index %d out of range for string of %d", i, len(runes))
		}
		return string(runes[i]), nil
	}
	return nil, errAt(n.Pos, "cannot index %s", TypeName(x))
}

func (ip *Interp) evalIndexAssign(n *IndexAssign) (any, error) {
	x, err := ip.eval(n.Target)
	if err != nil {
		return nil, err
	}
	key, err := ip.eval(n.Key)
	if err != nil {
		return nil, err
	}
	v, err := ip.eval(n.Value)
	if err != nil {
		return nil, err
	}
	switch x := x.(type) {
	case *List:
		i, ok := toInt(key)
		if !ok {
			return nil, errAt(n.Pos, "list index must be an integer, got %s", TypeName(key))
		}
		j, ok := x.index(i)
		if !ok {
			return nil, errAt(n.Pos, "index %d out of range for list of %d", i, x.Len())
		}
		x.Elements[j] = v
		return v, nil
	case map[string]any:
		k, ok := key.(string)
		if !ok {
			return nil, errAt(n.Pos, "map key must be a string, got %s", TypeName(key))
		}
		x[k] = v
		return v, nil
	}
	return nil, errAt(n.Pos, "cannot index %s", TypeName(x))
}
