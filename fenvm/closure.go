package fenvm

import (
	"context"
	"fmt"
	"hash"
	"strings"
)

// Closure pairs a lambda with a frame frozen at its definition site. The
// frame starts as a hoist-copy of the defining activation and never sees
// that activation again; currying advances it copy-on-write. The options of
// the defining activation ride along, so the closure later runs under them
// and not under the caller's.
type Closure struct {
	rt      *Runtime
	lambda  *Lambda
	frame   *Frame
	options Options
}

func newClosure(rt *Runtime, lambda *Lambda, defining *Frame, opts Options) *Closure {
	return &Closure{
		rt:      rt,
		lambda:  lambda,
		frame:   lambda.Scope.CreateFrame(defining),
		options: opts.Snapshot(),
	}
}

// Name returns the name of the named function form, empty for anonymous
// lambdas.
func (c *Closure) Name() string {
	return c.lambda.Name
}

// Runtime returns the runtime the closure was defined in.
func (c *Closure) Runtime() *Runtime {
	return c.rt
}

// Options returns the options snapshot taken at definition time.
func (c *Closure) Options() Options {
	return c.options
}

// Frame returns the closure's frozen frame.
func (c *Closure) Frame() *Frame {
	return c.frame
}

// Parameters returns the names of the parameters not yet filled by currying.
func (c *Closure) Parameters() []string {
	return c.lambda.Scope.Parameters(c.frame.bound)
}

// Curry returns a closure with the values bound to the next parameter
// registers. The receiver is unchanged; currying twice equals currying once
// with the concatenated values.
func (c *Closure) Curry(values ...any) *Closure {
	if len(values) == 0 {
		return c
	}
	return &Closure{
		rt:      c.rt,
		lambda:  c.lambda,
		frame:   c.frame.Assign(values...),
		options: c.options,
	}
}

// Execute runs the closure with the given arguments, binding them after any
// curried values. vars may be nil.
func (c *Closure) Execute(ctx context.Context, vars Context, args ...any) (any, error) {
	ip := newInterp(ctx, c.rt, vars)
	return ip.invoke(c, args)
}

// SetCaptured writes value through to the closure's copy of a register it
// captured from the defining scope. register is the register in the
// defining scope; nothing happens when the closure did not capture it. This
// is how a named function sees itself: the definition site stores the new
// closure under its own name and then pushes it into the capture, closing
// the recursion knot.
func (c *Closure) SetCaptured(register int, value any) {
	if local, ok := c.lambda.Scope.CapturedBy(register); ok {
		c.frame.Set(local, value)
	}
}

func (c *Closure) String() string {
	var b strings.Builder
	b.WriteString("fn")
	if c.lambda.Name != "" {
		b.WriteByte(' ')
		b.WriteString(c.lambda.Name)
	}
	b.WriteByte('(')
	for i, p := range c.Parameters() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p)
	}
	b.WriteByte(')')
	return b.String()
}

// Equals reports whether two closures are the same function over equal
// captured state: same runtime, same lambda, deep-equal frames. A pair of
// closures reached again through their own captures is taken as equal, so
// mutually or self-capturing closures terminate.
func (c *Closure) Equals(other *Closure) bool {
	return closureEqual(c, other, make(map[visitPair]bool))
}

// Hash returns a structural hash consistent with Equals. The lambda
// identity is not hashed, only its shape, so closures of distinct lambdas
// may collide; lookups resolve collisions with Equals.
func (c *Closure) Hash() uint64 {
	return Hash(c)
}

func closureEqual(a, b *Closure, seen map[visitPair]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.rt != b.rt || a.lambda != b.lambda {
		return false
	}
	pair := visitPair{a, b}
	if seen[pair] {
		return true
	}
	seen[pair] = true
	return frameEqual(a.frame, b.frame, seen)
}

func frameEqual(a, b *Frame, seen map[visitPair]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.bound != b.bound || len(a.cells) != len(b.cells) {
		return false
	}
	for i, ca := range a.cells {
		cb := b.cells[i]
		if ca.state != cb.state {
			return false
		}
		if ca.state == cellBound && !equalValues(ca.value, cb.value, seen) {
			return false
		}
	}
	return true
}

func closureHash(h hash.Hash64, c *Closure, seen map[any]bool) {
	h.Write([]byte{'c'})
	if seen[c] {
		h.Write([]byte{'@'})
		return
	}
	seen[c] = true
	h.Write([]byte(c.lambda.Name))
	hashUint64(h, uint64(c.lambda.Scope.ParameterCount()))
	hashUint64(h, uint64(c.frame.bound))
	hashUint64(h, uint64(len(c.frame.cells)))
	for _, cell := range c.frame.cells {
		h.Write([]byte{byte(cell.state)})
		if cell.state == cellBound {
			hashValue(h, cell.value, seen)
		}
	}
	delete(seen, c)
}

var _ fmt.Stringer = new(Closure)
