package fenvm

import (
	"fmt"
	"math"
)

// Truthy returns the boolean a value stands for in a condition. nil, false,
// zero of either numeric type and the empty string are false, everything
// else true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	}
	return true
}

// TypeName returns the script-visible name of a value's type.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case *List:
		return "list"
	case map[string]any:
		return "map"
	case *Closure:
		return "fn"
	case NativeFunc:
		return "native fn"
	}
	return fmt.Sprintf("%T", v)
}

func toInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return int64(x), true
		}
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func (ip *Interp) evalUnary(n *Unary) (any, error) {
	v, err := ip.eval(n.X)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case OpNot:
		return !Truthy(v), nil
	case OpNeg:
		switch x := v.(type) {
		case int64:
			return -x, nil
		case float64:
			return -x, nil
		}
		return nil, errAt(n.Pos, "cannot negate %s", TypeName(v))
	}
	return nil, errAt(n.Pos, "cannot apply %s", n.Op)
}

func (ip *Interp) evalBinary(n *Binary) (any, error) {
	// && and || decide on the left value alone when they can
	if n.Op == OpAnd || n.Op == OpOr {
		l, err := ip.eval(n.L)
		if err != nil {
			return nil, err
		}
		if n.Op == OpAnd && !Truthy(l) {
			return false, nil
		}
		if n.Op == OpOr && Truthy(l) {
			return true, nil
		}
		r, err := ip.eval(n.R)
		if err != nil {
			return nil, err
		}
		return Truthy(r), nil
	}

	l, err := ip.eval(n.L)
	if err != nil {
		return nil, err
	}
	r, err := ip.eval(n.R)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case OpEq:
		return Equal(l, r), nil
	case OpNe:
		return !Equal(l, r), nil
	case OpLt, OpLe, OpGt, OpGe:
		return compare(n.Pos, n.Op, l, r)
	}
	return arith(n.Pos, n.Op, l, r)
}

func compare(pos Pos, op OpKind, l, r any) (any, error) {
	var c int
	switch x := l.(type) {
	case string:
		y, ok := r.(string)
		if !ok {
			return nil, errAt(pos, "cannot compare %s with %s", TypeName(l), TypeName(r))
		}
		switch {
		case x < y:
			c = -1
		case x > y:
			c = 1
		}
	default:
		a, ok1 := toFloat(l)
		b, ok2 := toFloat(r)
		if !ok1 || !ok2 {
			return nil, errAt(pos, "cannot compare %s with %s", TypeName(l), TypeName(r))
		}
		switch {
		case a < b:
			c = -1
		case a > b:
			c = 1
		}
	}
	switch op {
	case OpLt:
		return c < 0, nil
	case OpLe:
		return c <= 0, nil
	case OpGt:
		return c > 0, nil
	case OpGe:
		return c >= 0, nil
	}
	return nil, errAt(pos, "cannot apply %s", op)
}

func arith(pos Pos, op OpKind, l, r any) (any, error) {
	if a, ok := l.(string); ok {
		if op == OpAdd {
			b, ok := r.(string)
			if !ok {
				return nil, errAt(pos, "cannot add %s and %s", TypeName(l), TypeName(r))
			}
			return a + b, nil
		}
		return nil, errAt(pos, "cannot apply %s to %s", op, TypeName(l))
	}
	if a, ok := l.(*List); ok {
		if op == OpAdd {
			b, ok := r.(*List)
			if !ok {
				return nil, errAt(pos, "cannot add %s and %s", TypeName(l), TypeName(r))
			}
			out := make([]any, 0, a.Len()+b.Len())
			out = append(out, a.Elements...)
			out = append(out, b.Elements...)
			return NewList(out...), nil
		}
		return nil, errAt(pos, "cannot apply %s to %s", op, TypeName(l))
	}

	li, lInt := l.(int64)
	ri, rInt := r.(int64)
	if lInt && rInt {
		switch op {
		case OpAdd:
			return li + ri, nil
		case OpSub:
			return li - ri, nil
		case OpMul:
			return li * ri, nil
		case OpDiv:
			if ri == 0 {
				return nil, errAt(pos, "division by zero")
			}
			return li / ri, nil
		case OpMod:
			if ri == 0 {
				return nil, errAt(pos, "division by zero")
			}
			return li % ri, nil
		}
		return nil, errAt(pos, "cannot apply %s", op)
	}

	a, ok1 := toFloat(l)
	b, ok2 := toFloat(r)
	if !ok1 || !ok2 {
		return nil, errAt(pos, "cannot apply %s to %s and %s", op, TypeName(l), TypeName(r))
	}
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return nil, errAt(pos, "division by zero")
		}
		return a / b, nil
	case OpMod:
		if b == 0 {
			return nil, errAt(pos, "division by zero")
		}
		return math.Mod(a, b), nil
	}
	return nil, errAt(pos, "cannot apply %s", op)
}
