package natives

import (
	"fmt"
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/fenlang/fen/fenvm"
)

func addCore(r Registry) {

	r["print"] = func(ip *fenvm.Interp, args []any) (any, error) {
		parts := make([]any, len(args))
		for i, arg := range args {
			parts[i] = fenvm.Display(arg)
		}
		fmt.Fprintln(ip.Runtime().Stdout, parts...)
		return nil, nil
	}

	r["len"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("len", args, 1); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case nil:
			return int64(0), nil
		case string:
			return int64(utf8.RuneCountInString(v)), nil
		case *fenvm.List:
			return int64(v.Len()), nil
		case map[string]any:
			return int64(len(v)), nil
		}
		return nil, fmt.Errorf("len: cannot measure %s", fenvm.TypeName(args[0]))
	}

	r["str"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("str", args, 1); err != nil {
			return nil, err
		}
		return fenvm.Display(args[0]), nil
	}

	r["int"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("int", args, 1); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case int64:
			return v, nil
		case float64:
			return int64(v), nil
		case bool:
			if v {
				return int64(1), nil
			}
			return int64(0), nil
		case string:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n, nil
			}
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return int64(f), nil
			}
			return nil, fmt.Errorf("int: cannot parse %q", v)
		}
		return nil, fmt.Errorf("int: cannot convert %s", fenvm.TypeName(args[0]))
	}

	r["float"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("float", args, 1); err != nil {
			return nil, err
		}
		switch v := args[0].(type) {
		case int64:
			return float64(v), nil
		case float64:
			return v, nil
		case bool:
			if v {
				return float64(1), nil
			}
			return float64(0), nil
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, nil
			}
			return nil, fmt.Errorf("float: cannot parse %q", v)
		}
		return nil, fmt.Errorf("float: cannot convert %s", fenvm.TypeName(args[0]))
	}

	r["typeof"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("typeof", args, 1); err != nil {
			return nil, err
		}
		return fenvm.TypeName(args[0]), nil
	}

	r["push"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if len(args) < 2 {
			return nil, fmt.Errorf("push: want a list and values, got %d arguments", len(args))
		}
		l, ok := args[0].(*fenvm.List)
		if !ok {
			return nil, fmt.Errorf("push: cannot push to %s", fenvm.TypeName(args[0]))
		}
		l.Elements = append(l.Elements, args[1:]...)
		return l, nil
	}

	r["keys"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("keys", args, 1); err != nil {
			return nil, err
		}
		m, ok := args[0].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("keys: want a map, got %s", fenvm.TypeName(args[0]))
		}
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		slices.Sort(names)
		elements := make([]any, len(names))
		for i, name := range names {
			elements[i] = name
		}
		return fenvm.NewList(elements...), nil
	}

	r["map"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("map", args, 0); err != nil {
			return nil, err
		}
		return map[string]any{}, nil
	}
}
