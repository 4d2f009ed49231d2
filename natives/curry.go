package natives

import (
	"fmt"

	"github.com/fenlang/fen/fenvm"
)

func addCurry(r Registry) {
	r["curry"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("curry: want a fn")
		}
		fn, ok := args[0].(*fenvm.Closure)
		if !ok {
			return nil, fmt.Errorf("curry: cannot curry %s", fenvm.TypeName(args[0]))
		}
		return fn.Curry(args[1:]...), nil
	}
}
