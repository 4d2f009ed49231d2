package natives

import (
	"fmt"

	"github.com/fenlang/fen/caches"
	"github.com/fenlang/fen/fenvm"
)

func addMemo(r Registry) {
	r["memo"] = func(ip *fenvm.Interp, args []any) (any, error) {
		if err := want("memo", args, 1); err != nil {
			return nil, err
		}
		fn, ok := args[0].(*fenvm.Closure)
		if !ok {
			return nil, fmt.Errorf("memo: cannot memoize %s", fenvm.TypeName(args[0]))
		}
		m := caches.NewMemo(fn)
		return fenvm.NativeFunc{
			Name: "memo:" + fn.Name(),
			Func: m.Call,
		}, nil
	}
}
