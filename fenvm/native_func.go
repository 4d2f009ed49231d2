package fenvm

import (
	"encoding/gob"
	"fmt"
)

// NativeFunc is a host function exposed to scripts. Only the name survives
// gob encoding; decoded programs carry missing natives until the runtime
// rebinds them by name.
type NativeFunc struct {
	Name string
	Func func(ip *Interp, args []any) (any, error)
}

var _ gob.GobEncoder = NativeFunc{}

var _ gob.GobDecoder = new(NativeFunc)

func (n NativeFunc) GobEncode() ([]byte, error) {
	return []byte(n.Name), nil
}

func (n *NativeFunc) GobDecode(data []byte) error {
	n.Name = string(data)
	n.Func = nil
	return nil
}

func (n NativeFunc) IsMissing() bool {
	return n.Func == nil
}

func (n NativeFunc) Call(ip *Interp, args []any) (any, error) {
	if n.Func == nil {
		return nil, fmt.Errorf("native function %s is missing", n.Name)
	}
	return n.Func(ip, args)
}
