package fenvm

// Context is the host-provided variable store. Names that no scope resolves
// are read from and written to it.
type Context interface {
	Get(name string) (any, bool)
	Set(name string, value any) bool
}

// MapContext is a Context over a plain map.
type MapContext map[string]any

var _ Context = MapContext{}

func (c MapContext) Get(name string) (any, bool) {
	v, ok := c[name]
	return v, ok
}

func (c MapContext) Set(name string, value any) bool {
	c[name] = value
	return true
}
