package configs

import (
	"fmt"
	"reflect"

	"github.com/reusee/dscope"
)

// FenFork forks scope with Configurable values bound from script exports.
// An export binds when its name matches the Configurable type name and its
// value converts to that type.
func FenFork(scope dscope.Scope, exports map[string]any) (dscope.Scope, error) {
	var defs []any
	for t := range scope.AllTypes() {
		if !t.Implements(configurableType) {
			continue
		}
		value, ok := exports[t.Name()]
		if !ok || value == nil {
			continue
		}
		v := reflect.ValueOf(value)
		if !v.Type().ConvertibleTo(t) {
			return scope, fmt.Errorf("config %s: cannot use value of type %T", t.Name(), value)
		}
		// dscope definitions must be provider funcs or pointers
		def := reflect.New(t)
		def.Elem().Set(v.Convert(t))
		defs = append(defs, def.Interface())
	}
	if len(defs) == 0 {
		return scope, nil
	}
	return scope.Fork(defs...), nil
}
