package configs

import "reflect"

// Configurable marks typed option values that config scripts may define.
// ConfigExpr names the value as it appears in a script.
type Configurable interface {
	ConfigExpr() string
}

var configurableType = reflect.TypeFor[Configurable]()
