package logs

import (
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
}

// Span identifies one evaluation or request in log output.
type Span string

type spanKeyType struct{}

var SpanKey spanKeyType
