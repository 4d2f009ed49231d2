package fenvm

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Display renders a value the way print and the REPL show it. Strings
// render raw at the top level and quoted inside containers. Self-referential
// lists and maps render as [...] at the point of the cycle.
func Display(v any) string {
	var b strings.Builder
	display(&b, v, false, make(map[uintptr]bool))
	return b.String()
}

func display(b *strings.Builder, v any, nested bool, seen map[uintptr]bool) {
	switch v := v.(type) {

	case nil:
		b.WriteString("null")

	case bool:
		b.WriteString(strconv.FormatBool(v))

	case int64:
		b.WriteString(strconv.FormatInt(v, 10))

	case float64:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))

	case string:
		if nested {
			b.WriteString(strconv.Quote(v))
		} else {
			b.WriteString(v)
		}

	case *List:
		id := reflect.ValueOf(v).Pointer()
		if seen[id] {
			b.WriteString("[...]")
			return
		}
		seen[id] = true
		b.WriteByte('[')
		for i, e := range v.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			display(b, e, true, seen)
		}
		b.WriteByte(']')
		delete(seen, id)

	case map[string]any:
		id := reflect.ValueOf(v).Pointer()
		if seen[id] {
			b.WriteString("{...}")
			return
		}
		seen[id] = true
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		b.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(key)
			b.WriteString(": ")
			display(b, v[key], true, seen)
		}
		b.WriteByte('}')
		delete(seen, id)

	case *Closure:
		b.WriteString(v.String())

	case NativeFunc:
		b.WriteString("native fn " + v.Name)

	default:
		fmt.Fprintf(b, "%v", v)
	}
}
