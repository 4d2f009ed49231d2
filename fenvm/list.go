package fenvm

// List is the script-level sequence type. Scripts mutate lists in place, so
// it is a pointer type at the value level.
type List struct {
	Elements []any
}

// NewList wraps elements without copying.
func NewList(elements ...any) *List {
	return &List{Elements: elements}
}

// Len returns the element count.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Elements)
}

// index normalizes a possibly negative index and reports whether it is in
// range.
func (l *List) index(i int64) (int, bool) {
	n := int64(l.Len())
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return int(i), true
}
