package fenvm

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"reflect"
)

// Equal reports deep equality of two script values. Numbers compare by
// value across int64 and float64. Lists, maps and closures compare
// structurally and cycle-safely, so self-referential values terminate.
func Equal(a, b any) bool {
	return equalValues(a, b, make(map[visitPair]bool))
}

// visitPair keys a comparison in progress. Lists and closures enter by
// pointer, maps by reflect pointer because maps are not comparable.
type visitPair struct {
	a, b any
}

func equalValues(a, b any, seen map[visitPair]bool) bool {
	switch x := a.(type) {

	case nil:
		return b == nil

	case bool:
		y, ok := b.(bool)
		return ok && x == y

	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false

	case float64:
		switch y := b.(type) {
		case int64:
			return x == float64(y)
		case float64:
			return x == y
		}
		return false

	case string:
		y, ok := b.(string)
		return ok && x == y

	case *List:
		y, ok := b.(*List)
		if !ok || x.Len() != y.Len() {
			return false
		}
		if x == y {
			return true
		}
		// a pair met again is a cycle, assume equal and let the rest decide
		pair := visitPair{x, y}
		if seen[pair] {
			return true
		}
		seen[pair] = true
		for i, e := range x.Elements {
			if !equalValues(e, y.Elements[i], seen) {
				return false
			}
		}
		return true

	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		xp := reflect.ValueOf(x).Pointer()
		yp := reflect.ValueOf(y).Pointer()
		if xp == yp {
			return true
		}
		pair := visitPair{xp, yp}
		if seen[pair] {
			return true
		}
		seen[pair] = true
		for k, v := range x {
			w, ok := y[k]
			if !ok || !equalValues(v, w, seen) {
				return false
			}
		}
		return true

	case *Closure:
		y, ok := b.(*Closure)
		return ok && closureEqual(x, y, seen)

	case NativeFunc:
		y, ok := b.(NativeFunc)
		return ok && x.Name == y.Name

	default:
		return reflect.DeepEqual(a, b)
	}
}

// Hash returns a structural hash consistent with Equal: equal values hash
// equal. Cycles through lists, maps and closures terminate.
func Hash(v any) uint64 {
	h := fnv.New64a()
	hashValue(h, v, make(map[any]bool))
	return h.Sum64()
}

func hashUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.Write(buf[:])
}

// hashValue writes the hashed form of v. The seen set holds the values on
// the current walk path; a revisit hashes as the '@' marker instead of
// recursing, and the entry is removed afterwards so a value shared on two
// branches hashes the same as two equal copies would.
func hashValue(h hash.Hash64, v any, seen map[any]bool) {
	switch x := v.(type) {

	case nil:
		h.Write([]byte{'z'})

	case bool:
		if x {
			h.Write([]byte{'b', 1})
		} else {
			h.Write([]byte{'b', 0})
		}

	case int64:
		// numbers hash through float64 so 1 and 1.0 collide on purpose
		h.Write([]byte{'n'})
		hashUint64(h, math.Float64bits(float64(x)))

	case float64:
		if x == 0 {
			x = 0 // fold -0 into +0, they compare equal
		}
		h.Write([]byte{'n'})
		hashUint64(h, math.Float64bits(x))

	case string:
		h.Write([]byte{'s'})
		hashUint64(h, uint64(len(x)))
		h.Write([]byte(x))

	case *List:
		h.Write([]byte{'l'})
		if seen[x] {
			h.Write([]byte{'@'})
			return
		}
		seen[x] = true
		hashUint64(h, uint64(x.Len()))
		for _, e := range x.Elements {
			hashValue(h, e, seen)
		}
		delete(seen, x)

	case map[string]any:
		h.Write([]byte{'m'})
		id := reflect.ValueOf(x).Pointer()
		if seen[id] {
			h.Write([]byte{'@'})
			return
		}
		seen[id] = true
		// map iteration order is random, combine entry hashes by sum
		hashUint64(h, uint64(len(x)))
		var sum uint64
		for k, v := range x {
			eh := fnv.New64a()
			hashValue(eh, k, seen)
			hashValue(eh, v, seen)
			sum += eh.Sum64()
		}
		hashUint64(h, sum)
		delete(seen, id)

	case *Closure:
		closureHash(h, x, seen)

	case NativeFunc:
		h.Write([]byte{'f'})
		h.Write([]byte(x.Name))

	default:
		h.Write([]byte{'o'})
		h.Write([]byte(reflect.TypeOf(v).String()))
	}
}
