package caches

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"sync"

	"github.com/fenlang/fen/fenvm"
)

const (
	MemoLimit = 200

	// misses tolerated while full before the cache turns itself off
	memoMissLimit = 1000000
)

// Memo caches results of one callable keyed by the structural hash of its
// arguments. Hash collisions are resolved by comparing the stored arguments,
// so two calls share an entry only when every argument compares equal.
type Memo struct {
	mu      sync.Mutex
	fn      *fenvm.Closure
	entries map[uint64][]memoEntry
	size    int
	misses  int
	enabled bool
}

type memoEntry struct {
	args   []any
	result any
}

func NewMemo(fn *fenvm.Closure) *Memo {
	return &Memo{
		fn:      fn,
		entries: make(map[uint64][]memoEntry),
		enabled: true,
	}
}

func (m *Memo) Fn() *fenvm.Closure {
	return m.fn
}

func (m *Memo) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

// Call evaluates the callable inside a running interpreter, serving
// repeated argument lists from cache.
func (m *Memo) Call(ip *fenvm.Interp, args []any) (any, error) {
	return m.call(args, func() (any, error) {
		return ip.CallValue(m.fn, args...)
	})
}

// Execute is Call for use outside an evaluation.
func (m *Memo) Execute(ctx context.Context, vars fenvm.Context, args ...any) (any, error) {
	return m.call(args, func() (any, error) {
		return m.fn.Execute(ctx, vars, args...)
	})
}

// call serves from cache or invokes. The lock is dropped around invoke so
// the callable may call back into the same cache.
func (m *Memo) call(args []any, invoke func() (any, error)) (any, error) {
	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		return invoke()
	}

	key := callKey(m.fn, args)
	for _, entry := range m.entries[key] {
		if argsEqual(entry.args, args) {
			m.misses = 0
			result := entry.result
			m.mu.Unlock()
			return result, nil
		}
	}
	if m.size == MemoLimit {
		m.misses++
		if m.misses >= memoMissLimit {
			m.enabled = false
		}
	}
	m.mu.Unlock()

	result, err := invoke()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.enabled {
		if m.size >= MemoLimit {
			m.evictOne()
		} else {
			m.size++
		}
		m.entries[key] = append(m.entries[key], memoEntry{
			args:   args,
			result: result,
		})
	}
	m.mu.Unlock()
	return result, nil
}

func (m *Memo) evictOne() {
	for key, bucket := range m.entries {
		if len(bucket) <= 1 {
			delete(m.entries, key)
		} else {
			m.entries[key] = bucket[1:]
		}
		return
	}
}

func argsEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !fenvm.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func callKey(fn *fenvm.Closure, args []any) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(n uint64) {
		binary.LittleEndian.PutUint64(buf[:], n)
		h.Write(buf[:])
	}
	put(fn.Hash())
	for _, arg := range args {
		put(fenvm.Hash(arg))
	}
	return h.Sum64()
}
