package caches

import (
	"sync"

	"github.com/fenlang/fen/fenvm"
)

// Programs caches compiled programs by source key. A compiled program is
// immutable, so a cached one may be shared by concurrent evaluations.
type Programs struct {
	mu       sync.Mutex
	programs map[string]*fenvm.Program
}

func NewPrograms() *Programs {
	return &Programs{
		programs: make(map[string]*fenvm.Program),
	}
}

func (p *Programs) Load(key string, compile func() (*fenvm.Program, error)) (*fenvm.Program, error) {
	p.mu.Lock()
	if prog, ok := p.programs[key]; ok {
		p.mu.Unlock()
		return prog, nil
	}
	p.mu.Unlock()

	prog, err := compile()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.programs[key] = prog
	p.mu.Unlock()
	return prog, nil
}

func (p *Programs) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.programs)
}
