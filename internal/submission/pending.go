package submission

import "sync"

// Pending is the "are you sure?" marker of a two-step destructive action.
// The zero value holds nothing.
type Pending[T comparable] struct {
	mu  sync.Mutex
	v   T
	set bool
}

func (p *Pending[T]) Mark(v T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.v, p.set = v, true
}

func (p *Pending[T]) Get() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.v, p.set
}

func (p *Pending[T]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	var zero T
	p.v, p.set = zero, false
}

// ClearIf clears the marker only if it still holds v, so a newer mark made
// while a confirmation was in flight survives.
func (p *Pending[T]) ClearIf(v T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.set && p.v == v {
		var zero T
		p.v, p.set = zero, false
	}
}
