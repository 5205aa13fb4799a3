// Package submissiontest provides a hand-driven Scheduler so tests can fire
// timed transitions deterministically.
package submissiontest

import (
	"sync"
	"time"

	"github.com/MikeMC777/storefront/internal/submission"
)

type Scheduler struct {
	mu     sync.Mutex
	timers []*timer
}

type timer struct {
	s       *Scheduler
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func New() *Scheduler { return &Scheduler{} }

func (s *Scheduler) AfterFunc(d time.Duration, f func()) submission.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &timer{s: s, delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Pending counts timers that are neither stopped nor fired.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// LastDelay is the delay of the most recently scheduled timer.
func (s *Scheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return 0
	}
	return s.timers[len(s.timers)-1].delay
}

// FireAll runs every live timer, in scheduling order, and returns how many ran.
func (s *Scheduler) FireAll() int {
	s.mu.Lock()
	var due []*timer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}
