package submission

import (
	"sync"
	"time"
)

// Timer is the handle returned by a Scheduler.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The real one is time.AfterFunc.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealScheduler returns the wall-clock scheduler.
func RealScheduler() Scheduler { return realScheduler{} }

// Options configure a Tracker.
type Options struct {
	// Delay before a terminal state settles back to Idle.
	Delay time.Duration
	// ResetOnError makes Error settle the same way Success does.
	// When false, Error stays until the next attempt.
	ResetOnError bool
	Scheduler    Scheduler
	// OnSettle runs after the timed transition to Idle, outside the lock.
	OnSettle func(from Status)
}

// Tracker is the state machine shared by product saves and orders.
//
//	Idle -> Processing -> Success -> (Delay) -> Idle
//	                   \-> Error   -> (Delay, if ResetOnError) -> Idle
//
// Validation failures enter Error without passing through Processing.
type Tracker struct {
	opts Options

	mu      sync.Mutex
	status  Status
	message string
	timer   Timer
	gen     uint64
	closed  bool
}

func NewTracker(opts Options) *Tracker {
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler()
	}
	return &Tracker{opts: opts}
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{Status: t.status, Message: t.message}
}

// Begin enters Processing. It fails with ErrBusy while an attempt is in
// flight or a terminal state is waiting to settle.
func (t *Tracker) Begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if t.busyLocked() {
		return ErrBusy
	}
	t.stopLocked()
	t.status = Processing
	t.message = ""
	return nil
}

// Reject records a local validation failure. No network call was made.
func (t *Tracker) Reject(message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if t.busyLocked() {
		return ErrBusy
	}
	t.stopLocked()
	t.status = Error
	t.message = message
	if t.opts.ResetOnError {
		t.scheduleLocked(Error)
	}
	return nil
}

// Succeed moves Processing to Success. It reports false when the result
// arrived after Close or outside Processing and was dropped.
func (t *Tracker) Succeed(message string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.status != Processing {
		return false
	}
	t.status = Success
	t.message = message
	t.scheduleLocked(Success)
	return true
}

// Fail moves Processing to Error.
func (t *Tracker) Fail(message string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.status != Processing {
		return false
	}
	t.status = Error
	t.message = message
	if t.opts.ResetOnError {
		t.scheduleLocked(Error)
	}
	return true
}

// Close tears the tracker down. A pending settle never fires and later
// results are ignored.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.stopLocked()
}

// busyLocked reports an attempt in flight or a scheduled settle. Once
// entered, the timed return to Idle always runs.
func (t *Tracker) busyLocked() bool {
	switch t.status {
	case Processing, Success:
		return true
	case Error:
		return t.timer != nil
	}
	return false
}

func (t *Tracker) scheduleLocked(from Status) {
	t.stopLocked()
	gen := t.gen
	t.timer = t.opts.Scheduler.AfterFunc(t.opts.Delay, func() { t.settle(gen, from) })
}

// stopLocked invalidates any scheduled settle, even one whose timer
// already fired and is waiting on the lock.
func (t *Tracker) stopLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Tracker) settle(gen uint64, from Status) {
	t.mu.Lock()
	if t.closed || gen != t.gen || t.status != from {
		t.mu.Unlock()
		return
	}
	t.status = Idle
	t.message = ""
	t.timer = nil
	cb := t.opts.OnSettle
	t.mu.Unlock()

	if cb != nil {
		cb(from)
	}
}
