// Package throttle coalesces bursts of triggers into at most one call per
// window, always on the trailing edge.
package throttle

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Throttle calls fn at most once per window. The first Trigger after a quiet
// period arms a timer; every Trigger until it fires is folded into that one
// call. fn is expected to read whatever value is latest when it runs.
type Throttle struct {
	window time.Duration
	fn     func()
	clock  clockwork.Clock

	// run serializes calls to fn so a late timer call never finishes
	// after a newer Flush.
	run sync.Mutex

	mu      sync.Mutex
	timer   clockwork.Timer
	gen     uint64
	pending bool
	stopped bool
}

// Option configures a Throttle.
type Option func(*Throttle)

// WithClock substitutes the clock, typically a clockwork.FakeClock in tests.
func WithClock(c clockwork.Clock) Option {
	return func(t *Throttle) { t.clock = c }
}

// New returns a throttle for fn. A non-positive window makes every Trigger
// call fn synchronously.
func New(window time.Duration, fn func(), opts ...Option) *Throttle {
	t := &Throttle{window: window, fn: fn, clock: clockwork.NewRealClock()}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Trigger records that fn should run. It never blocks on fn unless the
// window is zero.
func (t *Throttle) Trigger() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.window <= 0 {
		t.mu.Unlock()
		t.run.Lock()
		defer t.run.Unlock()
		t.fn()
		return
	}
	t.pending = true
	if t.timer == nil {
		t.gen++
		gen := t.gen
		t.timer = t.clock.AfterFunc(t.window, func() { t.fire(gen) })
	}
	t.mu.Unlock()
}

func (t *Throttle) fire(gen uint64) {
	t.run.Lock()
	defer t.run.Unlock()

	t.mu.Lock()
	if gen != t.gen {
		// superseded by Flush or Stop
		t.mu.Unlock()
		return
	}
	t.timer = nil
	run := t.pending && !t.stopped
	t.pending = false
	t.mu.Unlock()

	if run {
		t.fn()
	}
}

// Flush runs a pending call now instead of at the end of the window,
// after any call already in progress. It reports whether fn was called.
func (t *Throttle) Flush() bool {
	t.run.Lock()
	defer t.run.Unlock()

	t.mu.Lock()
	t.disarm()
	run := t.pending && !t.stopped
	t.pending = false
	t.mu.Unlock()

	if run {
		t.fn()
	}
	return run
}

// Stop drops any pending call and waits for one in progress; later
// Triggers are ignored. It must not be called from fn.
func (t *Throttle) Stop() {
	t.mu.Lock()
	t.disarm()
	t.pending = false
	t.stopped = true
	t.mu.Unlock()

	// wait out a running fn
	t.run.Lock()
	t.run.Unlock()
}

// Pending reports whether a call is scheduled.
func (t *Throttle) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// disarm must be called with mu held.
func (t *Throttle) disarm() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}
