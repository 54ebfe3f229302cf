package debounce

import (
	"sync"
	"time"
)

// Option configures a Debouncer.
type Option func(*settings)

type settings struct {
	post func(func())
}

// WithPost routes fired handlers through post instead of running them on
// the clock's goroutine. The handler is skipped if the debouncer was
// cancelled or called again before post runs it.
func WithPost(post func(func())) Option {
	return func(s *settings) {
		s.post = post
	}
}

// Debouncer runs fn once per quiet window with the latest argument.
//
// Thread-safety: All methods are safe for concurrent use. The handler never
// runs with the debouncer's lock held.
type Debouncer[T any] struct {
	mu      sync.Mutex
	clock   Clock
	delay   time.Duration
	timer   Timer
	pending bool
	seq     uint64 // detects stale timer callbacks
	arg     T
	fn      func(T)
	post    func(func())
}

// New creates a debouncer that invokes fn after delay has passed without
// another Call. A nil clock means RealClock.
func New[T any](clock Clock, delay time.Duration, fn func(T), opts ...Option) *Debouncer[T] {
	if clock == nil {
		clock = RealClock{}
	}
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &Debouncer[T]{
		clock: clock,
		delay: delay,
		fn:    fn,
		post:  s.post,
	}
}

// Call schedules fn(arg) after the quiet window, replacing any pending
// call and its argument.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = true
	d.seq++
	d.arg = arg
	currentSeq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(currentSeq)
	})
}

func (d *Debouncer[T]) fire(seq uint64) {
	d.mu.Lock()
	if !d.pending || d.seq != seq {
		d.mu.Unlock()
		return
	}
	post := d.post
	d.mu.Unlock()

	if post != nil {
		post(func() { d.run(seq) })
		return
	}
	d.run(seq)
}

func (d *Debouncer[T]) run(seq uint64) {
	d.mu.Lock()
	if !d.pending || d.seq != seq || d.fn == nil {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.timer = nil
	arg := d.arg
	var zero T
	d.arg = zero
	d.mu.Unlock()

	d.fn(arg)
}

// Flush runs the pending call now, if there is one, and cancels its timer.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if !d.pending || d.fn == nil {
		d.mu.Unlock()
		return
	}
	d.seq++
	d.pending = false
	arg := d.arg
	var zero T
	d.arg = zero
	d.mu.Unlock()

	d.fn(arg)
}

// Cancel drops any pending call.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = false
	var zero T
	d.arg = zero
}

// Pending returns true if a call is waiting for its window to pass.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Delay returns the quiet window.
func (d *Debouncer[T]) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// SetDelay changes the quiet window for subsequent calls. A call already
// pending keeps its schedule.
func (d *Debouncer[T]) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
}
