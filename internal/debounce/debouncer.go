package debounce

import (
	"sync"
	"time"
)

// Debouncer publishes the last value passed to Update once delay has passed
// without another update. Safe for concurrent use.
type Debouncer[T any] struct {
	delay   time.Duration
	publish func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending T
	armed   bool
	stopped bool
}

// New creates a Debouncer that calls publish on its own goroutine.
func New[T any](delay time.Duration, publish func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, publish: publish}
}

// Update replaces the pending value and restarts the timer.
// Updates after Stop are ignored.
func (d *Debouncer[T]) Update(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// A stale timer can still fire if Stop raced with expiry.
	if d.stopped || !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.pending
	d.armed = false
	d.mu.Unlock()

	d.publish(v)
}

// Pending reports whether a value is waiting to be published.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Flush publishes the pending value immediately on the caller's goroutine.
// Returns false when nothing was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.armed || d.stopped {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	v := d.pending
	d.armed = false
	d.mu.Unlock()

	d.publish(v)
	return true
}

// Stop cancels any pending publication. The Debouncer cannot be reused.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.armed = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
}
