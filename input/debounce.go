package input

import (
	"sync"
	"time"
)

// DefaultDelay is the settle time applied to resize events.
const DefaultDelay = 200 * time.Millisecond

// Timer is the part of *time.Timer a Debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc starts a timer that calls f once after d.
type AfterFunc func(d time.Duration, f func()) Timer

// RealTimers schedules with time.AfterFunc.
func RealTimers(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer collapses a burst of triggers into one call of fn, delivered
// through post once no trigger arrived for delay.
type Debouncer struct {
	delay time.Duration
	after AfterFunc
	post  func(func())
	fn    func()

	mu    sync.Mutex
	timer Timer
	gen   uint64
	dead  bool
}

// NewDebouncer creates a Debouncer. post delivers the settled call to the
// owning goroutine, typically (*Queue).Post.
func NewDebouncer(delay time.Duration, after AfterFunc, post func(func()), fn func()) *Debouncer {
	if after == nil {
		after = RealTimers
	}
	return &Debouncer{delay: delay, after: after, post: post, fn: fn}
}

// Trigger restarts the settle timer.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dead {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.after(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	current := gen == d.gen && !d.dead
	if current {
		d.timer = nil
	}
	d.mu.Unlock()
	if !current {
		return
	}
	d.post(func() {
		d.mu.Lock()
		dead := d.dead
		d.mu.Unlock()
		if !dead {
			d.fn()
		}
	})
}

// Cancel stops the pending timer and disables the Debouncer. A call that
// was already posted but not yet drained is dropped.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dead = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
