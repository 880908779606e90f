// Package input translates raw host input into engine state.
//
// The Adapter keeps [particles.Pointer] records in sync with pointer events,
// window-wide or local to an element, and turns bursts of resize events into
// one debounced callback per subscriber. Debounced callbacks are delivered
// through a [Queue] that the host drains on its main goroutine, so engines
// are only ever mutated from that goroutine.
package input

import (
	"slices"
	"time"

	"github.com/gogpu/particles"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithDelay sets the resize settle time. Defaults to DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(a *Adapter) {
		a.delay = d
	}
}

// WithTimers replaces the timer source, for tests.
func WithTimers(after AfterFunc) Option {
	return func(a *Adapter) {
		a.after = after
	}
}

type pointerWatch struct {
	target particles.Element
	p      *particles.Pointer
	inside bool
}

type resizeWatch struct {
	deb *Debouncer
}

// Adapter implements [particles.Events].
type Adapter struct {
	queue *Queue
	delay time.Duration
	after AfterFunc

	pointers []*pointerWatch
	resizes  []*resizeWatch
}

var _ particles.Events = (*Adapter)(nil)

// NewAdapter creates an Adapter that posts debounced work to q.
func NewAdapter(q *Queue, opts ...Option) *Adapter {
	a := &Adapter{
		queue: q,
		delay: DefaultDelay,
		after: RealTimers,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WatchPointer implements [particles.Events].
func (a *Adapter) WatchPointer(target particles.Element, p *particles.Pointer) func() {
	w := &pointerWatch{target: target, p: p}
	a.pointers = append(a.pointers, w)
	return func() {
		a.pointers = slices.DeleteFunc(a.pointers, func(x *pointerWatch) bool { return x == w })
	}
}

// OnResize implements [particles.Events].
func (a *Adapter) OnResize(fn func()) func() {
	w := &resizeWatch{deb: NewDebouncer(a.delay, a.after, a.queue.Post, fn)}
	a.resizes = append(a.resizes, w)
	return func() {
		w.deb.Cancel()
		a.resizes = slices.DeleteFunc(a.resizes, func(x *resizeWatch) bool { return x == w })
	}
}

// PointerMove delivers a pointer position in viewport coordinates.
func (a *Adapter) PointerMove(x, y float64) {
	for _, w := range a.pointers {
		if w.target == nil {
			w.p.Move(x, y)
			continue
		}
		b := w.target.Bounds()
		if b.Contains(x, y) {
			w.inside = true
			w.p.Move(x-b.X, y-b.Y)
		} else if w.inside {
			w.inside = false
			w.p.Leave()
		}
	}
}

// PointerLeave delivers the pointer leaving the window.
func (a *Adapter) PointerLeave() {
	for _, w := range a.pointers {
		w.inside = false
		w.p.Leave()
	}
}

// Resize delivers a raw viewport resize event.
func (a *Adapter) Resize() {
	for _, w := range a.resizes {
		w.deb.Trigger()
	}
}
