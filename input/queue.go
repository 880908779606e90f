package input

import "sync"

// Queue hands callbacks from other goroutines (timers, window-system
// threads) to the host's main loop. Post is safe for concurrent use; Drain
// must be called from the goroutine that owns the engines.
type Queue struct {
	mu   sync.Mutex
	fns  []func()
	wake func()
}

// NewQueue creates an empty queue. wake, if non-nil, is called after every
// Post so a blocked event loop can be woken (glfw.PostEmptyEvent, for
// instance).
func NewQueue(wake func()) *Queue {
	return &Queue{wake: wake}
}

// Post schedules fn to run on the next Drain.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
	if q.wake != nil {
		q.wake()
	}
}

// Drain runs every queued callback in posting order and returns how many
// ran. Callbacks posted while draining run on the next Drain.
func (q *Queue) Drain() int {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Len returns the number of queued callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns)
}
