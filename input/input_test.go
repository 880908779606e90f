package input

import (
	"testing"
	"time"

	"github.com/gogpu/particles"
)

// fakeTimers records scheduled callbacks and fires them on demand.
type fakeTimers struct {
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (ft *fakeTimers) after(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	ft.timers = append(ft.timers, t)
	return t
}

// fireAll fires every timer that has not been stopped.
func (ft *fakeTimers) fireAll() {
	timers := ft.timers
	ft.timers = nil
	for _, t := range timers {
		if !t.stopped {
			t.stopped = true
			t.f()
		}
	}
}

type box struct {
	id string
	r  particles.Rect
}

func (b *box) ID() string             { return b.id }
func (b *box) Bounds() particles.Rect { return b.r }

func TestQueueDrainOrder(t *testing.T) {
	woken := 0
	q := NewQueue(func() { woken++ })

	var got []int
	q.Post(func() { got = append(got, 1) })
	q.Post(func() {
		got = append(got, 2)
		q.Post(func() { got = append(got, 3) })
	})

	if q.Len() != 2 || woken != 2 {
		t.Fatalf("Len() = %d, woken = %d, want 2, 2", q.Len(), woken)
	}
	if n := q.Drain(); n != 2 {
		t.Errorf("Drain() = %d, want 2", n)
	}
	if len(got) != 2 {
		t.Fatalf("ran %v, callbacks posted during Drain must wait", got)
	}
	q.Drain()
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("order = %v, want [1 2 3]", got)
	}
}

func TestDebouncerCollapsesBurst(t *testing.T) {
	ft := &fakeTimers{}
	q := NewQueue(nil)
	calls := 0
	d := NewDebouncer(DefaultDelay, ft.after, q.Post, func() { calls++ })

	for range 10 {
		d.Trigger()
	}
	for _, tm := range ft.timers {
		if tm.d != DefaultDelay {
			t.Errorf("timer delay = %v, want %v", tm.d, DefaultDelay)
		}
	}
	ft.fireAll()

	if calls != 0 {
		t.Fatal("debounced call must wait for Drain")
	}
	q.Drain()
	if calls != 1 {
		t.Errorf("calls = %d after burst of 10, want 1", calls)
	}
}

func TestDebouncerStaleFireIgnored(t *testing.T) {
	ft := &fakeTimers{}
	q := NewQueue(nil)
	calls := 0
	d := NewDebouncer(time.Millisecond, ft.after, q.Post, func() { calls++ })

	d.Trigger()
	first := ft.timers[0]
	d.Trigger()

	// A timer that raced past Stop still must not deliver.
	first.f()
	q.Drain()
	if calls != 0 {
		t.Errorf("stale timer delivered %d calls", calls)
	}

	ft.fireAll()
	q.Drain()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDebouncerCancelDropsPosted(t *testing.T) {
	ft := &fakeTimers{}
	q := NewQueue(nil)
	calls := 0
	d := NewDebouncer(time.Millisecond, ft.after, q.Post, func() { calls++ })

	d.Trigger()
	ft.fireAll()
	d.Cancel()
	q.Drain()
	d.Trigger()
	ft.fireAll()
	q.Drain()

	if calls != 0 {
		t.Errorf("calls = %d after Cancel, want 0", calls)
	}
}

func TestAdapterWindowPointer(t *testing.T) {
	a := NewAdapter(NewQueue(nil))
	p := particles.NewPointer()
	cancel := a.WatchPointer(nil, p)

	a.PointerMove(300, 400)
	if !p.Active || p.X != 300 || p.Y != 400 {
		t.Errorf("window pointer = %+v, want active at (300, 400)", *p)
	}

	a.PointerLeave()
	if p.Active || p.X != particles.FarAway {
		t.Errorf("after leave = %+v, want parked", *p)
	}

	cancel()
	a.PointerMove(1, 2)
	if p.Active {
		t.Error("cancelled watch must not receive events")
	}
}

func TestAdapterElementPointer(t *testing.T) {
	a := NewAdapter(NewQueue(nil))
	el := &box{id: "title", r: particles.Rect{X: 100, Y: 50, Width: 200, Height: 80}}
	p := particles.NewPointer()
	a.WatchPointer(el, p)

	a.PointerMove(10, 10)
	if p.Active {
		t.Fatal("pointer outside element must not activate it")
	}

	a.PointerMove(150, 60)
	if !p.Active || p.X != 50 || p.Y != 10 {
		t.Errorf("local pointer = %+v, want active at (50, 10)", *p)
	}

	a.PointerMove(400, 60)
	if p.Active || p.X != particles.FarAway || p.Y != particles.FarAway {
		t.Errorf("after leaving element = %+v, want parked", *p)
	}
}

func TestAdapterResizeDebounced(t *testing.T) {
	ft := &fakeTimers{}
	q := NewQueue(nil)
	a := NewAdapter(q, WithTimers(ft.after), WithDelay(50*time.Millisecond))

	var first, second int
	a.OnResize(func() { first++ })
	cancel := a.OnResize(func() { second++ })

	a.Resize()
	a.Resize()
	a.Resize()
	ft.fireAll()
	q.Drain()

	if first != 1 || second != 1 {
		t.Errorf("calls = (%d, %d), want (1, 1)", first, second)
	}

	cancel()
	a.Resize()
	ft.fireAll()
	q.Drain()
	if first != 2 || second != 1 {
		t.Errorf("after cancel calls = (%d, %d), want (2, 1)", first, second)
	}
}
