// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package driver

import (
	"math"
	"testing"

	"github.com/gogpu/particles"
)

// manualScheduler runs requested callbacks only when frame is called.
type manualScheduler struct {
	next    particles.FrameID
	pending map[particles.FrameID]func()
	order   []particles.FrameID
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: make(map[particles.FrameID]func())}
}

func (s *manualScheduler) RequestFrame(fn func()) particles.FrameID {
	s.next++
	s.pending[s.next] = fn
	s.order = append(s.order, s.next)
	return s.next
}

func (s *manualScheduler) CancelFrame(id particles.FrameID) {
	delete(s.pending, id)
}

func (s *manualScheduler) frame() {
	order := s.order
	s.order = nil
	for _, id := range order {
		if fn, ok := s.pending[id]; ok {
			delete(s.pending, id)
			fn()
		}
	}
}

func TestDriverAdvancesFixedStep(t *testing.T) {
	s := newManualScheduler()
	var times []float64
	d := New(s, func(t float64) { times = append(times, t) })
	d.Start()

	for range 3 {
		s.frame()
	}

	if len(times) != 3 {
		t.Fatalf("rendered %d frames, want 3", len(times))
	}
	for i, got := range times {
		want := DefaultStep * float64(i+1)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("frame %d time = %v, want %v", i, got, want)
		}
	}
	if len(s.pending) != 1 {
		t.Errorf("pending callbacks = %d, want exactly one re-armed tick", len(s.pending))
	}
}

func TestDriverGateKeepsLoopAlive(t *testing.T) {
	s := newManualScheduler()
	visible := false
	rendered := 0
	d := New(s, func(float64) { rendered++ }, WithGate(func() bool { return visible }))
	d.Start()

	for range 5 {
		s.frame()
	}
	if rendered != 0 {
		t.Errorf("rendered %d frames while hidden, want 0", rendered)
	}
	if d.Time() != 0 {
		t.Errorf("Time() = %v while hidden, want 0", d.Time())
	}
	if len(s.pending) != 1 {
		t.Fatal("hidden driver must keep one tick armed")
	}

	visible = true
	s.frame()
	if rendered != 1 {
		t.Errorf("rendered %d frames after resume, want 1", rendered)
	}
	r, sk := d.Stats()
	if r != 1 || sk != 5 {
		t.Errorf("Stats() = (%d, %d), want (1, 5)", r, sk)
	}
}

func TestDriverStopIsInstanceScoped(t *testing.T) {
	s := newManualScheduler()
	var a, b int
	da := New(s, func(float64) { a++ })
	db := New(s, func(float64) { b++ })
	da.Start()
	db.Start()

	s.frame()
	da.Stop()
	da.Stop() // idempotent
	s.frame()
	s.frame()

	if a != 1 {
		t.Errorf("stopped driver rendered %d frames, want 1", a)
	}
	if b != 3 {
		t.Errorf("other driver rendered %d frames, want 3", b)
	}
	if da.Running() {
		t.Error("Running() = true after Stop")
	}

	da.Start()
	s.frame()
	if a != 1 {
		t.Error("Start after Stop must not restart the loop")
	}
}

func TestDriverStopDuringTick(t *testing.T) {
	s := newManualScheduler()
	var d *Driver
	calls := 0
	d = New(s, func(float64) {
		calls++
		d.Stop()
	})
	d.Start()

	s.frame()
	s.frame()

	if calls != 1 {
		t.Errorf("render called %d times, want 1", calls)
	}
	if len(s.pending) != 0 {
		t.Errorf("pending = %d, a tick stopped mid-run must not re-arm", len(s.pending))
	}
}

func TestAllOf(t *testing.T) {
	open := func() bool { return true }
	closed := func() bool { return false }

	if !AllOf()() {
		t.Error("AllOf() with no gates should be open")
	}
	if !AllOf(open, open)() {
		t.Error("AllOf(open, open) should be open")
	}
	if AllOf(open, closed)() {
		t.Error("AllOf(open, closed) should be closed")
	}
}
