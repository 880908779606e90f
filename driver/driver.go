// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package driver provides the per-instance frame loop shared by the
// particle engines.
//
// A Driver re-arms itself through a host [particles.Scheduler] on every
// tick, including ticks it skips because the instance is hidden, so
// resuming needs no re-initialisation. Animation time advances by a fixed
// nominal step per rendered tick instead of measured wall-clock delta.
package driver

import (
	"github.com/gogpu/particles"
)

// DefaultStep is the nominal time advanced per rendered tick (one frame at
// roughly 60 Hz).
const DefaultStep = 0.016

// RenderFunc draws one frame at animation time t.
type RenderFunc func(t float64)

// Gate reports whether a tick should render.
type Gate func() bool

// Always is a Gate that never skips.
func Always() bool { return true }

// AllOf returns a Gate that is open only while every gate is open.
func AllOf(gates ...Gate) Gate {
	return func() bool {
		for _, g := range gates {
			if !g() {
				return false
			}
		}
		return true
	}
}

// Option configures a Driver.
type Option func(*Driver)

// WithGate sets the visibility gate. Defaults to Always.
func WithGate(g Gate) Option {
	return func(d *Driver) {
		if g != nil {
			d.gate = g
		}
	}
}

// WithStep overrides the animation time step.
func WithStep(step float64) Option {
	return func(d *Driver) {
		d.step = step
	}
}

// Driver is a continuous request-next-frame loop owned by one engine
// instance. Stopping one Driver never affects another.
//
// Driver is not safe for concurrent use; the host runs ticks on a single
// goroutine, and a tick's continuation is requested only after its own
// synchronous work completes, so ticks never overlap.
type Driver struct {
	sched  particles.Scheduler
	render RenderFunc
	gate   Gate
	step   float64

	time    float64
	frame   particles.FrameID
	running bool
	stopped bool

	rendered uint64
	skipped  uint64
}

// New creates a stopped Driver that calls render on every visible tick.
func New(sched particles.Scheduler, render RenderFunc, opts ...Option) *Driver {
	d := &Driver{
		sched:  sched,
		render: render,
		gate:   Always,
		step:   DefaultStep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start arms the first tick. Starting a running or stopped Driver is a
// no-op.
func (d *Driver) Start() {
	if d.running || d.stopped {
		return
	}
	d.running = true
	d.frame = d.sched.RequestFrame(d.tick)
}

// Stop withdraws the pending tick. Stop is permanent and idempotent; a tick
// already executing runs to completion but does not re-arm.
func (d *Driver) Stop() {
	if d.stopped {
		return
	}
	d.stopped = true
	d.running = false
	if d.frame != 0 {
		d.sched.CancelFrame(d.frame)
		d.frame = 0
	}
}

func (d *Driver) tick() {
	d.frame = 0
	if d.stopped {
		return
	}
	if d.gate() {
		d.time += d.step
		d.render(d.time)
		d.rendered++
	} else {
		d.skipped++
	}
	if !d.stopped {
		d.frame = d.sched.RequestFrame(d.tick)
	}
}

// Time returns the current animation time.
func (d *Driver) Time() float64 { return d.time }

// Running reports whether a tick is armed.
func (d *Driver) Running() bool { return d.running }

// Stats returns the number of rendered and skipped ticks.
func (d *Driver) Stats() (rendered, skipped uint64) {
	return d.rendered, d.skipped
}
