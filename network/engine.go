// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package network implements the ambient background network: drifting
// points that bounce off the viewport edges, shy away from the pointer and
// link to nearby neighbours.
//
// An Engine attaches one full-viewport canvas to a container element and
// animates it through its own [driver.Driver]. The particle count follows
// the viewport area; a resize rebuilds the particle set from scratch.
//
//	bg, err := network.New(pg, "canvas-container")
//	if err != nil {
//	    return err // the host has no 2D raster support
//	}
//	defer bg.Destroy()
package network

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gogpu/particles"
	"github.com/gogpu/particles/driver"
)

// Particle is one point of the network.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Count returns the number of particles for a width x height viewport:
// floor(area / density), with the density doubled below the mobile
// breakpoint.
func Count(width, height float64, cfg Config) int {
	if width <= 0 || height <= 0 || cfg.Density <= 0 {
		return 0
	}
	density := cfg.Density
	if width < cfg.MobileBreakpoint {
		density *= 2
	}
	return int(math.Floor(width * height / density))
}

// Engine is a background network instance.
type Engine struct {
	host particles.Host
	cfg  Config
	rng  *rand.Rand

	container particles.Element
	canvas    particles.CanvasElement
	dc        particles.Canvas

	width, height float64
	dpr           float64

	particles []Particle
	pointer   *particles.Pointer
	links     int

	driver    *driver.Driver
	cancels   []func()
	destroyed bool
}

// New attaches a network to the element registered as containerID.
//
// A missing container is not an error: the returned Engine is inert and
// Attached reports false. A canvas that cannot provide a raster context is
// fatal to this instance and returned as an error.
func New(host particles.Host, containerID string, opts ...Option) (*Engine, error) {
	o := options{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e := &Engine{
		host:    host,
		cfg:     o.cfg,
		rng:     o.rng,
		pointer: particles.NewPointer(),
	}

	log := particles.Logger()
	e.container = host.Lookup(containerID)
	if e.container == nil {
		log.Warn("network: container not found", "id", containerID)
		return e, nil
	}

	canvas, err := host.CreateCanvas(e.container)
	if err != nil {
		return nil, fmt.Errorf("network: create canvas: %w", err)
	}
	e.canvas = canvas
	if err := e.layout(); err != nil {
		canvas.Release()
		return nil, fmt.Errorf("network: %w", err)
	}
	e.seed()

	e.cancels = append(e.cancels,
		host.WatchPointer(nil, e.pointer),
		host.OnResize(e.Resize),
	)

	dopts := append([]driver.Option{driver.WithGate(host.PageVisible)}, o.driverOpts...)
	e.driver = driver.New(host, e.frame, dopts...)
	e.driver.Start()

	log.Info("network: created", "container", containerID, "particles", len(e.particles),
		"width", e.width, "height", e.height, "dpr", e.dpr)
	return e, nil
}

// Attached reports whether the engine found its container.
func (e *Engine) Attached() bool {
	return e.canvas != nil
}

// Particles returns the current particle set. The slice is owned by the
// engine and rebuilt on resize.
func (e *Engine) Particles() []Particle {
	return e.particles
}

// Pointer returns the engine's window-wide pointer record.
func (e *Engine) Pointer() *particles.Pointer {
	return e.pointer
}

// Links returns how many links the last rendered frame drew.
func (e *Engine) Links() int {
	return e.links
}

// Size returns the canvas size in logical pixels.
func (e *Engine) Size() (width, height float64) {
	return e.width, e.height
}

// Resize re-measures the viewport and rebuilds the particle set. It is
// called by the host's debounced resize signal.
func (e *Engine) Resize() {
	if e.destroyed || !e.Attached() {
		return
	}
	if err := e.layout(); err != nil {
		particles.Logger().Warn("network: resize failed", "err", err)
		return
	}
	e.seed()
	particles.Logger().Debug("network: rebuilt", "particles", len(e.particles),
		"width", e.width, "height", e.height)
}

// Destroy stops the frame loop, drops input bindings and releases the
// canvas. It is idempotent.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	if e.driver != nil {
		e.driver.Stop()
	}
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
	if e.canvas != nil {
		e.canvas.Release()
	}
	e.dc = nil
	e.particles = nil
	particles.Logger().Info("network: destroyed")
}

func (e *Engine) layout() error {
	width, height := e.host.Viewport()
	dpr := particles.ClampPixelRatio(e.host.PixelRatio())

	// An empty viewport still gets a 1x1 backing store so the engine
	// stays attached until the next resize.
	dc, err := e.canvas.Context(backing(width, dpr), backing(height, dpr))
	if err != nil {
		return err
	}
	e.canvas.SetSize(width, height)
	e.width, e.height, e.dpr = width, height, dpr
	e.dc = dc
	return nil
}

func backing(css, dpr float64) int {
	return max(1, int(math.Ceil(css*dpr)))
}

func (e *Engine) seed() {
	n := Count(e.width, e.height, e.cfg)
	ps := make([]Particle, n)
	span := e.cfg.MaxRadius - e.cfg.MinRadius
	for i := range ps {
		ps[i] = Particle{
			X:      e.rng.Float64() * e.width,
			Y:      e.rng.Float64() * e.height,
			VX:     (e.rng.Float64() - 0.5) * e.cfg.Speed,
			VY:     (e.rng.Float64() - 0.5) * e.cfg.Speed,
			Radius: e.rng.Float64()*span + e.cfg.MinRadius,
		}
	}
	e.particles = ps
}

func (e *Engine) frame(float64) {
	e.advance()
	e.paint(e.dc)
}

// advance integrates one step: move, bounce, then nudge away from the
// pointer.
func (e *Engine) advance() {
	r := e.cfg.PointerRadius
	for i := range e.particles {
		p := &e.particles[i]
		p.X += p.VX
		p.Y += p.VY

		// Reflect without clamping; a particle may overshoot by one step.
		if p.X < 0 || p.X > e.width {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > e.height {
			p.VY = -p.VY
		}

		dx := e.pointer.X - p.X
		dy := e.pointer.Y - p.Y
		dist := math.Hypot(dx, dy)
		if dist < r {
			force := (r - dist) / r
			p.X -= dx * force * e.cfg.PointerForce
			p.Y -= dy * force * e.cfg.PointerForce
		}
	}
}

// eachLink calls fn for every drawn link (i < j) with its opacity. Each
// particle contributes at most MaxConnections links, taken in index order.
func (e *Engine) eachLink(fn func(i, j int, opacity float64)) {
	limit := e.cfg.ConnectionDistance
	ps := e.particles
	for i := range ps {
		n := 0
		for j := i + 1; j < len(ps) && n < e.cfg.MaxConnections; j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if d < limit {
				fn(i, j, 1-d/limit)
				n++
			}
		}
	}
}

func (e *Engine) paint(dc particles.Canvas) {
	if dc == nil {
		return
	}
	theme := e.host.Theme()
	dot := e.cfg.ParticleColor.Pick(theme)
	line := e.cfg.LineColor.Pick(theme)

	dc.Identity()
	dc.Clear()
	dc.Scale(e.dpr, e.dpr)

	particles.SetColor(dc, dot, 1)
	for _, p := range e.particles {
		dc.DrawCircle(p.X, p.Y, p.Radius)
	}
	if err := dc.Fill(); err != nil {
		particles.Logger().Debug("network: fill failed", "err", err)
	}

	dc.SetLineWidth(e.cfg.LineWidth)
	e.links = 0
	e.eachLink(func(i, j int, opacity float64) {
		a, b := e.particles[i], e.particles[j]
		particles.SetColor(dc, line, opacity)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		if err := dc.Stroke(); err != nil {
			particles.Logger().Debug("network: stroke failed", "err", err)
		}
		e.links++
	})
}
