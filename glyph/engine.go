// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glyph renders text as an animated particle field.
//
// An Engine lays the configured text out with an [outline.Font], fills the
// outline into an offscreen alpha mask, seeds one particle per covered grid
// point and animates the set with the pulse or slice effect. The font is
// normally the process-wide one set by LoadFont:
//
//	if _, err := glyph.LoadFont(ctx, "assets/fonts/Inter-Bold.ttf"); err != nil {
//	    return err
//	}
//	cfg := glyph.DefaultConfig("hero-title", "hero")
//	cfg.Text = "PARTICLES"
//	cfg.Effect = glyph.Slice
//	title, err := glyph.New(pg, cfg)
//
// An engine created before the font arrives stays empty until Regenerate is
// called on the host goroutine. Engines never share particle state; several
// may run on one page.
package glyph

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gogpu/particles"
	"github.com/gogpu/particles/driver"
	"github.com/gogpu/particles/outline"
)

// State is the lifecycle stage of an Engine.
type State int

// Engine states.
const (
	Uninitialized State = iota
	Ready
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Engine is one text-to-particle instance.
type Engine struct {
	host particles.Host
	cfg  Config
	font *outline.Font
	rng  *rand.Rand

	canvas    particles.CanvasElement
	container particles.Element
	dc        particles.Canvas
	palette   particles.Palette

	width, height float64
	dpr           float64

	particles []Particle
	effect    Effect
	dots      []Dot
	pointer   *particles.Pointer

	driver  *driver.Driver
	cancels []func()
	state   State
}

// New binds an engine to the canvas cfg.ElementID, sizes it from
// cfg.ContainerID, generates particles and starts the frame loop.
//
// A missing canvas or container leaves an inert engine (Attached reports
// false). An unknown effect or a canvas without raster support is an error.
func New(host particles.Host, cfg Config, opts ...Option) (*Engine, error) {
	cfg = cfg.withDefaults()
	if _, err := ParseEffect(string(cfg.Effect)); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e := &Engine{
		host:    host,
		cfg:     cfg,
		font:    o.font,
		rng:     o.rng,
		palette: particles.HexPalette(cfg.ColorDark, cfg.ColorLight),
		pointer: particles.NewPointer(),
	}

	log := particles.Logger()
	canvas, ok := host.Lookup(cfg.ElementID).(particles.CanvasElement)
	if !ok {
		log.Warn("glyph: canvas not found", "id", cfg.ElementID)
		return e, nil
	}
	container := host.Lookup(cfg.ContainerID)
	if container == nil {
		log.Warn("glyph: container not found", "id", cfg.ContainerID)
		return e, nil
	}
	e.canvas, e.container = canvas, container

	if err := e.layout(); err != nil {
		e.canvas, e.container = nil, nil
		return nil, fmt.Errorf("glyph: %w", err)
	}
	e.generate()

	e.cancels = append(e.cancels,
		host.WatchPointer(canvas, e.pointer),
		host.OnResize(e.Resize),
	)

	gate := driver.AllOf(host.PageVisible, func() bool { return host.InView(canvas) })
	dopts := append([]driver.Option{driver.WithGate(gate)}, o.driverOpts...)
	e.driver = driver.New(host, e.frame, dopts...)
	e.driver.Start()

	log.Info("glyph: created", "canvas", cfg.ElementID, "text", cfg.Text,
		"effect", cfg.Effect, "state", e.state)
	return e, nil
}

// Attached reports whether the engine found its canvas and container.
func (e *Engine) Attached() bool {
	return e.canvas != nil
}

// State returns the lifecycle stage.
func (e *Engine) State() State {
	return e.state
}

// Particles returns the current particle set, owned by the engine.
func (e *Engine) Particles() []Particle {
	return e.particles
}

// Effect returns the active effect, or nil before the first successful
// generation.
func (e *Engine) Effect() Effect {
	return e.effect
}

// Bands returns the slice bands, or nil for the pulse effect.
func (e *Engine) Bands() []Band {
	if s, ok := e.effect.(*sliceEffect); ok {
		return s.Bands()
	}
	return nil
}

// Size returns the canvas size in logical pixels.
func (e *Engine) Size() (width, height float64) {
	return e.width, e.height
}

// Pointer returns the canvas-local pointer record.
func (e *Engine) Pointer() *particles.Pointer {
	return e.pointer
}

// Regenerate rebuilds the particle set for the current canvas size. Call it
// once the font has loaded.
func (e *Engine) Regenerate() error {
	if e.state == Destroyed {
		return particles.ErrDestroyed
	}
	if e.Attached() {
		e.generate()
	}
	return nil
}

// Resize re-measures the container, resizes the canvas and regenerates.
func (e *Engine) Resize() {
	if e.state == Destroyed || !e.Attached() {
		return
	}
	if err := e.layout(); err != nil {
		particles.Logger().Warn("glyph: resize failed", "canvas", e.cfg.ElementID, "err", err)
		return
	}
	e.generate()
}

// Destroy stops the frame loop and drops pointer, resize and canvas
// bindings. It is idempotent.
func (e *Engine) Destroy() {
	if e.state == Destroyed {
		return
	}
	e.state = Destroyed
	if e.driver != nil {
		e.driver.Stop()
	}
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
	if e.dc != nil {
		e.dc.Clear()
		e.dc = nil
	}
	e.particles, e.dots, e.effect = nil, nil, nil
	particles.Logger().Info("glyph: destroyed", "canvas", e.cfg.ElementID)
}

func (e *Engine) currentFont() *outline.Font {
	if e.font != nil {
		return e.font
	}
	return Font()
}

func (e *Engine) layout() error {
	width := e.container.Bounds().Width
	height := e.cfg.CanvasHeight(width)
	dpr := particles.ClampPixelRatio(e.host.PixelRatio())

	// A collapsed element still gets a 1x1 backing store so the engine
	// stays attached until it is laid out again.
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

// generate rebuilds particles from scratch. Without a font it leaves an
// empty set.
func (e *Engine) generate() {
	log := particles.Logger()
	f := e.currentFont()
	if f == nil {
		e.particles, e.effect = nil, nil
		log.Debug("glyph: font not loaded, skipping generation", "canvas", e.cfg.ElementID)
		return
	}

	mask, err := rasterize(f, e.cfg, e.width, e.height)
	if err != nil {
		e.particles, e.effect = nil, nil
		log.Warn("glyph: rasterize failed", "canvas", e.cfg.ElementID, "err", err)
		return
	}

	step := e.cfg.Density(e.width)
	e.particles = sample(mask, e.cfg, step, e.rng)
	e.effect = newEffect(e.cfg.Effect, e.particles, e.width, e.height, e.rng)
	e.state = Ready

	log.Debug("glyph: generated", "canvas", e.cfg.ElementID, "particles", len(e.particles),
		"bands", len(e.Bands()), "density", step, "width", e.width, "height", e.height)
}

func (e *Engine) frame(t float64) {
	dc := e.dc
	if dc == nil {
		return
	}
	dc.Identity()
	dc.Clear()
	if e.effect == nil {
		return
	}
	dc.Scale(e.dpr, e.dpr)

	e.dots = e.effect.advance(e.particles, e.pointer, t, e.dots[:0])
	particles.SetColor(dc, e.palette.Pick(e.host.Theme()), 1)
	for _, d := range e.dots {
		dc.DrawCircle(d.X, d.Y, d.R)
	}
	if err := dc.Fill(); err != nil {
		particles.Logger().Debug("glyph: fill failed", "canvas", e.cfg.ElementID, "err", err)
	}
}
