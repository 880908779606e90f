// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package network

import (
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/particles"
	"github.com/gogpu/particles/driver"
)

// Config holds the tunables of a background network.
type Config struct {
	// Density is the viewport area, in square logical pixels, per particle.
	// It is doubled below MobileBreakpoint.
	Density float64

	// ConnectionDistance is the distance under which two particles are
	// linked.
	ConnectionDistance float64

	// MaxConnections caps the links drawn from one particle to
	// higher-indexed particles. Links are taken in index order.
	MaxConnections int

	// PointerRadius and PointerForce shape the position nudge away from the
	// pointer.
	PointerRadius float64
	PointerForce  float64

	// Speed bounds the initial velocity: each component is uniform in
	// [-Speed/2, Speed/2).
	Speed float64

	// MinRadius and MaxRadius bound particle disc radii.
	MinRadius float64
	MaxRadius float64

	LineWidth        float64
	MobileBreakpoint float64

	ParticleColor particles.Palette
	LineColor     particles.Palette
}

// DefaultConfig returns the stock network configuration.
func DefaultConfig() Config {
	return Config{
		Density:            12000,
		ConnectionDistance: 150,
		MaxConnections:     3,
		PointerRadius:      180,
		PointerForce:       0.02,
		Speed:              0.3,
		MinRadius:          0.5,
		MaxRadius:          2.0,
		LineWidth:          0.5,
		MobileBreakpoint:   768,
		ParticleColor:      translucent(0.25),
		LineColor:          translucent(0.06),
	}
}

// translucent returns white on dark and near-black on light at alpha a.
func translucent(a float64) particles.Palette {
	ink := gg.Hex("#111111")
	ink.A = a
	return particles.Palette{Dark: gg.RGBA{R: 1, G: 1, B: 1, A: a}, Light: ink}
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	cfg        Config
	rng        *rand.Rand
	driverOpts []driver.Option
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithDensity sets the area per particle.
func WithDensity(density float64) Option {
	return func(o *options) {
		o.cfg.Density = density
	}
}

// WithMaxConnections sets the per-particle link cap.
func WithMaxConnections(n int) Option {
	return func(o *options) {
		o.cfg.MaxConnections = n
	}
}

// WithConnectionDistance sets the link distance threshold.
func WithConnectionDistance(d float64) Option {
	return func(o *options) {
		o.cfg.ConnectionDistance = d
	}
}

// WithColors sets the particle and line palettes.
func WithColors(particle, line particles.Palette) Option {
	return func(o *options) {
		o.cfg.ParticleColor = particle
		o.cfg.LineColor = line
	}
}

// WithRand sets the random source used to seed particles.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rng = r
	}
}

// WithDriverOptions forwards options to the engine's frame driver.
func WithDriverOptions(opts ...driver.Option) Option {
	return func(o *options) {
		o.driverOpts = append(o.driverOpts, opts...)
	}
}
