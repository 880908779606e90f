// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glyph

import (
	"math/rand/v2"

	"github.com/gogpu/particles/driver"
	"github.com/gogpu/particles/outline"
)

// Config is the immutable configuration of one glyph engine instance.
// Start from DefaultConfig; zero numeric fields fall back to its values.
type Config struct {
	// ElementID names the canvas to draw on; ContainerID names the element
	// whose width sizes it.
	ElementID   string
	ContainerID string

	Text   string
	Effect Kind

	// ColorDark and ColorLight are hex colours picked by the theme.
	ColorDark  string
	ColorLight string

	// BaseSize scales particle radii; BaseDensity is the sampling grid step
	// in logical pixels.
	BaseSize    float64
	BaseDensity int

	// EnableResistance lets a minority of particles ignore pointer impulses
	// and spring back more stiffly.
	EnableResistance bool
	ResistantChance  float64

	// FontRatio is the font size as a fraction of the canvas width.
	// MinHeight floors the canvas height. BaselineRatio places the baseline
	// as a fraction of the font size.
	FontRatio     float64
	MinHeight     float64
	BaselineRatio float64

	// AlphaThreshold is the mask alpha a sample must exceed to seed a
	// particle.
	AlphaThreshold uint8

	// MobileBreakpoint is the canvas width under which the sampling step
	// is doubled.
	MobileBreakpoint float64
}

// DefaultConfig returns the stock configuration with the given target ids.
func DefaultConfig(elementID, containerID string) Config {
	return Config{
		ElementID:        elementID,
		ContainerID:      containerID,
		Text:             "TEXT",
		Effect:           Pulse,
		ColorDark:        "#ffffff",
		ColorLight:       "#111111",
		BaseSize:         2.4,
		BaseDensity:      4,
		EnableResistance: true,
		ResistantChance:  0.1,
		FontRatio:        0.12,
		MinHeight:        60,
		BaselineRatio:    0.85,
		AlphaThreshold:   128,
		MobileBreakpoint: 768,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig(c.ElementID, c.ContainerID)
	if c.Effect == "" {
		c.Effect = d.Effect
	}
	if c.ColorDark == "" {
		c.ColorDark = d.ColorDark
	}
	if c.ColorLight == "" {
		c.ColorLight = d.ColorLight
	}
	if c.BaseSize <= 0 {
		c.BaseSize = d.BaseSize
	}
	if c.BaseDensity <= 0 {
		c.BaseDensity = d.BaseDensity
	}
	if c.ResistantChance <= 0 {
		c.ResistantChance = d.ResistantChance
	}
	if c.FontRatio <= 0 {
		c.FontRatio = d.FontRatio
	}
	if c.MinHeight <= 0 {
		c.MinHeight = d.MinHeight
	}
	if c.BaselineRatio <= 0 {
		c.BaselineRatio = d.BaselineRatio
	}
	if c.AlphaThreshold == 0 {
		c.AlphaThreshold = d.AlphaThreshold
	}
	if c.MobileBreakpoint <= 0 {
		c.MobileBreakpoint = d.MobileBreakpoint
	}
	return c
}

// Option configures an Engine beyond its Config.
type Option func(*options)

type options struct {
	font       *outline.Font
	rng        *rand.Rand
	driverOpts []driver.Option
}

// WithFont uses f instead of the process-wide font set by LoadFont.
func WithFont(f *outline.Font) Option {
	return func(o *options) {
		o.font = f
	}
}

// WithRand sets the random source for particle attributes and slices.
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
