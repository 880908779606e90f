// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glyph

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gogpu/particles"
)

// Kind selects a glyph animation.
type Kind string

// Supported effects.
const (
	Pulse Kind = "pulse"
	Slice Kind = "slice"
)

// UnknownEffectError is returned for an effect name that is neither pulse
// nor slice.
type UnknownEffectError struct {
	Name string
}

func (e *UnknownEffectError) Error() string {
	return fmt.Sprintf("glyph: unknown effect %q", e.Name)
}

// ParseEffect maps an effect name to its Kind.
func ParseEffect(name string) (Kind, error) {
	switch k := Kind(name); k {
	case Pulse, Slice:
		return k, nil
	default:
		return "", &UnknownEffectError{Name: name}
	}
}

// Dot is one disc to paint, in canvas logical pixels.
type Dot struct {
	X, Y, R float64
}

// minRadius keeps every dot visible.
const minRadius = 0.5

// Effect animates a particle set. The two implementations are chosen once
// per instance at generation time.
type Effect interface {
	// Kind returns the effect tag.
	Kind() Kind

	// advance steps particles to time t under ptr and appends the discs to
	// paint to dots.
	advance(ps []Particle, ptr *particles.Pointer, t float64, dots []Dot) []Dot
}

// Pulse tunables.
const (
	pulseRadius     = 80.0
	pulseImpulse    = 0.03
	pulseSizeBump   = 2.0
	pulseDamping    = 0.92
	pulseSpring     = 0.06
	pulseStiff      = 0.15
	pulseSizeEasing = 0.1
	pulseBreathAmp  = 0.3
	pulseBreathFreq = 2.0
)

// pulse breathes particle sizes and pushes particles away from the pointer
// with a velocity impulse, springing them back to their origin.
type pulse struct{}

func (pulse) Kind() Kind { return Pulse }

func (pulse) advance(ps []Particle, ptr *particles.Pointer, t float64, dots []Dot) []Dot {
	for i := range ps {
		p := &ps[i]
		target := p.BaseSize + math.Sin(t*pulseBreathFreq+p.Phase)*pulseBreathAmp

		p.VX *= pulseDamping
		p.VY *= pulseDamping

		if ptr.Active {
			dx := ptr.X - p.X
			dy := ptr.Y - p.Y
			if dist := math.Hypot(dx, dy); dist < pulseRadius {
				force := (pulseRadius - dist) / pulseRadius
				if !p.Resistant {
					p.VX -= dx * force * pulseImpulse
					p.VY -= dy * force * pulseImpulse
				}
				target += force * pulseSizeBump
			}
		}

		k := pulseSpring
		if p.Resistant {
			k = pulseStiff
		}
		p.VX += (p.OriginX - p.X) * k
		p.VY += (p.OriginY - p.Y) * k

		p.X += p.VX
		p.Y += p.VY
		p.Size += (target - p.Size) * pulseSizeEasing

		dots = append(dots, Dot{X: p.X, Y: p.Y, R: math.Max(minRadius, p.Size)})
	}
	return dots
}

// Slice tunables.
const (
	sliceWaveX      = 8.0
	sliceWaveY      = 3.0
	sliceEasing     = 0.05
	slicePushRadius = 60.0
	slicePush       = 30.0
	sliceBreathAmp  = 0.2
	sliceBreathFreq = 1.5
	minSlices       = 5
	maxSlices       = 8
)

// Band is one horizontal slice of the canvas. Particles whose origin y lies
// in [YStart, YEnd) move with its offset.
type Band struct {
	YStart, YEnd     float64
	OffsetX, OffsetY float64
	TargetX, TargetY float64
	Phase, Speed     float64
}

// sliceEffect moves horizontal bands of particles as rigid groups.
type sliceEffect struct {
	bands []Band
	width float64
}

// newSliceEffect partitions [0, height) into 5 to 8 contiguous bands and
// assigns every particle to the band containing its origin.
func newSliceEffect(ps []Particle, width, height float64, rng *rand.Rand) *sliceEffect {
	n := minSlices + rng.IntN(maxSlices-minSlices+1)
	bands := make([]Band, n)
	for i := range bands {
		bands[i] = Band{
			YStart: float64(i) / float64(n) * height,
			YEnd:   float64(i+1) / float64(n) * height,
			Phase:  rng.Float64() * 2 * math.Pi,
			Speed:  0.005 + rng.Float64()*0.01,
		}
	}
	for i := range ps {
		ps[i].band = -1
		for j, b := range bands {
			if ps[i].OriginY >= b.YStart && ps[i].OriginY < b.YEnd {
				ps[i].band = j
				break
			}
		}
	}
	return &sliceEffect{bands: bands, width: width}
}

func (*sliceEffect) Kind() Kind { return Slice }

// Bands returns the current bands.
func (s *sliceEffect) Bands() []Band { return s.bands }

func (s *sliceEffect) advance(ps []Particle, ptr *particles.Pointer, t float64, dots []Dot) []Dot {
	for i := range s.bands {
		b := &s.bands[i]
		b.TargetX = math.Sin(t*3+b.Phase) * sliceWaveX
		b.TargetY = math.Cos(t*2+b.Phase) * sliceWaveY

		if ptr.Active {
			dist := math.Abs(ptr.Y - (b.YStart+b.YEnd)/2)
			if dist < slicePushRadius {
				force := (slicePushRadius - dist) / slicePushRadius
				dir := -1.0
				if ptr.X > s.width/2 {
					dir = 1
				}
				b.TargetX += dir * force * slicePush
			}
		}

		b.OffsetX += (b.TargetX - b.OffsetX) * sliceEasing
		b.OffsetY += (b.TargetY - b.OffsetY) * sliceEasing
	}

	for i := range ps {
		p := &ps[i]
		x, y := p.OriginX, p.OriginY
		if p.band >= 0 {
			x += s.bands[p.band].OffsetX
			y += s.bands[p.band].OffsetY
		}
		p.X, p.Y = x, y
		r := p.BaseSize + math.Sin(t*sliceBreathFreq+p.Phase)*sliceBreathAmp
		dots = append(dots, Dot{X: x, Y: y, R: math.Max(minRadius, r)})
	}
	return dots
}

func newEffect(kind Kind, ps []Particle, width, height float64, rng *rand.Rand) Effect {
	if kind == Slice {
		return newSliceEffect(ps, width, height, rng)
	}
	return pulse{}
}
