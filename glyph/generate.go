// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glyph

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
	"github.com/gogpu/particles/outline"
)

// Particle is one sample of the glyph mask.
type Particle struct {
	// OriginX and OriginY are the sample point. They never change.
	OriginX, OriginY float64

	X, Y   float64
	VX, VY float64

	Size     float64
	BaseSize float64
	Phase    float64
	Speed    float64

	Resistant bool

	// band is the slice index, or -1 outside the slice effect.
	band int
}

// FontSize returns the font size for a canvas width.
func (c Config) FontSize(width float64) float64 {
	return width * c.FontRatio
}

// CanvasHeight returns the canvas height for a canvas width.
func (c Config) CanvasHeight(width float64) float64 {
	return math.Max(c.FontSize(width)*1.2, c.MinHeight)
}

// Density returns the sampling step for a canvas width.
func (c Config) Density(width float64) int {
	d := float64(c.BaseDensity)
	if width < c.MobileBreakpoint {
		d *= 2
	}
	return max(2, int(math.Round(d)))
}

// layoutText returns the text outline centred in a width x height canvas.
func layoutText(f *outline.Font, cfg Config, width, height float64) *gg.Path {
	size := cfg.FontSize(width)
	baseline := size * cfg.BaselineRatio

	bb := f.Path(cfg.Text, 0, baseline, size).BoundingBox()
	offX := (width-bb.Width())/2 - bb.Min.X
	offY := (height-bb.Height())/2 - bb.Min.Y

	return f.Path(cfg.Text, offX, baseline+offY-bb.Height()*0.05, size)
}

// rasterize fills the centred outline into an offscreen context and returns
// its alpha mask.
func rasterize(f *outline.Font, cfg Config, width, height float64) (*gg.Mask, error) {
	w := max(1, int(math.Ceil(width)))
	h := max(1, int(math.Ceil(height)))

	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()

	dc.SetRGBA(0, 0, 0, 1)
	if err := outline.Fill(dc, layoutText(f, cfg, width, height)); err != nil {
		return nil, err
	}
	return gg.NewMaskFromAlpha(dc.Image()), nil
}

// sample seeds a particle at every grid point whose mask alpha exceeds the
// threshold.
func sample(mask *gg.Mask, cfg Config, step int, rng *rand.Rand) []Particle {
	var ps []Particle
	jitter := func() float64 { return cfg.BaseSize * (0.5 + rng.Float64()*0.5) }

	for y := 0; y < mask.Height(); y += step {
		for x := 0; x < mask.Width(); x += step {
			if mask.At(x, y) <= cfg.AlphaThreshold {
				continue
			}
			fx, fy := float64(x), float64(y)
			p := Particle{
				OriginX:  fx,
				OriginY:  fy,
				X:        fx,
				Y:        fy,
				Size:     jitter(),
				BaseSize: jitter(),
				Phase:    rng.Float64() * 2 * math.Pi,
				Speed:    0.02 + rng.Float64()*0.02,
				band:     -1,
			}
			p.Resistant = cfg.EnableResistance && rng.Float64() < cfg.ResistantChance
			ps = append(ps, p)
		}
	}
	return ps
}
