// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package page

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// NewFrame allocates a frame image matching the viewport in device pixels.
func (p *Page) NewFrame() *image.RGBA {
	w := int(math.Ceil(p.width * p.dpr))
	h := int(math.Ceil(p.height * p.dpr))
	return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
}

// Compose clears dst to the page background and paints every canvas in
// creation order at its device-pixel position. dst should come from
// NewFrame; a size mismatch after a resize only clips.
func (p *Page) Compose(dst *image.RGBA) {
	bg := image.NewUniform(p.background.Color())
	draw.Draw(dst, dst.Bounds(), bg, image.Point{}, draw.Src)

	for _, c := range p.canvases {
		if c.ctx == nil {
			continue
		}
		b := c.Bounds()
		if !p.InView(c) {
			continue
		}
		src := c.ctx.Image()
		sb := src.Bounds()
		at := image.Pt(int(math.Round(b.X*p.dpr)), int(math.Round(b.Y*p.dpr)))
		draw.Draw(dst, sb.Sub(sb.Min).Add(at), src, sb.Min, draw.Over)
	}
}
