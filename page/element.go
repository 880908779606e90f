// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package page

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/particles"
)

// Box is a container element.
type Box struct {
	id   string
	rect particles.Rect
	page *Page
}

// ID implements [particles.Element].
func (b *Box) ID() string { return b.id }

// Bounds implements [particles.Element].
func (b *Box) Bounds() particles.Rect {
	return b.rect.Translate(0, -b.page.scrollY)
}

// SetRect moves or resizes the box in document coordinates.
func (b *Box) SetRect(r particles.Rect) {
	b.rect = r
}

// Canvas is a canvas element backed by a *gg.Context.
type Canvas struct {
	id     string
	parent particles.Element
	page   *Page

	width, height float64
	sized         bool

	ctx      *gg.Context
	released bool
}

var _ particles.CanvasElement = (*Canvas)(nil)

// ID implements [particles.Element].
func (c *Canvas) ID() string { return c.id }

// Bounds implements [particles.Element]. The canvas sits at its parent's
// top-left corner.
func (c *Canvas) Bounds() particles.Rect {
	pb := c.parent.Bounds()
	if !c.sized {
		return pb
	}
	return particles.Rect{X: pb.X, Y: pb.Y, Width: c.width, Height: c.height}
}

// SetSize implements [particles.CanvasElement].
func (c *Canvas) SetSize(width, height float64) {
	c.width, c.height = width, height
	c.sized = true
}

// Context implements [particles.CanvasElement]. The same *gg.Context is
// returned on every call and resized in place.
func (c *Canvas) Context(width, height int) (particles.Canvas, error) {
	if c.released {
		return nil, particles.ErrDestroyed
	}
	if c.ctx == nil {
		dc, err := c.page.newContext(width, height)
		if err != nil {
			return nil, err
		}
		c.ctx = dc
		return dc, nil
	}
	if err := c.ctx.Resize(width, height); err != nil {
		return nil, fmt.Errorf("%w: %v", particles.ErrInvalidSize, err)
	}
	return c.ctx, nil
}

// Release implements [particles.CanvasElement].
func (c *Canvas) Release() {
	if c.released {
		return
	}
	c.released = true
	c.page.release(c)
	if c.ctx != nil {
		_ = c.ctx.Close()
		c.ctx = nil
	}
}

// GG returns the backing context, or nil before the first Context call.
func (c *Canvas) GG() *gg.Context {
	return c.ctx
}
