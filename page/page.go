// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package page provides an in-memory [particles.Host] backed by gg contexts.
//
// A Page is a flat layout of boxes (containers) and canvases positioned in
// document coordinates, with a scrollable viewport, a theme attribute, a page
// visibility flag, a request-frame scheduler and an [input.Adapter] for
// pointer and resize routing. Compose paints every canvas into a device-pixel
// frame for presentation.
//
// Usage:
//
//	pg := page.New(1280, 720, page.WithPixelRatio(2))
//	pg.AddBox("canvas-container", particles.Rect{Width: 1280, Height: 720})
//
//	frame := pg.NewFrame()
//	for running {
//	    pg.Drain()
//	    pg.Frame()
//	    pg.Compose(frame)
//	}
//
// Page is NOT safe for concurrent use, except for Post on its queue.
package page

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/particles"
	"github.com/gogpu/particles/input"
)

// ErrNilParent is returned by CreateCanvas when no parent element is given.
var ErrNilParent = errors.New("page: nil parent element")

// Theme attribute values. Anything other than ThemeLight renders dark.
const (
	ThemeDark  = "dark"
	ThemeLight = particles.ThemeLight
)

// Option configures a Page.
type Option func(*options)

type options struct {
	dpr        float64
	theme      string
	background gg.RGBA
	queue      *input.Queue
	inputOpts  []input.Option
	noRaster   bool
}

// WithPixelRatio sets the device pixel ratio. It is capped at
// particles.MaxPixelRatio.
func WithPixelRatio(dpr float64) Option {
	return func(o *options) {
		o.dpr = dpr
	}
}

// WithTheme sets the initial theme attribute.
func WithTheme(theme string) Option {
	return func(o *options) {
		o.theme = theme
	}
}

// WithBackground sets the colour Compose clears to.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithQueue uses q for debounced callbacks instead of a private queue.
// Hosts pass a queue whose wake hook interrupts their event wait.
func WithQueue(q *input.Queue) Option {
	return func(o *options) {
		o.queue = q
	}
}

// WithInputOptions forwards options to the page's input adapter.
func WithInputOptions(opts ...input.Option) Option {
	return func(o *options) {
		o.inputOpts = append(o.inputOpts, opts...)
	}
}

// WithoutRaster makes every canvas refuse to provide a raster context, the
// way a host without 2D canvas support behaves.
func WithoutRaster() Option {
	return func(o *options) {
		o.noRaster = true
	}
}

// Page implements [particles.Host].
type Page struct {
	width, height float64
	dpr           float64
	theme         string
	hidden        bool
	scrollY       float64
	background    gg.RGBA
	noRaster      bool

	ids      map[string]particles.Element
	canvases []*Canvas

	queue  *input.Queue
	events *input.Adapter

	lastFrame particles.FrameID
	pending   map[particles.FrameID]func()
	order     []particles.FrameID
	frames    uint64
}

var _ particles.Host = (*Page)(nil)

// New creates a visible page with a width x height viewport in logical
// pixels.
func New(width, height float64, opts ...Option) *Page {
	o := options{
		dpr:        1,
		theme:      ThemeDark,
		background: gg.RGBA{R: 0, G: 0, B: 0, A: 1},
	}
	for _, opt := range opts {
		opt(&o)
	}
	q := o.queue
	if q == nil {
		q = input.NewQueue(nil)
	}
	return &Page{
		width:      width,
		height:     height,
		dpr:        particles.ClampPixelRatio(o.dpr),
		theme:      o.theme,
		background: o.background,
		noRaster:   o.noRaster,
		ids:        make(map[string]particles.Element),
		queue:      q,
		events:     input.NewAdapter(q, o.inputOpts...),
		pending:    make(map[particles.FrameID]func()),
	}
}

// AddBox registers a container at r in document coordinates.
func (p *Page) AddBox(id string, r particles.Rect) *Box {
	b := &Box{id: id, rect: r, page: p}
	if id != "" {
		p.ids[id] = b
	}
	return b
}

// AddCanvas registers a canvas laid out at the top-left of parent. Until
// SetSize is called it covers parent.
func (p *Page) AddCanvas(id string, parent particles.Element) *Canvas {
	c := &Canvas{id: id, parent: parent, page: p}
	if id != "" {
		p.ids[id] = c
	}
	p.canvases = append(p.canvases, c)
	return c
}

// CreateCanvas implements [particles.Host].
func (p *Page) CreateCanvas(parent particles.Element) (particles.CanvasElement, error) {
	if parent == nil {
		return nil, ErrNilParent
	}
	return p.AddCanvas("", parent), nil
}

// Lookup implements [particles.Host].
func (p *Page) Lookup(id string) particles.Element {
	el, ok := p.ids[id]
	if !ok {
		return nil
	}
	return el
}

// Viewport implements [particles.Host].
func (p *Page) Viewport() (width, height float64) {
	return p.width, p.height
}

// PixelRatio implements [particles.Host].
func (p *Page) PixelRatio() float64 {
	return p.dpr
}

// Theme implements [particles.Host].
func (p *Page) Theme() string {
	return p.theme
}

// SetTheme changes the theme attribute. Engines pick it up on their next
// rendered frame.
func (p *Page) SetTheme(theme string) {
	p.theme = theme
}

// PageVisible implements [particles.Host].
func (p *Page) PageVisible() bool {
	return !p.hidden
}

// SetPageVisible flips the page visibility flag.
func (p *Page) SetPageVisible(visible bool) {
	p.hidden = !visible
}

// InView implements [particles.Host].
func (p *Page) InView(el particles.Element) bool {
	if el == nil {
		return false
	}
	return el.Bounds().Intersects(particles.Rect{Width: p.width, Height: p.height})
}

// ScrollTo sets the vertical scroll offset in logical pixels.
func (p *Page) ScrollTo(y float64) {
	p.scrollY = math.Max(0, y)
}

// ScrollBy moves the vertical scroll offset by dy.
func (p *Page) ScrollBy(dy float64) {
	p.ScrollTo(p.scrollY + dy)
}

// Scroll returns the vertical scroll offset.
func (p *Page) Scroll() float64 {
	return p.scrollY
}

// Resize changes the viewport and notifies resize subscribers after the
// debounce delay.
func (p *Page) Resize(width, height float64) {
	p.width, p.height = width, height
	p.events.Resize()
}

// PointerMove forwards a pointer position in viewport coordinates.
func (p *Page) PointerMove(x, y float64) {
	p.events.PointerMove(x, y)
}

// PointerLeave forwards the pointer leaving the window.
func (p *Page) PointerLeave() {
	p.events.PointerLeave()
}

// WatchPointer implements [particles.Events].
func (p *Page) WatchPointer(target particles.Element, ptr *particles.Pointer) func() {
	return p.events.WatchPointer(target, ptr)
}

// OnResize implements [particles.Events].
func (p *Page) OnResize(fn func()) func() {
	return p.events.OnResize(fn)
}

// Drain runs callbacks queued by timers (debounced resizes) and returns how
// many ran.
func (p *Page) Drain() int {
	return p.queue.Drain()
}

// RequestFrame implements [particles.Scheduler].
func (p *Page) RequestFrame(fn func()) particles.FrameID {
	p.lastFrame++
	p.pending[p.lastFrame] = fn
	p.order = append(p.order, p.lastFrame)
	return p.lastFrame
}

// CancelFrame implements [particles.Scheduler].
func (p *Page) CancelFrame(id particles.FrameID) {
	delete(p.pending, id)
}

// Frame runs one display refresh: every callback requested before the call,
// in request order. It returns how many callbacks ran.
func (p *Page) Frame() int {
	order := p.order
	p.order = nil
	ran := 0
	for _, id := range order {
		fn, ok := p.pending[id]
		if !ok {
			continue
		}
		delete(p.pending, id)
		fn()
		ran++
	}
	p.frames++
	return ran
}

// Frames returns how many times Frame has been called.
func (p *Page) Frames() uint64 {
	return p.frames
}

func (p *Page) release(c *Canvas) {
	for i, x := range p.canvases {
		if x == c {
			p.canvases = append(p.canvases[:i], p.canvases[i+1:]...)
			break
		}
	}
	if c.id != "" && p.ids[c.id] == particles.Element(c) {
		delete(p.ids, c.id)
	}
}

func (p *Page) newContext(width, height int) (*gg.Context, error) {
	if p.noRaster {
		return nil, particles.ErrNoContext
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", particles.ErrInvalidSize, width, height)
	}
	return gg.NewContext(width, height), nil
}
