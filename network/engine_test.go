// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package network

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gogpu/particles"
	"github.com/gogpu/particles/page"
)

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(7, 11)))
}

func newPage(w, h float64, opts ...page.Option) *page.Page {
	pg := page.New(w, h, opts...)
	pg.AddBox("canvas-container", particles.Rect{Width: w, Height: h})
	return pg
}

// recordCanvas is a particles.Canvas that records colours and primitives.
type recordCanvas struct {
	colors  [][4]float64
	circles int
	lines   int
	widths  []float64
	clears  int

	fillErr, strokeErr error
}

func (c *recordCanvas) Width() int                  { return 100 }
func (c *recordCanvas) Height() int                 { return 100 }
func (c *recordCanvas) Clear()                      { c.clears++ }
func (c *recordCanvas) Identity()                   {}
func (c *recordCanvas) Scale(x, y float64)          {}
func (c *recordCanvas) SetLineWidth(w float64)      { c.widths = append(c.widths, w) }
func (c *recordCanvas) DrawCircle(x, y, r float64)  { c.circles++ }
func (c *recordCanvas) DrawLine(_, _, _, _ float64) { c.lines++ }
func (c *recordCanvas) Fill() error                 { return c.fillErr }
func (c *recordCanvas) Stroke() error               { return c.strokeErr }

func (c *recordCanvas) SetRGBA(r, g, b, a float64) {
	c.colors = append(c.colors, [4]float64{r, g, b, a})
}

func TestCount(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name          string
		width, height float64
		want          int
	}{
		{"desktop", 1280, 720, 76},
		{"breakpoint", 768, 1000, 64},
		{"mobile doubles density", 375, 812, 12},
		{"tiny", 10, 10, 0},
		{"empty", 0, 600, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.width, tt.height, cfg); got != tt.want {
				t.Errorf("Count(%v, %v) = %d, want %d", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestNewMissingContainer(t *testing.T) {
	pg := page.New(800, 600)
	e, err := New(pg, "canvas-container")
	if err != nil {
		t.Fatalf("New() err = %v, want nil for a missing container", err)
	}
	if e.Attached() {
		t.Error("Attached() = true without a container")
	}
	if n := pg.Frame(); n != 0 {
		t.Errorf("inert engine scheduled %d frames", n)
	}
	e.Resize()
	e.Destroy()
}

func TestNewWithoutRaster(t *testing.T) {
	pg := newPage(800, 600, page.WithoutRaster())
	if _, err := New(pg, "canvas-container"); !errors.Is(err, particles.ErrNoContext) {
		t.Errorf("New() err = %v, want ErrNoContext", err)
	}
}

func TestSeed(t *testing.T) {
	pg := newPage(1280, 720, page.WithPixelRatio(2))
	e, err := New(pg, "canvas-container", seeded())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()

	ps := e.Particles()
	if len(ps) != 76 {
		t.Fatalf("len(Particles()) = %d, want 76", len(ps))
	}
	for i, p := range ps {
		if p.X < 0 || p.X >= 1280 || p.Y < 0 || p.Y >= 720 {
			t.Errorf("particle %d at (%v, %v) outside viewport", i, p.X, p.Y)
		}
		if p.Radius < 0.5 || p.Radius >= 2 {
			t.Errorf("particle %d radius %v outside [0.5, 2)", i, p.Radius)
		}
		if math.Abs(p.VX) > 0.15 || math.Abs(p.VY) > 0.15 {
			t.Errorf("particle %d velocity (%v, %v) exceeds speed/2", i, p.VX, p.VY)
		}
	}
}

func TestBounceOvershootAtMostOneStep(t *testing.T) {
	const w, h = 200, 150
	pg := newPage(w, h)
	e, err := New(pg, "canvas-container", seeded(), WithDensity(300))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()

	maxStep := DefaultConfig().Speed / 2
	for frame := range 3000 {
		pg.Frame()
		for i, p := range e.Particles() {
			if p.X < -maxStep || p.X > w+maxStep || p.Y < -maxStep || p.Y > h+maxStep {
				t.Fatalf("frame %d: particle %d at (%v, %v) overshot more than one step", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestLinksIndexOrderWithCap(t *testing.T) {
	pg := newPage(400, 400)
	e, err := New(pg, "canvas-container", WithDensity(1e9))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()

	// Five clustered particles and one far away.
	e.particles = []Particle{
		{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 12, Y: 10},
		{X: 13, Y: 10}, {X: 14, Y: 10}, {X: 390, Y: 390},
	}

	var got [][2]int
	e.eachLink(func(i, j int, _ float64) {
		if i >= j {
			t.Errorf("link (%d, %d) not drawn from the lower index", i, j)
		}
		got = append(got, [2]int{i, j})
	})

	want := [][2]int{
		{0, 1}, {0, 2}, {0, 3},
		{1, 2}, {1, 3}, {1, 4},
		{2, 3}, {2, 4},
		{3, 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestLinkOpacityDecays(t *testing.T) {
	pg := newPage(400, 400)
	e, err := New(pg, "canvas-container", WithDensity(1e9))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()

	e.particles = []Particle{{X: 0, Y: 0}, {X: 75, Y: 0}, {X: 0, Y: 0.0}}
	var opacities []float64
	e.eachLink(func(_, _ int, opacity float64) {
		opacities = append(opacities, opacity)
	})
	want := []float64{0.5, 1, 0.5}
	if diff := cmp.Diff(want, opacities); diff != "" {
		t.Errorf("opacities mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerNudgesPosition(t *testing.T) {
	pg := newPage(400, 400)
	e, err := New(pg, "canvas-container", WithDensity(1e9))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()

	e.particles = []Particle{{X: 100, Y: 100}, {X: 390, Y: 390}}
	pg.PointerMove(110, 100)
	e.advance()

	force := (180.0 - 10) / 180
	wantX := 100 - 10*force*0.02
	if p := e.particles[0]; math.Abs(p.X-wantX) > 1e-12 || p.Y != 100 {
		t.Errorf("nudged particle at (%v, %v), want (%v, 100)", p.X, p.Y, wantX)
	}
	if p := e.particles[0]; p.VX != 0 || p.VY != 0 {
		t.Errorf("pointer changed velocity to (%v, %v)", p.VX, p.VY)
	}
	if p := e.particles[1]; p.X != 390 || p.Y != 390 {
		t.Errorf("particle outside radius moved to (%v, %v)", p.X, p.Y)
	}
}

func TestHiddenPageSkipsButKeepsLoop(t *testing.T) {
	pg := newPage(400, 300)
	e, err := New(pg, "canvas-container", seeded())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()

	before := append([]Particle(nil), e.Particles()...)
	pg.SetPageVisible(false)
	for range 5 {
		if n := pg.Frame(); n != 1 {
			t.Fatalf("hidden frame ran %d callbacks, want 1", n)
		}
	}
	if diff := cmp.Diff(before, e.Particles()); diff != "" {
		t.Errorf("particles moved while hidden:\n%s", diff)
	}

	pg.SetPageVisible(true)
	pg.Frame()
	if cmp.Equal(before, e.Particles()) {
		t.Error("particles did not move after resume")
	}
}

func TestResizeRebuilds(t *testing.T) {
	pg := newPage(1280, 720)
	e, err := New(pg, "canvas-container", seeded())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()

	pg.Resize(600, 800)
	e.Resize()
	if got := len(e.Particles()); got != 20 {
		t.Errorf("after resize len = %d, want 20", got)
	}
	if w, h := e.Size(); w != 600 || h != 800 {
		t.Errorf("Size() = %vx%v, want 600x800", w, h)
	}
}

func TestZeroViewportStaysAttached(t *testing.T) {
	pg := newPage(0, 0)
	e, err := New(pg, "canvas-container", seeded())
	if err != nil {
		t.Fatalf("New() at 0x0 err = %v", err)
	}
	defer e.Destroy()
	if !e.Attached() {
		t.Fatal("Attached() = false for an empty viewport")
	}
	if n := len(e.Particles()); n != 0 {
		t.Errorf("len(Particles()) = %d at 0x0, want 0", n)
	}

	pg.Resize(1280, 720)
	e.Resize()
	if got := len(e.Particles()); got != 76 {
		t.Errorf("after resize len = %d, want 76", got)
	}
	if w, h := e.Size(); w != 1280 || h != 720 {
		t.Errorf("Size() = %vx%v, want 1280x720", w, h)
	}
}

func TestFailedResizeKeepsLayout(t *testing.T) {
	pg := newPage(1280, 720)
	e, err := New(pg, "canvas-container", seeded())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()
	before := len(e.Particles())

	// A released canvas refuses new contexts.
	canvas := e.canvas
	canvas.Release()
	pg.Resize(600, 800)
	e.Resize()

	if w, h := e.Size(); w != 1280 || h != 720 {
		t.Errorf("Size() = %vx%v, want 1280x720", w, h)
	}
	if b := canvas.Bounds(); b.Width != 1280 || b.Height != 720 {
		t.Errorf("canvas bounds = %vx%v, want 1280x720", b.Width, b.Height)
	}
	if got := len(e.Particles()); got != before {
		t.Errorf("len(Particles()) = %d, want %d", got, before)
	}
}

func TestDestroy(t *testing.T) {
	pg := newPage(400, 300)
	e, err := New(pg, "canvas-container")
	if err != nil {
		t.Fatal(err)
	}
	e.Destroy()
	e.Destroy()

	if n := pg.Frame(); n != 0 {
		t.Errorf("destroyed engine ran %d frames", n)
	}
	pg.PointerMove(10, 10)
	if e.Pointer().Active {
		t.Error("destroyed engine still receives pointer input")
	}
}

func TestPaintUsesThemeColors(t *testing.T) {
	pg := newPage(400, 400, page.WithTheme(particles.ThemeLight))
	e, err := New(pg, "canvas-container", WithDensity(1e9))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()

	e.particles = []Particle{{X: 10, Y: 10, Radius: 1}, {X: 85, Y: 10, Radius: 1}}
	rec := &recordCanvas{}
	e.paint(rec)

	if rec.clears != 1 || rec.circles != 2 || rec.lines != 1 {
		t.Fatalf("clears=%d circles=%d lines=%d, want 1 2 1", rec.clears, rec.circles, rec.lines)
	}
	ink := 17.0 / 255
	want := [][4]float64{
		{ink, ink, ink, 0.25},
		{ink, ink, ink, 0.06 * 0.5},
	}
	if diff := cmp.Diff(want, rec.colors, cmp.Comparer(func(a, b float64) bool {
		return math.Abs(a-b) < 1e-9
	})); diff != "" {
		t.Errorf("colours mismatch (-want +got):\n%s", diff)
	}
	if len(rec.widths) != 1 || rec.widths[0] != 0.5 {
		t.Errorf("line widths = %v, want [0.5]", rec.widths)
	}
}

func TestPaintLogsDrawErrors(t *testing.T) {
	orig := particles.Logger()
	t.Cleanup(func() { particles.SetLogger(orig) })
	var buf bytes.Buffer
	particles.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	pg := newPage(400, 400)
	e, err := New(pg, "canvas-container", WithDensity(1e9))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Destroy()

	e.particles = []Particle{{X: 10, Y: 10, Radius: 1}, {X: 85, Y: 10, Radius: 1}}
	rec := &recordCanvas{fillErr: errors.New("no fill"), strokeErr: errors.New("no stroke")}
	e.paint(rec)

	if rec.lines != 1 || e.Links() != 1 {
		t.Errorf("lines=%d links=%d, want 1 1", rec.lines, e.Links())
	}
	for _, want := range []string{"network: fill failed", "no fill", "network: stroke failed", "no stroke"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("log missing %q:\n%s", want, buf.String())
		}
	}
}
