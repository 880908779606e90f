// Package demo assembles the page shared by the command hosts: a fixed
// full-viewport background network and a scrolling hero title.
package demo

import (
	"context"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/gogpu/particles"
	"github.com/gogpu/particles/glyph"
	"github.com/gogpu/particles/network"
	"github.com/gogpu/particles/page"
)

// Element ids used by the demo page.
const (
	BackdropID = "canvas-container"
	HeroID     = "hero"
	TitleID    = "hero-title"
)

// Flags are the command-line settings common to every host.
type Flags struct {
	Font    string
	Text    string
	Effect  string
	Theme   string
	Seed    uint64
	Verbose bool
}

// Register binds the common flags on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Font, "font", "", "font file or URL for the title (empty: no title particles)")
	fs.StringVar(&f.Text, "text", "PARTICLES", "title text")
	fs.StringVar(&f.Effect, "effect", string(glyph.Pulse), "title effect: pulse or slice")
	fs.StringVar(&f.Theme, "theme", page.ThemeDark, "initial theme: dark or light")
	fs.Uint64Var(&f.Seed, "seed", 0, "random seed (0: random)")
	fs.BoolVar(&f.Verbose, "v", false, "verbose logging")
}

// SetupLogging routes particles logs to stderr.
func SetupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	particles.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// Scene owns the demo engines.
type Scene struct {
	pg    *page.Page
	flags Flags

	backdrop *page.Box
	hero     *page.Box

	Background *network.Engine
	Title      *glyph.Engine
}

// Build lays out the demo page on pg and starts both engines. Engine setup
// failures are logged and leave the corresponding field nil.
func Build(pg *page.Page, f Flags) *Scene {
	s := &Scene{pg: pg, flags: f}
	w, h := pg.Viewport()
	s.backdrop = pg.AddBox(BackdropID, particles.Rect{Width: w, Height: h})
	s.hero = pg.AddBox(HeroID, heroRect(w, h))

	// Canvases compose in creation order; the backdrop goes first.
	_ = particles.Guard("background", func() error {
		var opts []network.Option
		if f.Seed != 0 {
			opts = append(opts, network.WithRand(seeded(f.Seed)))
		}
		e, err := network.New(pg, BackdropID, opts...)
		s.Background = e
		return err
	})
	pg.AddCanvas(TitleID, s.hero)
	_ = particles.Guard("title", func() error {
		effect, err := glyph.ParseEffect(f.Effect)
		if err != nil {
			return err
		}
		cfg := glyph.DefaultConfig(TitleID, HeroID)
		cfg.Text = f.Text
		cfg.Effect = effect

		var opts []glyph.Option
		if f.Seed != 0 {
			opts = append(opts, glyph.WithRand(seeded(f.Seed+1)))
		}
		e, err := glyph.New(pg, cfg, opts...)
		s.Title = e
		return err
	})
	return s
}

// LoadFont loads the title font. It blocks; hosts with an event loop run it
// on another goroutine and post Regenerate back to the loop.
func (s *Scene) LoadFont(ctx context.Context) error {
	if s.flags.Font == "" {
		return nil
	}
	_, err := glyph.LoadFont(ctx, s.flags.Font)
	return err
}

// Regenerate rebuilds the title particles, typically after LoadFont.
func (s *Scene) Regenerate() {
	if s.Title == nil {
		return
	}
	if err := s.Title.Regenerate(); err != nil {
		particles.Logger().Warn("demo: regenerate failed", "err", err)
	}
}

// Resize relayouts the page for a new viewport. Engines resize themselves
// once the debounced resize notification fires.
func (s *Scene) Resize(width, height float64) {
	s.pg.Resize(width, height)
	s.backdrop.SetRect(particles.Rect{Y: s.pg.Scroll(), Width: width, Height: height})
	s.hero.SetRect(heroRect(width, height))
}

// ScrollBy scrolls the page. The backdrop stays fixed to the viewport.
func (s *Scene) ScrollBy(dy float64) {
	s.pg.ScrollBy(dy)
	w, h := s.pg.Viewport()
	s.backdrop.SetRect(particles.Rect{Y: s.pg.Scroll(), Width: w, Height: h})
}

// ToggleTheme flips the page theme between dark and light.
func (s *Scene) ToggleTheme() {
	if s.pg.Theme() == page.ThemeLight {
		s.pg.SetTheme(page.ThemeDark)
	} else {
		s.pg.SetTheme(page.ThemeLight)
	}
}

// Destroy stops both engines.
func (s *Scene) Destroy() {
	if s.Title != nil {
		s.Title.Destroy()
	}
	if s.Background != nil {
		s.Background.Destroy()
	}
}

func heroRect(w, h float64) particles.Rect {
	return particles.Rect{X: w * 0.1, Y: h * 0.35, Width: w * 0.8, Height: h * 0.3}
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
