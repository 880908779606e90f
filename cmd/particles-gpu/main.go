// Command particles-gpu shows the demo page in a gogpu window.
//
// The page is composed on the CPU each vsync and handed to the GPU through
// a ggcanvas texture. Space toggles page visibility, which pauses both
// engines and releases the animation token so the window idles.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/particles"
	"github.com/gogpu/particles/input"
	"github.com/gogpu/particles/internal/demo"
	"github.com/gogpu/particles/page"
)

func main() {
	var (
		width  = flag.Int("width", 1280, "window width")
		height = flag.Int("height", 720, "window height")
		common demo.Flags
	)
	common.Register(flag.CommandLine)
	flag.Parse()
	demo.SetupLogging(common.Verbose)

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle("particles").
		WithSize(*width, *height).
		WithContinuousRender(false))

	queue := input.NewQueue(nil)
	pg := page.New(float64(*width), float64(*height),
		page.WithTheme(common.Theme),
		page.WithQueue(queue),
	)
	scene := demo.Build(pg, common)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	go func() {
		err := scene.LoadFont(ctx)
		queue.Post(func() {
			if err != nil {
				particles.Logger().Error("font load failed", "font", common.Font, "err", err)
				return
			}
			scene.Regenerate()
		})
	}()

	var (
		canvas    *ggcanvas.Canvas
		animToken *gogpu.AnimationToken
		frame     = pg.NewFrame()
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if animToken == nil && pg.PageVisible() {
			animToken = app.StartAnimation()
		}

		w, h := dc.Width(), dc.Height()
		if w <= 0 || h <= 0 {
			return
		}
		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			var err error
			canvas, err = ggcanvas.New(provider, w, h)
			if err != nil {
				log.Fatalf("Failed to create canvas: %v", err)
			}
		}
		if cw, ch := canvas.Size(); cw != w || ch != h {
			if err := canvas.Resize(w, h); err != nil {
				log.Printf("Resize error: %v", err)
				return
			}
		}
		if b := frame.Bounds(); b.Dx() != w || b.Dy() != h {
			scene.Resize(float64(w), float64(h))
			frame = pg.NewFrame()
		}

		pg.Drain()
		pg.Frame()
		pg.Compose(frame)

		if err := canvas.Draw(func(cc *gg.Context) {
			copy(cc.ResizeTarget().Data(), frame.Pix)
		}); err != nil {
			log.Printf("Draw error: %v", err)
		}
		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			log.Printf("Render error: %v", err)
		}
	})

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key != gpucontext.KeySpace {
			return
		}
		visible := !pg.PageVisible()
		pg.SetPageVisible(visible)
		if !visible && animToken != nil {
			animToken.Stop()
			animToken = nil
		}
		if visible && animToken == nil {
			animToken = app.StartAnimation()
		}
	})

	app.OnClose(func() {
		if animToken != nil {
			animToken.Stop()
		}
		scene.Destroy()
	})

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
