//go:build !android

// Command particles opens a desktop window showing the demo page.
//
// Move the mouse over the window to disturb the particles. T toggles the
// theme, the scroll wheel scrolls the hero title in and out of view and Esc
// quits. Minimizing the window pauses both engines.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/particles"
	"github.com/gogpu/particles/input"
	"github.com/gogpu/particles/internal/demo"
	"github.com/gogpu/particles/internal/present"
	"github.com/gogpu/particles/page"
)

const scrollStep = 40

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		width  = flag.Int("width", 1280, "window width")
		height = flag.Int("height", 720, "window height")
		common demo.Flags
	)
	common.Register(flag.CommandLine)
	flag.Parse()
	demo.SetupLogging(common.Verbose)

	if err := run(*width, *height, common); err != nil {
		log.Fatal(err)
	}
}

func run(width, height int, f demo.Flags) error {
	window, err := initWindow(width, height)
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	pres, err := present.New()
	if err != nil {
		return err
	}
	defer pres.Destroy()

	fbW, _ := window.GetFramebufferSize()
	queue := input.NewQueue(glfw.PostEmptyEvent)
	pg := page.New(float64(width), float64(height),
		page.WithPixelRatio(float64(fbW)/float64(width)),
		page.WithTheme(f.Theme),
		page.WithQueue(queue),
	)
	scene := demo.Build(pg, f)
	defer scene.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := scene.LoadFont(ctx)
		queue.Post(func() {
			if err != nil {
				particles.Logger().Error("font load failed", "font", f.Font, "err", err)
				return
			}
			scene.Regenerate()
		})
	}()

	frame := pg.NewFrame()
	bindEvents(window, pg, scene, func() { frame = pg.NewFrame() })

	for !window.ShouldClose() {
		pg.Drain()
		if !pg.PageVisible() {
			glfw.WaitEventsTimeout(0.25)
			continue
		}
		pg.Frame()
		pg.Compose(frame)

		pres.Upload(frame)
		pres.Draw(window.GetFramebufferSize())
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func initWindow(width, height int) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.False)

	window, err := glfw.CreateWindow(width, height, "particles", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// bindEvents routes window events to the page. reframe is called after the
// viewport changes size.
func bindEvents(window *glfw.Window, pg *page.Page, scene *demo.Scene, reframe func()) {
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		pg.PointerMove(x, y)
	})
	window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			pg.PointerLeave()
		}
	})
	window.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		if w == 0 || h == 0 {
			return
		}
		scene.Resize(float64(w), float64(h))
		reframe()
	})
	window.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		pg.SetPageVisible(!iconified)
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		scene.ScrollBy(-yoff * scrollStep)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyT:
			scene.ToggleTheme()
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})
}
