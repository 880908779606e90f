// Command particlesnap renders the demo page headlessly and writes PNG
// snapshots.
//
// The pointer sweeps left to right across the viewport at mid-height over
// the run and leaves on the last frame. Output is reproducible with -seed.
//
//	particlesnap -font Inter-Bold.ttf -text GOPHER -effect slice -frames 240 -out title.png
//	particlesnap -font Inter-Bold.ttf -every 30 -out frame-%03d.png
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/particles/internal/demo"
	"github.com/gogpu/particles/page"
)

func main() {
	var (
		width  = flag.Float64("width", 1280, "viewport width in logical pixels")
		height = flag.Float64("height", 720, "viewport height in logical pixels")
		dpr    = flag.Float64("dpr", 1, "device pixel ratio (capped at 2)")
		frames = flag.Int("frames", 120, "number of frames to run")
		every  = flag.Int("every", 0, "write every Nth frame; -out must contain a %d verb")
		out    = flag.String("out", "particles.png", "output file")
		common demo.Flags
	)
	common.Register(flag.CommandLine)
	flag.Parse()
	demo.SetupLogging(common.Verbose)

	if *every > 0 && !strings.Contains(*out, "%") {
		log.Fatalf("-every needs a numbered -out pattern, got %q", *out)
	}

	pg := page.New(*width, *height,
		page.WithPixelRatio(*dpr),
		page.WithTheme(common.Theme),
	)
	scene := demo.Build(pg, common)
	defer scene.Destroy()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := scene.LoadFont(ctx); err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	scene.Regenerate()

	frame := pg.NewFrame()
	written := 0
	for i := range *frames {
		moveSweep(pg, i, *frames, *width, *height)
		pg.Drain()
		pg.Frame()

		last := i == *frames-1
		if *every > 0 && (i+1)%*every == 0 {
			pg.Compose(frame)
			if err := save(frame, fmt.Sprintf(*out, i+1)); err != nil {
				log.Fatalf("Failed to save: %v", err)
			}
			written++
		} else if *every == 0 && last {
			pg.Compose(frame)
			if err := save(frame, *out); err != nil {
				log.Fatalf("Failed to save: %v", err)
			}
			written++
		}
	}

	log.Printf("Ran %d frames, wrote %d image(s)", pg.Frames(), written)
}

func moveSweep(pg *page.Page, i, n int, w, h float64) {
	if i == n-1 {
		pg.PointerLeave()
		return
	}
	pg.PointerMove(w*float64(i)/float64(max(n-1, 1)), h/2)
}

func save(frame *image.RGBA, path string) error {
	if err := gg.FromImage(frame).SavePNG(path); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "wrote", path)
	return nil
}
