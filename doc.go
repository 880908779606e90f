// Package particles renders real-time particle effects onto gg canvases.
//
// # Overview
//
// Two independent engines share a rendering and timing discipline:
//
//   - [github.com/gogpu/particles/network]: an ambient background network of
//     drifting points linked by proximity lines, pushed away by the pointer.
//   - [github.com/gogpu/particles/glyph]: text rasterised from font outlines
//     into a particle field, animated with a "pulse" or "slice" effect.
//
// Every engine instance owns a frame driver
// ([github.com/gogpu/particles/driver]) that re-arms itself once per display
// refresh and skips work while its canvas is hidden.
//
// # Hosts
//
// Engines attach to a [Host]: element lookup, canvas creation, viewport
// metrics, the theme attribute, visibility signals, a request-frame
// [Scheduler] and input routing ([Events]). The
// [github.com/gogpu/particles/page] package is an in-memory host backed by
// gg contexts; the commands under cmd/ drive it from a glfw window, a gogpu
// window or headlessly.
//
// # Quick Start
//
//	pg := page.New(1280, 720)
//	pg.AddBox("canvas-container", particles.Rect{Width: 1280, Height: 720})
//	bg, err := network.New(pg, "canvas-container")
//
//	for {
//	    pg.Drain()
//	    pg.Frame()
//	    pg.Compose(frame)
//	}
//
// # Threading
//
// Hosts deliver input events, debounced callbacks and frames on one
// goroutine. Engines, pointers and drivers are not safe for concurrent use.
// Font loading is the only asynchronous operation and is safe to call from
// anywhere.
//
// # Logging
//
// The package is silent by default; see [SetLogger].
package particles
