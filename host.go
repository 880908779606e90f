package particles

// Canvas is the 2D raster context an engine paints into.
//
// The method set is a subset of *gg.Context, so a gg drawing context can be
// passed directly:
//
//	dc := gg.NewContext(800, 600)
//	var c particles.Canvas = dc
type Canvas interface {
	Width() int
	Height() int

	// Clear resets every pixel to transparent.
	Clear()

	// Identity and Scale manage the current transform. Engines reset to
	// Identity and scale by the device pixel ratio before drawing.
	Identity()
	Scale(x, y float64)

	SetRGBA(r, g, b, a float64)
	SetLineWidth(width float64)

	DrawCircle(x, y, r float64)
	DrawLine(x1, y1, x2, y2 float64)
	Fill() error
	Stroke() error
}

// Element is a laid-out node of the host surface.
type Element interface {
	// ID returns the identifier the element was registered under.
	// Anonymous elements return "".
	ID() string

	// Bounds returns the element box in logical pixels relative to the
	// viewport (after scrolling).
	Bounds() Rect
}

// CanvasElement is an element that owns a raster backing store.
type CanvasElement interface {
	Element

	// Context returns a raster context with a backing store of
	// width x height device pixels. Calling it again resizes the store.
	// Implementations return ErrNoContext if rasterisation is unsupported.
	Context(width, height int) (Canvas, error)

	// SetSize sets the displayed size in logical pixels.
	SetSize(width, height float64)

	// Release detaches the canvas from the host.
	Release()
}

// Scheduler is the request-next-frame primitive of a host. Callbacks
// requested while a frame is running run on the following frame.
type Scheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// FrameID identifies a scheduled frame callback. The zero value is never
// issued by a Scheduler.
type FrameID uint64

// Events routes raw host input to engines.
type Events interface {
	// WatchPointer keeps p in sync with pointer input. A nil target listens
	// window-wide in viewport coordinates; otherwise coordinates are local
	// to the target and leaving its bounds resets p.
	WatchPointer(target Element, p *Pointer) (cancel func())

	// OnResize calls fn after viewport resizes have settled.
	OnResize(fn func()) (cancel func())
}

// Host is the surface engines attach to: element lookup, canvas creation,
// viewport metrics, the theme attribute, visibility signals, scheduling and
// input routing.
type Host interface {
	Scheduler
	Events

	// Lookup returns the element registered under id, or nil.
	Lookup(id string) Element

	// CreateCanvas appends a new canvas covering parent.
	CreateCanvas(parent Element) (CanvasElement, error)

	// Viewport returns the visible area in logical pixels.
	Viewport() (width, height float64)

	// PixelRatio returns the device pixel ratio.
	PixelRatio() float64

	// Theme returns the current theme attribute, e.g. "light" or "dark".
	Theme() string

	// PageVisible reports whether the page is currently shown.
	PageVisible() bool

	// InView reports whether el intersects the viewport.
	InView(el Element) bool
}

// MaxPixelRatio caps the device pixel ratio used for backing stores.
const MaxPixelRatio = 2

// ClampPixelRatio returns dpr capped at MaxPixelRatio. Zero or negative
// input is treated as 1.
func ClampPixelRatio(dpr float64) float64 {
	if dpr <= 0 {
		return 1
	}
	return min(dpr, MaxPixelRatio)
}
