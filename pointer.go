package particles

// FarAway is the coordinate a Pointer is parked at while inactive. It lies
// outside every interaction radius, so no stale proximity effect lingers.
const FarAway = -9999

// Pointer is the shared pointer record of an engine instance. It is written
// by the input adapter and read by the engine's render step.
//
// Pointer is not safe for concurrent use; hosts deliver input and frames on
// the same goroutine.
type Pointer struct {
	X, Y   float64
	Active bool
}

// NewPointer returns an inactive pointer parked at FarAway.
func NewPointer() *Pointer {
	return &Pointer{X: FarAway, Y: FarAway}
}

// Move records a pointer position and marks the pointer active.
func (p *Pointer) Move(x, y float64) {
	p.X, p.Y = x, y
	p.Active = true
}

// Leave deactivates the pointer and parks it at FarAway.
func (p *Pointer) Leave() {
	p.X, p.Y = FarAway, FarAway
	p.Active = false
}
