package particles

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the engines.
var (
	// ErrNoContext is returned when a canvas cannot provide a 2D raster
	// context. It is fatal to the instance being constructed only.
	ErrNoContext = errors.New("particles: 2D raster context unavailable")

	// ErrDestroyed is returned by operations on a destroyed instance.
	ErrDestroyed = errors.New("particles: instance destroyed")

	// ErrInvalidSize is returned when a surface is asked for a non-positive size.
	ErrInvalidSize = errors.New("particles: invalid size")
)

// PanicError wraps a value recovered by Guard.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("particles: panic: %v", e.Value)
}

// Guard runs top-level setup code. A returned error or a panic is logged
// at error level under name and reported back, never propagated, so one
// failing consumer cannot take the host down.
//
//	particles.Guard("background", func() error {
//	    _, err := network.New(pg, "canvas-container")
//	    return err
//	})
func Guard(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
		if err != nil {
			Logger().Error("init error", "component", name, "err", err)
		}
	}()
	return fn()
}
