package particles

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gg"
)

func TestPointerLifecycle(t *testing.T) {
	p := NewPointer()
	if p.Active || p.X != FarAway || p.Y != FarAway {
		t.Fatalf("NewPointer() = %+v, want inactive at FarAway", *p)
	}

	p.Move(12, 34)
	if !p.Active || p.X != 12 || p.Y != 34 {
		t.Errorf("after Move(12, 34) = %+v", *p)
	}

	p.Leave()
	if p.Active || p.X != FarAway || p.Y != FarAway {
		t.Errorf("after Leave() = %+v, want inactive at FarAway", *p)
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"right edge exclusive", 110, 40, false},
		{"bottom edge exclusive", 50, 70, false},
		{"left of box", 9, 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if !r.Intersects(Rect{X: 100, Y: 60, Width: 20, Height: 20}) {
		t.Error("overlapping rects should intersect")
	}
	if r.Intersects(Rect{X: 110, Y: 20, Width: 20, Height: 20}) {
		t.Error("edge-adjacent rects should not intersect")
	}
	if got := r.Translate(-10, -20); got != (Rect{Width: 100, Height: 50}) {
		t.Errorf("Translate() = %+v", got)
	}
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("zero-width rect should be empty")
	}
}

func TestPalettePick(t *testing.T) {
	p := HexPalette("#ffffff", "#111111")

	if got := p.Pick(ThemeLight); got != gg.Hex("#111111") {
		t.Errorf("Pick(light) = %+v", got)
	}
	for _, theme := range []string{"dark", "", "solarized"} {
		if got := p.Pick(theme); got != gg.Hex("#ffffff") {
			t.Errorf("Pick(%q) = %+v, want dark colour", theme, got)
		}
	}
}

func TestClampPixelRatio(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{-3, 1},
		{1, 1},
		{1.5, 1.5},
		{3, 2},
	}
	for _, tt := range tests {
		if got := ClampPixelRatio(tt.in); got != tt.want {
			t.Errorf("ClampPixelRatio(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGuard(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := Guard("ok", func() error { return nil }); err != nil {
		t.Errorf("Guard(ok) = %v, want nil", err)
	}
	if buf.Len() != 0 {
		t.Errorf("successful Guard should not log, got %q", buf.String())
	}

	boom := errors.New("boom")
	if err := Guard("failing", func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Guard(failing) = %v, want %v", err, boom)
	}
	if !strings.Contains(buf.String(), "component=failing") {
		t.Errorf("expected error log for failing component, got %q", buf.String())
	}

	err := Guard("panicking", func() error { panic("bad setup") })
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "bad setup" {
		t.Errorf("Guard(panicking) = %v, want PanicError", err)
	}
}
