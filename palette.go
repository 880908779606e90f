package particles

import "github.com/gogpu/gg"

// ThemeLight is the theme attribute value that selects the light colour of
// a Palette. Every other value selects the dark colour.
const ThemeLight = "light"

// Palette is a colour pair chosen per frame by the host theme.
type Palette struct {
	Dark  gg.RGBA
	Light gg.RGBA
}

// HexPalette builds a Palette from two hex strings ("#RGB", "#RRGGBB",
// "#RRGGBBAA").
func HexPalette(dark, light string) Palette {
	return Palette{Dark: gg.Hex(dark), Light: gg.Hex(light)}
}

// Pick returns the colour for theme.
func (p Palette) Pick(theme string) gg.RGBA {
	if theme == ThemeLight {
		return p.Light
	}
	return p.Dark
}

// SetColor sets c as the current colour of dst, with alpha scaled by
// opacity.
func SetColor(dst Canvas, c gg.RGBA, opacity float64) {
	dst.SetRGBA(c.R, c.G, c.B, c.A*opacity)
}
