package outline

import "github.com/gogpu/gg"

// Filler receives path commands and fills the accumulated path.
// *gg.Context satisfies it.
type Filler interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	Fill() error
}

// Fill replays p onto dst and fills it with dst's current colour.
func Fill(dst Filler, p *gg.Path) error {
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			dst.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			dst.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			dst.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			dst.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			dst.ClosePath()
		}
	}
	return dst.Fill()
}
