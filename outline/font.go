// Package outline turns text into fillable vector outlines.
//
// It is the font provider of the glyph engine: a [Font] parsed from TTF/OTF
// data lays out a string at a given origin and size and returns a *gg.Path
// whose BoundingBox measures it and which [Fill] replays onto any
// gg-compatible context. Fonts are loaded once per URL through a memoized
// [Loader].
//
//	f, err := outline.Load(ctx, "assets/fonts/Inter-Bold.ttf")
//	if err != nil {
//	    return err
//	}
//	p := f.Path("HELLO", 0, 100, 96)
//	bb := p.BoundingBox()
//	_ = outline.Fill(dc, p)
//
// Shaping and outline extraction come from gg's text package; this package
// adds NFC normalisation, contour closing and the loader.
package outline

import (
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyFontData is returned when font data is empty.
var ErrEmptyFontData = text.ErrEmptyFontData

// harfBuzz is shared by every Font; GoTextShaper is safe for concurrent use.
var harfBuzz = text.NewGoTextShaper()

// Option configures a Font.
type Option func(*Font)

// WithShaper selects the layout strategy. Defaults to HarfBuzz shaping
// (text.GoTextShaper). Nil selects gg's process-wide shaper, see
// text.SetShaper.
func WithShaper(s text.Shaper) Option {
	return func(f *Font) {
		f.shaper = s
	}
}

// Font is a parsed font ready for outline extraction.
//
// Font is safe for concurrent use.
type Font struct {
	src    *text.FontSource
	shaper text.Shaper

	// extractors holds *text.OutlineExtractor values, which carry an sfnt
	// buffer and are not safe for concurrent use.
	extractors sync.Pool
}

// Parse parses TTF or OTF data. The data slice is copied.
func Parse(data []byte, opts ...Option) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, &FontError{Op: "parse", Err: err}
	}

	f := &Font{
		src:        src,
		shaper:     harfBuzz,
		extractors: sync.Pool{New: func() any { return text.NewOutlineExtractor() }},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Name returns the font family name.
func (f *Font) Name() string {
	return f.src.Name()
}

// Source returns the underlying gg font source.
func (f *Font) Source() *text.FontSource {
	return f.src
}

// Path lays out s with its baseline origin at (x, y) and an em size of size
// pixels, and returns the combined outline in a y-down coordinate space.
// Every contour is closed. Runes without a glyph lay out as the font's
// .notdef glyph; an empty string yields an empty path.
func (f *Font) Path(s string, x, y, size float64) *gg.Path {
	p := gg.NewPath()
	if s == "" || size <= 0 {
		return p
	}

	ex := f.extractors.Get().(*text.OutlineExtractor)
	defer f.extractors.Put(ex)

	parsed := f.src.Parsed()
	for _, g := range f.shape(norm.NFC.String(s), size) {
		o, err := ex.ExtractOutline(parsed, g.GID, size)
		if err != nil || o == nil || o.IsEmpty() {
			continue
		}
		appendOutline(p, o, x+g.X, y+g.Y)
	}
	return p
}

func (f *Font) shape(s string, size float64) []text.ShapedGlyph {
	face := f.src.Face(size)
	if f.shaper == nil {
		return text.Shape(s, face)
	}
	glyphs := f.shaper.Shape(s, face)
	if len(glyphs) == 0 {
		// GoTextShaper yields nothing for fonts go-text cannot parse.
		glyphs = text.Shape(s, face)
	}
	return glyphs
}

// appendOutline adds o at (ox, oy), closing each contour before the next
// one starts and after the last.
func appendOutline(p *gg.Path, o *text.GlyphOutline, ox, oy float64) {
	open := false
	pt := func(q text.OutlinePoint) (float64, float64) {
		return ox + float64(q.X), oy + float64(q.Y)
	}
	for _, s := range o.Segments {
		switch s.Op {
		case text.OutlineOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(pt(s.Points[0]))
			open = true
		case text.OutlineOpLineTo:
			p.LineTo(pt(s.Points[0]))
		case text.OutlineOpQuadTo:
			cx, cy := pt(s.Points[0])
			x, y := pt(s.Points[1])
			p.QuadraticTo(cx, cy, x, y)
		case text.OutlineOpCubicTo:
			c1x, c1y := pt(s.Points[0])
			c2x, c2y := pt(s.Points[1])
			x, y := pt(s.Points[2])
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		p.Close()
	}
}

// FontError reports a failure to parse or load a font.
type FontError struct {
	Op  string
	URL string
	Err error
}

func (e *FontError) Error() string {
	if e.URL != "" {
		return "outline: " + e.Op + " " + e.URL + ": " + e.Err.Error()
	}
	return "outline: " + e.Op + ": " + e.Err.Error()
}

func (e *FontError) Unwrap() error {
	return e.Err
}
