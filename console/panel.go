package console

import "github.com/superkooks/pinot/pnfont"

// Colors are RGB565, monochrome panels treat anything non-zero as lit.
const (
	Black uint16 = 0x0000
	White uint16 = 0xffff
)

// Panel is the minimum a display has to offer.
type Panel interface {
	Width() int
	Height() int
	Pixel(x, y int) uint16
	SetPixel(x, y int, c uint16)
	FillRect(x, y, w, h int, c uint16)
}

// Filler blanks the whole panel at once.
type Filler interface {
	Fill(c uint16)
}

// Shower pushes pending drawing to the glass.
type Shower interface {
	Show() error
}

// Scroller moves the panel's vertical scroll register by dy rows.
type Scroller interface {
	Scroll(dy, dx int)
}

// GlyphBlitter draws a whole glyph in one transfer. Rows past the bottom of
// the panel wrap to the top of its memory.
type GlyphBlitter interface {
	Glyph(g *pnfont.Glyph, x, y int, fg, bg uint16)
}

// capabilities holds the optional panel primitives, probed once.
// Every field is callable, absent primitives degrade to the closest
// required one or do nothing.
type capabilities struct {
	fill   func(c uint16)
	show   func() error
	scroll func(dy, dx int)
	glyph  func(g *pnfont.Glyph, x, y int, fg, bg uint16)
}

func probe(p Panel) capabilities {
	caps := capabilities{
		fill:   func(uint16) {},
		show:   func() error { return nil },
		scroll: func(int, int) {},
	}
	if p == nil {
		caps.glyph = func(*pnfont.Glyph, int, int, uint16, uint16) {}
		return caps
	}

	caps.fill = func(c uint16) {
		p.FillRect(0, 0, p.Width(), p.Height(), c)
	}
	caps.glyph = func(g *pnfont.Glyph, sx, sy int, fg, bg uint16) {
		// Per pixel is slow but the panels are small
		h := p.Height()
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				c := bg
				if g.Pixel(x, y) == 1 {
					c = fg
				}
				p.SetPixel(sx+x, mod(sy+y, h), c)
			}
		}
	}

	if f, ok := p.(Filler); ok {
		caps.fill = f.Fill
	}
	if s, ok := p.(Shower); ok {
		caps.show = s.Show
	}
	if s, ok := p.(Scroller); ok {
		caps.scroll = s.Scroll
	}
	if b, ok := p.(GlyphBlitter); ok {
		caps.glyph = b.Glyph
	}

	return caps
}
