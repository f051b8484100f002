package panel

import (
	"image/color"

	"github.com/superkooks/pinot/console"
	"tinygo.org/x/drivers"
)

// rectFiller is offered by most SPI panel drivers (ili9341, st7735, st7789).
type rectFiller interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

// scrollSetter is offered by drivers with a vertical scroll register.
type scrollSetter interface {
	SetScroll(line int16)
}

// Displayer drives a tinygo display. The driver cannot read pixels back, so
// a shadow framebuffer answers Pixel.
type Displayer struct {
	d      drivers.Displayer
	shadow *Framebuffer
}

// ScrollingDisplayer is a Displayer whose driver has a scroll register.
type ScrollingDisplayer struct {
	*Displayer
	s scrollSetter
}

// NewDisplayer wraps d, returning a *ScrollingDisplayer when the driver can
// scroll so the console picks up the capability.
func NewDisplayer(d drivers.Displayer) console.Panel {
	w, h := d.Size()
	p := &Displayer{d: d, shadow: NewFramebuffer(int(w), int(h))}

	if s, ok := d.(scrollSetter); ok {
		return &ScrollingDisplayer{Displayer: p, s: s}
	}
	return p
}

func (p *Displayer) Width() int  { return p.shadow.Width() }
func (p *Displayer) Height() int { return p.shadow.Height() }

func (p *Displayer) Pixel(x, y int) uint16 {
	return p.shadow.Pixel(x, y)
}

func (p *Displayer) SetPixel(x, y int, c uint16) {
	if x < 0 || y < 0 || x >= p.Width() || y >= p.Height() {
		return
	}
	p.shadow.SetPixel(x, y, c)
	p.d.SetPixel(int16(x), int16(y), RGBA(c))
}

func (p *Displayer) FillRect(x, y, w, h int, c uint16) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, p.Width()), min(y+h, p.Height())
	if x1 <= x0 || y1 <= y0 {
		return
	}
	p.shadow.FillRect(x0, y0, x1-x0, y1-y0, c)

	if f, ok := p.d.(rectFiller); ok {
		if err := f.FillRectangle(int16(x0), int16(y0), int16(x1-x0), int16(y1-y0), RGBA(c)); err == nil {
			return
		}
	}

	rgba := RGBA(c)
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			p.d.SetPixel(int16(xx), int16(yy), rgba)
		}
	}
}

func (p *Displayer) Fill(c uint16) {
	p.FillRect(0, 0, p.Width(), p.Height(), c)
}

func (p *Displayer) Show() error {
	return p.d.Display()
}

func (p *ScrollingDisplayer) Scroll(dy, dx int) {
	p.shadow.Scroll(dy, dx)
	p.s.SetScroll(int16(p.shadow.ScrollOffset()))
}

// RGBA expands an RGB565 color.
func RGBA(c uint16) color.RGBA {
	r := uint8(c>>11) & 0x1f
	g := uint8(c>>5) & 0x3f
	b := uint8(c) & 0x1f
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}

var (
	_ console.Filler   = (*Displayer)(nil)
	_ console.Shower   = (*Displayer)(nil)
	_ console.Scroller = (*ScrollingDisplayer)(nil)

	_ console.Filler       = (*Framebuffer)(nil)
	_ console.Shower       = (*Framebuffer)(nil)
	_ console.Scroller     = (*Framebuffer)(nil)
	_ console.GlyphBlitter = (*Framebuffer)(nil)
)
