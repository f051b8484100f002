// Package panel provides panels for the console: an in-memory monochrome
// framebuffer and an adapter for tinygo display drivers.
package panel

import (
	"image"
	"image/color"
	"sync"

	"github.com/superkooks/pinot/pnfont"
)

// Framebuffer is a monochrome panel held in memory, one bit per pixel with
// rows packed MSB first. Like the ILI9341 and ST7735 it has a vertical scroll
// register: drawing addresses memory rows, the register picks the memory row
// shown on the first row of the glass.
//
// Framebuffer is safe for concurrent use.
type Framebuffer struct {
	// OnShow receives the visible picture every time Show is called.
	OnShow func(img *image.Gray)

	m      sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	scroll int
}

func NewFramebuffer(width, height int) *Framebuffer {
	stride := (width + 7) / 8
	return &Framebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

func (f *Framebuffer) Pixel(x, y int) uint16 {
	f.m.Lock()
	defer f.m.Unlock()

	if f.get(x, y) {
		return 0xffff
	}
	return 0
}

func (f *Framebuffer) SetPixel(x, y int, c uint16) {
	f.m.Lock()
	defer f.m.Unlock()
	f.set(x, y, c != 0)
}

// FillRect fills the rectangle, clipped to the panel.
func (f *Framebuffer) FillRect(x, y, w, h int, c uint16) {
	f.m.Lock()
	defer f.m.Unlock()

	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, f.width), min(y+h, f.height)
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			f.set(xx, yy, c != 0)
		}
	}
}

func (f *Framebuffer) Fill(c uint16) {
	f.m.Lock()
	defer f.m.Unlock()

	var v byte
	if c != 0 {
		v = 0xff
	}
	for i := range f.buf {
		f.buf[i] = v
	}
}

// Glyph copies a glyph bitmap in one pass. Rows past the bottom wrap to the
// top of memory, columns past the right edge are clipped.
func (f *Framebuffer) Glyph(g *pnfont.Glyph, sx, sy int, fg, bg uint16) {
	f.m.Lock()
	defer f.m.Unlock()

	i := 0
	for y := 0; y < g.Height; y++ {
		row := mod(sy+y, f.height)
		for x := 0; x < g.Width; x++ {
			on := bg != 0
			if i/8 < len(g.Bitmap) && g.Bitmap[i/8]&(0x80>>(i%8)) != 0 {
				on = fg != 0
			}
			f.set(sx+x, row, on)
			i++
		}
	}
}

// Scroll moves the scroll register down by dy rows. Horizontal scrolling is
// not supported by the controllers this stands in for, dx is ignored.
func (f *Framebuffer) Scroll(dy, dx int) {
	f.m.Lock()
	defer f.m.Unlock()
	f.scroll = mod(f.scroll+dy, f.height)
}

// ScrollOffset is the memory row currently shown at the top.
func (f *Framebuffer) ScrollOffset() int {
	f.m.Lock()
	defer f.m.Unlock()
	return f.scroll
}

func (f *Framebuffer) Show() error {
	if f.OnShow != nil {
		f.OnShow(f.Image())
	}
	return nil
}

// Image returns what the glass shows: memory rotated by the scroll register.
func (f *Framebuffer) Image() *image.Gray {
	f.m.Lock()
	defer f.m.Unlock()

	img := image.NewGray(image.Rect(0, 0, f.width, f.height))
	for v := 0; v < f.height; v++ {
		row := mod(v+f.scroll, f.height)
		for x := 0; x < f.width; x++ {
			if f.get(x, row) {
				img.SetGray(x, v, color.Gray{Y: 0xff})
			}
		}
	}
	return img
}

// Bytes returns a copy of the packed memory, ignoring the scroll register.
func (f *Framebuffer) Bytes() []byte {
	f.m.Lock()
	defer f.m.Unlock()
	return append([]byte(nil), f.buf...)
}

func (f *Framebuffer) get(x, y int) bool {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return false
	}
	return f.buf[y*f.stride+x/8]&(0x80>>(x%8)) != 0
}

func (f *Framebuffer) set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}

	mask := byte(0x80 >> (x % 8))
	if on {
		f.buf[y*f.stride+x/8] |= mask
	} else {
		f.buf[y*f.stride+x/8] &^= mask
	}
}

func mod(a, n int) int {
	if n <= 0 {
		return 0
	}
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
