package pnfont

import "strings"

// Glyph is one decoded bitmap. Bits are row-major, MSB first, one bit per pixel.
type Glyph struct {
	Char          rune
	Width, Height int
	Bitmap        []byte
}

// BitmapSize is the number of bytes a width x height bitmap occupies.
func BitmapSize(width, height int) int {
	return (width*height + 7) / 8
}

// Pixel returns 1 when the pixel at x, y is set. Coordinates outside the
// glyph return 0.
func (g *Glyph) Pixel(x, y int) int {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}

	i := x + y*g.Width
	if i/8 >= len(g.Bitmap) {
		return 0
	}
	if g.Bitmap[i/8]&(0x80>>(i%8)) != 0 {
		return 1
	}
	return 0
}

// Banner draws the glyph as text, '#' for set pixels and '.' otherwise.
func (g *Glyph) Banner() string {
	var b strings.Builder
	b.Grow((g.Width + 1) * g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Pixel(x, y) == 1 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
