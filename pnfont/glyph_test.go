package pnfont

import "testing"

func TestGlyphPixel(t *testing.T) {
	// 3x3 cross: .#. / ### / .#.
	g := &Glyph{Char: '+', Width: 3, Height: 3, Bitmap: []byte{0b01011101, 0b00000000}}

	want := [3][3]int{
		{0, 1, 0},
		{1, 1, 1},
		{0, 1, 0},
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if got := g.Pixel(x, y); got != want[y][x] {
				t.Errorf("pixel %d,%d: expected %d got %d", x, y, want[y][x], got)
			}
		}
	}

	if g.Pixel(3, 0) != 0 || g.Pixel(0, -1) != 0 {
		t.Error("pixels outside the glyph should be 0")
	}
}

func TestGlyphBanner(t *testing.T) {
	g := &Glyph{Char: '+', Width: 3, Height: 3, Bitmap: []byte{0b01011101, 0b00000000}}

	want := ".#.\n###\n.#.\n"
	if got := g.Banner(); got != want {
		t.Errorf("expected\n%v\ngot\n%v", want, got)
	}
}

func TestBitmapSize(t *testing.T) {
	tests := []struct {
		w, h, want int
	}{
		{8, 8, 8},
		{3, 3, 2},
		{12, 14, 21},
		{1, 1, 1},
		{0, 16, 0},
	}
	for _, tt := range tests {
		if got := BitmapSize(tt.w, tt.h); got != tt.want {
			t.Errorf("%dx%d: expected %d got %d", tt.w, tt.h, tt.want, got)
		}
	}
}
