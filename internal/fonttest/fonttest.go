// Package fonttest builds small font files in memory for tests.
package fonttest

import (
	"bytes"
	"encoding/binary"
	"sort"
)

// Block describes one block of a synthetic font. Glyphs maps a codepoint to
// its bitmap; a missing or short bitmap is padded with zero bytes.
type Block struct {
	Width, Height int
	KeySize       int
	Glyphs        map[rune][]byte
}

// Build encodes blocks in the given order, keys sorted within each block.
func Build(order binary.ByteOrder, blocks ...Block) []byte {
	var buf bytes.Buffer
	buf.WriteString("PINOTFONT\x00\x00\x00\x00\x00\x00\x00")

	for _, b := range blocks {
		keys := make([]rune, 0, len(b.Glyphs))
		for k := range b.Glyphs {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		buf.Write([]byte{byte(b.Width), byte(b.Height), byte(b.KeySize), 0})
		count := make([]byte, 2)
		order.PutUint16(count, uint16(len(keys)))
		buf.Write(count)

		size := (b.Width*b.Height + 7) / 8
		for _, k := range keys {
			key := make([]byte, 4)
			switch b.KeySize {
			case 1:
				key = []byte{byte(k)}
			case 2:
				order.PutUint16(key, uint16(k))
				key = key[:2]
			default:
				order.PutUint32(key, uint32(k))
			}
			buf.Write(key)

			bitmap := make([]byte, size)
			copy(bitmap, b.Glyphs[k])
			buf.Write(bitmap)
		}
	}

	return buf.Bytes()
}

// Solid returns a bitmap of width x height with every pixel set.
func Solid(width, height int) []byte {
	bitmap := make([]byte, (width*height+7)/8)
	for i := 0; i < width*height; i++ {
		bitmap[i/8] |= 0x80 >> (i % 8)
	}
	return bitmap
}

// ASCII returns a block of every printable ASCII character, each glyph a
// solid width x height cell except the space which is blank.
func ASCII(width, height int) Block {
	b := Block{Width: width, Height: height, KeySize: 1, Glyphs: make(map[rune][]byte)}
	for c := rune(0x20); c < 0x7f; c++ {
		if c == ' ' {
			b.Glyphs[c] = nil
			continue
		}
		b.Glyphs[c] = Solid(width, height)
	}
	return b
}
