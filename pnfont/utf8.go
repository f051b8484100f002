package pnfont

// Lead byte classes:
//
//	0xxxxxxx  mask 0x80  payload 0x7f  no continuation bytes
//	110xxxxx  mask 0xe0  payload 0x1f  1 continuation byte
//	1110xxxx  mask 0xf0  payload 0x0f  2 continuation bytes
//	11110xxx  mask 0xf8  payload 0x07  3 continuation bytes
//
// Continuation bytes are 10xxxxxx (mask 0xc0, payload 0x3f).
var leadClasses = [...]struct {
	mask, prefix, payload byte
	cont                  int
}{
	{0x80, 0x00, 0x7f, 0},
	{0xe0, 0xc0, 0x1f, 1},
	{0xf0, 0xe0, 0x0f, 2},
	{0xf8, 0xf0, 0x07, 3},
}

// Codepoint decodes the bytes of exactly one encoded character.
// It reports false for an empty input, an unknown lead byte, a bad
// continuation byte or a length that does not match the lead byte.
func Codepoint(char []byte) (rune, bool) {
	if len(char) == 0 {
		return 0, false
	}

	for _, c := range leadClasses {
		if char[0]&c.mask != c.prefix {
			continue
		}
		if len(char) != c.cont+1 {
			return 0, false
		}

		code := rune(char[0] & c.payload)
		for _, b := range char[1:] {
			if b&0xc0 != 0x80 {
				return 0, false
			}
			code = code<<6 | rune(b&0x3f)
		}
		return code, true
	}

	return 0, false
}

// CharLen returns how many bytes the character starting with lead occupies.
// Unknown lead bytes count as a single byte so a stream always makes progress.
func CharLen(lead byte) int {
	for _, c := range leadClasses {
		if lead&c.mask == c.prefix {
			return c.cont + 1
		}
	}
	return 1
}

// Chars calls fn with every encoded character of s in order. A character
// cut short by a missing continuation byte is passed up to the point where
// it breaks and fails to decode; the following byte starts a new character.
func Chars(s string, fn func(char string)) {
	for i := 0; i < len(s); {
		n := 1
		for want := CharLen(s[i]); n < want; n++ {
			if i+n >= len(s) || s[i+n]&0xc0 != 0x80 {
				break
			}
		}
		fn(s[i : i+n])
		i += n
	}
}
