package pnfont

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no block holds the codepoint.
	ErrNotFound = errors.New("glyph not found")
	// ErrDecode is returned for bytes that are not one valid encoded character.
	ErrDecode = errors.New("invalid encoded character")
)

// FormatError describes truncated or malformed font data met during a lookup.
// It matches ErrNotFound with errors.Is, a damaged font only ever costs glyphs.
type FormatError struct {
	Offset int64
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed font at offset %d: %s", e.Offset, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrNotFound
}
