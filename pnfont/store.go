package pnfont

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

const (
	headerSize      = 16
	blockHeaderSize = 6
)

// Store resolves codepoints against a font file without loading it.
//
// The file is a 16 byte header followed by blocks until the end of data:
//
//	width u8, height u8, key_size u8 (1, 2 or 4), attribute u8, count u16
//	count entries of key (key_size bytes) + bitmap (ceil(width*height/8) bytes)
//
// Blocks ascend by codepoint and never overlap, keys ascend within a block.
// A Store is owned by a single goroutine.
type Store struct {
	r      io.ReaderAt
	closer io.Closer
	order  binary.ByteOrder
	logger *zap.Logger

	// key comparisons made by the last binary search, read by tests
	probes int
}

type Option func(*Store)

// WithByteOrder sets the byte order of keys and block counts.
// Fonts are big-endian unless told otherwise.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(s *Store) {
		s.order = order
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New reads a font from any random access storage.
func New(r io.ReaderAt, opts ...Option) *Store {
	s := &Store{
		r:      r,
		order:  binary.BigEndian,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open opens the font file at path. The header must be readable.
func Open(path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open font: %w", err)
	}

	header := make([]byte, headerSize)
	if _, err := f.ReadAt(header, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("read font header %v: %w", path, err)
	}

	s := New(f, opts...)
	s.closer = f
	s.logger.Debug("opened font", zap.String("path", path))
	return s, nil
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Glyph decodes one encoded character and looks it up.
func (s *Store) Glyph(char string) (*Glyph, error) {
	c, ok := Codepoint([]byte(char))
	if !ok {
		return nil, ErrDecode
	}
	return s.Lookup(c)
}

// Lookup finds the glyph for c. A miss returns ErrNotFound, damaged data
// returns a *FormatError that also matches ErrNotFound.
func (s *Store) Lookup(c rune) (*Glyph, error) {
	g, err := s.lookup(c)

	var fe *FormatError
	switch {
	case err == nil:
		metricLookups.WithLabelValues("hit").Inc()
	case errors.As(err, &fe):
		metricLookups.WithLabelValues("malformed").Inc()
		s.logger.Debug("malformed font data",
			zap.Int32("codepoint", c),
			zap.Error(err))
	default:
		metricLookups.WithLabelValues("miss").Inc()
	}

	return g, err
}

type block struct {
	width, height int
	keySize       int
	count         int
	start         int64
}

func (b block) entrySize() int64 {
	return int64(b.keySize + BitmapSize(b.width, b.height))
}

func (b block) entry(i int) int64 {
	return b.start + int64(i)*b.entrySize()
}

func (b block) end() int64 {
	return b.entry(b.count)
}

func (s *Store) lookup(c rune) (*Glyph, error) {
	if c < 0 {
		return nil, ErrNotFound
	}
	target := uint32(c)

	pos := int64(headerSize)
	for {
		var hdr [blockHeaderSize]byte
		n, err := s.r.ReadAt(hdr[:], pos)
		if n == 0 && errors.Is(err, io.EOF) {
			// Ran out of blocks
			return nil, ErrNotFound
		}
		if n < blockHeaderSize {
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, &FormatError{pos, err.Error()}
			}
			return nil, &FormatError{pos, "truncated block header"}
		}

		b := block{
			width:   int(hdr[0]),
			height:  int(hdr[1]),
			keySize: int(hdr[2]),
			count:   int(s.order.Uint16(hdr[4:6])),
			start:   pos + blockHeaderSize,
		}
		if b.keySize != 1 && b.keySize != 2 && b.keySize != 4 {
			return nil, &FormatError{pos, fmt.Sprintf("unsupported key size %d", b.keySize)}
		}
		if b.count == 0 {
			pos = b.start
			continue
		}

		first, err := s.key(b, 0)
		if err != nil {
			return nil, err
		}
		last, err := s.key(b, b.count-1)
		if err != nil {
			return nil, err
		}

		if target < first {
			// Blocks ascend, no later block can hold it
			return nil, ErrNotFound
		}
		if target > last {
			pos = b.end()
			continue
		}

		return s.search(b, c)
	}
}

func (s *Store) search(b block, c rune) (*Glyph, error) {
	target := uint32(c)
	s.probes = 0

	lo, hi := 0, b.count
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		key, err := s.key(b, mid)
		if err != nil {
			return nil, err
		}
		s.probes++

		switch {
		case key < target:
			lo = mid + 1
		case key > target:
			hi = mid
		default:
			bitmap := make([]byte, BitmapSize(b.width, b.height))
			off := b.entry(mid) + int64(b.keySize)
			if err := s.readFull(bitmap, off); err != nil {
				return nil, err
			}
			return &Glyph{Char: c, Width: b.width, Height: b.height, Bitmap: bitmap}, nil
		}
	}

	return nil, ErrNotFound
}

func (s *Store) key(b block, i int) (uint32, error) {
	var buf [4]byte
	k := buf[:b.keySize]
	if err := s.readFull(k, b.entry(i)); err != nil {
		return 0, err
	}

	switch b.keySize {
	case 1:
		return uint32(k[0]), nil
	case 2:
		return uint32(s.order.Uint16(k)), nil
	default:
		return s.order.Uint32(k), nil
	}
}

func (s *Store) readFull(p []byte, off int64) error {
	n, err := s.r.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return &FormatError{off, "truncated entry"}
	}
	return &FormatError{off, err.Error()}
}
