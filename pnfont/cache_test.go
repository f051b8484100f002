package pnfont

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/superkooks/pinot/internal/fonttest"
)

type countingFinder struct {
	Finder
	calls int
}

func (c *countingFinder) Lookup(r rune) (*Glyph, error) {
	c.calls++
	return c.Finder.Lookup(r)
}

func TestCacheMatchesStore(t *testing.T) {
	s, _ := multiBlockStore(binary.BigEndian)
	counter := &countingFinder{Finder: s}
	c, err := NewCache(counter, 16)
	if err != nil {
		t.Fatal(err)
	}

	probe := []rune{0x41, 0x3042, 0x41, 0x21, 0x21, 0x1f600, 0x3042}
	for _, r := range probe {
		want, wantErr := s.Lookup(r)
		got, gotErr := c.Lookup(r)
		if !errors.Is(gotErr, wantErr) {
			t.Errorf("codepoint %#x: expected error %v got %v", r, wantErr, gotErr)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("codepoint %#x (-want +got):\n%s", r, diff)
		}
	}

	if counter.calls != 4 {
		t.Errorf("expected 4 lookups to reach the store, got %d", counter.calls)
	}
	if c.Len() != 4 {
		t.Errorf("expected 4 cached entries, got %d", c.Len())
	}
}

func TestCacheEvicts(t *testing.T) {
	s, _ := multiBlockStore(binary.BigEndian)
	counter := &countingFinder{Finder: s}
	c, err := NewCache(counter, 2)
	if err != nil {
		t.Fatal(err)
	}

	for _, r := range []rune{0x20, 0x22, 0x24, 0x20} {
		c.Lookup(r)
	}

	if counter.calls != 4 {
		t.Errorf("expected the evicted glyph to be looked up again, got %d calls", counter.calls)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 cached entries, got %d", c.Len())
	}
}

func TestNewCacheInvalidSize(t *testing.T) {
	if _, err := NewCache(newStore(), 0); err == nil {
		t.Error("expected an error for a zero sized cache")
	}
}

// flakyReader fails the next fails reads, then serves r.
type flakyReader struct {
	r     io.ReaderAt
	fails int
}

func (f *flakyReader) ReadAt(p []byte, off int64) (int, error) {
	if f.fails > 0 {
		f.fails--
		return 0, errors.New("bus busy")
	}
	return f.r.ReadAt(p, off)
}

func TestCacheSkipsReadFailures(t *testing.T) {
	data := fonttest.Build(binary.BigEndian, fonttest.Block{
		Width: 8, Height: 8, KeySize: 1,
		Glyphs: map[rune][]byte{'A': fonttest.Solid(8, 8)},
	})
	s := New(&flakyReader{r: bytes.NewReader(data), fails: 1})
	c, err := NewCache(s, 4)
	if err != nil {
		t.Fatal(err)
	}

	_, err = c.Lookup('A')
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected a format error on the failed read, got %v", err)
	}
	if fe.Reason != "bus busy" {
		t.Errorf("expected the read error to be kept, got %q", fe.Reason)
	}
	if c.Len() != 0 {
		t.Errorf("expected the failure not to be cached, got %d entries", c.Len())
	}

	g, err := c.Lookup('A')
	if err != nil {
		t.Fatalf("expected the retry to succeed, got %v", err)
	}
	if g.Char != 'A' {
		t.Errorf("expected glyph A, got %q", g.Char)
	}
	if c.Len() != 1 {
		t.Errorf("expected the hit to be cached, got %d entries", c.Len())
	}
}
