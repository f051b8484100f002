package pnfont

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Finder resolves a codepoint to a glyph.
type Finder interface {
	Lookup(c rune) (*Glyph, error)
}

type cacheEntry struct {
	glyph *Glyph
	err   error
}

// Cache keeps the most recently used lookups of one font in memory.
// Plain misses are remembered as well, read failures and damaged data are
// not. Cached glyphs are shared, do not modify them.
type Cache struct {
	finder Finder
	lru    *lru.Cache[rune, cacheEntry]
}

func NewCache(f Finder, size int) (*Cache, error) {
	l, err := lru.New[rune, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{finder: f, lru: l}, nil
}

func (c *Cache) Lookup(r rune) (*Glyph, error) {
	if e, ok := c.lru.Get(r); ok {
		metricCacheHits.Inc()
		return e.glyph, e.err
	}

	g, err := c.finder.Lookup(r)
	var fe *FormatError
	if errors.As(err, &fe) {
		return g, err
	}
	c.lru.Add(r, cacheEntry{g, err})
	return g, err
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
