// Package console renders text streams onto small raster panels, wrapping
// lines and scrolling with the panel's own scroll register so the
// framebuffer is never copied.
package console

import (
	"fmt"
	"strings"

	"github.com/superkooks/pinot/pnfont"
	"go.uber.org/zap"
)

// Console keeps a text cursor over one panel and font. It is owned by a
// single goroutine; callers serialize access.
type Console struct {
	panel  Panel
	font   pnfont.Finder
	caps   capabilities
	logger *zap.Logger
	fg, bg uint16

	cx, cy     int
	lineHeight int
	top        VirtualTop
}

type Option func(*Console)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

// WithColors sets the foreground and background used for glyphs.
func WithColors(fg, bg uint16) Option {
	return func(c *Console) {
		c.fg = fg
		c.bg = bg
	}
}

// New creates a console over p. A nil panel is allowed, drawing is then
// skipped and text only reaches the log. The font must have a space glyph,
// its height sets the line height.
func New(p Panel, font pnfont.Finder, opts ...Option) (*Console, error) {
	space, err := font.Lookup(' ')
	if err != nil {
		return nil, fmt.Errorf("font has no space glyph: %w", err)
	}

	c := &Console{
		panel:      p,
		font:       font,
		caps:       probe(p),
		logger:     zap.NewNop(),
		fg:         White,
		bg:         Black,
		lineHeight: space.Height + 1,
	}
	if p != nil {
		c.top = NewVirtualTop(p.Height())
	}
	for _, o := range opts {
		o(c)
	}

	return c, nil
}

func (c *Console) Cursor() (x, y int) {
	return c.cx, c.cy
}

func (c *Console) LineHeight() int {
	return c.lineHeight
}

// Top is the scroll offset of the visible window, in rows.
func (c *Console) Top() int {
	return c.top.Offset()
}

// Clear blanks the panel, realigns the scroll register and homes the cursor.
func (c *Console) Clear() {
	c.cx, c.cy = 0, 0
	if c.panel == nil {
		return
	}

	c.caps.fill(c.bg)
	if off := c.top.Offset(); off != 0 {
		c.Scroll(c.panel.Height() - off)
	}
}

// Locate moves the cursor without any wrap or scroll bookkeeping.
func (c *Console) Locate(x, y int) {
	c.cx, c.cy = x, y
}

// Echo writes msg on a fixed status slot. Slot 0 clears the whole panel
// first, other slots only blank their own band. Echo never scrolls, glyphs
// that do not fit on the slot are dropped.
func (c *Console) Echo(msg string, lineno int) {
	c.logger.Info("echo",
		zap.String("msg", msg),
		zap.Int("line", lineno))
	if c.panel == nil {
		return
	}

	if lineno == 0 {
		c.Clear()
	} else {
		c.Locate(0, mod(lineno*c.lineHeight, c.panel.Height()))
		c.clearBand(c.cy, c.lineHeight)
	}

	pnfont.Chars(msg, func(char string) {
		g := c.glyph(char)
		if g == nil || c.cx+g.Width > c.panel.Width() {
			return
		}
		c.caps.glyph(g, c.cx, c.cy, c.fg, c.bg)
		c.cx += g.Width
	})
	c.show()
}

// Text writes msg at the cursor, wrapping at the right edge and scrolling
// on every line feed. Characters that fail to decode or have no glyph are
// skipped.
func (c *Console) Text(msg string) {
	if c.panel == nil {
		c.logger.Info("text", zap.String("msg", msg))
		return
	}
	c.logger.Debug("text", zap.String("msg", msg))

	width := c.panel.Width()
	pnfont.Chars(msg, func(char string) {
		if char == "\n" {
			c.LineFeed()
			return
		}

		g := c.glyph(char)
		if g == nil || g.Width > width {
			return
		}
		if c.cx+g.Width > width || c.cx >= width {
			c.LineFeed()
		}

		c.caps.glyph(g, c.cx, c.cy, c.fg, c.bg)
		c.cx += g.Width
	})
	c.show()
}

// LineFeed moves the cursor to the start of the next line, scrolling the
// panel when that line would run past the bottom of the visible window.
func (c *Console) LineFeed() {
	c.cx = 0
	if c.panel == nil {
		return
	}
	h := c.panel.Height()

	// Bottom edge of the line after this one
	bottom := mod(c.cy+2*c.lineHeight-1, h)
	if c.top.Absolute(bottom) < c.top.Absolute(c.cy) {
		c.Scroll(c.top.Absolute(bottom) + 1)
	}

	c.cy = mod(c.cy+c.lineHeight, h)
	c.clearBand(c.cy, c.lineHeight)
}

// Scroll moves the visible window down by dy rows.
func (c *Console) Scroll(dy int) {
	if c.panel == nil {
		return
	}
	c.caps.scroll(dy, 0)
	c.top.Advance(dy)
}

// Banner returns every glyph of msg drawn as text. Missing glyphs are left out.
func (c *Console) Banner(msg string) string {
	var b strings.Builder
	pnfont.Chars(msg, func(char string) {
		if g := c.glyph(char); g != nil {
			b.WriteString(g.Banner())
		}
	})

	c.logger.Debug("banner",
		zap.String("msg", msg),
		zap.String("banner", b.String()))
	return b.String()
}

func (c *Console) glyph(char string) *pnfont.Glyph {
	r, ok := pnfont.Codepoint([]byte(char))
	if !ok {
		return nil
	}

	g, err := c.font.Lookup(r)
	if err != nil {
		return nil
	}
	return g
}

// clearBand blanks rows [y, y+h) across the panel, wrapping past the bottom.
func (c *Console) clearBand(y, h int) {
	ph := c.panel.Height()
	if h > ph {
		h = ph
	}

	first := h
	if y+h > ph {
		first = ph - y
	}
	c.panel.FillRect(0, y, c.panel.Width(), first, c.bg)
	if rest := h - first; rest > 0 {
		c.panel.FillRect(0, 0, c.panel.Width(), rest, c.bg)
	}
}

func (c *Console) show() {
	if err := c.caps.show(); err != nil {
		c.logger.Warn("unable to show panel", zap.Error(err))
	}
}
