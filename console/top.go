package console

// VirtualTop tracks how far the panel's scroll register has moved the
// visible window over its circular framebuffer memory.
type VirtualTop struct {
	top    int
	height int
}

func NewVirtualTop(height int) VirtualTop {
	return VirtualTop{height: height}
}

// Advance moves the window down by dy rows.
func (t *VirtualTop) Advance(dy int) {
	t.top = mod(t.top+dy, t.height)
}

// Absolute returns where memory row y currently appears on screen.
func (t VirtualTop) Absolute(y int) int {
	return mod(t.height-t.top+y, t.height)
}

// Offset is the memory row shown on the first screen row.
func (t VirtualTop) Offset() int {
	return t.top
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
