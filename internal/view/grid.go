package view

// Grid is the view's cell-grid backing store: one contiguous []Line arena
// sized to the viewport's rows, each carrying a []Cell arena sized to the
// viewport's columns. Resize reuses the arena when it shrinks and only
// reallocates on growth, matching the "reallocation policy" design note in
// §9 (grow, never shrink-and-reallocate on every resize).
type Grid struct {
	lines  []Line
	width  int
	height int
}

// NewGrid allocates a grid of the given viewport size.
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.Resize(width, height)
	return g
}

// Width and Height report the grid's current viewport size in columns and
// rows.
func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Resize adapts the grid to a new viewport size, relinking the chain.
// Existing row/cell arenas are kept and truncated when shrinking, grown
// when the new size exceeds previous capacity.
func (g *Grid) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if cap(g.lines) < height {
		grown := make([]Line, height)
		copy(grown, g.lines)
		g.lines = grown
	} else {
		g.lines = g.lines[:height]
	}
	for i := range g.lines {
		if cap(g.lines[i].Cells) < width {
			g.lines[i].Cells = make([]Cell, width)
		} else {
			g.lines[i].Cells = g.lines[i].Cells[:width]
		}
	}
	g.width = width
	g.height = height
	g.relink()
}

func (g *Grid) relink() {
	for i := range g.lines {
		if i > 0 {
			g.lines[i].prev = &g.lines[i-1]
		} else {
			g.lines[i].prev = nil
		}
		if i+1 < len(g.lines) {
			g.lines[i].next = &g.lines[i+1]
		} else {
			g.lines[i].next = nil
		}
	}
}

// Top returns the grid's first row, or nil if the grid has zero height.
func (g *Grid) Top() *Line {
	if len(g.lines) == 0 {
		return nil
	}
	return &g.lines[0]
}

// Bottom returns the grid's last physical row (the bottomline of §3),
// which always exists at the final viewport row regardless of how much
// text is visible, or nil if the grid has zero height.
func (g *Grid) Bottom() *Line {
	if len(g.lines) == 0 {
		return nil
	}
	return &g.lines[len(g.lines)-1]
}

// resetAll clears every row's cells back to empty, preparing the grid for a
// fresh draw pass.
func (g *Grid) resetAll() {
	for i := range g.lines {
		g.lines[i].reset(-1)
	}
}
