package view

// Line is one row of the screen-line chain (§3, §9): a fixed-width run of
// Cells plus the buffer line number it renders and the prev/next pointers
// that make the grid walkable as a doubly-linked chain independent of its
// backing storage. The chain is backed by a single contiguous allocation
// (Grid.lines) rather than individually heap-allocated nodes — the design
// note in §9 favors an arena over a naively pointer-chased list, and
// Line.prev/next simply index into that arena.
type Line struct {
	Cells  []Cell
	Lineno int
	Start  int // buffer byte offset of the first cell's source text
	End    int // buffer byte offset just past the last cell's source text
	Width  int // number of columns filled by the row's cells
	Soft   bool // true if this row continues the same buffer line as prev

	prev, next *Line
}

// Prev returns the row above this one in the chain, or nil at topline.
func (l *Line) Prev() *Line { return l.prev }

// Next returns the row below this one in the chain, or nil at bottomline.
func (l *Line) Next() *Line { return l.next }

func (l *Line) reset(lineno int) {
	for i := range l.Cells {
		l.Cells[i].reset()
	}
	l.Lineno = lineno
	l.Start = -1
	l.End = -1
	l.Width = 0
	l.Soft = false
}
