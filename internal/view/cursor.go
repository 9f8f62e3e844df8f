package view

import (
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/viewcore/internal/register"
	"github.com/xonecas/viewcore/internal/textbuf"
)

// Cursor is one insertion point tracked by a View's cursor set (§3, §4.4).
// Its position is a Mark, resolved fresh every draw; pos/row/col/line below
// are only a cache of the last projection, valid until the next Draw or
// explicit motion.
type Cursor struct {
	view *View
	mark textbuf.Mark
	pos  int

	row  int
	col  int
	line *Line

	// lastcol is the preferred display column for vertical motion — it
	// survives moving onto a shorter line and is only reset by a
	// horizontal motion.
	lastcol int

	reg register.Handle
	sel *Selection

	// lastSelAnchor/lastSelCursor cache a freed selection's endpoints so
	// RestoreSelection can rebuild it without the caller having to
	// remember the range itself.
	lastSelAnchor, lastSelCursor int
	hasLastSel                   bool

	prev, next *Cursor
}

// Pos returns the cursor's last-resolved byte position.
func (c *Cursor) Pos() int { return c.pos }

// Row and Col return the cursor's cached grid projection from the most
// recent draw.
func (c *Cursor) Row() int { return c.row }
func (c *Cursor) Col() int { return c.col }

// Line returns the screen line the cursor projected onto at the most
// recent draw, or nil if it has never been drawn.
func (c *Cursor) Line() *Line { return c.line }

// Selection returns the cursor's active selection, or nil.
func (c *Cursor) Selection() *Selection { return c.sel }

// addCursor creates and pushes a new cursor to the head of the cursor
// list, making it primary.
func (v *View) addCursor(pos int) *Cursor {
	c := &Cursor{
		view: v,
		mark: v.buf.MarkSet(pos),
		pos:  pos,
		reg:  v.regs.Alloc(),
	}
	c.next = v.cursorHead
	if v.cursorHead != nil {
		v.cursorHead.prev = c
	}
	v.cursorHead = c
	v.cursorPrimary = c
	return c
}

// NewCursor creates an additional cursor at pos (multi-cursor editing).
func (v *View) NewCursor(pos int) *Cursor {
	return v.addCursor(clampInt(pos, 0, v.buf.Size()))
}

// DisposeCursor removes c from the cursor set, freeing its selection and
// register. If c was primary, primary is reassigned to c's next neighbor,
// else its previous one. Disposing the last remaining cursor is a no-op:
// a view is never left with zero cursors.
func (v *View) DisposeCursor(c *Cursor) {
	if c.next == nil && c.prev == nil {
		return
	}
	if c.sel != nil {
		v.ClearSelection(c)
	}
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		v.cursorHead = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	}
	if v.cursorPrimary == c {
		if c.next != nil {
			v.cursorPrimary = c.next
		} else {
			v.cursorPrimary = c.prev
		}
	}
	v.regs.Release(c.reg)
}

// Primary returns the view's primary cursor.
func (v *View) Primary() *Cursor { return v.cursorPrimary }

// Cursors returns every cursor in list order (head first).
func (v *View) Cursors() []*Cursor {
	var out []*Cursor
	for c := v.cursorHead; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// CursorTo moves c to an absolute byte position. It is the single write
// point for cursor position (§4.4): it rebinds c's mark, resets lastcol
// when the position actually changed, keeps an attached selection's
// endpoints in sync (including the anchor's orientation flip when the
// motion crosses it), and redraws so the cached projections are fresh.
func (v *View) CursorTo(c *Cursor, pos int) {
	pos = clampInt(pos, 0, v.buf.Size())
	if pos != c.pos {
		c.pos = pos
		c.lastcol = v.columnOf(pos)
	}
	c.mark = v.buf.MarkSet(pos)
	if c.sel != nil {
		v.extendSelectionTo(c, pos)
	}
	if err := v.Draw(); err != nil {
		log.Debug().Err(err).Msg("view: redraw after cursor motion failed")
	}
}

// CursorsTo is the viewport-aware wrapper around CursorTo (§4.4): if c is
// the primary cursor and pos falls outside the drawn range, the viewport is
// relaid out before the move — first to the beginning of pos's line, and,
// if pos is still off-screen after that redraw (a line wider than the
// viewport), directly to pos. If pos lands at the buffer's end and the view
// doesn't already show the end, the viewport recenters so the cursor isn't
// left on the bottom edge.
func (v *View) CursorsTo(c *Cursor, pos int) {
	pos = clampInt(pos, 0, v.buf.Size())
	primary := c == v.cursorPrimary
	if primary && !v.withinDrawnRange(pos) {
		lineStart := v.buf.LineBegin(pos)
		v.startMark = v.buf.MarkSet(lineStart)
		v.start = lineStart
		v.Draw()
		if !v.withinDrawnRange(pos) {
			v.startMark = v.buf.MarkSet(pos)
			v.start = pos
			v.Draw()
		}
	}
	endVisible := v.end == v.buf.Size()
	v.CursorTo(c, pos)
	if primary && pos == v.buf.Size() && !endVisible && v.scrollToMiddleOnAppend {
		v.RedrawCenter()
	}
}

// CursorsScrollTo steps the viewport one row at a time toward pos until it
// is in range, then delegates to CursorsTo (§4.4 cursors_scroll_to).
func (v *View) CursorsScrollTo(c *Cursor, pos int) {
	pos = clampInt(pos, 0, v.buf.Size())
	if c == v.cursorPrimary {
		for pos < v.start {
			if v.ViewportUp(1) != nil {
				break
			}
		}
		for !v.withinDrawnRange(pos) && pos >= v.start {
			if v.ViewportDown(1) != nil {
				break
			}
		}
	}
	v.CursorsTo(c, pos)
}

// columnOf resolves pos's display column on its logical line, re-expanding
// tabs and glyph widths from the line's start — the text→screen half of the
// round-trip column mapping.
func (v *View) columnOf(pos int) int {
	lineStart := v.buf.LineBegin(pos)
	col := 0
	var buf [256]byte
	cur := lineStart
	for cur < pos {
		n := v.buf.BytesGet(cur, buf[:])
		if n == 0 {
			break
		}
		r, sz := decodeRuneAt(buf[:n])
		if sz == 0 {
			break
		}
		if r == '\t' {
			col += v.tabWidth - (col % v.tabWidth)
		} else {
			col += runeWidth(r)
		}
		cur += sz
	}
	return col
}

// CursorSet moves c to the byte position on buffer line `line` whose
// display column best matches `col` (§4.4 cursor_set): it re-expands the
// line the same way Draw does, landing on the head of the character whose
// column span covers col, or the line's end if col exceeds its width. This
// is the screen→text half of the round-trip column mapping.
func (v *View) CursorSet(c *Cursor, line, col int) {
	pos := v.posForLine(line)
	target := pos
	cur := pos
	curCol := 0
	var buf [256]byte
	for {
		n := v.buf.BytesGet(cur, buf[:])
		if n == 0 {
			break
		}
		r, sz := decodeRuneAt(buf[:n])
		if sz == 0 || r == '\n' || r == '\r' {
			break
		}
		var w int
		if r == '\t' {
			w = v.tabWidth - (curCol % v.tabWidth)
		} else {
			w = runeWidth(r)
		}
		if curCol+w > col {
			v.CursorTo(c, cur)
			c.lastcol = col
			return
		}
		curCol += w
		cur += sz
		target = cur
	}
	v.CursorTo(c, target)
	c.lastcol = col
}

func (v *View) posForLine(line int) int {
	cur, ok := v.resolveMark(v.startMark)
	if !ok {
		cur = 0
	}
	curLine := v.buf.LineNumberAt(cur)
	lineStart := v.buf.LineBegin(cur)
	for curLine < line {
		next := v.buf.LineDown(lineStart)
		if next == lineStart {
			break
		}
		lineStart = next
		curLine++
	}
	for curLine > line {
		prev := v.buf.LineUp(lineStart)
		if prev == lineStart {
			break
		}
		lineStart = prev
		curLine--
	}
	return lineStart
}

// LineUp moves c up one logical buffer line, preserving lastcol.
func (v *View) LineUp(c *Cursor) bool {
	if v.onContinuationRow(c, false) {
		return v.ScreenLineUp(c)
	}
	lineStart := v.buf.LineBegin(c.pos)
	prev := v.buf.LineUp(lineStart)
	if prev == lineStart {
		return false
	}
	col := c.lastcol
	v.CursorSet(c, v.buf.LineNumberAt(prev), col)
	c.lastcol = col
	return true
}

// LineDown moves c down one logical buffer line, preserving lastcol.
func (v *View) LineDown(c *Cursor) bool {
	if v.onContinuationRow(c, true) {
		return v.ScreenLineDown(c)
	}
	lineStart := v.buf.LineBegin(c.pos)
	next := v.buf.LineDown(lineStart)
	if next == lineStart {
		return false
	}
	col := c.lastcol
	v.CursorSet(c, v.buf.LineNumberAt(next), col)
	c.lastcol = col
	return true
}

// onContinuationRow reports whether c sits on a screen row whose neighbor
// in the given direction continues the same buffer line — logical motion
// then degrades to screen-line motion (§4.4).
func (v *View) onContinuationRow(c *Cursor, down bool) bool {
	row := v.rowContaining(c.pos)
	if row == nil {
		return false
	}
	if down {
		return row.next != nil && row.next.Lineno == row.Lineno
	}
	return row.prev != nil && row.prev.Lineno == row.Lineno
}

// ScreenLineUp and ScreenLineDown move c between rows of the rendered grid
// (distinct from LineUp/LineDown when soft wrap splits one buffer line over
// several rows). At the viewport's edge the view scrolls by one row first.
func (v *View) ScreenLineUp(c *Cursor) bool {
	row := v.rowContaining(c.pos)
	if row == nil {
		return false
	}
	col := c.lastcol
	if col == 0 {
		col = v.cellColumn(row, c.pos)
	}
	if row.prev == nil {
		if v.ViewportUp(1) != nil {
			return false
		}
		row = v.rowContaining(c.pos)
		if row == nil || row.prev == nil {
			return false
		}
	}
	if !v.cursorToRowCol(c, row.prev, col) {
		return false
	}
	c.lastcol = col
	if c == v.cursorPrimary && v.scrollOff > 0 && c.row < v.scrollOff {
		v.ViewportUp(1)
	}
	return true
}

func (v *View) ScreenLineDown(c *Cursor) bool {
	row := v.rowContaining(c.pos)
	if row == nil {
		return false
	}
	col := c.lastcol
	if col == 0 {
		col = v.cellColumn(row, c.pos)
	}
	if row.next == nil || row.next.Lineno < 0 {
		if v.ViewportDown(1) != nil {
			return false
		}
		row = v.rowContaining(c.pos)
		if row == nil || row.next == nil || row.next.Lineno < 0 {
			return false
		}
	}
	if !v.cursorToRowCol(c, row.next, col) {
		return false
	}
	c.lastcol = col
	if c == v.cursorPrimary && v.scrollOff > 0 && c.row >= v.grid.Height()-v.scrollOff {
		v.ViewportDown(1)
	}
	return true
}

func (v *View) rowContaining(pos int) *Line {
	for row := v.topline; row != nil; row = row.next {
		if row.Lineno < 0 {
			break
		}
		if pos >= row.Start && pos < row.End {
			return row
		}
		last := row.next == nil || row.next.Lineno < 0
		if last && pos == row.End {
			return row
		}
	}
	return nil
}

// cellColumn returns the column of the cell rendering pos within row.
func (v *View) cellColumn(row *Line, pos int) int {
	p := row.Start
	for col := 0; col < row.Width && col < len(row.Cells); col++ {
		cell := &row.Cells[col]
		if cell.Len > 0 {
			if pos >= p && pos < p+cell.Len {
				return col
			}
			p += cell.Len
		}
	}
	return maxInt(0, row.Width-1)
}

// cursorToRowCol lands c on row at the given display column, snapping left
// over a wide glyph's continuation cells (their head is the position the
// column renders) and right over tab fill cells, and clamping past-content
// columns onto the row's final character.
func (v *View) cursorToRowCol(c *Cursor, row *Line, col int) bool {
	if row == nil || row.Lineno < 0 {
		return false
	}
	limit := col
	if row.Width > 0 && limit > row.Width-1 {
		limit = row.Width - 1
	}
	if limit < 0 {
		limit = 0
	}
	for limit > 0 && limit < len(row.Cells) && row.Cells[limit].Len == 0 && !row.Cells[limit].IsTab {
		limit--
	}
	pos := row.Start
	for i := 0; i < limit && i < len(row.Cells); i++ {
		pos += row.Cells[i].Len
	}
	v.CursorTo(c, pos)
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func runeWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		return 1
	}
	return w
}
