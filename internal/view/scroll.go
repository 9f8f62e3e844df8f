package view

// ViewportDown scrolls the viewport down by n screen lines (content moves
// up), advancing start by the sum of the first n rendered rows' byte
// lengths (§4.3 — no precomputed line index exists). n >= the viewport
// height takes the shortcut straight to the last drawn position. Returns
// ErrNoPosition if the view already shows the end of the buffer.
func (v *View) ViewportDown(n int) error {
	if v.end == v.buf.Size() {
		return ErrNoPosition
	}
	height := v.grid.Height()
	var newStart int
	if n >= height {
		newStart = v.end
	} else {
		sum := 0
		row := v.topline
		for i := 0; i < n && row != nil; i++ {
			if row.Lineno >= 0 && row.End >= row.Start {
				sum += row.End - row.Start
			}
			row = row.next
		}
		newStart = v.start + sum
	}
	v.startMark = v.buf.MarkSet(newStart)
	v.start = newStart
	return v.Draw()
}

// ViewportUp scrolls the viewport up by n screen lines (content moves
// down): it scans backward from start-1 through the buffer's reverse
// iterator, counting newlines, stopping after n newlines or after
// scanning width*height bytes, whichever comes first (§4.3). The newline
// terminating the line immediately above start is skipped without
// counting, so the scan lands on line boundaries rather than one byte
// short of them. Returns ErrNoPosition at the start of the buffer.
func (v *View) ViewportUp(n int) error {
	if v.start == 0 {
		return ErrNoPosition
	}
	width, height := v.grid.Width(), v.grid.Height()
	bound := width * height
	if bound <= 0 {
		bound = 1
	}

	it := v.buf.ReverseFrom(v.start)
	pos := v.start
	found := 0
	skippedBoundary := false
	for scanned := 0; scanned < bound; scanned++ {
		b, ok := it.Prev()
		if !ok {
			pos = 0
			break
		}
		pos--
		if b != '\n' {
			continue
		}
		if !skippedBoundary {
			skippedBoundary = true
			continue
		}
		found++
		if found == n {
			pos++
			break
		}
	}
	pos = clampInt(pos, 0, v.buf.Size())
	v.startMark = v.buf.MarkSet(pos)
	v.start = pos
	return v.Draw()
}

// RedrawTop scrolls so the primary cursor's line becomes the viewport's
// topline.
func (v *View) RedrawTop() error {
	lineStart := v.buf.LineBegin(v.cursorPrimary.pos)
	v.startMark = v.buf.MarkSet(lineStart)
	v.start = lineStart
	return v.Draw()
}

// RedrawCenter scrolls so the primary cursor's line lands in the middle
// row of the viewport. It runs the placement twice; both passes count
// logical lines above the cursor, not screen rows, so lines that soft-wrap
// above the cursor push it below the middle row.
func (v *View) RedrawCenter() error {
	if err := v.redrawWithCursorAt(v.grid.Height() / 2); err != nil {
		return err
	}
	return v.redrawWithCursorAt(v.grid.Height() / 2)
}

// RedrawBottom scrolls so the primary cursor's line lands on the
// viewport's last row. Like RedrawCenter it counts logical lines, so lines
// that soft-wrap above the cursor push it past the last row.
func (v *View) RedrawBottom() error {
	return v.redrawWithCursorAt(v.grid.Height() - 1)
}

// redrawWithCursorAt anchors the viewport so the primary cursor's line
// sits rowsAbove rows below the top, walking logical lines upward from it.
func (v *View) redrawWithCursorAt(rowsAbove int) error {
	pos := v.buf.LineBegin(v.cursorPrimary.pos)
	for i := 0; i < rowsAbove; i++ {
		prev := v.buf.LineUp(pos)
		if prev == pos {
			break
		}
		pos = prev
	}
	v.startMark = v.buf.MarkSet(pos)
	v.start = pos
	return v.Draw()
}

// SlideUp and SlideDown shift the viewport by n rows without following any
// cursor; if the primary cursor falls off, it is pinned to the new
// top/bottom row keeping its column (§4.3).
func (v *View) SlideUp(n int) error {
	if err := v.ViewportUp(n); err != nil {
		return err
	}
	v.pinPrimaryIntoView()
	return nil
}

func (v *View) SlideDown(n int) error {
	if err := v.ViewportDown(n); err != nil {
		return err
	}
	v.pinPrimaryIntoView()
	return nil
}

// ScrollUp and ScrollDown move the viewport and every cursor together so
// each cursor's row relative to the viewport is preserved. At a buffer
// edge where the viewport cannot move, the primary cursor jumps to the
// buffer's start or end instead (§4.3).
func (v *View) ScrollUp(n int) error {
	if err := v.ViewportUp(n); err != nil {
		v.CursorsTo(v.cursorPrimary, 0)
		return err
	}
	for c := v.cursorHead; c != nil; c = c.next {
		for i := 0; i < n; i++ {
			if !v.LineUp(c) {
				break
			}
		}
	}
	return v.Draw()
}

func (v *View) ScrollDown(n int) error {
	if err := v.ViewportDown(n); err != nil {
		v.CursorsTo(v.cursorPrimary, v.buf.Size())
		return err
	}
	for c := v.cursorHead; c != nil; c = c.next {
		for i := 0; i < n; i++ {
			if !v.LineDown(c) {
				break
			}
		}
	}
	return v.Draw()
}

// pinPrimaryIntoView clamps the primary cursor onto the nearest visible
// row after the viewport moved out from under it, keeping its column.
func (v *View) pinPrimaryIntoView() {
	c := v.cursorPrimary
	if c == nil || v.withinDrawnRange(c.pos) {
		return
	}
	col := c.lastcol
	if col == 0 {
		col = c.col
	}
	row := v.lastline
	if c.pos < v.start {
		row = v.topline
	}
	v.cursorToRowCol(c, row, col)
	c.lastcol = col
}

// ensurePrimaryVisible scrolls the viewport so the primary cursor stays
// within the rendered rows after a motion, honoring the empty-viewport
// policy when the primary sits at the buffer's end.
func (v *View) ensurePrimaryVisible() {
	c := v.cursorPrimary
	if c == nil || v.withinDrawnRange(c.pos) {
		return
	}
	if v.scrollToMiddleOnAppend && c.pos >= v.buf.Size() {
		v.RedrawCenter()
		return
	}
	v.RedrawTop()
}

// withinDrawnRange reports whether pos was rendered by the most recent
// draw. The position just past the final content row counts as drawn when
// it is the buffer's end (the cursor may sit there).
func (v *View) withinDrawnRange(pos int) bool {
	for row := v.topline; row != nil; row = row.next {
		if row.Lineno < 0 {
			break
		}
		if pos >= row.Start && pos < row.End {
			return true
		}
		last := row.next == nil || row.next.Lineno < 0
		if last && pos == row.End {
			return true
		}
	}
	return false
}
