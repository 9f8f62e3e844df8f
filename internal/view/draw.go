package view

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/viewcore/internal/syntax"
	"github.com/xonecas/viewcore/internal/textbuf"
)

// Draw runs the draw pipeline (§4.2): it re-resolves the viewport anchor
// from its mark, decodes the buffer's bytes into the grid's cells (UTF-8,
// tabs, NUL, CRLF, wide glyphs, soft wrap), projects the active selections
// and then the cursors onto the resulting cells, and finally hands the
// chain to the UI backend. Selection projection runs before cursor
// projection so a cursor's flag is never painted over by a selection.
func (v *View) Draw() error {
	if err := v.ensureStylesRegistered(); err != nil {
		return err
	}

	// Anchor synchronization: the viewport follows its mark across edits
	// made above it; a mark killed by a deletion falls back to the cached
	// offset, clamped into the buffer.
	start, ok := v.resolveMark(v.startMark)
	if !ok {
		start = clampInt(v.start, 0, v.buf.Size())
		v.startMark = v.buf.MarkSet(start)
	}
	v.start = start

	v.grid.resetAll()
	v.topline = v.grid.Top()
	v.bottomline = v.grid.Bottom()

	size := v.buf.Size()
	width, height := v.grid.Width(), v.grid.Height()
	if width == 0 || height == 0 {
		v.lastline = v.topline
		v.end = start
		return v.present()
	}

	// Byte window: width*height characters can span up to 4 bytes each,
	// plus slack so a multibyte sequence never straddles the window edge.
	windowLen := height*width*utf8.UTFMax + 64
	if start+windowLen > size {
		windowLen = size - start
	}
	if windowLen < 0 {
		windowLen = 0
	}
	window := make([]byte, windowLen)
	window = window[:v.buf.BytesGet(start, window)]

	var matcher *syntax.Matcher
	if v.syn != nil && len(window) > 0 {
		matcher = syntax.NewMatcher(v.syn, string(window))
	}

	row := v.topline
	row.Lineno = v.buf.LineNumberAt(start)
	row.Start = start
	pos := start
	offset := 0
	col := 0

	// newRow moves the emitter to the next grid row at byte position p.
	// soft continuations share the finished row's line number, hard breaks
	// take the next one.
	newRow := func(p int, soft bool) bool {
		row.End = p
		next := row.next
		if next == nil {
			row = nil
			return false
		}
		if soft {
			next.Lineno = row.Lineno
			next.Soft = true
		} else {
			next.Lineno = row.Lineno + 1
		}
		next.Start = p
		row = next
		col = 0
		return true
	}

scan:
	for row != nil && offset < len(window) {
		r, sz := decodeRuneAt(window[offset:])

		switch {
		case r == '\r' && offset+sz < len(window) && window[offset+sz] == '\n':
			// CRLF fusion: one EOL cell carrying both source bytes.
			v.writeEOLCell(row, col, width, sz+1)
			pos += sz + 1
			offset += sz + 1
			if !newRow(pos, false) {
				break scan
			}

		case r == '\n' || r == '\r':
			v.writeEOLCell(row, col, width, sz)
			pos += sz
			offset += sz
			if !newRow(pos, false) {
				break scan
			}

		case r == 0:
			// NUL: a zero-width cell holding the byte itself.
			cell := &row.Cells[col]
			cell.SetBytes([]byte{0}, sz, 0)
			col++
			row.Width = col
			pos += sz
			offset += sz
			if col >= width && !newRow(pos, true) {
				break scan
			}

		case r == '\t':
			// Tab: head cell carries the byte, fill cells carry nothing;
			// expansion continues onto the next row when it crosses the
			// boundary.
			n := v.tabWidth - (col % v.tabWidth)
			head := &row.Cells[col]
			head.SetRune(v.glyphOr(ShowTabHead, ' '), sz, 1)
			head.IsTab = true
			head.Style = v.symbolStyle(syntax.SymbolTabHead)
			col++
			row.Width = col
			pos += sz
			offset += sz
			for i := 1; i < n; i++ {
				if col >= width {
					if !newRow(pos, true) {
						break scan
					}
				}
				fill := &row.Cells[col]
				fill.SetRune(v.glyphOr(ShowTabFill, ' '), 0, 1)
				fill.IsTab = true
				fill.Style = v.symbolStyle(syntax.SymbolTabFill)
				col++
				row.Width = col
			}
			if col >= width && !newRow(pos, true) {
				break scan
			}

		case r == ' ':
			cell := &row.Cells[col]
			cell.SetRune(v.glyphOr(ShowSpace, ' '), sz, 1)
			cell.Style = v.symbolStyle(syntax.SymbolSpace)
			col++
			row.Width = col
			pos += sz
			offset += sz
			if col >= width && !newRow(pos, true) {
				break scan
			}

		case r < 0x20:
			// Other non-printable ASCII: two visible cells, '^' followed
			// by byte+64, both accounted to the one source byte.
			if col+2 > width && col > 0 {
				if !newRow(pos, true) {
					break scan
				}
			}
			head := &row.Cells[col]
			head.SetRune('^', sz, 1)
			col++
			if col < width {
				tail := &row.Cells[col]
				tail.SetRune(rune(int(r)+64), 0, 1)
				col++
			}
			row.Width = col
			pos += sz
			offset += sz
			if col >= width && !newRow(pos, true) {
				break scan
			}

		default:
			w := runewidth.RuneWidth(r)
			if w <= 0 {
				w = 1
			}
			if w > width {
				w = width
			}
			if col+w > width {
				// Blank the tail of the row; the glyph lands on the next
				// row, which keeps the same line number.
				if !newRow(pos, true) {
					break scan
				}
			}
			slot := syntax.NoStyle
			if matcher != nil {
				if s, ok := matcher.StyleSlotAt(offset); ok {
					slot = s
				}
			}
			cell := &row.Cells[col]
			cell.SetRune(r, sz, w)
			cell.Style = slot
			for i := 1; i < w; i++ {
				cont := &row.Cells[col+i]
				cont.Len = 0
				cont.Width = 0
			}
			col += w
			row.Width = col
			pos += sz
			offset += sz
			if col >= width && !newRow(pos, true) {
				break scan
			}
		}
	}

	if row != nil {
		row.End = pos
	}
	v.end = pos

	v.fillTail()
	v.lastline = v.lastContentRow()

	v.projectSelections()
	v.projectCursors()

	return v.present()
}

func (v *View) present() error {
	return v.ui.DrawText(v.topline)
}

// glyphOr returns the configured glyph for a symbol kind, or fallback when
// that symbol's visibility bit is off.
func (v *View) glyphOr(kind SymbolFlags, fallback rune) rune {
	if g, shown := v.symbols.glyph(kind, v.symbolFlags); shown {
		return g
	}
	return fallback
}

// writeEOLCell renders the newline cell at the emitter's current column
// (§4.2 step 7 "Newline"): the EOL symbol with len equal to the number of
// source bytes consumed (1, or 2 for a fused CRLF).
func (v *View) writeEOLCell(row *Line, col, width, srcLen int) {
	if col < 0 || col >= width {
		return
	}
	cell := &row.Cells[col]
	cell.SetRune(v.glyphOr(ShowEOL, ' '), srcLen, 1)
	cell.Style = v.symbolStyle(syntax.SymbolEOL)
	row.Width = col + 1
}

// symbolStyle resolves the style slot a syntax definition overrides for
// one of the fixed symbol kinds (§6 "optional per-symbol... overrides with
// their styles"), or NoStyle if none is attached/configured.
func (v *View) symbolStyle(kind syntax.SymbolKind) syntax.StyleSlot {
	if v.syn == nil {
		return syntax.NoStyle
	}
	if slot, ok := v.syn.SymbolSlot(kind); ok {
		return slot
	}
	return syntax.NoStyle
}

// fillTail marks every row never reached by the emitter as past-EOF: the
// EOF glyph in column 0, blanks thereafter.
func (v *View) fillTail() {
	for row := v.grid.Top(); row != nil; row = row.next {
		if row.Start >= 0 {
			continue
		}
		row.Lineno = -1
		glyph, shown := v.symbols.glyph(ShowEOF, v.symbolFlags)
		if shown && len(row.Cells) > 0 {
			row.Cells[0].SetRune(glyph, 0, 1)
			row.Cells[0].Style = v.symbolStyle(syntax.SymbolEOF)
		}
	}
}

func (v *View) lastContentRow() *Line {
	last := v.grid.Top()
	for row := v.grid.Top(); row != nil; row = row.next {
		if row.Lineno >= 0 {
			last = row
		}
	}
	return last
}

// projectSelections marks every cell whose source byte falls inside a live
// selection's range (§4.2 step 9), clamping ranges that extend past the
// viewport to the rows actually drawn, and fires the selection hook once
// per selection with its absolute range.
func (v *View) projectSelections() {
	for _, s := range v.selections {
		r, ok := s.Range()
		if !ok || !r.Valid() {
			continue
		}
		v.markSelected(r)
		if v.onSelection != nil {
			v.onSelection(r)
		}
	}
}

func (v *View) markSelected(r textbuf.Range) {
	for row := v.topline; row != nil; row = row.next {
		if row.Lineno < 0 {
			break
		}
		p := row.Start
		head := p
		for col := 0; col < row.Width && col < len(row.Cells); col++ {
			cell := &row.Cells[col]
			if cell.Len > 0 {
				head = p
				p += cell.Len
			}
			// Continuation cells (tab fill, wide-glyph tail) follow their
			// head's byte.
			if r.Contains(head) {
				cell.Selected = true
			}
		}
	}
}

// projectCursors resolves each cursor's mark, refreshes its cached grid
// projection, and flags its cell (§4.2 step 10). With a syntax attached,
// the matching bracket of the character under each cursor is highlighted
// as selected. A primary cursor that fell outside the viewport has only
// its cached projection clamped to the top-left; the mark is not moved.
func (v *View) projectCursors() {
	for c := v.cursorHead; c != nil; c = c.next {
		if pos, ok := v.resolveMark(c.mark); ok {
			c.pos = pos
		}
		line, col, visible := v.projectPos(c.pos)
		if !visible {
			if c == v.cursorPrimary {
				c.line, c.row, c.col = v.topline, 0, 0
			}
			continue
		}
		c.line = line
		c.row = v.rowIndex(line)
		c.col = col
		if col < len(line.Cells) {
			line.Cells[col].Cursor = true
		}
		if v.syn == nil {
			continue
		}
		m, ok := v.buf.BracketMatchExcept(c.pos, v.bracketExclude)
		if !ok || m == c.pos {
			continue
		}
		if brow, bcol, bok := v.projectPos(m); bok && bcol < len(brow.Cells) {
			brow.Cells[bcol].Selected = true
		}
	}
}

// projectPos maps a byte position onto the drawn grid, returning the row
// and cell column rendering it. A position equal to the last content row's
// end (the cursor sitting at end of buffer) projects onto the column just
// past that row's content.
func (v *View) projectPos(pos int) (*Line, int, bool) {
	for row := v.topline; row != nil; row = row.next {
		if row.Lineno < 0 {
			break
		}
		last := row.next == nil || row.next.Lineno < 0
		if pos < row.Start {
			return nil, 0, false
		}
		if pos >= row.End && !(last && pos == row.End) {
			continue
		}
		p := row.Start
		for col := 0; col < len(row.Cells); col++ {
			cell := &row.Cells[col]
			if cell.Len > 0 {
				if pos >= p && pos < p+cell.Len {
					return row, col, true
				}
				p += cell.Len
			}
		}
		return row, minInt(row.Width, len(row.Cells)-1), true
	}
	return nil, 0, false
}

func (v *View) rowIndex(line *Line) int {
	i := 0
	for row := v.topline; row != nil; row = row.next {
		if row == line {
			return i
		}
		i++
	}
	return 0
}

// decodeRuneAt decodes one rune from the front of b. An illegal sequence
// becomes the replacement character spanning every byte up to the next
// UTF-8 leading byte, so a run of stray continuation bytes collapses into
// a single cell rather than one per byte.
func decodeRuneAt(b []byte) (rune, int) {
	if len(b) == 0 {
		return utf8.RuneError, 0
	}
	r, sz := utf8.DecodeRune(b)
	if r == utf8.RuneError && sz <= 1 {
		n := 1
		for n < len(b) && b[n]&0xC0 == 0x80 {
			n++
		}
		log.Debug().Int("skipped", n).Msg("view: illegal UTF-8 sequence, substituting replacement char")
		return utf8.RuneError, n
	}
	return r, sz
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
