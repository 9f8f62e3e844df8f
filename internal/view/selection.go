package view

import "github.com/xonecas/viewcore/internal/textbuf"

// Selection is a byte range anchored between two marks (§3, §4.5). It is
// owned by the View's selection set, not by the Cursor that may reference
// it — a Cursor's sel field is a non-owning back-reference used only to
// know which selection to extend on the next motion. The anchor/cursor
// order encodes direction: anchor <= cursor extends rightward.
type Selection struct {
	view   *View
	anchor textbuf.Mark
	cursor textbuf.Mark
}

// Range resolves the selection's current byte range, ordered low-to-high
// regardless of which end is the anchor.
func (s *Selection) Range() (textbuf.Range, bool) {
	a, okA := s.view.resolveMark(s.anchor)
	b, okB := s.view.resolveMark(s.cursor)
	if !okA || !okB {
		return textbuf.Range{}, false
	}
	return textbuf.NewRange(a, b), true
}

// Swapped reports whether the selection's anchor sits after its cursor
// (the selection extends leftward).
func (s *Selection) Swapped() bool {
	a, okA := s.view.resolveMark(s.anchor)
	b, okB := s.view.resolveMark(s.cursor)
	return okA && okB && a > b
}

// StartSelection begins a new selection at c's position — one character
// wide, extending rightward (§4.5 "start": anchor at pos, cursor one
// character past it) — and attaches it to c.
func (v *View) StartSelection(c *Cursor) *Selection {
	if c.sel != nil {
		return c.sel
	}
	s := &Selection{
		view:   v,
		anchor: v.buf.MarkSet(c.pos),
		cursor: v.buf.MarkSet(v.buf.CharNext(c.pos)),
	}
	c.sel = s
	v.selections = append(v.selections, s)
	return s
}

// ExtendSelection moves c's attached selection toward pos, starting one if
// c doesn't already have one, then delegating the actual move (and its
// orientation flip) to CursorTo — the single write point for cursor
// position.
func (v *View) ExtendSelection(c *Cursor, pos int) *Selection {
	if c.sel == nil {
		v.StartSelection(c)
	}
	v.CursorTo(c, pos)
	return c.sel
}

// extendSelectionTo re-anchors c's attached selection toward pos when the
// motion crosses the anchor so the visual range never collapses (§4.5):
// a right-to-left crossing nudges the anchor one character forward, a
// left-to-right crossing nudges it one character back. A rightward result
// then extends the cursor end one character past pos so the glyph at pos
// stays included. Called from CursorTo whenever c owns a selection.
func (v *View) extendSelectionTo(c *Cursor, pos int) {
	s := c.sel
	anchor, okA := v.resolveMark(s.anchor)
	cursor, okC := v.resolveMark(s.cursor)
	if !okA || !okC {
		anchor, cursor = pos, pos
	}

	switch {
	case pos < anchor && anchor < cursor:
		anchor = v.buf.CharNext(anchor)
	case cursor < anchor && anchor <= pos:
		anchor = v.buf.CharPrev(anchor)
	}

	var newCursor int
	if anchor <= pos {
		newCursor = v.buf.CharNext(pos)
	} else {
		newCursor = pos
	}

	s.anchor = v.buf.MarkSet(anchor)
	s.cursor = v.buf.MarkSet(newCursor)
}

// SwapSelection exchanges a selection's anchor and cursor ends in place,
// then moves the owning cursor to the new cursor end (§4.5 "swap").
func (v *View) SwapSelection(s *Selection) {
	s.anchor, s.cursor = s.cursor, s.anchor
	if c := v.ownerOf(s); c != nil {
		v.syncCursor(c)
	}
}

// StopSelection detaches c's selection without discarding it; the range
// stays in the view's selection set (still highlighted by Draw) but no
// longer extends with c's motions (§4.5 "stop").
func (v *View) StopSelection(c *Cursor) {
	c.sel = nil
}

// ClearSelection detaches and discards c's selection entirely (§4.5
// "clear"), remembering its endpoints in c so RestoreSelection can rebuild
// it later.
func (v *View) ClearSelection(c *Cursor) {
	if c.sel == nil {
		return
	}
	s := c.sel
	v.rememberSelection(c, s)
	c.sel = nil
	v.freeSelection(s)
}

// RestoreSelection rebuilds c's most recently cleared selection from its
// cached endpoints, if any.
func (v *View) RestoreSelection(c *Cursor) *Selection {
	if !c.hasLastSel {
		return nil
	}
	s := &Selection{
		view:   v,
		anchor: v.buf.MarkSet(c.lastSelAnchor),
		cursor: v.buf.MarkSet(c.lastSelCursor),
	}
	c.sel = s
	v.selections = append(v.selections, s)
	return s
}

// GetSelection returns c's attached selection's range, if any.
func (v *View) GetSelection(c *Cursor) (textbuf.Range, bool) {
	if c.sel == nil {
		return textbuf.Range{}, false
	}
	return c.sel.Range()
}

// SetSelection replaces c's attached selection's range outright, keeping
// the selection's existing direction (§4.5 "set"): a leftward selection
// maps r.End to its anchor and r.Start to its cursor, a rightward one the
// reverse.
func (v *View) SetSelection(c *Cursor, r textbuf.Range) *Selection {
	if c.sel == nil {
		v.StartSelection(c)
	}
	s := c.sel
	if s.Swapped() {
		s.anchor = v.buf.MarkSet(r.End)
		s.cursor = v.buf.MarkSet(r.Start)
	} else {
		s.anchor = v.buf.MarkSet(r.Start)
		s.cursor = v.buf.MarkSet(r.End)
	}
	return s
}

// SyncSelection moves c to its selection's cursor end, one character short
// when the selection extends rightward so the cursor visually sits on the
// last selected character (§4.5 "sync").
func (v *View) SyncSelection(c *Cursor) {
	if c.sel == nil {
		return
	}
	v.syncCursor(c)
}

// syncCursor repositions c onto its selection's cursor end without going
// through CursorTo (which would re-extend the selection being followed).
func (v *View) syncCursor(c *Cursor) {
	s := c.sel
	anchor, okA := v.resolveMark(s.anchor)
	cursor, okC := v.resolveMark(s.cursor)
	if !okA || !okC {
		return
	}
	pos := cursor
	if anchor <= cursor {
		pos = v.buf.CharPrev(cursor)
	}
	c.pos = pos
	c.mark = v.buf.MarkSet(pos)
}

// Selections returns every selection currently tracked by the view, in no
// particular order.
func (v *View) Selections() []*Selection {
	out := make([]*Selection, len(v.selections))
	copy(out, v.selections)
	return out
}

func (v *View) ownerOf(s *Selection) *Cursor {
	for c := v.cursorHead; c != nil; c = c.next {
		if c.sel == s {
			return c
		}
	}
	return nil
}

func (v *View) rememberSelection(c *Cursor, s *Selection) {
	a, okA := v.resolveMark(s.anchor)
	b, okB := v.resolveMark(s.cursor)
	if okA && okB {
		c.lastSelAnchor, c.lastSelCursor = a, b
		c.hasLastSel = true
	}
}

// freeSelection drops s from the set. The cursor list is scanned so no
// cursor is left holding a dangling reference; any such cursor gets its
// restore cache populated first.
func (v *View) freeSelection(s *Selection) {
	for c := v.cursorHead; c != nil; c = c.next {
		if c.sel == s {
			v.rememberSelection(c, s)
			c.sel = nil
		}
	}
	for i, sel := range v.selections {
		if sel == s {
			v.selections = append(v.selections[:i], v.selections[i+1:]...)
			return
		}
	}
}
