package view

import "testing"

func TestCursorSetRoundTripsColumn(t *testing.T) {
	v, _, _ := newTestView(t, "hello\nworld\n", 20, 4)
	c := v.Primary()

	v.CursorTo(c, 2) // 'l' in "hello"
	col := v.columnOf(c.pos)
	if col != 2 {
		t.Fatalf("columnOf(2) = %d, want 2", col)
	}

	v.CursorSet(c, 2, col) // line numbers are 1-indexed, matching LineNumberAt
	if c.pos != 2+len("hello\n") {
		t.Fatalf("CursorSet landed at %d, want %d", c.pos, 2+len("hello\n"))
	}
}

func TestLineDownPreservesLastcol(t *testing.T) {
	v, _, _ := newTestView(t, "abcdef\nab\nabcdef\n", 20, 5)
	c := v.Primary()
	v.CursorTo(c, 4) // column 4 on line "abcdef"
	savedCol := c.lastcol

	if !v.LineDown(c) {
		t.Fatalf("LineDown should succeed")
	}
	// landed on "ab" (len 2); lastcol should still remember 4.
	if c.lastcol != savedCol {
		t.Fatalf("lastcol = %d, want preserved %d", c.lastcol, savedCol)
	}

	if !v.LineDown(c) {
		t.Fatalf("LineDown should succeed again")
	}
	// back onto a long enough line, cursor should return to column 4.
	if v.columnOf(c.pos) != savedCol {
		t.Fatalf("cursor column = %d, want restored %d", v.columnOf(c.pos), savedCol)
	}
}

func TestDisposeCursorNeverEmptiesSet(t *testing.T) {
	v, _, _ := newTestView(t, "one\ntwo\n", 10, 3)
	only := v.Primary()
	v.DisposeCursor(only)
	if v.Primary() == nil {
		t.Fatalf("disposing the last cursor must be a no-op")
	}
	if len(v.Cursors()) != 1 {
		t.Fatalf("cursor count = %d, want 1", len(v.Cursors()))
	}
}

func TestDisposeCursorReassignsPrimary(t *testing.T) {
	v, _, _ := newTestView(t, "one\ntwo\nthree\n", 10, 5)
	first := v.Primary()
	second := v.NewCursor(4)
	if v.Primary() != second {
		t.Fatalf("newest cursor should become primary")
	}
	v.DisposeCursor(second)
	if v.Primary() != first {
		t.Fatalf("primary should fall back to the remaining cursor")
	}
}

func TestCursorSurvivesInsertBeforeIt(t *testing.T) {
	v, buf, _ := newTestView(t, "hello world\n", 20, 3)
	c := v.Primary()
	v.CursorTo(c, 6) // 'w' in "world"

	if err := buf.Insert(0, []byte("XX")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	pos, ok := v.resolveMark(c.mark)
	if !ok {
		t.Fatalf("mark should still resolve")
	}
	if pos != 8 {
		t.Fatalf("mark resolved to %d, want 8 (shifted by the 2-byte insert)", pos)
	}
}
