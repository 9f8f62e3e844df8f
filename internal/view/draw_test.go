package view

import (
	"strings"
	"testing"

	"github.com/xonecas/viewcore/internal/register"
	"github.com/xonecas/viewcore/internal/syntax"
	"github.com/xonecas/viewcore/internal/textbuf"
)

// fakeBackend records the chain it was handed and the style registrations
// it received, standing in for a real UI backend in tests.
type fakeBackend struct {
	rows       [][]Cell
	registered map[syntax.StyleSlot]syntax.StyleSpec
	drawCalls  int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{registered: make(map[syntax.StyleSlot]syntax.StyleSpec)}
}

func (b *fakeBackend) DrawText(top *Line) error {
	b.drawCalls++
	b.rows = nil
	for l := top; l != nil; l = l.Next() {
		row := make([]Cell, len(l.Cells))
		copy(row, l.Cells)
		b.rows = append(b.rows, row)
	}
	return nil
}

func (b *fakeBackend) SyntaxStyle(slot syntax.StyleSlot, spec syntax.StyleSpec) error {
	b.registered[slot] = spec
	return nil
}

func (b *fakeBackend) rowText(i int) string {
	var sb strings.Builder
	for _, c := range b.rows[i] {
		if c.Blank() {
			continue
		}
		sb.WriteString(c.Text())
	}
	return sb.String()
}

func newTestView(t *testing.T, content string, width, height int) (*View, *textbuf.Memory, *fakeBackend) {
	t.Helper()
	buf := textbuf.NewMemory([]byte(content))
	ui := newFakeBackend()
	regs := register.NewStore()
	v := New(buf, ui, regs)
	if err := v.Resize(width, height); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	return v, buf, ui
}

func TestDrawRendersPlainLines(t *testing.T) {
	v, _, ui := newTestView(t, "hello\nworld\n", 20, 4)
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := ui.rowText(0); got != "hello " {
		t.Fatalf("row 0 = %q, want %q", got, "hello ")
	}
	if got := ui.rowText(1); got != "world " {
		t.Fatalf("row 1 = %q, want %q", got, "world ")
	}
}

func TestDrawExpandsTabs(t *testing.T) {
	v, _, _ := newTestView(t, "a\tb", 10, 3)
	v.tabWidth = 4
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	row := v.topline.Cells
	// "a" at col 0, tab head at col 1, two fill cells to reach col 4, "b"
	// at col 4.
	if row[0].Text() != "a" || row[0].Len != 1 || row[0].Width != 1 {
		t.Fatalf("col0 = %q len=%d width=%d, want 'a' 1 1", row[0].Text(), row[0].Len, row[0].Width)
	}
	if !row[1].IsTab || row[1].Len != 1 || row[1].Width != 1 {
		t.Fatalf("col1 should be the tab head: istab=%v len=%d width=%d", row[1].IsTab, row[1].Len, row[1].Width)
	}
	for col := 2; col <= 3; col++ {
		if !row[col].IsTab || row[col].Len != 0 {
			t.Fatalf("col%d should be a tab fill cell with len 0, got istab=%v len=%d", col, row[col].IsTab, row[col].Len)
		}
	}
	if row[4].Text() != "b" || row[4].Len != 1 || row[4].Width != 1 {
		t.Fatalf("col4 = %q len=%d width=%d, want 'b' 1 1", row[4].Text(), row[4].Len, row[4].Width)
	}
}

func TestDrawFusesCRLF(t *testing.T) {
	v, _, ui := newTestView(t, "x\r\ny", 4, 3)
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	row0 := v.topline
	if row0.Cells[0].Text() != "x" {
		t.Fatalf("row0 col0 = %q, want 'x'", row0.Cells[0].Text())
	}
	if row0.Cells[1].Len != 2 {
		t.Fatalf("EOL cell len = %d, want 2 (fused CRLF)", row0.Cells[1].Len)
	}
	row1 := row0.Next()
	if row1.Lineno != row0.Lineno+1 {
		t.Fatalf("row1 lineno = %d, want %d", row1.Lineno, row0.Lineno+1)
	}
	if got := ui.rowText(1); got != "y" {
		t.Fatalf("row 1 = %q, want %q", got, "y")
	}
}

func TestDrawSoftWrapsWideChar(t *testing.T) {
	v, _, _ := newTestView(t, "A中", 2, 3)
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	row0 := v.topline
	if row0.Cells[0].Text() != "A" {
		t.Fatalf("row0 col0 = %q, want 'A'", row0.Cells[0].Text())
	}
	row1 := row0.Next()
	if row1.Lineno != row0.Lineno {
		t.Fatalf("wrapped row lineno = %d, want %d (soft wrap shares lineno)", row1.Lineno, row0.Lineno)
	}
	if !row1.Soft {
		t.Fatalf("wrapped row should be marked Soft")
	}
	if row1.Cells[0].Text() != "中" || row1.Cells[0].Width != 2 {
		t.Fatalf("row1 col0 = %q width=%d, want 中 width 2", row1.Cells[0].Text(), row1.Cells[0].Width)
	}
	if row1.Cells[1].Len != 0 {
		t.Fatalf("continuation cell len = %d, want 0", row1.Cells[1].Len)
	}
	if row1.Start != row0.End {
		t.Fatalf("row1 starts at %d, row0 ends at %d; soft-wrap continuity requires them equal", row1.Start, row0.End)
	}
}

func TestDrawHandlesIllegalUTF8(t *testing.T) {
	v, _, ui := newTestView(t, "\xC3\x28", 10, 2)
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	row := v.topline.Cells
	if row[0].Text() != "�" || row[0].Len != 1 {
		t.Fatalf("col0 = %q len=%d, want replacement char with len 1", row[0].Text(), row[0].Len)
	}
	if row[1].Text() != "(" {
		t.Fatalf("col1 = %q, want '(' rendered normally after the bad byte", row[1].Text())
	}
	if got := ui.rowText(0); got != "�(" {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestDrawCollapsesIllegalUTF8Run(t *testing.T) {
	v, _, _ := newTestView(t, "\x80\x80\x80A", 10, 2)
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	row := v.topline.Cells
	// Three stray continuation bytes collapse into one replacement cell
	// spanning all of them, not one cell per byte.
	if row[0].Text() != "�" || row[0].Len != 3 {
		t.Fatalf("col0 = %q len=%d, want replacement char with len 3", row[0].Text(), row[0].Len)
	}
	if row[1].Text() != "A" || row[1].Len != 1 {
		t.Fatalf("col1 = %q len=%d, want 'A' len 1", row[1].Text(), row[1].Len)
	}
}

func TestDrawRendersControlChars(t *testing.T) {
	v, _, _ := newTestView(t, "a\x01b", 10, 2)
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	row := v.topline.Cells
	if row[1].Text() != "^" || row[1].Len != 1 {
		t.Fatalf("col1 = %q len=%d, want '^' len 1", row[1].Text(), row[1].Len)
	}
	if row[2].Text() != "A" || row[2].Len != 0 {
		t.Fatalf("col2 = %q len=%d, want 'A' len 0 (the ^A pair spans one source byte)", row[2].Text(), row[2].Len)
	}
	if row[3].Text() != "b" {
		t.Fatalf("col3 = %q, want 'b'", row[3].Text())
	}
}

func TestDrawSoftWrapsLongLine(t *testing.T) {
	v, _, ui := newTestView(t, "abcdefghij\n", 5, 4)
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := ui.rowText(0); got != "abcde" {
		t.Fatalf("row 0 = %q, want %q", got, "abcde")
	}
	if got := ui.rowText(1); got != "fghij" {
		t.Fatalf("row 1 = %q, want %q (soft wrap continuation)", got, "fghij")
	}
	wrapped := v.topline.Next()
	if !wrapped.Soft {
		t.Fatalf("wrapped row should be marked Soft")
	}
	if wrapped.Lineno != v.topline.Lineno {
		t.Fatalf("wrapped row lineno = %d, want %d", wrapped.Lineno, v.topline.Lineno)
	}
	if wrapped.Start != v.topline.End {
		t.Fatalf("wrapped row starts at %d, predecessor ends at %d", wrapped.Start, v.topline.End)
	}
}

func TestDrawShowsEOFPastContent(t *testing.T) {
	v, _, _ := newTestView(t, "only one line\n", 20, 4)
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if v.lastline == nil || v.lastline.Lineno < 0 {
		t.Fatalf("lastline should be a content row")
	}
	// Every row past lastline is an EOF row carrying the tilde in col 0.
	for row := v.lastline.Next(); row != nil; row = row.Next() {
		if row.Lineno != -1 {
			t.Fatalf("row past content should have Lineno -1, got %d", row.Lineno)
		}
		if row.Cells[0].Text() != "~" {
			t.Fatalf("EOF row col0 = %q, want '~'", row.Cells[0].Text())
		}
	}
}

func TestDrawProjectsSelectionOntoCells(t *testing.T) {
	v, _, _ := newTestView(t, "abcdefghij\n", 20, 3)
	c := v.Primary()
	v.CursorTo(c, 2)
	v.StartSelection(c)
	v.ExtendSelection(c, 5) // selection [2,6): cells c..f
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	row := v.topline.Cells
	for col := 0; col < 10; col++ {
		want := col >= 2 && col < 6
		if row[col].Selected != want {
			t.Fatalf("col%d Selected = %v, want %v", col, row[col].Selected, want)
		}
	}
}

func TestDrawFlagsCursorCell(t *testing.T) {
	v, _, _ := newTestView(t, "abcdef\n", 20, 2)
	c := v.Primary()
	v.CursorTo(c, 3)
	if !v.topline.Cells[3].Cursor {
		t.Fatalf("cell 3 should carry the cursor flag")
	}
	if c.Row() != 0 || c.Col() != 3 {
		t.Fatalf("cached projection = (%d,%d), want (0,3)", c.Row(), c.Col())
	}
	if c.Line() != v.topline {
		t.Fatalf("cached line should be topline")
	}
}

func TestDrawSelectionHookFires(t *testing.T) {
	buf := textbuf.NewMemory([]byte("abcdefghij\n"))
	ui := newFakeBackend()
	var got []textbuf.Range
	v := New(buf, ui, register.NewStore(), WithSelectionHook(func(r textbuf.Range) {
		got = append(got, r)
	}))
	if err := v.Resize(20, 3); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	c := v.Primary()
	v.CursorTo(c, 2)
	v.StartSelection(c)
	v.ExtendSelection(c, 5)
	got = nil
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("hook fired %d times, want 1", len(got))
	}
	if got[0].Start != 2 || got[0].End != 6 {
		t.Fatalf("hook range = %+v, want [2,6)", got[0])
	}
}

func TestViewportFollowsEditsAboveIt(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("line\n")
	}
	buf := textbuf.NewMemory([]byte(sb.String()))
	ui := newFakeBackend()
	v := New(buf, ui, register.NewStore())
	if err := v.Resize(10, 5); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	// Scroll to line 11 (offset 50), then insert 3 lines at the top.
	for i := 0; i < 10; i++ {
		if err := v.ViewportDown(1); err != nil {
			t.Fatalf("ViewportDown #%d: %v", i, err)
		}
	}
	before := v.topline.Lineno
	if err := buf.Insert(0, []byte("a\nb\nc\n")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := v.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if v.topline.Lineno != before+3 {
		t.Fatalf("topline lineno = %d, want %d (anchor slides with the edit)", v.topline.Lineno, before+3)
	}
	if v.start != 50+len("a\nb\nc\n") {
		t.Fatalf("start = %d, want %d", v.start, 50+len("a\nb\nc\n"))
	}
}

func TestMultipleViewsSurviveEditBetweenThem(t *testing.T) {
	buf := textbuf.NewMemory([]byte("line1\nline2\nline3\nline4\nline5\n"))
	ui1 := newFakeBackend()
	ui2 := newFakeBackend()
	regs := register.NewStore()
	v1 := New(buf, ui1, regs)
	v2 := New(buf, ui2, regs)
	v1.Resize(20, 2)
	v2.Resize(20, 2)

	// Scroll v2 down one line so the two views look at different offsets:
	// v1 is anchored at "line1", v2 at "line2".
	if err := v2.ViewportDown(1); err != nil {
		t.Fatalf("ViewportDown: %v", err)
	}

	// Insert strictly between the two anchors (inside "line1\n").
	if err := buf.Insert(3, []byte("XXX")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := v1.Draw(); err != nil {
		t.Fatalf("v1.Draw: %v", err)
	}
	if err := v2.Draw(); err != nil {
		t.Fatalf("v2.Draw: %v", err)
	}
	if got := ui1.rowText(0); got != "linXXXe1 " {
		t.Fatalf("v1 row0 = %q, want %q (edit lands inside v1's first rendered line)", got, "linXXXe1 ")
	}
	if got := ui2.rowText(0); got != "line2 " {
		t.Fatalf("v2 row0 = %q, want %q (v2's anchor mark should shift past the insert and keep showing line2)", got, "line2 ")
	}
}
