package view

import (
	"unicode/utf8"

	"github.com/xonecas/viewcore/internal/syntax"
)

// Cell is the atomic visual unit of the grid: up to 4 bytes of UTF-8
// payload, the source byte length that produced it, its visual width, a
// style handle, and the tab/cursor/selected flags (§3).
//
// The contract Len == 0 marks "this column is occupied by the character
// whose head is in a prior column" — a continuation column of a wide
// glyph or a tab's fill columns.
type Cell struct {
	bytes  [4]byte
	nbytes uint8

	Len      int
	Width    int
	Style    syntax.StyleSlot
	IsTab    bool
	Cursor   bool
	Selected bool
}

func (c *Cell) reset() {
	*c = Cell{}
}

// SetRune stores r as the cell's payload with the given source byte length
// and visual width.
func (c *Cell) SetRune(r rune, srcLen, width int) {
	c.nbytes = uint8(utf8.EncodeRune(c.bytes[:], r))
	c.Len = srcLen
	c.Width = width
}

// SetBytes stores raw bytes (used for the NUL cell) as payload.
func (c *Cell) SetBytes(b []byte, srcLen, width int) {
	n := copy(c.bytes[:], b)
	c.nbytes = uint8(n)
	c.Len = srcLen
	c.Width = width
}

// Text returns the cell's payload as a string (empty for continuation or
// unused cells).
func (c *Cell) Text() string {
	return string(c.bytes[:c.nbytes])
}

// Blank reports whether the cell carries no payload at all (an unused
// continuation column, distinct from a space character).
func (c *Cell) Blank() bool {
	return c.nbytes == 0
}
