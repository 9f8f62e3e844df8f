// Package textbuf defines the text-buffer contract the view engine
// consumes (§6 of the view-engine specification) and provides a simple
// in-memory implementation adequate for exercising and testing it.
//
// A real editor's buffer (piece table, rope, mmap'd file) is out of scope
// here — the view engine only ever talks to the Buffer interface, never to
// a concrete representation.
package textbuf

// Buffer is the narrow contract the view engine depends on. It never
// mutates the buffer itself (editing is out of scope for the view engine);
// it only reads bytes, resolves/creates marks, and asks structural
// questions (line numbers, bracket matches).
type Buffer interface {
	// Size returns the total number of bytes in the buffer.
	Size() int

	// BytesGet copies up to len(buf) bytes starting at pos into buf and
	// returns the number of bytes actually copied.
	BytesGet(pos int, buf []byte) int

	// LineNumberAt returns the 1-indexed logical line number containing pos.
	LineNumberAt(pos int) int

	// MarkSet creates a Mark tracking pos across future edits.
	MarkSet(pos int) Mark

	// MarkGet resolves a Mark to its current byte position, or EPos if the
	// range that covered it has been deleted.
	MarkGet(m Mark) int

	// CharNext returns the byte offset of the UTF-8 character starting
	// after pos, clamped to Size().
	CharNext(pos int) int

	// CharPrev returns the byte offset of the UTF-8 character starting
	// before pos, clamped to 0.
	CharPrev(pos int) int

	// LineBegin returns the byte offset of the first byte of the logical
	// line containing pos.
	LineBegin(pos int) int

	// LineUp returns the byte offset of the first byte of the logical line
	// preceding the one containing pos, or the first byte of pos's own line
	// if there is none.
	LineUp(pos int) int

	// LineDown returns the byte offset of the first byte of the logical
	// line following the one containing pos, or Size() if there is none.
	LineDown(pos int) int

	// BracketMatchExcept finds the bracket matching the one at pos,
	// ignoring any bracket character present in exclude. Returns ok=false
	// if pos is not on a bracket character or no match exists.
	BracketMatchExcept(pos int, exclude string) (match int, ok bool)

	// ReverseFrom returns an iterator yielding the bytes before pos, in
	// reverse order (the byte immediately before pos first).
	ReverseFrom(pos int) ReverseIterator

	// Insert and Delete are the buffer's only mutators. The view engine
	// never calls them; they exist so tests (and higher editor layers, out
	// of scope here) can exercise mark survival across edits.
	Insert(pos int, data []byte) error
	Delete(r Range) error
}

// ReverseIterator walks a Buffer backwards one byte at a time.
type ReverseIterator interface {
	// Prev returns the next byte walking backwards and true, or
	// (0, false) once the beginning of the buffer is reached.
	Prev() (byte, bool)
}
