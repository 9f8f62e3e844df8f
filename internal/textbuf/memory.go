package textbuf

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// markState tracks one live Mark's current offset. deleted is set once the
// byte range covering it has been removed; the mark then resolves to EPos
// until the buffer grows past it again (it never does — once deleted, a
// mark stays deleted).
type markState struct {
	offset  int
	deleted bool
}

// Memory is a simple, non-persistent Buffer backed by a contiguous byte
// slice. It exists to exercise and test the view engine's mark-based
// contracts; it is not a production text-editing data structure (no
// piece table, no rope, no mmap) — that is explicitly out of scope.
type Memory struct {
	data  []byte
	marks map[Mark]*markState
}

// NewMemory creates a buffer containing the given initial content.
func NewMemory(content []byte) *Memory {
	buf := make([]byte, len(content))
	copy(buf, content)
	return &Memory{
		data:  buf,
		marks: make(map[Mark]*markState),
	}
}

func (b *Memory) Size() int { return len(b.data) }

func (b *Memory) BytesGet(pos int, out []byte) int {
	if pos < 0 || pos >= len(b.data) {
		return 0
	}
	n := copy(out, b.data[pos:])
	return n
}

func (b *Memory) LineNumberAt(pos int) int {
	if pos > len(b.data) {
		pos = len(b.data)
	}
	line := 1
	for i := 0; i < pos && i < len(b.data); i++ {
		if b.data[i] == '\n' {
			line++
		}
	}
	return line
}

func (b *Memory) MarkSet(pos int) Mark {
	pos = clamp(pos, 0, len(b.data))
	m := newMark()
	b.marks[m] = &markState{offset: pos}
	return m
}

func (b *Memory) MarkGet(m Mark) int {
	st, ok := b.marks[m]
	if !ok || st.deleted {
		return EPos
	}
	return st.offset
}

// ReleaseMark drops bookkeeping for a Mark no longer in use. Not part of
// the consumed contract (the view engine never needs to signal "done with
// this mark" — the buffer outlives the view), but prevents the in-memory
// map from growing unbounded across long test runs.
func (b *Memory) ReleaseMark(m Mark) { delete(b.marks, m) }

func (b *Memory) CharNext(pos int) int {
	if pos >= len(b.data) {
		return len(b.data)
	}
	_, n := decodeRuneAt(b.data, pos)
	next := pos + n
	if next > len(b.data) {
		next = len(b.data)
	}
	return next
}

func (b *Memory) CharPrev(pos int) int {
	if pos <= 0 {
		return 0
	}
	i := pos - 1
	// Walk back over UTF-8 continuation bytes to find the leading byte.
	for i > 0 && isUTF8Continuation(b.data[i]) {
		i--
	}
	return i
}

func (b *Memory) LineBegin(pos int) int {
	pos = clamp(pos, 0, len(b.data))
	for pos > 0 && b.data[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (b *Memory) LineUp(pos int) int {
	begin := b.LineBegin(pos)
	if begin == 0 {
		return begin
	}
	return b.LineBegin(begin - 1)
}

func (b *Memory) LineDown(pos int) int {
	begin := b.LineBegin(pos)
	for i := begin; i < len(b.data); i++ {
		if b.data[i] == '\n' {
			return i + 1
		}
	}
	return len(b.data)
}

var bracketPairs = map[byte]byte{
	'(': ')', '{': '}', '[': ']', '<': '>',
}
var bracketOpeners = invertBracketPairs()

func invertBracketPairs() map[byte]byte {
	m := make(map[byte]byte, len(bracketPairs))
	for open, close := range bracketPairs {
		m[close] = open
	}
	return m
}

func (b *Memory) BracketMatchExcept(pos int, exclude string) (int, bool) {
	if pos < 0 || pos >= len(b.data) {
		return 0, false
	}
	c := b.data[pos]
	if containsByte(exclude, c) {
		return 0, false
	}
	if close, isOpen := bracketPairs[c]; isOpen {
		if !containsByte(exclude, close) {
			return b.scanForward(pos+1, c, close)
		}
		return 0, false
	}
	if open, isClose := bracketOpeners[c]; isClose {
		if !containsByte(exclude, open) {
			return b.scanBackward(pos-1, open, c)
		}
		return 0, false
	}
	return 0, false
}

func (b *Memory) scanForward(from int, open, close byte) (int, bool) {
	depth := 1
	for i := from; i < len(b.data); i++ {
		switch b.data[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func (b *Memory) scanBackward(from int, open, close byte) (int, bool) {
	depth := 1
	for i := from; i >= 0; i-- {
		switch b.data[i] {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func containsByte(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}

func (b *Memory) ReverseFrom(pos int) ReverseIterator {
	pos = clamp(pos, 0, len(b.data))
	return &memReverseIter{buf: b, pos: pos}
}

type memReverseIter struct {
	buf *Memory
	pos int
}

func (it *memReverseIter) Prev() (byte, bool) {
	if it.pos <= 0 {
		return 0, false
	}
	it.pos--
	return it.buf.data[it.pos], true
}

// Insert splices data into the buffer at pos and shifts every mark at or
// after pos forward by len(data).
func (b *Memory) Insert(pos int, data []byte) error {
	if pos < 0 || pos > len(b.data) {
		return fmt.Errorf("textbuf: insert at %d out of range [0,%d]", pos, len(b.data))
	}
	grown := make([]byte, 0, len(b.data)+len(data))
	grown = append(grown, b.data[:pos]...)
	grown = append(grown, data...)
	grown = append(grown, b.data[pos:]...)
	b.data = grown

	n := len(data)
	for _, st := range b.marks {
		if st.deleted {
			continue
		}
		if st.offset >= pos {
			st.offset += n
		}
	}
	return nil
}

// Delete removes r from the buffer. Marks inside r resolve to EPos from
// then on; marks after r shift back by r's length.
func (b *Memory) Delete(r Range) error {
	if !r.Valid() || r.End > len(b.data) {
		return fmt.Errorf("textbuf: delete range %+v out of range [0,%d]", r, len(b.data))
	}
	if r.Empty() {
		return nil
	}
	shrunk := make([]byte, 0, len(b.data)-(r.End-r.Start))
	shrunk = append(shrunk, b.data[:r.Start]...)
	shrunk = append(shrunk, b.data[r.End:]...)
	b.data = shrunk

	n := r.End - r.Start
	for mark, st := range b.marks {
		switch {
		case st.deleted:
			continue
		case r.Contains(st.offset):
			st.deleted = true
			log.Debug().Interface("mark", mark).Int("start", r.Start).Int("end", r.End).
				Msg("textbuf: mark fell inside deleted range")
		case st.offset >= r.End:
			st.offset -= n
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isUTF8Continuation(c byte) bool { return c&0xC0 == 0x80 }

// decodeRuneAt returns the byte length of the UTF-8 sequence starting at
// pos, without validating well-formedness beyond the leading byte — the
// view engine's own decoder (internal/view) is responsible for flagging
// illegal sequences; this is only used for simple offset arithmetic.
func decodeRuneAt(data []byte, pos int) (rune, int) {
	c := data[pos]
	switch {
	case c < 0x80:
		return rune(c), 1
	case c&0xE0 == 0xC0:
		return 0, clampLen(data, pos, 2)
	case c&0xF0 == 0xE0:
		return 0, clampLen(data, pos, 3)
	case c&0xF8 == 0xF0:
		return 0, clampLen(data, pos, 4)
	default:
		return 0, 1
	}
}

func clampLen(data []byte, pos, want int) int {
	if pos+want > len(data) {
		return len(data) - pos
	}
	return want
}
