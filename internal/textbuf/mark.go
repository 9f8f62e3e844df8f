package textbuf

import "github.com/google/uuid"

// EPos is the sentinel byte position returned when a Mark no longer
// resolves to a live location in the buffer — the range that covered it
// was deleted. Callers treat it as "position unknown", never as an error.
const EPos = -1

// Mark is an opaque handle into a Buffer that tracks a byte position across
// edits. Marks are the only stable coordinate a view keeps between draws;
// every offset it caches (cursor, selection endpoint, viewport start) is a
// snapshot resolved from a Mark.
type Mark struct {
	id uuid.UUID
}

func (m Mark) Zero() bool { return m.id == uuid.Nil }

func newMark() Mark { return Mark{id: uuid.New()} }
