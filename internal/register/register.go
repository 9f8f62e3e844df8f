// Package register implements the per-cursor clipboard register store the
// view engine's cursors reference narrowly (§1 "external collaborators",
// §3 Cursor.reg): each cursor owns a private register handle, and named
// registers ('+', '*') bridge to the OS clipboard the way a modal editor's
// yank/put registers do.
package register

import (
	"sync"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

// Handle identifies one register slot. The zero Handle is never valid —
// Store.Alloc always returns a positive handle.
type Handle int

// Store owns every register's text. A Store is shared by every view over
// the same text buffer the way named registers are shared across windows
// in a modal editor; each cursor's *private* register is simply a Handle
// nothing else references.
type Store struct {
	mu     sync.Mutex
	text   map[Handle]string
	named  map[rune]Handle
	nextID Handle
}

// NewStore creates an empty register store.
func NewStore() *Store {
	return &Store{
		text:  make(map[Handle]string),
		named: make(map[rune]Handle),
	}
}

// Alloc creates a new private register handle, used for a newly created
// cursor's reg field. The returned handle is owned by the caller and
// should be passed to Release when the cursor is disposed.
func (s *Store) Alloc() Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	h := s.nextID
	s.text[h] = ""
	return h
}

// Release frees a private register's storage.
func (s *Store) Release(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.text, h)
}

// Named returns the shared handle for a named register (e.g. 'a'-'z',
// '+', '*'), allocating it on first use. '+' and '*' are clipboard-backed:
// Get/Set on their handle read/write the OS clipboard instead of the
// in-memory map.
func (s *Store) Named(name rune) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.named[name]; ok {
		return h
	}
	s.nextID++
	h := s.nextID
	s.named[name] = h
	s.text[h] = ""
	return h
}

func (s *Store) isClipboardBacked(h Handle) (rune, bool) {
	for name, hh := range s.named {
		if hh == h && (name == '+' || name == '*') {
			return name, true
		}
	}
	return 0, false
}

// Get returns the current text held in h.
func (s *Store) Get(h Handle) string {
	s.mu.Lock()
	if _, ok := s.isClipboardBacked(h); ok {
		s.mu.Unlock()
		text, err := clipboard.ReadAll()
		if err != nil {
			log.Debug().Err(err).Msg("register: clipboard read failed")
			return ""
		}
		return text
	}
	defer s.mu.Unlock()
	return s.text[h]
}

// Set replaces the text held in h.
func (s *Store) Set(h Handle, text string) {
	s.mu.Lock()
	if _, ok := s.isClipboardBacked(h); ok {
		s.mu.Unlock()
		if err := clipboard.WriteAll(text); err != nil {
			log.Debug().Err(err).Msg("register: clipboard write failed")
		}
		return
	}
	defer s.mu.Unlock()
	s.text[h] = text
}
