package view

import "github.com/xonecas/viewcore/internal/syntax"

// SymbolKind re-exports the syntax package's symbol enumeration so callers
// configuring a View don't need to import internal/syntax directly for it.
type SymbolKind = syntax.SymbolKind

// SymbolFlags selects, per symbol kind, whether the view renders its
// visible glyph or a blank in that position (§6: the symbol table is a
// bitmask plus a glyph array — "the bitmask selects which entries are
// active versus blank").
type SymbolFlags uint8

const (
	ShowSpace SymbolFlags = 1 << iota
	ShowTabHead
	ShowTabFill
	ShowEOL
	ShowEOF
)

// SymbolSet is the concrete glyph table a View draws when a SymbolFlags bit
// is set. Supplemented feature (SPEC_FULL.md SUPPLEMENTED FEATURES): the
// bitmask in §6 selects on/off, but a UI backend needs actual glyphs, so
// the glyph table is its own first-class value with an ASCII-safe default.
type SymbolSet struct {
	Space   rune
	TabHead rune
	TabFill rune
	EOL     rune
	EOF     rune
}

// DefaultSymbols is the ASCII-safe glyph set used when a View is created
// without an explicit SymbolSet.
var DefaultSymbols = SymbolSet{
	Space:   '.',
	TabHead: '>',
	TabFill: ' ',
	EOL:     '$',
	EOF:     '~',
}

func (s SymbolSet) glyph(kind SymbolFlags, flags SymbolFlags) (rune, bool) {
	if flags&kind == 0 {
		return ' ', false
	}
	switch kind {
	case ShowSpace:
		return s.Space, true
	case ShowTabHead:
		return s.TabHead, true
	case ShowTabFill:
		return s.TabFill, true
	case ShowEOL:
		return s.EOL, true
	case ShowEOF:
		return s.EOF, true
	}
	return ' ', false
}
