// Package syntax defines the syntax-definition contract the view engine's
// draw pipeline consumes (§6 of the view-engine specification): an ordered
// list of regex rules mapped to style slots, optional per-symbol style
// overrides, and a style table indexed by slot.
package syntax

import "github.com/dlclark/regexp2"

// StyleSlot is a value-typed handle into a Definition's style table. §9
// calls out the slot space as something that "should be a value-typed
// handle rather than a naked integer" — StyleSlot is that handle; the zero
// value means "no style" (renders with the view's default attribute).
type StyleSlot int

// NoStyle is the zero StyleSlot, meaning "no style applied".
const NoStyle StyleSlot = 0

// StyleSpec is one entry of the style table a syntax definition exposes to
// the UI backend (§6: "null-terminated array of style specifications
// indexed by slot" — expressed here as a plain slice, Go has no need for
// the sentinel). Colors are "#rrggbb" hex strings or "" for "inherit".
type StyleSpec struct {
	Name      string
	Fg        string
	Bg        string
	Bold      bool
	Italic    bool
	Underline bool
}

// Rule pairs a compiled regular expression with the style slot applied to
// whatever it matches. Rules are evaluated in declaration order; the first
// whose cached match covers the current byte wins (see Matcher).
type Rule struct {
	Name  string
	Regex *regexp2.Regexp
	Slot  StyleSlot
}

// SymbolKind identifies one of the fixed set of non-text glyphs the draw
// pipeline emits (§6 "symbol flags").
type SymbolKind int

const (
	SymbolSpace SymbolKind = iota
	SymbolTabHead
	SymbolTabFill
	SymbolEOL
	SymbolEOF
)

// Definition is the syntax contract consumed by the view engine: a rule
// list, a style table, and optional per-symbol style overrides.
type Definition struct {
	Rules        []Rule
	Styles       []StyleSpec
	SymbolStyles map[SymbolKind]StyleSlot
}

// StyleFor resolves a slot to its StyleSpec. Returns false if the slot has
// no entry (NoStyle, or out of range).
func (d *Definition) StyleFor(slot StyleSlot) (StyleSpec, bool) {
	if d == nil || slot <= NoStyle || int(slot) >= len(d.Styles) {
		return StyleSpec{}, false
	}
	return d.Styles[slot], true
}

// SymbolSlot returns the style slot overriding the given symbol kind, if
// one was configured.
func (d *Definition) SymbolSlot(kind SymbolKind) (StyleSlot, bool) {
	if d == nil || d.SymbolStyles == nil {
		return NoStyle, false
	}
	slot, ok := d.SymbolStyles[kind]
	return slot, ok
}

// MustCompileRule compiles pattern with regexp2 and panics on error — meant
// for syntax definitions built from static tables at program init, mirroring
// how `regexp.MustCompile` is used for the same purpose in the standard
// library.
func MustCompileRule(name, pattern string, slot StyleSlot) Rule {
	re := regexp2.MustCompile(pattern, regexp2.RE2)
	return Rule{Name: name, Regex: re, Slot: slot}
}
