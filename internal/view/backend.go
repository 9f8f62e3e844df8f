package view

import "github.com/xonecas/viewcore/internal/syntax"

// Backend is the UI-backend contract the view engine consumes (§1, §6):
// "draw_text(ui, topline)" walks the screen-line chain from topline and
// paints it, and "syntax_style(ui, slot, spec)" registers a style slot's
// concrete attributes with the backend's own style table before a draw
// references that slot. The view never renders directly; Present is the
// only point where it hands control to a concrete backend.
type Backend interface {
	// DrawText walks the chain starting at top and renders every row
	// through Bottom, including rows with Lineno == -1 (blank/EOF rows).
	DrawText(top *Line) error

	// SyntaxStyle registers spec as the concrete rendering for slot,
	// called once per slot before the first draw that uses it and again
	// whenever the active syntax.Definition changes.
	SyntaxStyle(slot syntax.StyleSlot, spec syntax.StyleSpec) error
}
