// Package view implements the text editor's view engine: the cell grid,
// the draw pipeline that decodes a buffer's bytes into styled cells, and
// the cursor/selection/viewport state that a modal editor's UI layer
// drives. The view never owns text — every position it remembers is a
// textbuf.Mark, resolved fresh on every draw, so edits anywhere in the
// buffer never invalidate a view's notion of where its cursors are.
package view

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/viewcore/internal/register"
	"github.com/xonecas/viewcore/internal/syntax"
	"github.com/xonecas/viewcore/internal/textbuf"
)

// ErrNoPosition is returned by viewport motions that have nowhere left to
// go (e.g. scrolling up at the start of the buffer).
var ErrNoPosition = errors.New("view: no further position")

// ErrInvalidMark is logged (not returned — see AMBIENT STACK) when a mark
// no longer resolves to a live buffer position.
var ErrInvalidMark = errors.New("view: mark does not resolve")

// SelectionHook is the event hook produced to the caller during draw (§3
// lifecycle "event hook", §4.2 step 9, §6 "on_selection(data, &range)"):
// invoked once per valid selection with its current absolute byte range.
type SelectionHook func(r textbuf.Range)

// View is the engine's central type: one viewport over one text buffer,
// with its own cursor set, selection set, and syntax/symbol configuration.
// Multiple Views may share a Buffer (SPEC_FULL.md SUPPLEMENTED FEATURES).
type View struct {
	buf  textbuf.Buffer
	ui   Backend
	regs *register.Store
	syn  *syntax.Definition

	grid       *Grid
	topline    *Line
	lastline   *Line
	bottomline *Line

	start, end int
	startMark  textbuf.Mark

	tabWidth               int
	symbols                SymbolSet
	symbolFlags            SymbolFlags
	bracketExclude         string
	scrollToMiddleOnAppend bool
	scrollOff              int

	cursorHead, cursorPrimary *Cursor
	selections                []*Selection
	onSelection               SelectionHook

	stylesRegistered map[syntax.StyleSlot]bool
}

// Option configures a View at construction time.
type Option func(*View)

// WithSyntax attaches a regex-rule syntax definition (§6).
func WithSyntax(def *syntax.Definition) Option {
	return func(v *View) { v.syn = def }
}

// WithTabWidth overrides the default tab width of 8.
func WithTabWidth(n int) Option {
	return func(v *View) {
		if n > 0 {
			v.tabWidth = n
		}
	}
}

// WithSymbols overrides the default glyph set and activation flags.
func WithSymbols(set SymbolSet, flags SymbolFlags) Option {
	return func(v *View) {
		v.symbols = set
		v.symbolFlags = flags
	}
}

// WithBracketExclude overrides the characters bracket_match_except skips
// (REDESIGN FLAG / Open Question in §9), default "<>".
func WithBracketExclude(chars string) Option {
	return func(v *View) { v.bracketExclude = chars }
}

// WithScrollToMiddleOnAppend controls the empty-viewport policy (Open
// Question in §9): whether appending content past EOF recenters the
// viewport. Default true.
func WithScrollToMiddleOnAppend(b bool) Option {
	return func(v *View) { v.scrollToMiddleOnAppend = b }
}

// WithScrollOff sets the minimum number of lines kept visible above/below
// the primary cursor when scrolling.
func WithScrollOff(n int) Option {
	return func(v *View) {
		if n >= 0 {
			v.scrollOff = n
		}
	}
}

// WithSelectionHook attaches the §6 on_selection event hook, invoked once
// per valid selection during every Draw. Implemented as an Option, like
// every other optional View knob, rather than a positional New() argument,
// so existing call sites that construct a View without a hook are
// unaffected.
func WithSelectionHook(hook SelectionHook) Option {
	return func(v *View) { v.onSelection = hook }
}

// New creates a View over buf, rendering through ui, with one initial
// cursor positioned at byte 0 (§3 lifecycle: a view is born with exactly
// one cursor, never zero).
func New(buf textbuf.Buffer, ui Backend, regs *register.Store, opts ...Option) *View {
	v := &View{
		buf:                    buf,
		ui:                     ui,
		regs:                   regs,
		grid:                   NewGrid(1, 1),
		tabWidth:               8,
		symbols:                DefaultSymbols,
		symbolFlags:            ShowEOF,
		bracketExclude:         "<>",
		scrollToMiddleOnAppend: true,
		scrollOff:              0,
		stylesRegistered:       make(map[syntax.StyleSlot]bool),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.topline = v.grid.Top()
	v.bottomline = v.grid.Bottom()
	v.lastline = v.topline
	v.start = 0
	v.startMark = buf.MarkSet(0)
	v.addCursor(0)
	return v
}

// Resize adapts the viewport to a new terminal size and redraws. If the
// smaller grid no longer reaches the primary cursor, the viewport scrolls
// to bring it back.
func (v *View) Resize(width, height int) error {
	v.grid.Resize(width, height)
	v.topline = v.grid.Top()
	v.bottomline = v.grid.Bottom()
	if err := v.Draw(); err != nil {
		return err
	}
	v.ensurePrimaryVisible()
	return nil
}

// Buffer returns the text buffer this view renders.
func (v *View) Buffer() textbuf.Buffer { return v.buf }

// SetSyntax swaps the active syntax definition, forcing style
// re-registration with the UI backend on the next draw.
func (v *View) SetSyntax(def *syntax.Definition) {
	v.syn = def
	v.stylesRegistered = make(map[syntax.StyleSlot]bool)
}

func (v *View) resolveMark(m textbuf.Mark) (int, bool) {
	pos := v.buf.MarkGet(m)
	if pos == textbuf.EPos {
		log.Debug().Err(ErrInvalidMark).Msg("view: mark no longer resolves")
		return 0, false
	}
	return pos, true
}

func (v *View) ensureStylesRegistered() error {
	if v.syn == nil {
		return nil
	}
	for slot, spec := range v.syn.Styles {
		s := syntax.StyleSlot(slot)
		if v.stylesRegistered[s] {
			continue
		}
		if err := v.ui.SyntaxStyle(s, spec); err != nil {
			return fmt.Errorf("view: register style %d: %w", slot, err)
		}
		v.stylesRegistered[s] = true
	}
	return nil
}
