// Package uibackend provides a reference implementation of the view
// engine's consumed UI-backend contract (SPEC_FULL.md SUPPLEMENTED
// FEATURES: "spec.md treats the UI backend as out-of-scope, but a
// complete repository needs at least one concrete implementation of the
// consumed contract"), built on tcell's cell-grid terminal model.
package uibackend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/xonecas/viewcore/internal/syntax"
	"github.com/xonecas/viewcore/internal/view"
)

// TcellBackend renders a view's screen-line chain directly onto a tcell
// Screen with SetContent, the way a cell-grid UI backend owns the style
// table described in §6/§9 ("global style table").
type TcellBackend struct {
	mu     sync.RWMutex
	screen tcell.Screen
	styles map[syntax.StyleSlot]tcell.Style

	defaultStyle   tcell.Style
	selectionStyle tcell.Style
	cursorStyle    tcell.Style
}

// New creates a backend over an already-initialized tcell.Screen.
func New(screen tcell.Screen) *TcellBackend {
	return &TcellBackend{
		screen:         screen,
		styles:         make(map[syntax.StyleSlot]tcell.Style),
		defaultStyle:   tcell.StyleDefault,
		selectionStyle: tcell.StyleDefault.Reverse(true),
		cursorStyle:    tcell.StyleDefault.Reverse(true).Bold(true),
	}
}

// Size returns the current terminal size in columns, rows.
func (b *TcellBackend) Size() (int, int) {
	return b.screen.Size()
}

// SyntaxStyle registers spec's concrete rendering as slot's tcell.Style —
// the Backend contract's "syntax_style(ui, slot, spec)".
func (b *TcellBackend) SyntaxStyle(slot syntax.StyleSlot, spec syntax.StyleSpec) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := tcell.StyleDefault
	if spec.Fg != "" {
		st = st.Foreground(tcell.GetColor(spec.Fg))
	}
	if spec.Bg != "" {
		st = st.Background(tcell.GetColor(spec.Bg))
	}
	st = st.Bold(spec.Bold).Italic(spec.Italic).Underline(spec.Underline)
	b.styles[slot] = st
	return nil
}

func (b *TcellBackend) styleFor(slot syntax.StyleSlot) tcell.Style {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if st, ok := b.styles[slot]; ok {
		return st
	}
	return b.defaultStyle
}

// DrawText walks the view's screen-line chain from top through its
// bottomline and paints every row onto the screen, then flushes — the
// Backend contract's "draw_text(ui, topline)".
func (b *TcellBackend) DrawText(top *view.Line) error {
	width, _ := b.screen.Size()
	row := 0
	for line := top; line != nil; line = line.Next() {
		b.drawRow(row, line, width)
		row++
	}
	b.screen.Show()
	return nil
}

func (b *TcellBackend) drawRow(row int, line *view.Line, width int) {
	if line.Lineno < 0 {
		first := len(line.Cells) > 0
		for col := 0; col < width; col++ {
			if first && !line.Cells[0].Blank() {
				b.screen.SetContent(col, row, firstRune(line.Cells[0].Text()), nil, b.defaultStyle)
				first = false
				continue
			}
			b.screen.SetContent(col, row, ' ', nil, b.defaultStyle)
		}
		return
	}
	for col, cell := range line.Cells {
		if col >= width {
			break
		}
		if cell.Blank() {
			b.screen.SetContent(col, row, ' ', nil, b.defaultStyle)
			continue
		}
		st := b.styleFor(cell.Style)
		if cell.Selected {
			st = b.selectionStyle
		}
		if cell.Cursor {
			st = b.cursorStyle
		}
		b.screen.SetContent(col, row, firstRune(cell.Text()), nil, st)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
