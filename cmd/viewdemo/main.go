// Command viewdemo wires the text buffer, syntax engine, register store,
// and tcell UI backend together behind the view engine, the way
// cmd/symb/main.go wires the teacher's editor model into a bubbletea
// program. It is a demonstration harness, not a full editor: it opens a
// file read-only, highlights it with the built-in Go rule set, and lets
// arrow keys / page keys drive the viewport and primary cursor.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/viewcore/internal/config"
	"github.com/xonecas/viewcore/internal/register"
	"github.com/xonecas/viewcore/internal/syntax"
	"github.com/xonecas/viewcore/internal/textbuf"
	"github.com/xonecas/viewcore/internal/uibackend"
	"github.com/xonecas/viewcore/internal/view"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: viewdemo <file>")
		os.Exit(1)
	}

	content, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("viewdemo: read file")
	}

	cfg := config.Default()
	if home, err := os.UserHomeDir(); err == nil {
		if c, err := config.Load(home + "/.viewdemo.toml"); err == nil {
			cfg = c
		}
	}

	buf := textbuf.NewMemory(content)
	def := syntax.BuiltinGo(cfg.SyntaxTheme)
	regs := register.NewStore()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal().Err(err).Msg("viewdemo: create screen")
	}
	if err := screen.Init(); err != nil {
		log.Fatal().Err(err).Msg("viewdemo: init screen")
	}
	defer screen.Fini()

	backend := uibackend.New(screen)
	onSelection := view.WithSelectionHook(func(r textbuf.Range) {
		log.Debug().Int("start", r.Start).Int("end", r.End).Msg("viewdemo: selection")
	})
	opts := append(cfg.Options(), view.WithSyntax(def), onSelection)
	v := view.New(buf, backend, regs, opts...)

	width, height := screen.Size()
	if err := v.Resize(width, height); err != nil {
		log.Fatal().Err(err).Msg("viewdemo: initial draw")
	}

	for {
		ev := screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventResize:
			w, h := e.Size()
			if err := v.Resize(w, h); err != nil {
				log.Warn().Err(err).Msg("viewdemo: resize draw failed")
			}
			screen.Sync()
		case *tcell.EventKey:
			switch e.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyDown:
				v.LineDown(v.Primary())
				v.Draw()
			case tcell.KeyUp:
				v.LineUp(v.Primary())
				v.Draw()
			case tcell.KeyPgDn:
				v.ViewportDown(1)
			case tcell.KeyPgUp:
				v.ViewportUp(1)
			case tcell.KeyRune:
				if e.Rune() == 'q' {
					return
				}
			}
		}
	}
}
