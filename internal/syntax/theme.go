package syntax

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// themeTokenTypes is the small, representative subset of Chroma token types
// a regex-rule syntax definition cares about: one style per logical
// category (keyword, string, comment, number, ...), not Chroma's full
// tokenizer. A Definition built by StylesFromTheme pairs these with
// hand-written regex rules rather than Chroma's own lexer.
var themeTokenTypes = []struct {
	name string
	tok  chroma.TokenType
}{
	{"keyword", chroma.Keyword},
	{"string", chroma.LiteralString},
	{"number", chroma.LiteralNumber},
	{"comment", chroma.Comment},
	{"function", chroma.NameFunction},
	{"type", chroma.NameClass},
	{"operator", chroma.Operator},
}

// StylesFromTheme builds a style table from a named Chroma theme (e.g.
// "github-dark", "monokai"), one slot per entry in themeTokenTypes plus
// slot 0 reserved as NoStyle. It lets a syntax.Definition say
// "theme: github-dark" and get real colors without using Chroma's
// tokenizer — only its style palettes.
func StylesFromTheme(theme string) []StyleSpec {
	sty := styles.Get(theme)
	if sty == nil {
		sty = styles.Fallback
	}
	out := make([]StyleSpec, 1, len(themeTokenTypes)+1) // slot 0 = NoStyle
	for _, tt := range themeTokenTypes {
		entry := sty.Get(tt.tok)
		out = append(out, StyleSpec{
			Name:      tt.name,
			Fg:        colourHex(entry.Colour),
			Bg:        colourHex(entry.Background),
			Bold:      entry.Bold == chroma.Yes,
			Italic:    entry.Italic == chroma.Yes,
			Underline: entry.Underline == chroma.Yes,
		})
	}
	return out
}

// SlotForTokenName returns the slot assigned to a themeTokenTypes entry by
// name, for wiring a hand-written Rule to the right palette color.
func SlotForTokenName(styleTable []StyleSpec, name string) (StyleSlot, bool) {
	for i, s := range styleTable {
		if s.Name == name {
			return StyleSlot(i), true
		}
	}
	return NoStyle, false
}

// ThemeBackground extracts the theme's overall background color. Returns
// "" if the theme declares no background.
func ThemeBackground(theme string) string {
	sty := styles.Get(theme)
	if sty == nil {
		return ""
	}
	bg := sty.Get(chroma.Background).Background
	if !bg.IsSet() {
		return ""
	}
	return bg.String()
}

func colourHex(c chroma.Colour) string {
	if !c.IsSet() {
		return ""
	}
	return c.String()
}
