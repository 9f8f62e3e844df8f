// Package config parses and validates the view engine's small ambient
// configuration surface (tab width, symbol glyphs, syntax theme,
// scroll-off, bracket-match exclusion, empty-viewport policy), the way
// the teacher parses and validates its TOML config: BurntSushi/toml for
// parsing, a Validate pass that accumulates every problem with
// errors.Join instead of stopping at the first.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/xonecas/viewcore/internal/view"
)

// Config is the view engine's on-disk configuration.
type Config struct {
	TabWidth               int    `toml:"tab_width"`
	SyntaxTheme            string `toml:"syntax_theme"`
	ScrollOff              int    `toml:"scroll_off"`
	BracketExcludeChars    string `toml:"bracket_exclude_chars"`
	ScrollToMiddleOnAppend bool   `toml:"scroll_to_middle_on_append"`

	Symbols struct {
		Space   string `toml:"space"`
		TabHead string `toml:"tab_head"`
		TabFill string `toml:"tab_fill"`
		EOL     string `toml:"eol"`
		EOF     string `toml:"eof"`
	} `toml:"symbols"`

	ShowSymbols struct {
		Space   bool `toml:"space"`
		TabHead bool `toml:"tab_head"`
		TabFill bool `toml:"tab_fill"`
		EOL     bool `toml:"eol"`
		EOF     bool `toml:"eof"`
	} `toml:"show_symbols"`
}

// Default returns the configuration a View uses absent any file.
func Default() Config {
	c := Config{
		TabWidth:               8,
		SyntaxTheme:            "github-dark",
		ScrollOff:              0,
		BracketExcludeChars:    "<>",
		ScrollToMiddleOnAppend: true,
	}
	c.Symbols.Space = "."
	c.Symbols.TabHead = ">"
	c.Symbols.TabFill = " "
	c.Symbols.EOL = "$"
	c.Symbols.EOF = "~"
	c.ShowSymbols.EOF = true
	return c
}

// Load parses a TOML file at path, starting from Default() so unset
// fields keep their defaults, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("config: %s: %w", path, errors.Join(errs...))
	}
	return cfg, nil
}

// Validate accumulates every problem with the configuration instead of
// stopping at the first, the way the teacher's config.Validate does.
func (c Config) Validate() []error {
	var errs []error
	if c.TabWidth <= 0 {
		errs = append(errs, fmt.Errorf("tab_width must be positive, got %d", c.TabWidth))
	}
	if c.TabWidth > 64 {
		errs = append(errs, fmt.Errorf("tab_width too large, got %d", c.TabWidth))
	}
	if c.ScrollOff < 0 {
		errs = append(errs, fmt.Errorf("scroll_off must not be negative, got %d", c.ScrollOff))
	}
	for _, pair := range []struct {
		name  string
		value string
	}{
		{"symbols.space", c.Symbols.Space},
		{"symbols.tab_head", c.Symbols.TabHead},
		{"symbols.tab_fill", c.Symbols.TabFill},
		{"symbols.eol", c.Symbols.EOL},
		{"symbols.eof", c.Symbols.EOF},
	} {
		if len([]rune(pair.value)) != 1 {
			errs = append(errs, fmt.Errorf("%s must be exactly one glyph, got %q", pair.name, pair.value))
		}
	}
	return errs
}

// SymbolSet converts the config's glyph table into a view.SymbolSet.
func (c Config) SymbolSet() view.SymbolSet {
	return view.SymbolSet{
		Space:   firstRuneOr(c.Symbols.Space, '.'),
		TabHead: firstRuneOr(c.Symbols.TabHead, '>'),
		TabFill: firstRuneOr(c.Symbols.TabFill, ' '),
		EOL:     firstRuneOr(c.Symbols.EOL, '$'),
		EOF:     firstRuneOr(c.Symbols.EOF, '~'),
	}
}

// SymbolFlags converts the config's show_symbols table into view.SymbolFlags.
func (c Config) SymbolFlags() view.SymbolFlags {
	var f view.SymbolFlags
	if c.ShowSymbols.Space {
		f |= view.ShowSpace
	}
	if c.ShowSymbols.TabHead {
		f |= view.ShowTabHead
	}
	if c.ShowSymbols.TabFill {
		f |= view.ShowTabFill
	}
	if c.ShowSymbols.EOL {
		f |= view.ShowEOL
	}
	if c.ShowSymbols.EOF {
		f |= view.ShowEOF
	}
	return f
}

// Options builds the view.Option slice a View should be constructed with
// for this configuration.
func (c Config) Options() []view.Option {
	return []view.Option{
		view.WithTabWidth(c.TabWidth),
		view.WithSymbols(c.SymbolSet(), c.SymbolFlags()),
		view.WithBracketExclude(c.BracketExcludeChars),
		view.WithScrollToMiddleOnAppend(c.ScrollToMiddleOnAppend),
		view.WithScrollOff(c.ScrollOff),
	}
}

func firstRuneOr(s string, def rune) rune {
	for _, r := range s {
		return r
	}
	return def
}
