package config

import (
	"strings"

	"github.com/1broseidon/qwerty/internal/xdgpath"
)

// Settings keys outside the section tree.
const (
	KeyCSSPath     = "global/css_path"
	KeyFillEmpty   = "global/fill_empty"
	KeyNoClose     = "global/no_close"
	KeyChooser     = "global/chooser"
	KeyLastSection = "state/last_used_section"
)

// ChooserMenu selects the in-window popup menu for window disambiguation.
const ChooserMenu = "menu"

// Options are the global behaviour switches read from the store.
type Options struct {
	CSSPath   string
	FillEmpty bool
	NoClose   bool
	Chooser   string
}

// LoadOptions reads the global section of the store. A missing css_path
// falls back to theme.json in the config directory.
func LoadOptions(settings Settings) Options {
	opts := Options{Chooser: ChooserMenu}

	if v, ok := settings.String(KeyCSSPath); ok && strings.TrimSpace(v) != "" {
		opts.CSSPath = xdgpath.ExpandHome(strings.TrimSpace(v))
	} else if p, err := xdgpath.ThemePath(); err == nil {
		opts.CSSPath = p
	}
	if v, ok := settings.Bool(KeyFillEmpty); ok {
		opts.FillEmpty = v
	}
	if v, ok := settings.Bool(KeyNoClose); ok {
		opts.NoClose = v
	}
	if v, ok := settings.String(KeyChooser); ok && strings.TrimSpace(v) != "" {
		opts.Chooser = strings.ToLower(strings.TrimSpace(v))
	}
	return opts
}

// LastSection returns the persisted section, or 0 when it is missing or out of range.
func LastSection(settings Settings) int {
	v, ok := settings.Int(KeyLastSection)
	if !ok || v < 0 || v >= SectionCount {
		return 0
	}
	return v
}
