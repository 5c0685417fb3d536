// Package palette shows a list through an external dmenu-style picker
// (rofi, fuzzel, wofi or dmenu) and reports which entry was chosen.
package palette

import (
	"fmt"
	"os/exec"
	"strings"
)

// Item is a single selectable entry in a palette list.
type Item struct {
	Label    string // Display text
	Icon     string // Icon name for rofi -show-icons
	Info     string // Hidden data carried with the row (rofi only)
	IsActive bool   // Highlighted as current/active
}

// SelectResult contains the result of a palette selection.
type SelectResult struct {
	Index int
	Item  Item
}

// Capabilities describes what features a backend supports.
type Capabilities struct {
	Icons       bool // Supports icon display
	Markup      bool // Supports pango markup in labels
	IndexOutput bool // Can output selection index (not just text)
	RowStates   bool // Supports active row highlighting
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	// Show displays items under prompt. It returns ErrCancelled when the
	// user closes the palette without choosing.
	Show(prompt string, items []Item) (SelectResult, error)

	// Capabilities returns the features supported by this backend.
	Capabilities() Capabilities
}

// AutoDetect selects the first available backend in priority order.
func AutoDetect() (Backend, error) {
	name, err := DetectBackend()
	if err != nil {
		return nil, err
	}
	return NewBackend(name)
}

// NewBackend creates a backend by name.
//
// Supported names: auto, rofi, fuzzel, wofi, dmenu.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "auto":
		return AutoDetect()
	case "rofi", "fuzzel", "wofi", "dmenu":
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, rofi, fuzzel, wofi, dmenu)", name)
	}

	if _, err := lookPath(name); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", name)
	}
	switch name {
	case "rofi":
		return NewRofiBackend(), nil
	case "fuzzel":
		return NewFuzzelBackend(), nil
	case "wofi":
		return NewWofiBackend(), nil
	default:
		return NewDmenuBackend(), nil
	}
}

var lookPath = exec.LookPath
