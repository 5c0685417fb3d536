package config

import (
	"fmt"
	"strings"
)

// SectionCount is the number of sections; ids run from 0 to SectionCount-1.
const SectionCount = 10

// Application is the record configured for one letter slot of a section.
// An empty Title means the slot is unassigned.
type Application struct {
	Section int
	Letter  rune
	Title   string
	Class   string
	Icon    string
	Command string
}

// Assigned reports whether the slot has a title.
func (a Application) Assigned() bool {
	return a.Title != ""
}

// Section is the display record of a section button.
type Section struct {
	ID    int
	Title string
	Icon  string
}

// Resolver looks up sections and applications in a settings store.
type Resolver struct {
	settings Settings
}

func NewResolver(settings Settings) *Resolver {
	return &Resolver{settings: settings}
}

// Resolve returns the application for (section, letter). When fillEmpty is
// set and the slot is unassigned, sections are scanned in ascending order and
// the first one with a title for letter wins. If none has one, the empty
// record of the requested section is returned.
func (r *Resolver) Resolve(section int, letter rune, fillEmpty bool) Application {
	app := r.lookup(section, letter)
	if app.Assigned() || !fillEmpty {
		return app
	}
	for id := 0; id < SectionCount; id++ {
		if candidate := r.lookup(id, letter); candidate.Assigned() {
			return candidate
		}
	}
	return app
}

// Section returns the title and icon configured for a section.
func (r *Resolver) Section(id int) Section {
	prefix := sectionKey(id)
	return Section{
		ID:    id,
		Title: r.str(prefix + "/title"),
		Icon:  r.str(prefix + "/icon"),
	}
}

func (r *Resolver) lookup(section int, letter rune) Application {
	letter = toUpper(letter)
	prefix := fmt.Sprintf("%s/%c", sectionKey(section), letter)
	return Application{
		Section: section,
		Letter:  letter,
		Title:   r.str(prefix + "/title"),
		Class:   r.str(prefix + "/class"),
		Icon:    r.str(prefix + "/icon"),
		Command: r.str(prefix + "/command"),
	}
}

func (r *Resolver) str(path string) string {
	v, _ := r.settings.String(path)
	return strings.TrimSpace(v)
}

func sectionKey(id int) string {
	return fmt.Sprintf("section_%d", id)
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
