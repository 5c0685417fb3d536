// Package windows indexes the window manager's client windows by WM class
// and activates them through EWMH requests.
package windows

import (
	"fmt"
	"strings"

	"github.com/1broseidon/qwerty/internal/logger"
	"github.com/1broseidon/qwerty/internal/platform"
)

// UntitledPlaceholder is shown for windows whose name cannot be read.
const UntitledPlaceholder = "<untitled>"

// Record is one client window as seen by the last Refresh.
type Record struct {
	ID    platform.WindowID
	Class string
}

// Directory maps WM class names to the client windows that carry them. It is
// rebuilt wholesale by Refresh; nothing is cached between refreshes.
type Directory struct {
	backend platform.Backend
	log     *logger.Logger
	byClass map[string][]Record
	order   []platform.WindowID
}

func NewDirectory(backend platform.Backend, log *logger.Logger) *Directory {
	if log == nil {
		log = logger.Nop()
	}
	return &Directory{
		backend: backend,
		log:     log,
		byClass: map[string][]Record{},
	}
}

// Refresh re-reads the client list and every window's class. On a client
// list failure the directory is left empty.
func (d *Directory) Refresh() error {
	d.byClass = map[string][]Record{}
	d.order = nil

	clients, err := d.backend.ClientList()
	if err != nil {
		return fmt.Errorf("refresh window directory: %w", err)
	}

	for _, id := range clients {
		names, err := d.backend.WindowClass(id)
		if err != nil {
			d.log.Debug("Skipping window without class", "window", uint32(id), "error", err.Error())
			continue
		}
		d.order = append(d.order, id)
		for _, name := range names {
			d.add(name, id)
		}
	}

	d.log.Debug("Window directory refreshed", "windows", len(d.order), "classes", len(d.byClass))
	return nil
}

func (d *Directory) add(class string, id platform.WindowID) {
	if class == "" {
		return
	}
	for _, rec := range d.byClass[class] {
		if rec.ID == id {
			return
		}
	}
	d.byClass[class] = append(d.byClass[class], Record{ID: id, Class: class})
}

// WindowsFor returns the windows indexed under class, in client list order.
// An empty result means nothing with that class is running.
func (d *Directory) WindowsFor(class string) []Record {
	if class == "" {
		return nil
	}
	recs := d.byClass[class]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

// Running reports whether any window carries class.
func (d *Directory) Running(class string) bool {
	return class != "" && len(d.byClass[class]) > 0
}

// Classes returns every indexed class name.
func (d *Directory) Classes() []string {
	out := make([]string, 0, len(d.byClass))
	for class := range d.byClass {
		out = append(out, class)
	}
	return out
}

// Windows returns the client windows that had a readable class, in client
// list order.
func (d *Directory) Windows() []platform.WindowID {
	out := make([]platform.WindowID, len(d.order))
	copy(out, d.order)
	return out
}

// Title reads the window name. Failures and empty names yield
// UntitledPlaceholder.
func (d *Directory) Title(rec Record) string {
	title, err := d.backend.WindowTitle(rec.ID)
	if err != nil {
		d.log.Debug("Window title unavailable", "window", uint32(rec.ID), "error", err.Error())
		return UntitledPlaceholder
	}
	if title = strings.TrimSpace(title); title == "" {
		return UntitledPlaceholder
	}
	return title
}

// Desktop reads the window's virtual desktop. ok is false when the property
// cannot be read.
func (d *Directory) Desktop(rec Record) (desktop int, ok bool) {
	desktop, err := d.backend.WindowDesktop(rec.ID)
	if err != nil {
		d.log.Debug("Window desktop unavailable", "window", uint32(rec.ID), "error", err.Error())
		return 0, false
	}
	return desktop, true
}
