// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"fmt"

	"github.com/1broseidon/qwerty/internal/platform"
)

// Window is a fake client window.
type Window struct {
	ID      platform.WindowID
	Classes []string
	Desktop int
	Title   string

	ClassErr   error
	DesktopErr error
	TitleErr   error
}

// Backend records every write as a string in Calls, in order.
type Backend struct {
	Windows       []Window
	ClientListErr error
	// FailWrites makes the named operations ("raise", "focus", ...) return an error.
	FailWrites map[string]bool

	Calls []string
}

var _ platform.Backend = (*Backend)(nil)

func (b *Backend) find(id platform.WindowID) (Window, bool) {
	for _, w := range b.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return Window{}, false
}

func (b *Backend) record(op string, format string, args ...interface{}) error {
	b.Calls = append(b.Calls, op+fmt.Sprintf(format, args...))
	if b.FailWrites[op] {
		return fmt.Errorf("%s failed", op)
	}
	return nil
}

func (b *Backend) ClientList() ([]platform.WindowID, error) {
	if b.ClientListErr != nil {
		return nil, b.ClientListErr
	}
	ids := make([]platform.WindowID, 0, len(b.Windows))
	for _, w := range b.Windows {
		ids = append(ids, w.ID)
	}
	return ids, nil
}

func (b *Backend) WindowClass(id platform.WindowID) ([]string, error) {
	w, ok := b.find(id)
	if !ok {
		return nil, fmt.Errorf("no window %d", id)
	}
	if w.ClassErr != nil {
		return nil, w.ClassErr
	}
	return w.Classes, nil
}

func (b *Backend) WindowDesktop(id platform.WindowID) (int, error) {
	w, ok := b.find(id)
	if !ok {
		return 0, fmt.Errorf("no window %d", id)
	}
	if w.DesktopErr != nil {
		return 0, w.DesktopErr
	}
	return w.Desktop, nil
}

func (b *Backend) WindowTitle(id platform.WindowID) (string, error) {
	w, ok := b.find(id)
	if !ok {
		return "", fmt.Errorf("no window %d", id)
	}
	if w.TitleErr != nil {
		return "", w.TitleErr
	}
	return w.Title, nil
}

func (b *Backend) SwitchDesktop(desktop int) error {
	return b.record("desktop", " %d", desktop)
}

func (b *Backend) Raise(id platform.WindowID) error {
	return b.record("raise", " %d", id)
}

func (b *Backend) Focus(id platform.WindowID) error {
	return b.record("focus", " %d", id)
}

func (b *Backend) RequestActivate(id, requester platform.WindowID) error {
	return b.record("activate", " %d from %d", id, requester)
}

func (b *Backend) Map(id platform.WindowID) error {
	return b.record("map", " %d", id)
}

func (b *Backend) Flush() {
	b.Calls = append(b.Calls, "flush")
}

func (b *Backend) Place(id platform.WindowID, r platform.Rect) error {
	return b.record("place", " %d %dx%d+%d+%d", id, r.Width, r.Height, r.X, r.Y)
}

func (b *Backend) KeepAbove(id platform.WindowID) error {
	return b.record("above", " %d", id)
}
