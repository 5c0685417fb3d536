package windows

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/qwerty/internal/logger"
	"github.com/1broseidon/qwerty/internal/platform"
)

// Chooser asks the user to pick one of several labels. pick receives the
// index of the chosen label and is not called at all when the user dismisses
// the list.
type Chooser interface {
	Choose(labels []string, pick func(index int))
}

// IconChooser is a Chooser that can show an icon name next to every label.
type IconChooser interface {
	Chooser
	ChooseWithIcon(labels []string, icon string, pick func(index int))
}

// Activator brings client windows to the front.
type Activator struct {
	backend   platform.Backend
	directory *Directory
	log       *logger.Logger

	// Requester returns the launcher's own window, sent as the source of
	// activation requests. It may be nil or return 0.
	Requester func() platform.WindowID
}

func NewActivator(backend platform.Backend, directory *Directory, log *logger.Logger) *Activator {
	if log == nil {
		log = logger.Nop()
	}
	return &Activator{
		backend:   backend,
		directory: directory,
		log:       log,
	}
}

// Activate switches to the window's desktop, raises and focuses it, asks the
// window manager to make it active and maps it. Every step is attempted;
// failures are joined into the returned error. The order matters: the
// desktop switch precedes activation and activation precedes the map.
func (a *Activator) Activate(rec Record) error {
	var errs []error

	if desktop, ok := a.directory.Desktop(rec); ok && desktop != platform.StickyDesktop {
		if err := a.backend.SwitchDesktop(desktop); err != nil {
			errs = append(errs, fmt.Errorf("switch to desktop %d: %w", desktop, err))
		}
		a.backend.Flush()
	}

	if err := a.backend.Raise(rec.ID); err != nil {
		errs = append(errs, fmt.Errorf("raise: %w", err))
	}
	if err := a.backend.Focus(rec.ID); err != nil {
		errs = append(errs, fmt.Errorf("focus: %w", err))
	}
	if err := a.backend.RequestActivate(rec.ID, a.requester()); err != nil {
		errs = append(errs, fmt.Errorf("request activation: %w", err))
	}
	if err := a.backend.Map(rec.ID); err != nil {
		errs = append(errs, fmt.Errorf("map: %w", err))
	}
	a.backend.Flush()

	if len(errs) > 0 {
		return fmt.Errorf("activate window %d: %w", uint32(rec.ID), errors.Join(errs...))
	}
	a.log.Info("Window activated", "window", uint32(rec.ID), "class", rec.Class)
	return nil
}

// Choose activates the only record directly, or shows the chooser with one
// title per record in directory order. done runs after a window has been
// activated, whether or not activation reported errors; it never runs when
// the chooser is dismissed.
func (a *Activator) Choose(records []Record, chooser Chooser, done func(Record)) {
	switch len(records) {
	case 0:
		return
	case 1:
		a.activateAndFinish(records[0], done)
		return
	}

	labels := make([]string, len(records))
	for i, rec := range records {
		labels[i] = a.directory.Title(rec)
	}

	pick := func(index int) {
		if index < 0 || index >= len(records) {
			a.log.Warn("Ignoring out of range window choice", "index", index, "choices", len(records))
			return
		}
		a.activateAndFinish(records[index], done)
	}
	// Icon themes name application icons after the lowercased WM class.
	if ic, ok := chooser.(IconChooser); ok {
		ic.ChooseWithIcon(labels, strings.ToLower(records[0].Class), pick)
		return
	}
	chooser.Choose(labels, pick)
}

func (a *Activator) activateAndFinish(rec Record, done func(Record)) {
	if err := a.Activate(rec); err != nil {
		a.log.Error("Window activation incomplete", err, "window", uint32(rec.ID))
	}
	if done != nil {
		done(rec)
	}
}

func (a *Activator) requester() platform.WindowID {
	if a.Requester == nil {
		return 0
	}
	return a.Requester()
}
