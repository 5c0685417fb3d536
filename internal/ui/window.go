// Package ui renders the launcher grid with Fyne and feeds keyboard and
// button input to the launcher state machine.
package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/1broseidon/qwerty/internal/config"
	"github.com/1broseidon/qwerty/internal/launcher"
	"github.com/1broseidon/qwerty/internal/logger"
	"github.com/1broseidon/qwerty/internal/platform"
)

const (
	defaultWidth  = 900
	defaultHeight = 420
)

// Options control how the launcher window is created and placed.
type Options struct {
	Title       string
	Geometry    *config.Geometry
	Fullscreen  bool
	Undecorated bool
	Icons       *IconResolver
}

// Window is the launcher's single top-level window.
type Window struct {
	app     fyne.App
	win     fyne.Window
	backend platform.Backend
	opts    Options
	icons   *IconResolver
	log     *logger.Logger

	launcher *launcher.Launcher
	sections []*widget.Button
	slots    map[rune]*widget.Button
	nativeID platform.WindowID
}

// NewWindow creates the window without showing it. backend is used to place
// the native window once it is mapped and may be nil.
func NewWindow(a fyne.App, backend platform.Backend, opts Options, log *logger.Logger) *Window {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Title == "" {
		opts.Title = "qwerty"
	}
	icons := opts.Icons
	if icons == nil {
		icons = NewIconResolver()
	}

	var win fyne.Window
	if drv, ok := a.Driver().(desktop.Driver); ok && opts.Undecorated {
		win = drv.CreateSplashWindow()
		win.SetTitle(opts.Title)
	} else {
		win = a.NewWindow(opts.Title)
	}

	w := &Window{
		app:     a,
		win:     win,
		backend: backend,
		opts:    opts,
		icons:   icons,
		log:     log,
		slots:   map[rune]*widget.Button{},
	}

	switch {
	case opts.Fullscreen:
		win.SetFullScreen(true)
	case opts.Geometry != nil:
		win.Resize(fyne.NewSize(float32(opts.Geometry.Width), float32(opts.Geometry.Height)))
	default:
		win.Resize(fyne.NewSize(defaultWidth, defaultHeight))
		win.CenterOnScreen()
	}
	return w
}

// Fyne returns the underlying Fyne window.
func (w *Window) Fyne() fyne.Window {
	return w.win
}

// NativeID returns the X11 id of the launcher window, or 0 while it is
// unknown.
func (w *Window) NativeID() platform.WindowID {
	if w.nativeID == 0 {
		w.nativeID = nativeWindowID(w.win)
	}
	return w.nativeID
}

// Bind builds the grid for l and routes all input to it.
func (w *Window) Bind(l *launcher.Launcher) {
	w.launcher = l
	l.OnChange = w.Render
	l.OnQuit = w.app.Quit

	w.win.SetContent(w.buildGrid())
	w.win.SetCloseIntercept(l.Exit)

	c := w.win.Canvas()
	c.SetOnTypedRune(func(r rune) {
		l.Handle(launcher.Normalize(r))
	})
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			l.Handle(launcher.InputEscape)
		}
	})

	w.Render()
}

// ShowAndRun shows the window, places it once the event loop is running and
// blocks until the app quits.
func (w *Window) ShowAndRun() {
	w.app.Lifecycle().SetOnStarted(w.place)
	w.win.ShowAndRun()
}

func (w *Window) buildGrid() fyne.CanvasObject {
	sectionRow := container.NewGridWithColumns(len(launcher.Digits))
	w.sections = make([]*widget.Button, 0, len(launcher.Digits))
	for id := range launcher.Digits {
		in := launcher.SectionInput(id)
		btn := widget.NewButton(string(rune(in)), func() { w.launcher.Handle(in) })
		w.sections = append(w.sections, btn)
		sectionRow.Add(btn)
	}

	rows := []fyne.CanvasObject{sectionRow}
	for _, letters := range launcher.LetterRows {
		row := container.NewGridWithColumns(len(letters))
		for _, letter := range letters {
			in := launcher.Input(letter)
			btn := widget.NewButton(string(letter), func() { w.launcher.Handle(in) })
			w.slots[letter] = btn
			row.Add(btn)
		}
		rows = append(rows, row)
	}
	return container.NewGridWithRows(len(rows), rows...)
}

// Render copies the launcher's view onto the buttons.
func (w *Window) Render() {
	if w.launcher == nil {
		return
	}
	v := w.launcher.View()

	for _, sec := range v.Sections {
		if sec.ID >= len(w.sections) {
			continue
		}
		btn := w.sections[sec.ID]
		btn.SetText(buttonText(sec.Key, sec.Title))
		btn.SetIcon(w.icons.Resource(sec.Icon))
		btn.Importance = sectionImportance(sec)
		btn.Refresh()
	}

	for _, row := range v.Rows {
		for _, slot := range row {
			btn, ok := w.slots[slot.Letter]
			if !ok {
				continue
			}
			btn.SetText(buttonText(slot.Key, slot.Title))
			btn.SetIcon(w.icons.Resource(slot.Icon))
			btn.Importance = slotImportance(slot)
			btn.Refresh()
		}
	}
}

func (w *Window) place() {
	if w.backend == nil {
		return
	}
	id := w.NativeID()
	if id == 0 {
		w.log.Debug("Launcher window has no X11 id; skipping placement")
		return
	}

	if g := w.opts.Geometry; g != nil && !w.opts.Fullscreen {
		rect := platform.Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}
		if err := w.backend.Place(id, rect); err != nil {
			w.log.Warn("Failed to place launcher window", "geometry", g.String(), "error", err.Error())
		}
	}
	if err := w.backend.KeepAbove(id); err != nil {
		w.log.Warn("Failed to keep launcher above other windows", "error", err.Error())
	}
	w.backend.Flush()
}

func buttonText(key, title string) string {
	if title == "" {
		return key
	}
	return fmt.Sprintf("%s\n%s", key, title)
}

func sectionImportance(sec launcher.SectionView) widget.Importance {
	switch {
	case sec.Selected:
		return widget.HighImportance
	case sec.Used:
		return widget.MediumImportance
	default:
		return widget.LowImportance
	}
}

func slotImportance(slot launcher.SlotView) widget.Importance {
	switch {
	case slot.Running:
		return widget.SuccessImportance
	case slot.Used:
		return widget.MediumImportance
	default:
		return widget.LowImportance
	}
}
