package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"

	"github.com/1broseidon/qwerty/internal/platform"
)

// nativeWindowID returns the X11 id of w, or 0 when the window is not backed
// by an X11 window (Wayland, test drivers, not yet shown).
func nativeWindowID(w fyne.Window) platform.WindowID {
	nw, ok := w.(driver.NativeWindow)
	if !ok {
		return 0
	}
	var id platform.WindowID
	nw.RunNative(func(ctx any) {
		switch x11 := ctx.(type) {
		case driver.X11WindowContext:
			id = platform.WindowID(x11.WindowHandle)
		case *driver.X11WindowContext:
			id = platform.WindowID(x11.WindowHandle)
		}
	})
	return id
}
