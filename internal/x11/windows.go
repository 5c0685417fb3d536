package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ClientList returns the window manager's managed windows in _NET_CLIENT_LIST order.
func (c *Connection) ClientList() ([]uint32, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	ids := make([]uint32, 0, len(clients))
	for _, win := range clients {
		ids = append(ids, uint32(win))
	}
	return ids, nil
}

// GetWindowClass returns the WM_CLASS instance and class names of a window.
// Either may be empty; identical names are reported once.
func (c *Connection) GetWindowClass(windowID uint32) ([]string, error) {
	wmClass, err := icccm.WmClassGet(c.XUtil, xproto.Window(windowID))
	if err != nil {
		return nil, fmt.Errorf("failed to get WM_CLASS: %w", err)
	}

	var names []string
	for _, name := range []string{wmClass.Instance, wmClass.Class} {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len(names) == 1 && names[0] == name {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// GetWindowTitle reads _NET_WM_NAME, falling back to the legacy WM_NAME.
func (c *Connection) GetWindowTitle(windowID uint32) (string, error) {
	win := xproto.Window(windowID)

	title, err := ewmh.WmNameGet(c.XUtil, win)
	if err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title, nil
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, win)
	if err != nil {
		return "", fmt.Errorf("failed to get window name: %w", err)
	}
	return strings.TrimSpace(title), nil
}

// RaiseWindow restacks a window above its siblings.
func (c *Connection) RaiseWindow(windowID uint32) error {
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		xproto.Window(windowID),
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}

// FocusWindow gives a window the input focus directly.
func (c *Connection) FocusWindow(windowID uint32) error {
	return xproto.SetInputFocusChecked(
		c.XUtil.Conn(),
		xproto.InputFocusNone,
		xproto.Window(windowID),
		xproto.TimeCurrentTime,
	).Check()
}

// MapWindow maps (deiconifies) a window.
func (c *Connection) MapWindow(windowID uint32) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), xproto.Window(windowID)).Check()
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID uint32, x, y, width, height int) error {
	win := xproto.Window(windowID)

	// Use EWMH MoveResize for better WM compatibility
	err := ewmh.MoveresizeWindow(c.XUtil, win, x, y, width, height)
	if err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, win).MoveResize(x, y, width, height)
	}
	return nil
}

// KeepAbove asks the window manager to keep a window above normal windows
// by adding _NET_WM_STATE_ABOVE through a _NET_WM_STATE request.
func (c *Connection) KeepAbove(windowID uint32) error {
	const stateAdd = 1
	above, err := c.internAtom("_NET_WM_STATE_ABOVE")
	if err != nil {
		return err
	}
	return c.sendRootMessage(xproto.Window(windowID), "_NET_WM_STATE",
		stateAdd, uint32(above), 0, SourceApplication)
}
