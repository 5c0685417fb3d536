package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// StickyDesktop is returned by GetWindowDesktop for windows shown on every desktop.
const StickyDesktop = -1

// SourceApplication is the EWMH source indication sent with client message
// requests.
const SourceApplication = 1

// GetWindowDesktop returns the desktop number a window is on.
// Uses _NET_WM_DESKTOP atom. Returns StickyDesktop for windows visible on all desktops.
func (c *Connection) GetWindowDesktop(windowID uint32) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, xproto.Window(windowID))
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	// 0xFFFFFFFF means the window is on all desktops (sticky)
	if desktop == 0xFFFFFFFF {
		return StickyDesktop, nil
	}
	return int(desktop), nil
}

// SwitchDesktop asks the window manager to show the given virtual desktop.
// Sends a _NET_CURRENT_DESKTOP client message to the root window.
func (c *Connection) SwitchDesktop(desktop int) error {
	return c.sendRootMessage(c.Root, "_NET_CURRENT_DESKTOP",
		uint32(desktop), xproto.TimeCurrentTime)
}

// RequestActivate sends a _NET_ACTIVE_WINDOW client message for windowID on
// behalf of the requesting window. requester may be 0 when the caller has no
// mapped window of its own.
//
// The message is built by hand because the xgbutil ewmh request helpers panic
// on this library version (uint vs int type assertion).
func (c *Connection) RequestActivate(windowID, requester uint32) error {
	return c.sendRootMessage(xproto.Window(windowID), "_NET_ACTIVE_WINDOW",
		SourceApplication, xproto.TimeCurrentTime, requester)
}

// sendRootMessage delivers a 32-bit format client message about win to the
// root window. data is zero-padded to the five slots the protocol requires.
func (c *Connection) sendRootMessage(win xproto.Window, atomName string, data ...uint32) error {
	atom, err := c.internAtom(atomName)
	if err != nil {
		return err
	}

	payload := make([]uint32, 5)
	copy(payload, data)

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}

	if err := xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check(); err != nil {
		return fmt.Errorf("failed to send %s: %w", atomName, err)
	}
	return nil
}

func (c *Connection) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}
