//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/qwerty/internal/x11"
)

// LinuxBackend implements Backend over an X11 connection that is opened on
// first use and kept for the life of the process.
type LinuxBackend struct {
	conn    *x11.Connection
	dialErr error
	dial    func() (*x11.Connection, error)
}

var _ Backend = (*LinuxBackend)(nil)

// NewLazyLinuxBackend returns a backend that connects to $DISPLAY the first
// time a window operation is requested.
func NewLazyLinuxBackend() *LinuxBackend {
	return &LinuxBackend{dial: x11.NewConnection}
}

// Disconnect closes the underlying X11 connection, if one was opened.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
}

func (b *LinuxBackend) ClientList() ([]WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	ids, err := conn.ClientList()
	if err != nil {
		return nil, err
	}
	out := make([]WindowID, 0, len(ids))
	for _, id := range ids {
		out = append(out, WindowID(id))
	}
	return out, nil
}

func (b *LinuxBackend) WindowClass(id WindowID) ([]string, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	return conn.GetWindowClass(uint32(id))
}

func (b *LinuxBackend) WindowDesktop(id WindowID) (int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	desktop, err := conn.GetWindowDesktop(uint32(id))
	if err != nil {
		return 0, err
	}
	if desktop == x11.StickyDesktop {
		return StickyDesktop, nil
	}
	return desktop, nil
}

func (b *LinuxBackend) WindowTitle(id WindowID) (string, error) {
	conn, err := b.connection()
	if err != nil {
		return "", err
	}
	return conn.GetWindowTitle(uint32(id))
}

func (b *LinuxBackend) SwitchDesktop(desktop int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.SwitchDesktop(desktop)
}

func (b *LinuxBackend) Raise(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.RaiseWindow(uint32(id))
}

func (b *LinuxBackend) Focus(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.FocusWindow(uint32(id))
}

func (b *LinuxBackend) RequestActivate(id, requester WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.RequestActivate(uint32(id), uint32(requester))
}

func (b *LinuxBackend) Map(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MapWindow(uint32(id))
}

func (b *LinuxBackend) Flush() {
	if conn, err := b.connection(); err == nil {
		conn.Flush()
	}
}

func (b *LinuxBackend) Place(id WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(uint32(id), bounds.X, bounds.Y, bounds.Width, bounds.Height)
}

func (b *LinuxBackend) KeepAbove(id WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.KeepAbove(uint32(id))
}

// connection returns the live X11 connection, dialing it on first use. A
// failed dial is remembered so later calls fail fast.
func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil {
		return nil, fmt.Errorf("x11 backend is nil")
	}
	if b.conn != nil {
		return b.conn, nil
	}
	if b.dialErr != nil {
		return nil, b.dialErr
	}
	if b.dial == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	conn, err := b.dial()
	if err != nil {
		b.dialErr = fmt.Errorf("failed to connect to X11: %w", err)
		return nil, b.dialErr
	}
	b.conn = conn
	return conn, nil
}
