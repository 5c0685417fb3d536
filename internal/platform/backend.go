package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// StickyDesktop marks a window that is visible on every virtual desktop.
const StickyDesktop = -1

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Backend abstracts the window-manager operations the launcher needs.
type Backend interface {
	// ClientList returns managed top-level windows in window-manager order.
	ClientList() ([]WindowID, error)
	// WindowClass returns the class names a window advertises (instance and class).
	WindowClass(id WindowID) ([]string, error)
	// WindowDesktop returns the virtual desktop of a window, or StickyDesktop.
	WindowDesktop(id WindowID) (int, error)
	// WindowTitle returns the window name, using the legacy property as fallback.
	WindowTitle(id WindowID) (string, error)

	SwitchDesktop(desktop int) error
	Raise(id WindowID) error
	Focus(id WindowID) error
	// RequestActivate asks the window manager to activate id on behalf of requester.
	RequestActivate(id, requester WindowID) error
	Map(id WindowID) error
	// Flush blocks until the server has processed all queued requests.
	Flush()

	// Place moves and resizes a window.
	Place(id WindowID, bounds Rect) error
	// KeepAbove keeps a window stacked above normal windows.
	KeepAbove(id WindowID) error
}
