package platform

import (
	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/model"
)

// WindowManager enumerates and raises top-level windows.
type WindowManager interface {
	// ListWindows returns the visible, normal windows in front-to-back order.
	ListWindows() ([]model.WindowRef, error)

	// FocusedWindow returns the window that currently has keyboard focus, or
	// nil when no window does.
	FocusedWindow() (*model.WindowRef, error)

	// ActivateWindow brings the owning application to the front and raises
	// the window.
	ActivateWindow(w model.WindowRef) error
}

// IconProvider returns encoded (PNG or similar) icon bytes for an application.
type IconProvider interface {
	AppIcon(appID string) ([]byte, error)
}

// KeySource delivers global key-down events. Handlers run on the source's
// own thread and must return quickly.
type KeySource interface {
	Subscribe(h KeyHandler) (Subscription, error)
	Unsubscribe(s Subscription) error
}

// ChordBinder is implemented by key sources that can only observe
// combinations registered up front, such as X11 key grabs.
// BindChords returns how many chords were grabbed alongside any failures,
// so a partial bind can still be used.
type ChordBinder interface {
	BindChords(chords []keybind.Chord) (bound int, err error)
}
