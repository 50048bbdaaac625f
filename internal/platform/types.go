package platform

import (
	"fmt"
	"strings"

	"github.com/mj1618/slotjump/internal/keybind"
)

// Decision tells the host what to do with a key event after a handler saw it.
type Decision int

const (
	// PassThrough lets the event continue to the focused application.
	PassThrough Decision = iota
	// Suppress swallows the event.
	Suppress
)

func (d Decision) String() string {
	if d == Suppress {
		return "suppress"
	}
	return "pass-through"
}

// KeyHandler classifies one key event.
type KeyHandler func(ev keybind.KeyEvent) Decision

// Subscription identifies a registered KeyHandler.
type Subscription uint64

// ParseBackend converts a backend flag value to its canonical name.
func ParseBackend(s string) (string, error) {
	switch b := strings.ToLower(strings.TrimSpace(s)); b {
	case "", "auto":
		return "auto", nil
	case "darwin", "macos":
		return "darwin", nil
	case "x11", "linux":
		return "x11", nil
	case "fake":
		return "fake", nil
	default:
		return "", fmt.Errorf("unknown backend: %q (expected auto, darwin, x11, or fake)", s)
	}
}
