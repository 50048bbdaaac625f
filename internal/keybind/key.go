package keybind

import (
	"fmt"
	"strings"
)

// Key is a normalized, layout-independent key identifier such as "h", "1" or
// "escape".
type Key string

const (
	KeyEscape Key = "escape"
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyDelete Key = "delete"
)

var keyAliases = map[string]Key{
	"esc":       KeyEscape,
	"enter":     KeyReturn,
	"backspace": KeyDelete,
}

var namedKeys = map[Key]bool{
	KeyEscape: true, KeySpace: true, KeyReturn: true, KeyTab: true, KeyDelete: true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pageup": true, "pagedown": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// ParseKey normalizes a key name.
func ParseKey(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("empty key")
	}
	if k, ok := keyAliases[s]; ok {
		return k, nil
	}
	k := Key(s)
	if !k.Known() {
		return "", fmt.Errorf("unknown key: %q", s)
	}
	return k, nil
}

// Known reports whether k is a key the chord scheme understands.
func (k Key) Known() bool {
	if len(k) == 1 {
		c := k[0]
		return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	}
	return namedKeys[k]
}

// Digit returns the slot number for the digit keys 1 through 9.
func (k Key) Digit() (int, bool) {
	if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
		return int(k[0] - '0'), true
	}
	return 0, false
}

// DigitKey returns the key for slot n.
func DigitKey(n int) Key {
	return Key(fmt.Sprintf("%d", n))
}

// KeyEvent is one key-down as delivered by a host adapter.
type KeyEvent struct {
	Key  Key
	Mods ModifierSet
}

func (e KeyEvent) String() string {
	return FormatChordText(e.Mods, e.Key)
}
