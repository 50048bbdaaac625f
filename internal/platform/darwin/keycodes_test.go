//go:build darwin

package darwin

import (
	"testing"

	"github.com/mj1618/slotjump/internal/keybind"
)

func TestKeyFromCode(t *testing.T) {
	tests := []struct {
		code uint16
		want keybind.Key
	}{
		{0x04, "h"},
		{0x12, "1"},
		{0x53, "1"},
		{0x35, keybind.KeyEscape},
	}
	for _, tt := range tests {
		got, ok := keyFromCode(tt.code)
		if !ok || got != tt.want {
			t.Errorf("keyFromCode(0x%02X) = %q, %v; want %q", tt.code, got, ok, tt.want)
		}
	}
	if _, ok := keyFromCode(0xFF); ok {
		t.Error("unknown keycode should not map")
	}
}

func TestModifiersFromFlags(t *testing.T) {
	// control + option + caps lock (0x10000) + a device bit
	got := modifiersFromFlags(flagMaskControl | flagMaskAlternate | 0x10000 | 0x1)
	want := keybind.NewModifierSet(keybind.ModControl, keybind.ModOption)
	if !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEveryDefaultChordHasKeycode(t *testing.T) {
	for _, c := range keybind.Default().Chords() {
		if _, ok := keyCodeMap[c.Key]; !ok {
			t.Errorf("no keycode for %s", c)
		}
	}
}
