//go:build darwin

package darwin

import "github.com/mj1618/slotjump/internal/keybind"

// Virtual keycodes from HIToolbox/Events.h (ANSI layout positions).
var keyCodeMap = map[keybind.Key]uint16{
	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
	"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	keybind.KeyReturn: 0x24, keybind.KeyTab: 0x30, keybind.KeySpace: 0x31,
	keybind.KeyDelete: 0x33, keybind.KeyEscape: 0x35,
	"up": 0x7E, "down": 0x7D, "left": 0x7B, "right": 0x7C,
	"home": 0x73, "end": 0x77, "pageup": 0x74, "pagedown": 0x79,
	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60,
	"f6": 0x61, "f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D,
	"f11": 0x67, "f12": 0x6F,
}

// Keypad digits report distinct keycodes but mean the same slot.
var keypadDigits = map[uint16]keybind.Key{
	0x52: "0", 0x53: "1", 0x54: "2", 0x55: "3", 0x56: "4",
	0x57: "5", 0x58: "6", 0x59: "7", 0x5B: "8", 0x5C: "9",
}

var keysByCode = func() map[uint16]keybind.Key {
	m := make(map[uint16]keybind.Key, len(keyCodeMap)+len(keypadDigits))
	for k, code := range keyCodeMap {
		m[code] = k
	}
	for code, k := range keypadDigits {
		m[code] = k
	}
	return m
}()

// CGEventFlags modifier masks.
const (
	flagMaskShift     uint64 = 0x00020000
	flagMaskControl   uint64 = 0x00040000
	flagMaskAlternate uint64 = 0x00080000
	flagMaskCommand   uint64 = 0x00100000
)

var modifierMasks = []struct {
	mask uint64
	mod  keybind.Modifier
}{
	{flagMaskControl, keybind.ModControl},
	{flagMaskAlternate, keybind.ModOption},
	{flagMaskShift, keybind.ModShift},
	{flagMaskCommand, keybind.ModCommand},
}

func keyFromCode(code uint16) (keybind.Key, bool) {
	k, ok := keysByCode[code]
	return k, ok
}

// modifiersFromFlags ignores caps lock, fn and the device-dependent bits.
func modifiersFromFlags(flags uint64) keybind.ModifierSet {
	var set keybind.ModifierSet
	for _, m := range modifierMasks {
		if flags&m.mask != 0 {
			set = set.With(m.mod)
		}
	}
	return set
}
