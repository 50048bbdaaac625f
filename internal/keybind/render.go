package keybind

import (
	"fmt"
	"strings"

	"github.com/mj1618/slotjump/internal/model"
)

var modifierGlyphs = map[Modifier]string{
	ModControl: "⌃",
	ModOption:  "⌥",
	ModShift:   "⇧",
	ModCommand: "⌘",
}

var keyGlyphs = map[Key]string{
	KeyEscape: "Esc",
	KeySpace:  "Space",
	KeyReturn: "Return",
	KeyTab:    "Tab",
	KeyDelete: "Delete",
	"up":      "↑",
	"down":    "↓",
	"left":    "←",
	"right":   "→",
}

// FormatChord renders a chord with macOS modifier glyphs, e.g. "⌃⌥3".
func FormatChord(mods ModifierSet, key Key) string {
	var b strings.Builder
	for _, m := range mods.Modifiers() {
		b.WriteString(modifierGlyphs[m])
	}
	b.WriteString(keyLabel(key))
	return b.String()
}

// FormatChordText renders a chord as plain text, e.g. "control+option+3".
func FormatChordText(mods ModifierSet, key Key) string {
	parts := append(mods.Names(), string(key))
	return strings.Join(parts, "+")
}

func keyLabel(k Key) string {
	if g, ok := keyGlyphs[k]; ok {
		return g
	}
	return strings.ToUpper(string(k))
}

// TogglePickerChord renders the picker toggle chord.
func (c Config) TogglePickerChord() string {
	return FormatChord(c.LeaderSet(), c.TogglePickerKey)
}

// MarkWindowChord renders the mark-current chord.
func (c Config) MarkWindowChord() string {
	return FormatChord(c.LeaderSet(), c.MarkWindowKey)
}

// QuickJumpChord renders the quick-jump chord for slot n.
func (c Config) QuickJumpChord(n int) string {
	return FormatChord(c.QuickJumpSet(), DigitKey(n))
}

// MarkToPositionChord renders the mark-to-position chord for slot n.
func (c Config) MarkToPositionChord(n int) string {
	return FormatChord(c.MarkToPositionSet(), DigitKey(n))
}

// Binding is one row of the human-readable chord table.
type Binding struct {
	Action      string `yaml:"action"      json:"action"`
	Chord       string `yaml:"chord"       json:"chord"`
	Text        string `yaml:"text"        json:"text"`
	Description string `yaml:"description" json:"description"`
}

// Bindings describes every chord for help output and settings screens.
func (c Config) Bindings() []Binding {
	digits := fmt.Sprintf("%d-%d", model.MinPosition, model.MaxPosition)
	rangeKey := Key(digits)
	return []Binding{
		{
			Action:      "toggle-picker",
			Chord:       c.TogglePickerChord(),
			Text:        FormatChordText(c.LeaderSet(), c.TogglePickerKey),
			Description: "Show or hide the slot picker",
		},
		{
			Action:      "mark-current",
			Chord:       c.MarkWindowChord(),
			Text:        FormatChordText(c.LeaderSet(), c.MarkWindowKey),
			Description: "Pin the focused window to the lowest free slot",
		},
		{
			Action:      "quick-jump",
			Chord:       FormatChord(c.QuickJumpSet(), rangeKey),
			Text:        FormatChordText(c.QuickJumpSet(), rangeKey),
			Description: "Jump to the window in a slot",
		},
		{
			Action:      "mark-to-position",
			Chord:       FormatChord(c.MarkToPositionSet(), rangeKey),
			Text:        FormatChordText(c.MarkToPositionSet(), rangeKey),
			Description: "Pin the focused window to a specific slot",
		},
		{
			Action:      "picker-select",
			Chord:       digits,
			Text:        digits,
			Description: "While the picker is open: jump to a slot",
		},
		{
			Action:      "picker-dismiss",
			Chord:       keyLabel(KeyEscape),
			Text:        string(KeyEscape),
			Description: "While the picker is open: close it",
		},
	}
}
