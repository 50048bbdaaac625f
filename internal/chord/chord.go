// Package chord classifies key events against the active keybind config.
package chord

import (
	"fmt"

	"github.com/mj1618/slotjump/internal/keybind"
)

// Kind identifies what a key event asks for.
type Kind int

const (
	NoMatch Kind = iota
	TogglePicker
	MarkCurrent
	MarkToPosition
	QuickJump
	PickerSelect
	PickerDismiss
)

var kindNames = map[Kind]string{
	NoMatch:        "no-match",
	TogglePicker:   "toggle-picker",
	MarkCurrent:    "mark-current",
	MarkToPosition: "mark-to-position",
	QuickJump:      "quick-jump",
	PickerSelect:   "picker-select",
	PickerDismiss:  "picker-dismiss",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Mode is the dispatcher state a key event is classified in.
type Mode int

const (
	ModeNormal Mode = iota
	ModePickerOpen
)

func (m Mode) String() string {
	if m == ModePickerOpen {
		return "picker-open"
	}
	return "normal"
}

// Action is the result of classifying one key event. Position is set for
// MarkToPosition, QuickJump and PickerSelect.
type Action struct {
	Kind     Kind
	Position int
}

func (a Action) String() string {
	if a.Position > 0 {
		return fmt.Sprintf("%s(%d)", a.Kind, a.Position)
	}
	return a.Kind.String()
}

// Matched reports whether the event should be consumed.
func (a Action) Matched() bool {
	return a.Kind != NoMatch
}

// Match classifies ev. Rules are tried in order and the first hit wins:
//
//  1. leader+toggle key, in any mode
//  2. with the picker open: a digit selects, escape dismisses, anything else
//     is ignored
//  3. quick-jump digit
//  4. leader+mark key
//  5. mark-to-position digit
//
// Modifier sets must match exactly; an extra held modifier is no match.
func Match(cfg keybind.Config, ev keybind.KeyEvent, mode Mode) Action {
	leader := cfg.LeaderSet()

	if ev.Key == cfg.TogglePickerKey && ev.Mods.Equal(leader) {
		return Action{Kind: TogglePicker}
	}

	digit, isDigit := ev.Key.Digit()

	if mode == ModePickerOpen {
		switch {
		case isDigit:
			return Action{Kind: PickerSelect, Position: digit}
		case ev.Key == keybind.KeyEscape:
			return Action{Kind: PickerDismiss}
		}
		return Action{}
	}

	if isDigit && ev.Mods.Equal(cfg.QuickJumpSet()) {
		return Action{Kind: QuickJump, Position: digit}
	}
	if ev.Key == cfg.MarkWindowKey && ev.Mods.Equal(leader) {
		return Action{Kind: MarkCurrent}
	}
	if isDigit && ev.Mods.Equal(cfg.MarkToPositionSet()) {
		return Action{Kind: MarkToPosition, Position: digit}
	}
	return Action{}
}
