package keybind

import (
	"fmt"
	"strings"

	"github.com/mj1618/slotjump/internal/model"
)

// Config is one immutable version of the chord scheme.
type Config struct {
	Leader                  Modifier    `json:"leaderModifier"          yaml:"leaderModifier"`
	TogglePickerKey         Key         `json:"togglePickerKey"         yaml:"togglePickerKey"`
	MarkWindowKey           Key         `json:"markWindowKey"           yaml:"markWindowKey"`
	QuickJumpModifiers      ModifierSet `json:"quickJumpModifiers"      yaml:"quickJumpModifiers"`
	MarkToPositionModifiers ModifierSet `json:"markToPositionModifiers" yaml:"markToPositionModifiers"`
}

// Default returns the built-in scheme: control as leader, h toggles the
// picker, m marks, control+digit jumps and control+option+digit marks at a
// position.
func Default() Config {
	return Config{
		Leader:                  ModControl,
		TogglePickerKey:         "h",
		MarkWindowKey:           "m",
		QuickJumpModifiers:      NewModifierSet(),
		MarkToPositionModifiers: NewModifierSet(ModOption),
	}
}

// LeaderSet is the set holding only the leader.
func (c Config) LeaderSet() ModifierSet {
	return NewModifierSet(c.Leader)
}

// QuickJumpSet is the exact modifier set of a quick-jump chord.
func (c Config) QuickJumpSet() ModifierSet {
	return c.LeaderSet().Union(c.QuickJumpModifiers)
}

// MarkToPositionSet is the exact modifier set of a mark-to-position chord.
func (c Config) MarkToPositionSet() ModifierSet {
	return c.LeaderSet().Union(c.MarkToPositionModifiers)
}

// Validate returns every rule the config violates. An empty result means the
// config is usable.
func (c Config) Validate() []string {
	var violations []string
	if !c.Leader.Valid() {
		violations = append(violations, fmt.Sprintf("leaderModifier %q is not one of option, control, command, shift", c.Leader))
	}
	violations = append(violations, validateActionKey("togglePickerKey", c.TogglePickerKey)...)
	violations = append(violations, validateActionKey("markWindowKey", c.MarkWindowKey)...)
	if c.TogglePickerKey != "" && c.TogglePickerKey == c.MarkWindowKey {
		violations = append(violations, fmt.Sprintf("togglePickerKey and markWindowKey must differ (both %q)", c.TogglePickerKey))
	}
	if c.Leader.Valid() {
		if c.QuickJumpModifiers.Has(c.Leader) {
			violations = append(violations, fmt.Sprintf("quickJumpModifiers must not contain the leader modifier %q", c.Leader))
		}
		if c.MarkToPositionModifiers.Has(c.Leader) {
			violations = append(violations, fmt.Sprintf("markToPositionModifiers must not contain the leader modifier %q", c.Leader))
		}
	}
	if c.QuickJumpModifiers.Equal(c.MarkToPositionModifiers) {
		violations = append(violations, fmt.Sprintf("quickJumpModifiers and markToPositionModifiers must differ (both %s)", c.QuickJumpModifiers))
	}
	return violations
}

func validateActionKey(field string, k Key) []string {
	switch {
	case k == "":
		return []string{field + " is empty"}
	case !k.Known():
		return []string{fmt.Sprintf("%s %q is not a known key", field, k)}
	case k == KeyEscape:
		return []string{field + " must not be escape (reserved for dismissing the picker)"}
	}
	if _, ok := k.Digit(); ok {
		return []string{fmt.Sprintf("%s %q must not be a slot digit", field, k)}
	}
	return nil
}

// InvalidConfigError lists the violations that rejected a config update.
type InvalidConfigError struct {
	Violations []string
}

func (e *InvalidConfigError) Error() string {
	return "invalid keybind config: " + strings.Join(e.Violations, "; ")
}

// Chord is one concrete key combination bound by a config.
type Chord struct {
	Mods ModifierSet
	Key  Key
}

func (c Chord) String() string {
	return FormatChordText(c.Mods, c.Key)
}

// Chords lists every combination the config binds outside the picker: the
// toggle and mark chords plus the quick-jump and mark-to-position chords for
// each slot.
func (c Config) Chords() []Chord {
	chords := []Chord{
		{Mods: c.LeaderSet(), Key: c.TogglePickerKey},
		{Mods: c.LeaderSet(), Key: c.MarkWindowKey},
	}
	for n := model.MinPosition; n <= model.MaxPosition; n++ {
		chords = append(chords, Chord{Mods: c.QuickJumpSet(), Key: DigitKey(n)})
	}
	for n := model.MinPosition; n <= model.MaxPosition; n++ {
		chords = append(chords, Chord{Mods: c.MarkToPositionSet(), Key: DigitKey(n)})
	}
	return chords
}
