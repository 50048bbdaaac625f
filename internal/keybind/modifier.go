// Package keybind describes the chord scheme: the leader modifier, the action
// keys and the extra modifier sets for quick-jump and mark-to-position.
package keybind

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Modifier is a keyboard modifier key.
type Modifier string

const (
	ModControl Modifier = "control"
	ModOption  Modifier = "option"
	ModShift   Modifier = "shift"
	ModCommand Modifier = "command"
)

// allModifiers is the canonical display order.
var allModifiers = []Modifier{ModControl, ModOption, ModShift, ModCommand}

var modifierAliases = map[string]Modifier{
	"control": ModControl, "ctrl": ModControl,
	"option": ModOption, "opt": ModOption, "alt": ModOption,
	"shift":   ModShift,
	"command": ModCommand, "cmd": ModCommand, "super": ModCommand,
}

// ParseModifier converts a modifier name or common alias to a Modifier.
func ParseModifier(s string) (Modifier, error) {
	if m, ok := modifierAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown modifier: %q (expected control, option, shift, or command)", s)
}

// Valid reports whether m is one of the four known modifiers.
func (m Modifier) Valid() bool {
	return m.index() >= 0
}

func (m Modifier) index() int {
	for i, k := range allModifiers {
		if k == m {
			return i
		}
	}
	return -1
}

// ModifierSet is an unordered set of modifiers.
type ModifierSet struct {
	members uint8
}

// NewModifierSet returns a set containing mods. Unknown values are ignored.
func NewModifierSet(mods ...Modifier) ModifierSet {
	var s ModifierSet
	for _, m := range mods {
		s = s.With(m)
	}
	return s
}

// ParseModifierSet parses a list of modifier names.
func ParseModifierSet(names []string) (ModifierSet, error) {
	var s ModifierSet
	for _, n := range names {
		m, err := ParseModifier(n)
		if err != nil {
			return ModifierSet{}, err
		}
		s = s.With(m)
	}
	return s, nil
}

// Has reports membership.
func (s ModifierSet) Has(m Modifier) bool {
	i := m.index()
	return i >= 0 && s.members&(1<<i) != 0
}

// With returns s plus m.
func (s ModifierSet) With(m Modifier) ModifierSet {
	if i := m.index(); i >= 0 {
		s.members |= 1 << i
	}
	return s
}

// Without returns s minus m.
func (s ModifierSet) Without(m Modifier) ModifierSet {
	if i := m.index(); i >= 0 {
		s.members &^= 1 << i
	}
	return s
}

// Union returns the modifiers present in either set.
func (s ModifierSet) Union(o ModifierSet) ModifierSet {
	return ModifierSet{members: s.members | o.members}
}

// IsSubsetOf reports whether every member of s is in o.
func (s ModifierSet) IsSubsetOf(o ModifierSet) bool {
	return s.members&^o.members == 0
}

// Equal reports set equality.
func (s ModifierSet) Equal(o ModifierSet) bool {
	return s.members == o.members
}

// Empty reports whether the set has no members.
func (s ModifierSet) Empty() bool {
	return s.members == 0
}

// Len returns the number of members.
func (s ModifierSet) Len() int {
	n := 0
	for _, m := range allModifiers {
		if s.Has(m) {
			n++
		}
	}
	return n
}

// Modifiers lists the members in canonical order.
func (s ModifierSet) Modifiers() []Modifier {
	out := make([]Modifier, 0, len(allModifiers))
	for _, m := range allModifiers {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// Names lists the member names in canonical order.
func (s ModifierSet) Names() []string {
	mods := s.Modifiers()
	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = string(m)
	}
	return names
}

func (s ModifierSet) String() string {
	return "[" + strings.Join(s.Names(), ",") + "]"
}

func (s ModifierSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *ModifierSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := ParseModifierSet(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s ModifierSet) MarshalYAML() (interface{}, error) {
	return s.Names(), nil
}
