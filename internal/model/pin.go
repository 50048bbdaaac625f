package model

import (
	"sort"
	"time"
)

// MinPosition and MaxPosition bound the slot numbers.
const (
	MinPosition = 1
	MaxPosition = 9
)

// PinSlot is one numbered slot holding a pinned window.
type PinSlot struct {
	ID           string     `yaml:"id"                     json:"id"`
	Position     int        `yaml:"position"               json:"position"`
	Window       WindowRef  `yaml:"window"                 json:"window"`
	LastAccessed *time.Time `yaml:"lastAccessed,omitempty" json:"lastAccessed,omitempty"`
}

// ValidPosition reports whether n is a slot number.
func ValidPosition(n int) bool {
	return n >= MinPosition && n <= MaxPosition
}

// SortByPosition orders slots in place.
func SortByPosition(slots []PinSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Position < slots[j].Position
	})
}

// AppIDs returns the set of owner app ids referenced by slots.
func AppIDs(slots []PinSlot) map[string]struct{} {
	ids := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if s.Window.OwnerAppID != "" {
			ids[s.Window.OwnerAppID] = struct{}{}
		}
	}
	return ids
}
