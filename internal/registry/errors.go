package registry

import "errors"

var (
	ErrNoFocusedWindow      = errors.New("no focused window")
	ErrAllSlotsFull         = errors.New("all slots are full")
	ErrInvalidPosition      = errors.New("invalid slot position")
	ErrNoWindowAtPosition   = errors.New("no window at position")
	ErrWindowNoLongerExists = errors.New("window no longer exists")
)
