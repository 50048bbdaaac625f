package model

import "fmt"

// WindowID is a host-supplied window handle. Zero means the host gave none.
type WindowID uint64

// WindowRef is a point-in-time snapshot of an application window.
type WindowRef struct {
	StableID     WindowID `yaml:"stableId,omitempty" json:"stableId,omitempty"`
	OwnerAppID   string   `yaml:"ownerAppId"         json:"ownerAppId"`
	OwnerAppName string   `yaml:"ownerAppName"       json:"ownerAppName"`
	Title        string   `yaml:"title"              json:"title"`
	PID          int      `yaml:"pid,omitempty"      json:"pid,omitempty"`
}

// HasStableID reports whether the host supplied an authoritative window id.
func (w WindowRef) HasStableID() bool {
	return w.StableID != 0
}

// AppName returns the display name, falling back to the app id.
func (w WindowRef) AppName() string {
	if w.OwnerAppName != "" {
		return w.OwnerAppName
	}
	return w.OwnerAppID
}

func (w WindowRef) String() string {
	if w.HasStableID() {
		return fmt.Sprintf("%s %q (#%d)", w.AppName(), w.Title, w.StableID)
	}
	return fmt.Sprintf("%s %q", w.AppName(), w.Title)
}
