// Package x11 provides Linux/X11 platform support. Global chords are grabbed
// with golang.design/x/hotkey (requires CGo and libx11); windows are listed
// and raised through the wmctrl and xdotool command-line tools.
//
// X11 key grabs only see registered combinations, so the key source
// implements platform.ChordBinder and every grabbed chord is consumed.
// Bare picker digits are not grabbed; use the chords instead.
package x11
