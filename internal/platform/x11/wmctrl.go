package x11

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/slotjump/internal/model"
)

// parseWmctrl parses `wmctrl -lpx` output:
//
//	0x03a00007  0 12345  code.Code  host  main.go - slotjump - Visual Studio Code
//
// Sticky windows (desktop -1: panels, docks) are skipped.
func parseWmctrl(out string) ([]model.WindowRef, error) {
	var windows []model.WindowRef
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, fmt.Errorf("unexpected wmctrl line: %q", line)
		}
		id, err := strconv.ParseUint(fields[0], 0, 64)
		if err != nil {
			return nil, fmt.Errorf("bad window id in %q: %w", line, err)
		}
		desktop, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("bad desktop in %q: %w", line, err)
		}
		if desktop < 0 {
			continue
		}
		pid, _ := strconv.Atoi(fields[2])

		windows = append(windows, model.WindowRef{
			StableID:     model.WindowID(id),
			OwnerAppID:   fields[3],
			OwnerAppName: className(fields[3]),
			Title:        titleAfter(line, fields[:5]),
			PID:          pid,
		})
	}
	return windows, nil
}

// className returns the class half of a WM_CLASS "instance.Class" pair.
func className(wmClass string) string {
	if i := strings.LastIndex(wmClass, "."); i >= 0 && i < len(wmClass)-1 {
		return wmClass[i+1:]
	}
	return wmClass
}

// titleAfter returns the rest of line after the leading fields, keeping the
// title's internal spacing.
func titleAfter(line string, leading []string) string {
	rest := line
	for _, f := range leading {
		i := strings.Index(rest, f)
		if i < 0 {
			return ""
		}
		rest = rest[i+len(f):]
	}
	return strings.TrimSpace(rest)
}

// parseActiveWindow parses `xdotool getactivewindow` output (a decimal id).
func parseActiveWindow(out string) (model.WindowID, error) {
	s := strings.TrimSpace(out)
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad active window id %q: %w", s, err)
	}
	return model.WindowID(id), nil
}
