//go:build linux

package x11

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/platform"
)

// WindowManager implements platform.WindowManager with wmctrl and xdotool.
type WindowManager struct{}

// NewWindowManager checks that the helper tools are installed.
func NewWindowManager() (*WindowManager, error) {
	for _, tool := range []string{"wmctrl", "xdotool"} {
		if _, err := exec.LookPath(tool); err != nil {
			return nil, fmt.Errorf("%s not found in PATH: install it to manage windows on X11", tool)
		}
	}
	return &WindowManager{}, nil
}

func (wm *WindowManager) ListWindows() ([]model.WindowRef, error) {
	out, err := run("wmctrl", "-lpx")
	if err != nil {
		return nil, err
	}
	return parseWmctrl(out)
}

func (wm *WindowManager) FocusedWindow() (*model.WindowRef, error) {
	out, err := run("xdotool", "getactivewindow")
	if err != nil {
		// xdotool exits non-zero when no window is active.
		return nil, nil //nolint:nilerr // no active window
	}
	id, err := parseActiveWindow(out)
	if err != nil || id == 0 {
		return nil, err
	}
	windows, err := wm.ListWindows()
	if err != nil {
		return nil, err
	}
	for _, w := range windows {
		if w.StableID == id {
			return &w, nil
		}
	}
	return nil, nil
}

func (wm *WindowManager) ActivateWindow(w model.WindowRef) error {
	if !w.HasStableID() {
		return fmt.Errorf("activate %s: no window id", w)
	}
	_, err := run("wmctrl", "-ia", fmt.Sprintf("0x%08x", uint64(w.StableID)))
	return err
}

func run(name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

// iconProvider has no X11 icon source; the cache falls back to placeholders.
type iconProvider struct{}

func (iconProvider) AppIcon(appID string) ([]byte, error) {
	return nil, fmt.Errorf("%s: %w", appID, platform.ErrNoIcon)
}
