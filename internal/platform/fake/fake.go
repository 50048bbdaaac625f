// Package fake is an in-memory platform backend for tests and dry runs.
package fake

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/platform"
)

// Host implements every platform interface over in-memory state. All
// methods are safe for concurrent use.
type Host struct {
	mu        sync.Mutex
	windows   []model.WindowRef
	focused   *model.WindowRef
	icons     map[string][]byte
	activated []model.WindowRef
	listCalls int
	listErr   error

	handlers map[platform.Subscription]platform.KeyHandler
	nextSub  platform.Subscription
	chords   []keybind.Chord
	taken    map[string]bool
}

// New returns an empty host.
func New() *Host {
	return &Host{
		icons:    make(map[string][]byte),
		handlers: make(map[platform.Subscription]platform.KeyHandler),
	}
}

// Provider wraps the host in a platform.Provider.
func (h *Host) Provider() *platform.Provider {
	return &platform.Provider{WindowManager: h, IconProvider: h, KeySource: h}
}

// SetWindows replaces the enumerated windows.
func (h *Host) SetWindows(ws ...model.WindowRef) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.windows = append([]model.WindowRef(nil), ws...)
}

// AddWindow appends a window to the enumeration.
func (h *Host) AddWindow(w model.WindowRef) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.windows = append(h.windows, w)
}

// CloseWindow removes every window equal to w. It also clears focus if w was
// focused.
func (h *Host) CloseWindow(w model.WindowRef) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.windows[:0]
	for _, x := range h.windows {
		if x != w {
			kept = append(kept, x)
		}
	}
	h.windows = kept
	if h.focused != nil && *h.focused == w {
		h.focused = nil
	}
}

// Focus sets the focused window; nil means nothing is focused.
func (h *Host) Focus(w *model.WindowRef) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w == nil {
		h.focused = nil
		return
	}
	cp := *w
	h.focused = &cp
}

// SetListError makes ListWindows fail with err until cleared with nil.
func (h *Host) SetListError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listErr = err
}

// SetIcon registers icon bytes for an app.
func (h *Host) SetIcon(appID string, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.icons[appID] = data
}

// Activated returns every window passed to ActivateWindow, oldest first.
func (h *Host) Activated() []model.WindowRef {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]model.WindowRef(nil), h.activated...)
}

// ListCalls reports how many times ListWindows ran.
func (h *Host) ListCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.listCalls
}

// ListWindows implements platform.WindowManager.
func (h *Host) ListWindows() ([]model.WindowRef, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listCalls++
	if h.listErr != nil {
		return nil, h.listErr
	}
	return append([]model.WindowRef(nil), h.windows...), nil
}

// FocusedWindow implements platform.WindowManager.
func (h *Host) FocusedWindow() (*model.WindowRef, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.focused == nil {
		return nil, nil
	}
	cp := *h.focused
	return &cp, nil
}

// ActivateWindow implements platform.WindowManager. The window becomes the
// focused one.
func (h *Host) ActivateWindow(w model.WindowRef) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activated = append(h.activated, w)
	cp := w
	h.focused = &cp
	return nil
}

// AppIcon implements platform.IconProvider.
func (h *Host) AppIcon(appID string) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, ok := h.icons[appID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", appID, platform.ErrNoIcon)
	}
	return data, nil
}

// Subscribe implements platform.KeySource.
func (h *Host) Subscribe(fn platform.KeyHandler) (platform.Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextSub++
	h.handlers[h.nextSub] = fn
	return h.nextSub, nil
}

// Unsubscribe implements platform.KeySource.
func (h *Host) Unsubscribe(s platform.Subscription) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.handlers[s]; !ok {
		return fmt.Errorf("unknown subscription %d", s)
	}
	delete(h.handlers, s)
	return nil
}

// BindChords implements platform.ChordBinder. Chords marked with
// TakeChords fail to bind.
func (h *Host) BindChords(chords []keybind.Chord) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chords = h.chords[:0]
	var errs []error
	for _, c := range chords {
		if h.taken[c.String()] {
			errs = append(errs, fmt.Errorf("grab %s: already taken", c))
			continue
		}
		h.chords = append(h.chords, c)
	}
	return len(h.chords), errors.Join(errs...)
}

// TakeChords makes later BindChords calls fail for cs, as if another client
// already grabbed them.
func (h *Host) TakeChords(cs ...keybind.Chord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.taken == nil {
		h.taken = make(map[string]bool)
	}
	for _, c := range cs {
		h.taken[c.String()] = true
	}
}

// BoundChords returns the chords bound by the last BindChords call.
func (h *Host) BoundChords() []keybind.Chord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]keybind.Chord(nil), h.chords...)
}

// Subscribers reports the number of live subscriptions.
func (h *Host) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handlers)
}

// Press delivers ev to every subscriber in subscription order, the way a
// host event tap would. The event is suppressed if any handler suppresses
// it.
func (h *Host) Press(ev keybind.KeyEvent) platform.Decision {
	h.mu.Lock()
	subs := make([]platform.Subscription, 0, len(h.handlers))
	for s := range h.handlers {
		subs = append(subs, s)
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i] < subs[j] })
	fns := make([]platform.KeyHandler, len(subs))
	for i, s := range subs {
		fns[i] = h.handlers[s]
	}
	h.mu.Unlock()

	decision := platform.PassThrough
	for _, fn := range fns {
		if fn(ev) == platform.Suppress {
			decision = platform.Suppress
		}
	}
	return decision
}
