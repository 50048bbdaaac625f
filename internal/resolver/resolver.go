// Package resolver maps stored window references to live windows.
package resolver

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/platform"
)

// Resolver queries the host on every call; nothing is cached between calls.
type Resolver struct {
	wm  platform.WindowManager
	log zerolog.Logger
}

// New creates a resolver over a host window manager.
func New(wm platform.WindowManager, log zerolog.Logger) *Resolver {
	return &Resolver{wm: wm, log: log.With().Str("component", "resolver").Logger()}
}

// Enumerate lists the visible normal windows.
func (r *Resolver) Enumerate() ([]model.WindowRef, error) {
	ws, err := r.wm.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}
	return ws, nil
}

// CurrentFocused returns the focused window, if any.
func (r *Resolver) CurrentFocused() (model.WindowRef, bool, error) {
	w, err := r.wm.FocusedWindow()
	if err != nil {
		return model.WindowRef{}, false, fmt.Errorf("focused window: %w", err)
	}
	if w == nil {
		return model.WindowRef{}, false, nil
	}
	return *w, true, nil
}

// Resolve finds the live window ref refers to.
func (r *Resolver) Resolve(ref model.WindowRef) (model.WindowRef, bool, error) {
	ws, err := r.Enumerate()
	if err != nil {
		return model.WindowRef{}, false, err
	}
	w, ok := Match(ws, ref)
	return w, ok, nil
}

// IsLive reports whether ref still resolves. Enumeration failures count as
// not live.
func (r *Resolver) IsLive(ref model.WindowRef) bool {
	_, ok, err := r.Resolve(ref)
	if err != nil {
		r.log.Warn().Err(err).Str("window", ref.String()).Msg("liveness check failed")
		return false
	}
	return ok
}

// Activate raises w. Failures are logged and otherwise ignored.
func (r *Resolver) Activate(w model.WindowRef) {
	if err := r.wm.ActivateWindow(w); err != nil {
		r.log.Warn().Err(err).Str("window", w.String()).Msg("activate failed")
	}
}

// Snapshot captures one enumeration for resolving many refs consistently.
func (r *Resolver) Snapshot() (*Snapshot, error) {
	ws, err := r.Enumerate()
	if err != nil {
		return nil, err
	}
	return &Snapshot{Windows: ws}, nil
}

// Snapshot is a fixed window enumeration.
type Snapshot struct {
	Windows []model.WindowRef
}

// Resolve matches ref against the snapshot.
func (s *Snapshot) Resolve(ref model.WindowRef) (model.WindowRef, bool) {
	return Match(s.Windows, ref)
}

// IsLive reports whether ref matches a window in the snapshot.
func (s *Snapshot) IsLive(ref model.WindowRef) bool {
	_, ok := s.Resolve(ref)
	return ok
}

// Match picks the window in ws that ref refers to. A ref with a stable id
// only matches that id; title drift is irrelevant. Without one, only
// windows of the same app are considered: an identical title wins, then
// the first window whose title matches per TitlesMatch.
func Match(ws []model.WindowRef, ref model.WindowRef) (model.WindowRef, bool) {
	if ref.HasStableID() {
		for _, w := range ws {
			if w.StableID == ref.StableID {
				return w, true
			}
		}
		return model.WindowRef{}, false
	}

	var fuzzy *model.WindowRef
	for i, w := range ws {
		if w.OwnerAppID != ref.OwnerAppID {
			continue
		}
		if w.Title == ref.Title {
			return w, true
		}
		if fuzzy == nil && TitlesMatch(w.Title, ref.Title) {
			fuzzy = &ws[i]
		}
	}
	if fuzzy != nil {
		return *fuzzy, true
	}
	return model.WindowRef{}, false
}
