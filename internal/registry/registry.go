// Package registry owns the pinned slots. A Registry is not safe for
// concurrent use: the daemon confines it to the owner loop and one-shot
// commands use it from a single goroutine.
package registry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/resolver"
)

// WindowResolver is the subset of *resolver.Resolver the registry needs.
type WindowResolver interface {
	CurrentFocused() (model.WindowRef, bool, error)
	Resolve(ref model.WindowRef) (model.WindowRef, bool, error)
	Activate(w model.WindowRef)
	Snapshot() (*resolver.Snapshot, error)
}

// IconPruner drops cached icons for apps no longer referenced.
type IconPruner interface {
	Prune(keep map[string]struct{})
}

// Registry maps positions 1..9 to pinned windows.
type Registry struct {
	slots     map[int]model.PinSlot
	res       WindowResolver
	pruner    IconPruner
	observers []func([]model.PinSlot)
	log       zerolog.Logger

	now   func() time.Time
	newID func() string
}

// New creates an empty registry.
func New(res WindowResolver, log zerolog.Logger) *Registry {
	return &Registry{
		slots: make(map[int]model.PinSlot),
		res:   res,
		log:   log.With().Str("component", "registry").Logger(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// SetIconPruner sets the cache pruned after every change.
func (r *Registry) SetIconPruner(p IconPruner) {
	r.pruner = p
}

// OnChange registers fn to receive the slot list after every change.
func (r *Registry) OnChange(fn func([]model.PinSlot)) {
	r.observers = append(r.observers, fn)
}

// List returns the slots ordered by position.
func (r *Registry) List() []model.PinSlot {
	out := make([]model.PinSlot, 0, len(r.slots))
	for _, s := range r.slots {
		out = append(out, copySlot(s))
	}
	model.SortByPosition(out)
	return out
}

// Get returns the slot at position n.
func (r *Registry) Get(n int) (model.PinSlot, bool) {
	s, ok := r.slots[n]
	return copySlot(s), ok
}

// Restore loads previously persisted slots, replacing the current ones.
// Slots with an invalid or already-taken position are dropped.
func (r *Registry) Restore(slots []model.PinSlot) {
	r.slots = make(map[int]model.PinSlot, len(slots))
	for _, s := range slots {
		if !model.ValidPosition(s.Position) {
			r.log.Warn().Int("position", s.Position).Msg("dropping restored slot with invalid position")
			continue
		}
		if _, taken := r.slots[s.Position]; taken {
			r.log.Warn().Int("position", s.Position).Msg("dropping duplicate restored slot")
			continue
		}
		if s.ID == "" {
			s.ID = r.newID()
		}
		r.slots[s.Position] = copySlot(s)
	}
	r.changed()
}

// MarkCurrent pins the focused window to the lowest free position.
func (r *Registry) MarkCurrent() (model.PinSlot, error) {
	w, err := r.focused()
	if err != nil {
		return model.PinSlot{}, err
	}
	n, ok := r.lowestFree()
	if !ok {
		return model.PinSlot{}, ErrAllSlotsFull
	}
	s := r.put(n, w)
	r.log.Info().Int("position", n).Str("window", w.String()).Msg("marked")
	r.changed()
	return s, nil
}

// MarkAt pins the focused window to position n, replacing any slot there.
func (r *Registry) MarkAt(n int) (model.PinSlot, error) {
	if !model.ValidPosition(n) {
		return model.PinSlot{}, fmt.Errorf("%w: %d", ErrInvalidPosition, n)
	}
	w, err := r.focused()
	if err != nil {
		return model.PinSlot{}, err
	}
	s := r.put(n, w)
	r.log.Info().Int("position", n).Str("window", w.String()).Msg("marked at position")
	r.changed()
	return s, nil
}

// Remove clears position n. Removing an empty position is a no-op.
func (r *Registry) Remove(n int) error {
	if !model.ValidPosition(n) {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, n)
	}
	if _, ok := r.slots[n]; !ok {
		return nil
	}
	delete(r.slots, n)
	r.log.Info().Int("position", n).Msg("removed")
	r.changed()
	return nil
}

// Jump activates the window pinned at n. A slot whose window cannot be
// found is removed and ErrWindowNoLongerExists returned. Enumeration errors
// are returned without touching the slot.
func (r *Registry) Jump(n int) (model.WindowRef, error) {
	if !model.ValidPosition(n) {
		return model.WindowRef{}, fmt.Errorf("%w: %d", ErrInvalidPosition, n)
	}
	s, ok := r.slots[n]
	if !ok {
		return model.WindowRef{}, fmt.Errorf("%w %d", ErrNoWindowAtPosition, n)
	}
	live, found, err := r.res.Resolve(s.Window)
	if err != nil {
		return model.WindowRef{}, fmt.Errorf("jump to %d: %w", n, err)
	}
	if !found {
		delete(r.slots, n)
		r.log.Info().Int("position", n).Str("window", s.Window.String()).Msg("removed stale slot")
		r.changed()
		return model.WindowRef{}, fmt.Errorf("slot %d (%s): %w", n, s.Window.AppName(), ErrWindowNoLongerExists)
	}

	r.res.Activate(live)
	now := r.now()
	s.LastAccessed = &now
	r.slots[n] = s
	r.changed()
	return live, nil
}

// ValidateAll removes every slot whose window no longer resolves, using a
// single enumeration, and returns the removed slots.
func (r *Registry) ValidateAll() ([]model.PinSlot, error) {
	snap, err := r.res.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	var removed []model.PinSlot
	for n, s := range r.slots {
		if !snap.IsLive(s.Window) {
			removed = append(removed, s)
			delete(r.slots, n)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}
	model.SortByPosition(removed)
	r.log.Info().Int("count", len(removed)).Msg("removed stale slots")
	r.changed()
	return removed, nil
}

func (r *Registry) focused() (model.WindowRef, error) {
	w, ok, err := r.res.CurrentFocused()
	if err != nil {
		return model.WindowRef{}, err
	}
	if !ok {
		return model.WindowRef{}, ErrNoFocusedWindow
	}
	return w, nil
}

func (r *Registry) lowestFree() (int, bool) {
	for n := model.MinPosition; n <= model.MaxPosition; n++ {
		if _, ok := r.slots[n]; !ok {
			return n, true
		}
	}
	return 0, false
}

func (r *Registry) put(n int, w model.WindowRef) model.PinSlot {
	s := model.PinSlot{ID: r.newID(), Position: n, Window: w}
	r.slots[n] = s
	return s
}

// changed prunes icons and notifies observers with the current list.
func (r *Registry) changed() {
	list := r.List()
	if r.pruner != nil {
		r.pruner.Prune(model.AppIDs(list))
	}
	for _, fn := range r.observers {
		fn(r.List())
	}
}

func copySlot(s model.PinSlot) model.PinSlot {
	if s.LastAccessed != nil {
		t := *s.LastAccessed
		s.LastAccessed = &t
	}
	return s
}
