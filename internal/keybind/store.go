package keybind

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Saver persists a config version.
type Saver interface {
	Save(Config) error
}

// Store holds the active config. Reads are lock-free; updates are serialized,
// validated, persisted and then published to subscribers.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Config]
	saver   Saver
	subs    []func(Config)
	log     zerolog.Logger
}

// NewStore creates a store with an initial config. A nil saver keeps the
// config in memory only.
func NewStore(initial Config, saver Saver, log zerolog.Logger) *Store {
	s := &Store{saver: saver, log: log}
	s.current.Store(&initial)
	return s
}

// Current returns the active config.
func (s *Store) Current() Config {
	return *s.current.Load()
}

// OnChange registers fn to run after every successful update.
func (s *Store) OnChange(fn func(Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Update replaces the active config. It fails with *InvalidConfigError when
// next violates any rule, and with the saver's error when persisting fails;
// in both cases the previous config stays active.
func (s *Store) Update(next Config) error {
	if violations := next.Validate(); len(violations) > 0 {
		return &InvalidConfigError{Violations: violations}
	}

	s.mu.Lock()
	if s.saver != nil {
		if err := s.saver.Save(next); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("save keybinds: %w", err)
		}
	}
	s.current.Store(&next)
	subs := make([]func(Config), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.log.Info().
		Str("toggle", next.TogglePickerChord()).
		Str("mark", next.MarkWindowChord()).
		Msg("keybinds updated")

	for _, fn := range subs {
		fn(next)
	}
	return nil
}
