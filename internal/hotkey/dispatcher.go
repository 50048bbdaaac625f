// Package hotkey turns the host key stream into actions on the owner loop.
package hotkey

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/mj1618/slotjump/internal/chord"
	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/platform"
)

// Handler performs a matched action. It is only ever called on the owner
// loop.
type Handler interface {
	HandleAction(a chord.Action)
}

// Poster queues work on the owner loop without blocking.
type Poster interface {
	Post(fn func())
}

// Dispatcher classifies key events on the host's callback thread and posts
// matches to the owner loop. Each subscription's callback holds its own
// immutable config, so a config swap never mixes old and new rules.
type Dispatcher struct {
	src     platform.KeySource
	loop    Poster
	handler Handler
	log     zerolog.Logger

	pickerOpen atomic.Bool

	mu     sync.Mutex
	sub    platform.Subscription
	active bool
}

// New creates a stopped dispatcher.
func New(src platform.KeySource, loop Poster, handler Handler, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		src:     src,
		loop:    loop,
		handler: handler,
		log:     log.With().Str("component", "hotkey").Logger(),
	}
}

// Start subscribes to the key source with cfg.
func (d *Dispatcher) Start(cfg keybind.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active {
		return fmt.Errorf("dispatcher already started")
	}
	return d.subscribe(cfg)
}

// Reconfigure replaces the active subscription with one using cfg.
func (d *Dispatcher) Reconfigure(cfg keybind.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active {
		if err := d.src.Unsubscribe(d.sub); err != nil {
			return fmt.Errorf("unsubscribe: %w", err)
		}
		d.active = false
	}
	if err := d.subscribe(cfg); err != nil {
		return err
	}
	d.log.Info().Str("toggle", cfg.TogglePickerChord()).Msg("reconfigured")
	return nil
}

// Stop unsubscribes. It is safe to call more than once.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return nil
	}
	d.active = false
	return d.src.Unsubscribe(d.sub)
}

// SetPickerOpen switches classification mode. Only the owner calls it.
func (d *Dispatcher) SetPickerOpen(open bool) {
	d.pickerOpen.Store(open)
}

// PickerOpen reports the current mode.
func (d *Dispatcher) PickerOpen() bool {
	return d.pickerOpen.Load()
}

// HandleKey classifies ev against cfg. On a match the action is posted to
// the owner loop and the event suppressed.
func (d *Dispatcher) HandleKey(cfg keybind.Config, ev keybind.KeyEvent) platform.Decision {
	mode := chord.ModeNormal
	if d.pickerOpen.Load() {
		mode = chord.ModePickerOpen
	}
	action := chord.Match(cfg, ev, mode)
	if !action.Matched() {
		return platform.PassThrough
	}
	d.log.Debug().Str("key", ev.String()).Stringer("action", action).Msg("chord")
	d.loop.Post(func() { d.handler.HandleAction(action) })
	return platform.Suppress
}

func (d *Dispatcher) subscribe(cfg keybind.Config) error {
	if binder, ok := d.src.(platform.ChordBinder); ok {
		chords := cfg.Chords()
		bound, err := binder.BindChords(chords)
		if err != nil {
			if bound == 0 && len(chords) > 0 {
				return fmt.Errorf("bind chords: %w", err)
			}
			d.log.Warn().Err(err).Int("bound", bound).Int("wanted", len(chords)).Msg("some chords could not be bound")
		}
	}
	sub, err := d.src.Subscribe(func(ev keybind.KeyEvent) platform.Decision {
		return d.HandleKey(cfg, ev)
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	d.sub = sub
	d.active = true
	return nil
}
