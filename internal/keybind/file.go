package keybind

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	fieldLeader         = "leaderModifier"
	fieldToggle         = "togglePickerKey"
	fieldMark           = "markWindowKey"
	fieldQuickJump      = "quickJumpModifiers"
	fieldMarkToPosition = "markToPositionModifiers"
)

// File persists a config as a JSON document.
type File struct {
	Path string
}

// Load reads and validates the file. Fields absent from the document take
// their default values.
func (f File) Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(f.Path), kjson.Parser()); err != nil {
		return Config{}, fmt.Errorf("load keybinds %s: %w", f.Path, err)
	}
	return decode(k)
}

func decode(k *koanf.Koanf) (Config, error) {
	cfg := Default()
	var violations []string

	if k.Exists(fieldLeader) {
		raw := k.String(fieldLeader)
		m, err := ParseModifier(raw)
		if err != nil {
			// Validate reports it.
			m = Modifier(raw)
		}
		cfg.Leader = m
	}
	if k.Exists(fieldToggle) {
		cfg.TogglePickerKey = normalizeKey(k.String(fieldToggle))
	}
	if k.Exists(fieldMark) {
		cfg.MarkWindowKey = normalizeKey(k.String(fieldMark))
	}
	if k.Exists(fieldQuickJump) {
		set, err := ParseModifierSet(k.Strings(fieldQuickJump))
		if err != nil {
			violations = append(violations, fmt.Sprintf("%s: %v", fieldQuickJump, err))
		}
		cfg.QuickJumpModifiers = set
	}
	if k.Exists(fieldMarkToPosition) {
		set, err := ParseModifierSet(k.Strings(fieldMarkToPosition))
		if err != nil {
			violations = append(violations, fmt.Sprintf("%s: %v", fieldMarkToPosition, err))
		}
		cfg.MarkToPositionModifiers = set
	}

	violations = append(violations, cfg.Validate()...)
	if len(violations) > 0 {
		return Config{}, &InvalidConfigError{Violations: violations}
	}
	return cfg, nil
}

// normalizeKey keeps unknown names as-is so Validate can report them.
func normalizeKey(s string) Key {
	if k, err := ParseKey(s); err == nil {
		return k
	}
	return Key(s)
}

// Save writes c atomically, creating the parent directory if needed.
func (f File) Save(c Config) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal keybinds: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// LoadOrDefault loads the file, falling back to (and persisting) the
// defaults when the file is missing, malformed or invalid.
func LoadOrDefault(f File, log zerolog.Logger) Config {
	cfg, err := f.Load()
	if err == nil {
		return cfg
	}
	log.Warn().Err(err).Str("path", f.Path).Msg("using default keybinds")
	cfg = Default()
	if err := f.Save(cfg); err != nil {
		log.Error().Err(err).Str("path", f.Path).Msg("persist default keybinds")
	}
	return cfg
}

// reloadDelay is how long a file must stay quiet before Watch re-reads it.
// Editors and os.WriteFile truncate before writing, so the first event can
// arrive while the file is still empty.
var reloadDelay = 100 * time.Millisecond

// Watch reloads the file whenever it changes on disk and passes the result
// to fn. Bursts of events are coalesced into one reload. The returned stop
// function ends the watch.
func (f File) Watch(fn func(Config, error)) (stop func() error, err error) {
	d := newDebouncer(reloadDelay, func() { fn(f.Load()) })
	fp := file.Provider(f.Path)
	err = fp.Watch(func(_ interface{}, werr error) {
		if werr != nil {
			fn(Config{}, werr)
			return
		}
		d.trigger()
	})
	if err != nil {
		return nil, fmt.Errorf("watch keybinds %s: %w", f.Path, err)
	}
	return func() error {
		d.stop()
		return fp.Unwatch()
	}, nil
}

// debouncer runs fn once delay has passed since the last trigger.
type debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}

// Follow applies on-disk edits of f to s. Invalid edits are logged and the
// active config is kept; writes that reproduce the active config are ignored.
func Follow(f File, s *Store, log zerolog.Logger) (stop func() error, err error) {
	return f.Watch(func(cfg Config, err error) {
		if err != nil {
			log.Warn().Err(err).Str("path", f.Path).Msg("ignoring keybinds edit")
			return
		}
		if cfg == s.Current() {
			return
		}
		if err := s.Update(cfg); err != nil {
			log.Warn().Err(err).Str("path", f.Path).Msg("ignoring keybinds edit")
		}
	})
}
