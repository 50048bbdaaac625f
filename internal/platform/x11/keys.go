//go:build linux && cgo

package x11

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/platform"
)

var modifierMap = map[keybind.Modifier]hotkey.Modifier{
	keybind.ModControl: hotkey.ModCtrl,
	keybind.ModShift:   hotkey.ModShift,
	keybind.ModOption:  hotkey.Mod1, // Alt = Mod1 on X11
	keybind.ModCommand: hotkey.Mod4, // Super = Mod4 on X11
}

var keyMap = map[keybind.Key]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	keybind.KeySpace:  hotkey.KeySpace,
	keybind.KeyReturn: hotkey.KeyReturn,
	keybind.KeyEscape: hotkey.KeyEscape,
	keybind.KeyDelete: hotkey.KeyDelete,
	keybind.KeyTab:    hotkey.KeyTab,
	"left": hotkey.KeyLeft, "right": hotkey.KeyRight, "up": hotkey.KeyUp, "down": hotkey.KeyDown,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

type grab struct {
	hk   *hotkey.Hotkey
	ev   keybind.KeyEvent
	stop chan struct{}
}

// KeySource grabs chords on the X server and reports them as key events.
type KeySource struct {
	mu       sync.Mutex
	handlers map[platform.Subscription]platform.KeyHandler
	next     platform.Subscription
	grabs    []*grab
}

// NewKeySource returns a key source with nothing grabbed.
func NewKeySource() *KeySource {
	return &KeySource{handlers: make(map[platform.Subscription]platform.KeyHandler)}
}

func (s *KeySource) Subscribe(h platform.KeyHandler) (platform.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.handlers[s.next] = h
	return s.next, nil
}

func (s *KeySource) Unsubscribe(sub platform.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.handlers[sub]; !ok {
		return fmt.Errorf("unknown subscription %d", sub)
	}
	delete(s.handlers, sub)
	return nil
}

// BindChords replaces every grab with the given chords. Chords that cannot
// be grabbed (already taken by another client, unmapped key) are reported
// together; the rest stay active.
func (s *KeySource) BindChords(chords []keybind.Chord) (int, error) {
	s.mu.Lock()
	old := s.grabs
	s.grabs = nil
	s.mu.Unlock()
	for _, g := range old {
		close(g.stop)
		g.hk.Unregister()
	}

	var errs []error
	var grabs []*grab
	for _, c := range chords {
		mods, key, err := translate(c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		hk := hotkey.New(mods, key)
		if err := hk.Register(); err != nil {
			errs = append(errs, fmt.Errorf("grab %s: %w", c, err))
			continue
		}
		g := &grab{hk: hk, ev: keybind.KeyEvent{Key: c.Key, Mods: c.Mods}, stop: make(chan struct{})}
		grabs = append(grabs, g)
		go s.listen(g)
	}

	s.mu.Lock()
	s.grabs = grabs
	s.mu.Unlock()
	return len(grabs), errors.Join(errs...)
}

// Close releases every grab.
func (s *KeySource) Close() error {
	_, err := s.BindChords(nil)
	return err
}

func (s *KeySource) listen(g *grab) {
	for {
		select {
		case <-g.stop:
			return
		case <-g.hk.Keydown():
			s.dispatch(g.ev)
		}
	}
}

// dispatch delivers a grabbed chord. The X server has already consumed the
// event, so the handlers' decisions are ignored.
func (s *KeySource) dispatch(ev keybind.KeyEvent) {
	s.mu.Lock()
	handlers := make([]platform.KeyHandler, 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()
	for _, h := range handlers {
		h(ev)
	}
}

func translate(c keybind.Chord) ([]hotkey.Modifier, hotkey.Key, error) {
	key, ok := keyMap[c.Key]
	if !ok {
		return nil, 0, fmt.Errorf("key %q cannot be grabbed on X11", c.Key)
	}
	mods := make([]hotkey.Modifier, 0, c.Mods.Len())
	for _, m := range c.Mods.Modifiers() {
		mods = append(mods, modifierMap[m])
	}
	return mods, key, nil
}
