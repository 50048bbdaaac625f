//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <stdint.h>

int sj_tap_create(uintptr_t handle);
void sj_tap_run(void);
void sj_tap_stop(void);
*/
import "C"
import (
	"errors"
	"fmt"
	"runtime"
	"runtime/cgo"
	"sync"

	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/platform"
)

// KeySource observes every key-down in the session through a CGEventTap.
// The tap runs on a dedicated OS thread and starts with the first
// subscription.
type KeySource struct {
	mu       sync.Mutex
	handlers []subscriber
	next     platform.Subscription
	running  bool
	done     chan struct{}
	handle   cgo.Handle

	// Touched only on the tap thread.
	suppressed map[uint16]bool
}

type subscriber struct {
	id platform.Subscription
	h  platform.KeyHandler
}

// NewKeySource returns an idle key source.
func NewKeySource() *KeySource {
	return &KeySource{suppressed: make(map[uint16]bool)}
}

func (s *KeySource) Subscribe(h platform.KeyHandler) (platform.Subscription, error) {
	if err := s.start(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.handlers = append(s.handlers, subscriber{id: s.next, h: h})
	return s.next, nil
}

func (s *KeySource) Unsubscribe(sub platform.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.handlers {
		if h.id == sub {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown subscription %d", sub)
}

func (s *KeySource) start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	s.handle = cgo.NewHandle(s)
	s.done = make(chan struct{})
	created := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(s.done)
		if C.sj_tap_create(C.uintptr_t(s.handle)) != 0 {
			created <- errors.New("cannot create event tap: grant Accessibility or Input Monitoring permission")
			return
		}
		created <- nil
		C.sj_tap_run()
	}()
	if err := <-created; err != nil {
		s.handle.Delete()
		return err
	}
	s.running = true
	return nil
}

// Close stops the tap and waits for its thread to exit.
func (s *KeySource) Close() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	done := s.done
	s.mu.Unlock()

	C.sj_tap_stop()
	<-done
	s.handle.Delete()
	return nil
}

// handleKey reports whether the event should be swallowed. Autorepeats of
// a swallowed chord are swallowed again without reaching the handlers.
func (s *KeySource) handleKey(code uint16, flags uint64, repeat bool) bool {
	if repeat {
		return s.suppressed[code]
	}
	key, ok := keyFromCode(code)
	if !ok {
		return false
	}
	ev := keybind.KeyEvent{Key: key, Mods: modifiersFromFlags(flags)}

	s.mu.Lock()
	handlers := make([]subscriber, len(s.handlers))
	copy(handlers, s.handlers)
	s.mu.Unlock()

	suppress := false
	for _, sub := range handlers {
		if sub.h(ev) == platform.Suppress {
			suppress = true
		}
	}
	s.suppressed[code] = suppress
	return suppress
}

//export sjKeyEvent
func sjKeyEvent(handle C.uintptr_t, keycode C.uint16_t, flags C.uint64_t, repeat C.int) C.int {
	s, ok := cgo.Handle(handle).Value().(*KeySource)
	if !ok {
		return 0
	}
	if s.handleKey(uint16(keycode), uint64(flags), repeat != 0) {
		return 1
	}
	return 0
}
