package notify

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mj1618/slotjump/internal/chord"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/registry"
)

// Observer reports daemon events as notifications. While the picker is open
// it shows the slot list in a single notification that is closed when the
// picker hides.
type Observer struct {
	n   Notifier
	log zerolog.Logger

	mu       sync.Mutex
	slots    []model.PinSlot
	pickerID uint32
}

// NewObserver wraps a notifier.
func NewObserver(n Notifier, log zerolog.Logger) *Observer {
	return &Observer{n: n, log: log.With().Str("component", "notify").Logger()}
}

func (o *Observer) SlotsChanged(slots []model.PinSlot) {
	o.mu.Lock()
	o.slots = slots
	open := o.pickerID != 0
	o.mu.Unlock()
	if open {
		o.showPicker()
	}
}

func (o *Observer) PickerVisibilityChanged(open bool) {
	if open {
		o.showPicker()
		return
	}
	o.mu.Lock()
	id := o.pickerID
	o.pickerID = 0
	o.mu.Unlock()
	if id != 0 {
		if err := o.n.Close(id); err != nil {
			o.log.Debug().Err(err).Msg("close picker notification")
		}
	}
}

func (o *Observer) ActionFailed(a chord.Action, err error) {
	n := Notification{
		Title:   "slotjump: " + a.Kind.String() + " failed",
		Body:    err.Error(),
		Timeout: 3000,
		Urgency: UrgencyNormal,
	}
	if errors.Is(err, registry.ErrWindowNoLongerExists) {
		n.Title = "slotjump: slot removed"
		n.Urgency = UrgencyLow
	}
	if _, nerr := o.n.Notify(n); nerr != nil {
		o.log.Debug().Err(nerr).Msg("send notification")
	}
}

func (o *Observer) showPicker() {
	o.mu.Lock()
	body := PickerBody(o.slots)
	replaces := o.pickerID
	o.mu.Unlock()

	id, err := o.n.Notify(Notification{
		Title:      "slotjump",
		Body:       body,
		Timeout:    0,
		ReplacesID: replaces,
		Urgency:    UrgencyNormal,
	})
	if err != nil {
		o.log.Debug().Err(err).Msg("show picker notification")
		return
	}
	o.mu.Lock()
	o.pickerID = id
	o.mu.Unlock()
}

// PickerBody renders one line per slot.
func PickerBody(slots []model.PinSlot) string {
	if len(slots) == 0 {
		return "No pinned windows"
	}
	var b strings.Builder
	for i, s := range slots {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d  %s — %s", s.Position, s.Window.AppName(), s.Window.Title)
	}
	return b.String()
}
