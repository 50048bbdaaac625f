package app

import (
	"github.com/rs/zerolog"

	"github.com/mj1618/slotjump/internal/chord"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/registry"
)

// Observer receives state changes. Calls arrive on the owner loop.
type Observer interface {
	SlotsChanged(slots []model.PinSlot)
	PickerVisibilityChanged(open bool)
	ActionFailed(a chord.Action, err error)
}

// PickerModeSetter is told when the picker opens or closes so key events
// are classified in the right mode.
type PickerModeSetter interface {
	SetPickerOpen(open bool)
}

// IconWarmer preloads icons for the apps about to be shown.
type IconWarmer interface {
	Warm(appIDs ...string)
}

// Controller performs matched chord actions against the registry. It must
// only be used from the owner loop.
type Controller struct {
	reg       *registry.Registry
	mode      PickerModeSetter
	icons     IconWarmer
	observers []Observer
	log       zerolog.Logger

	pickerOpen bool
}

// NewController creates a controller with the picker closed.
func NewController(reg *registry.Registry, mode PickerModeSetter, icons IconWarmer, log zerolog.Logger) *Controller {
	return &Controller{
		reg:   reg,
		mode:  mode,
		icons: icons,
		log:   log.With().Str("component", "controller").Logger(),
	}
}

// AddObserver registers o for picker and failure events.
func (c *Controller) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

// PickerOpen reports whether the picker is showing.
func (c *Controller) PickerOpen() bool {
	return c.pickerOpen
}

// HandleAction implements hotkey.Handler.
func (c *Controller) HandleAction(a chord.Action) {
	var err error
	switch a.Kind {
	case chord.TogglePicker:
		c.setPicker(!c.pickerOpen)
	case chord.PickerDismiss:
		c.setPicker(false)
	case chord.PickerSelect:
		c.setPicker(false)
		_, err = c.reg.Jump(a.Position)
	case chord.QuickJump:
		_, err = c.reg.Jump(a.Position)
	case chord.MarkCurrent:
		_, err = c.reg.MarkCurrent()
	case chord.MarkToPosition:
		_, err = c.reg.MarkAt(a.Position)
	default:
		return
	}
	if err != nil {
		c.log.Warn().Err(err).Stringer("action", a).Msg("action failed")
		for _, o := range c.observers {
			o.ActionFailed(a, err)
		}
		return
	}
	c.log.Debug().Stringer("action", a).Msg("action done")
}

func (c *Controller) setPicker(open bool) {
	if c.pickerOpen == open {
		return
	}
	c.pickerOpen = open
	c.mode.SetPickerOpen(open)
	if open && c.icons != nil {
		c.icons.Warm(appIDList(c.reg.List())...)
	}
	for _, o := range c.observers {
		o.PickerVisibilityChanged(open)
	}
}
