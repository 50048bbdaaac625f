// Package app wires the daemon: owner loop, registry, icon cache, hotkey
// dispatcher and persistence.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mj1618/slotjump/internal/hotkey"
	"github.com/mj1618/slotjump/internal/iconcache"
	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/loop"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/pinstore"
	"github.com/mj1618/slotjump/internal/platform"
	"github.com/mj1618/slotjump/internal/registry"
	"github.com/mj1618/slotjump/internal/resolver"
)

// Options configures an App.
type Options struct {
	Provider *platform.Provider
	Keybinds *keybind.Store
	// Pins, when set, is loaded at startup and saved after every change.
	Pins             pinstore.Store
	IconSize         int
	IconWorkers      int
	ValidateInterval time.Duration
	Observers        []Observer
	Log              zerolog.Logger
}

// Service is an extra long-running component started by Run, such as the
// MCP HTTP server.
type Service func(ctx context.Context) error

// deferredSaver is implemented by stores that coalesce frequent saves.
type deferredSaver interface {
	SaveDeferred(slots []model.PinSlot)
}

// App owns every piece of daemon state.
type App struct {
	opts     Options
	loop     *loop.Loop
	resolver *resolver.Resolver
	registry *registry.Registry
	icons    *iconcache.Cache
	disp     *hotkey.Dispatcher
	ctrl     *Controller
	log      zerolog.Logger
}

// New builds the app and restores persisted pins. Nothing runs until Run.
func New(opts Options) (*App, error) {
	if opts.Provider == nil || opts.Provider.WindowManager == nil {
		return nil, errors.New("app: window manager is required")
	}
	if opts.Keybinds == nil {
		opts.Keybinds = keybind.NewStore(keybind.Default(), nil, opts.Log)
	}
	a := &App{
		opts: opts,
		loop: loop.New(),
		log:  opts.Log.With().Str("component", "app").Logger(),
	}
	a.resolver = resolver.New(opts.Provider.WindowManager, opts.Log)
	a.registry = registry.New(a.resolver, opts.Log)

	if opts.Provider.IconProvider != nil {
		a.icons = iconcache.New(opts.Provider.IconProvider, iconcache.Options{
			Size:    opts.IconSize,
			Workers: opts.IconWorkers,
		}, opts.Log)
		a.registry.SetIconPruner(a.icons)
	}

	a.ctrl = NewController(a.registry, nopPickerMode{}, a.iconWarmer(), opts.Log)
	if opts.Provider.KeySource != nil {
		a.disp = hotkey.New(opts.Provider.KeySource, a.loop, a.ctrl, opts.Log)
		a.ctrl.mode = a.disp
	}
	for _, o := range opts.Observers {
		a.ctrl.AddObserver(o)
		a.registry.OnChange(o.SlotsChanged)
	}

	if opts.Pins != nil {
		slots, err := opts.Pins.Load()
		if err != nil {
			return nil, fmt.Errorf("load pins: %w", err)
		}
		a.registry.Restore(slots)
		a.registry.OnChange(a.persist)
		a.log.Info().Int("count", len(a.registry.List())).Msg("restored pins")
	}
	return a, nil
}

// Registry exposes the registry. Use it only inside Do.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Resolver returns the window resolver, which is safe to use anywhere.
func (a *App) Resolver() *resolver.Resolver {
	return a.resolver
}

// Icons returns the icon cache, or nil when the host has no icons.
func (a *App) Icons() *iconcache.Cache {
	return a.icons
}

// Controller returns the chord action handler.
func (a *App) Controller() *Controller {
	return a.ctrl
}

// Keybinds returns the keybind store.
func (a *App) Keybinds() *keybind.Store {
	return a.opts.Keybinds
}

// Do runs fn on the owner loop and returns its error.
func (a *App) Do(ctx context.Context, fn func(reg *registry.Registry) error) error {
	var err error
	if cerr := a.loop.Call(ctx, func() { err = fn(a.registry) }); cerr != nil {
		return cerr
	}
	return err
}

// Run starts every component and blocks until ctx is cancelled or one of
// them fails.
func (a *App) Run(ctx context.Context, services ...Service) error {
	g, ctx := errgroup.WithContext(ctx)

	if a.icons != nil {
		a.icons.Start()
		defer a.icons.Close()
		a.icons.Warm(appIDList(a.registry.List())...)
	}

	if a.disp != nil {
		a.opts.Keybinds.OnChange(func(cfg keybind.Config) {
			a.loop.Post(func() {
				if err := a.disp.Reconfigure(cfg); err != nil {
					a.log.Error().Err(err).Msg("apply keybinds")
				}
			})
		})
		if err := a.disp.Start(a.opts.Keybinds.Current()); err != nil {
			return fmt.Errorf("start hotkeys: %w", err)
		}
		defer a.disp.Stop()
		a.log.Info().
			Str("toggle", a.opts.Keybinds.Current().TogglePickerChord()).
			Str("mark", a.opts.Keybinds.Current().MarkWindowChord()).
			Msg("listening for chords")
	}

	g.Go(func() error { return a.loop.Run(ctx) })

	if a.opts.ValidateInterval > 0 {
		g.Go(func() error {
			a.validateEvery(ctx, a.opts.ValidateInterval)
			return nil
		})
	}

	for _, svc := range services {
		svc := svc
		g.Go(func() error { return svc(ctx) })
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) validateEvery(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.loop.Post(func() {
				removed, err := a.registry.ValidateAll()
				if err != nil {
					a.log.Warn().Err(err).Msg("validation sweep failed")
					return
				}
				for _, s := range removed {
					a.log.Info().Int("position", s.Position).Str("window", s.Window.String()).Msg("slot self-healed")
				}
			})
		}
	}
}

func (a *App) persist(slots []model.PinSlot) {
	if d, ok := a.opts.Pins.(deferredSaver); ok {
		d.SaveDeferred(slots)
		return
	}
	if err := a.opts.Pins.Save(slots); err != nil {
		a.log.Error().Err(err).Msg("save pins")
	}
}

func (a *App) iconWarmer() IconWarmer {
	if a.icons == nil {
		return nil
	}
	return a.icons
}

type nopPickerMode struct{}

func (nopPickerMode) SetPickerOpen(bool) {}

func appIDList(slots []model.PinSlot) []string {
	set := model.AppIDs(slots)
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
