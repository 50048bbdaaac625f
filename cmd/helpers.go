package cmd

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/notify"
	"github.com/mj1618/slotjump/internal/pinstore"
	"github.com/mj1618/slotjump/internal/platform"
	"github.com/mj1618/slotjump/internal/platform/fake"
)

// demoHost is shared by every command of one process in fake mode.
var demoHost *fake.Host

// newProvider returns the provider for the selected backend.
func newProvider() (*platform.Provider, error) {
	switch backend {
	case "fake":
		if demoHost == nil {
			demoHost = fake.Demo()
		}
		return demoHost.Provider(), nil
	case "auto":
	default:
		if native := nativeBackend(); backend != native {
			return nil, fmt.Errorf("backend %s is not available on %s (use %s or fake)", backend, runtime.GOOS, native)
		}
	}
	if platform.RequestPermissionsFunc != nil {
		platform.RequestPermissionsFunc()
	}
	return platform.NewProvider()
}

func nativeBackend() string {
	if runtime.GOOS == "darwin" {
		return "darwin"
	}
	return "x11"
}

func keybindFile() keybind.File {
	return keybind.File{Path: cfg.KeybindsPath}
}

// openPins opens the configured pin database, or returns nil when pins are
// not persisted.
func openPins() (*pinstore.SQLite, error) {
	if !cfg.PersistPins {
		return nil, nil
	}
	return pinstore.Open(cfg.PinsPath, log)
}

type appOptions struct {
	keys     bool // subscribe to global chords
	validate bool // periodic validation sweep
	notifier bool // desktop notifications
	keybinds *keybind.Store
}

// withApp builds the app, runs it in the background and calls fn once it is
// serving. The app stops when fn returns; pending pin writes are flushed.
func withApp(cmd *cobra.Command, opts appOptions, fn func(ctx context.Context, a *app.App) error) error {
	a, cleanup, err := buildApp(opts)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(cmd.Context())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	ferr := fn(ctx, a)
	cancel()
	if rerr := <-done; rerr != nil && ferr == nil {
		ferr = rerr
	}
	return ferr
}

func buildApp(opts appOptions) (*app.App, func(), error) {
	prov, err := newProvider()
	if err != nil {
		return nil, nil, err
	}
	if !opts.keys {
		cp := *prov
		cp.KeySource = nil
		prov = &cp
	}

	pins, err := openPins()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if c, ok := prov.KeySource.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("release key source")
			}
		}
		if pins != nil {
			if err := pins.Close(); err != nil {
				log.Error().Err(err).Msg("close pin store")
			}
		}
	}

	keys := opts.keybinds
	if keys == nil {
		f := keybindFile()
		keys = keybind.NewStore(keybind.LoadOrDefault(f, log), f, log)
	}

	var observers []app.Observer
	if opts.notifier && cfg.Notifications {
		n, err := notify.New()
		if err != nil {
			log.Warn().Err(err).Msg("desktop notifications unavailable")
			n = notify.Nop()
		}
		observers = append(observers, notify.NewObserver(n, log))
	}

	appOpts := app.Options{
		Provider:    prov,
		Keybinds:    keys,
		IconSize:    cfg.IconSize,
		IconWorkers: cfg.IconWorkers,
		Observers:   observers,
		Log:         log,
	}
	if pins != nil {
		appOpts.Pins = pins
	}
	if opts.validate {
		appOpts.ValidateInterval = cfg.ValidateInterval
	}
	a, err := app.New(appOpts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return a, cleanup, nil
}

// positionArg parses a 1-9 slot argument.
func positionArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 9 {
		return 0, fmt.Errorf("invalid position %q: expected 1-9", s)
	}
	return n, nil
}
