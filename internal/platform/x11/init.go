//go:build linux && cgo

package x11

import "github.com/mj1618/slotjump/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		wm, err := NewWindowManager()
		if err != nil {
			return nil, err
		}
		return &platform.Provider{
			WindowManager: wm,
			IconProvider:  iconProvider{},
			KeySource:     NewKeySource(),
		}, nil
	}
}
