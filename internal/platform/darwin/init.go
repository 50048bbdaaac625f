//go:build darwin && cgo

package darwin

import "github.com/mj1618/slotjump/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			WindowManager: NewWindowManager(),
			IconProvider:  IconProvider{},
			KeySource:     NewKeySource(),
		}, nil
	}
	platform.RequestPermissionsFunc = RequestPermissions
}
