package fake

import "github.com/mj1618/slotjump/internal/model"

// Demo returns a host seeded with a few windows, for --fake dry runs.
func Demo() *Host {
	h := New()
	ws := []model.WindowRef{
		{StableID: 101, OwnerAppID: "com.apple.Terminal", OwnerAppName: "Terminal", Title: "zsh — 120×40", PID: 4101},
		{StableID: 102, OwnerAppID: "com.microsoft.VSCode", OwnerAppName: "Code", Title: "main.go — slotjump", PID: 4102},
		{StableID: 103, OwnerAppID: "com.google.Chrome", OwnerAppName: "Google Chrome", Title: "Go Packages", PID: 4103},
		{StableID: 104, OwnerAppID: "com.tinyspeck.slackmacgap", OwnerAppName: "Slack", Title: "general", PID: 4104},
	}
	h.SetWindows(ws...)
	h.Focus(&ws[0])
	return h
}
