package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/output"
	"github.com/mj1618/slotjump/internal/resolver"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List the windows that can be pinned",
	Long:  "List the visible application windows in front-to-back order with their app id, title, window id and PID, and report which one has focus.",
	Args:  cobra.NoArgs,
	RunE:  runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().String("app", "", "Filter windows by app name or id substring")
	windowsCmd.Flags().Int("pid", 0, "Filter windows by PID")
}

func runWindows(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	appName, _ := cmd.Flags().GetString("app")
	pid, _ := cmd.Flags().GetInt("pid")

	res := resolver.New(provider.WindowManager, log)
	windows, err := res.Enumerate()
	if err != nil {
		return err
	}
	result := output.WindowsResult{Windows: filterWindows(windows, appName, pid)}
	if focused, ok, err := res.CurrentFocused(); err == nil && ok {
		result.Focused = &focused
	}
	return output.Print(result)
}

func filterWindows(ws []model.WindowRef, app string, pid int) []model.WindowRef {
	app = strings.ToLower(app)
	out := make([]model.WindowRef, 0, len(ws))
	for _, w := range ws {
		if pid != 0 && w.PID != pid {
			continue
		}
		if app != "" &&
			!strings.Contains(strings.ToLower(w.OwnerAppName), app) &&
			!strings.Contains(strings.ToLower(w.OwnerAppID), app) {
			continue
		}
		out = append(out, w)
	}
	return out
}
