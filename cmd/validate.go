package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/output"
	"github.com/mj1618/slotjump/internal/registry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Remove slots whose window no longer exists",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var removed []model.PinSlot
	err := withApp(cmd, appOptions{}, func(ctx context.Context, a *app.App) error {
		return a.Do(ctx, func(reg *registry.Registry) error {
			var err error
			removed, err = reg.ValidateAll()
			return err
		})
	})
	if err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "validate", Removed: removed})
}
