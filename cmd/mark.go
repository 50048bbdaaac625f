package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/output"
	"github.com/mj1618/slotjump/internal/registry"
)

var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Pin the focused window",
	Long: `Pin the window that currently has focus. Without --position it takes the
lowest free slot; with --position it replaces whatever that slot held.

Examples:
  slotjump mark
  slotjump mark --position 3`,
	Args: cobra.NoArgs,
	RunE: runMark,
}

func init() {
	rootCmd.AddCommand(markCmd)
	markCmd.Flags().Int("position", 0, "Slot 1-9 to pin to (default: lowest free)")
}

func runMark(cmd *cobra.Command, args []string) error {
	position, _ := cmd.Flags().GetInt("position")

	var slot model.PinSlot
	err := withApp(cmd, appOptions{}, func(ctx context.Context, a *app.App) error {
		return a.Do(ctx, func(reg *registry.Registry) error {
			var err error
			if position == 0 {
				slot, err = reg.MarkCurrent()
			} else {
				slot, err = reg.MarkAt(position)
			}
			return err
		})
	})
	if err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "mark", Slot: &slot})
}
