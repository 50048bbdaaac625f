package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/output"
	"github.com/mj1618/slotjump/internal/registry"
)

var jumpCmd = &cobra.Command{
	Use:   "jump <position>",
	Short: "Bring the window pinned at a slot to the front",
	Long: `Activate the window pinned at the given slot. If the window has closed, the
slot is removed and the command fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runJump,
}

func init() {
	rootCmd.AddCommand(jumpCmd)
}

func runJump(cmd *cobra.Command, args []string) error {
	position, err := positionArg(args[0])
	if err != nil {
		return err
	}

	var w model.WindowRef
	err = withApp(cmd, appOptions{}, func(ctx context.Context, a *app.App) error {
		return a.Do(ctx, func(reg *registry.Registry) error {
			var err error
			w, err = reg.Jump(position)
			return err
		})
	})
	if err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "jump", Window: &w})
}
