package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/output"
	"github.com/mj1618/slotjump/internal/registry"
)

var removeCmd = &cobra.Command{
	Use:     "remove <position>",
	Aliases: []string{"rm"},
	Short:   "Clear a slot",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	position, err := positionArg(args[0])
	if err != nil {
		return err
	}
	err = withApp(cmd, appOptions{}, func(ctx context.Context, a *app.App) error {
		return a.Do(ctx, func(reg *registry.Registry) error {
			return reg.Remove(position)
		})
	})
	if err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "remove", Message: fmt.Sprintf("slot %d cleared", position)})
}
