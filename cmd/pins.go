package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/model"
	"github.com/mj1618/slotjump/internal/output"
	"github.com/mj1618/slotjump/internal/registry"
)

var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "List pinned windows",
	Long:  "List the pinned windows in slot order with the app, title and when each was last jumped to.",
	Args:  cobra.NoArgs,
	RunE:  runPins,
}

var pinsFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy-search pinned windows",
	Long: `Rank pinned windows by fuzzy match of the query against "app title".
Lower scores are closer matches.

Examples:
  slotjump pins find code
  slotjump pins find "term zsh" --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPinsFind,
}

func init() {
	rootCmd.AddCommand(pinsCmd)
	pinsCmd.AddCommand(pinsFindCmd)
	pinsCmd.Flags().Bool("validate", false, "Drop slots whose window is gone before listing")
}

func runPins(cmd *cobra.Command, args []string) error {
	validate, _ := cmd.Flags().GetBool("validate")
	slots, err := listSlots(cmd, validate)
	if err != nil {
		return err
	}
	return output.Print(output.NewPinsResult(slots, time.Now()))
}

func runPinsFind(cmd *cobra.Command, args []string) error {
	slots, err := listSlots(cmd, false)
	if err != nil {
		return err
	}
	matches := registry.Find(slots, strings.Join(args, " "))
	return output.Print(output.NewFindResult(matches, time.Now()))
}

func listSlots(cmd *cobra.Command, validate bool) ([]model.PinSlot, error) {
	var slots []model.PinSlot
	err := withApp(cmd, appOptions{}, func(ctx context.Context, a *app.App) error {
		return a.Do(ctx, func(reg *registry.Registry) error {
			if validate {
				if _, err := reg.ValidateAll(); err != nil {
					return err
				}
			}
			slots = reg.List()
			return nil
		})
	})
	return slots, err
}
