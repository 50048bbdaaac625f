package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/output"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show or change the chord bindings",
}

var keysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active chord bindings",
	Args:  cobra.NoArgs,
	RunE:  runKeysShow,
}

var keysSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change chord bindings",
	Long: `Change one or more bindings. The result is validated as a whole and only
saved when it is valid; a running daemon picks it up immediately.

Examples:
  slotjump keys set --leader command
  slotjump keys set --toggle j --mark k
  slotjump keys set --quick-jump "" --mark-to-position option,shift`,
	Args: cobra.NoArgs,
	RunE: runKeysSet,
}

var keysValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a keybinds file without applying it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeysValidate,
}

var keysResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default bindings",
	Args:  cobra.NoArgs,
	RunE:  runKeysReset,
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysShowCmd, keysSetCmd, keysValidateCmd, keysResetCmd)

	keysSetCmd.Flags().String("leader", "", "Leader modifier: control, option, shift, command")
	keysSetCmd.Flags().String("toggle", "", "Key that toggles the picker with the leader")
	keysSetCmd.Flags().String("mark", "", "Key that marks the focused window with the leader")
	keysSetCmd.Flags().StringSlice("quick-jump", nil, "Modifiers added to the leader for leader+digit jumps")
	keysSetCmd.Flags().StringSlice("mark-to-position", nil, "Modifiers added to the leader for mark-at-position")
}

// KeysValidateResult is the output of `keys validate`.
type KeysValidateResult struct {
	Path       string   `yaml:"path"                 json:"path"`
	Valid      bool     `yaml:"valid"                json:"valid"`
	Violations []string `yaml:"violations,omitempty" json:"violations,omitempty"`
}

func runKeysShow(cmd *cobra.Command, args []string) error {
	f := keybindFile()
	c := keybind.LoadOrDefault(f, log)
	return output.Print(output.KeysResult{Path: f.Path, Config: c, Bindings: c.Bindings()})
}

func runKeysSet(cmd *cobra.Command, args []string) error {
	f := keybindFile()
	store := keybind.NewStore(keybind.LoadOrDefault(f, log), f, log)
	next := store.Current()

	flags := cmd.Flags()
	if flags.Changed("leader") {
		v, _ := flags.GetString("leader")
		m, err := keybind.ParseModifier(v)
		if err != nil {
			return err
		}
		next.Leader = m
	}
	if flags.Changed("toggle") {
		v, _ := flags.GetString("toggle")
		k, err := keybind.ParseKey(v)
		if err != nil {
			return fmt.Errorf("toggle: %w", err)
		}
		next.TogglePickerKey = k
	}
	if flags.Changed("mark") {
		v, _ := flags.GetString("mark")
		k, err := keybind.ParseKey(v)
		if err != nil {
			return fmt.Errorf("mark: %w", err)
		}
		next.MarkWindowKey = k
	}
	if flags.Changed("quick-jump") {
		v, _ := flags.GetStringSlice("quick-jump")
		set, err := keybind.ParseModifierSet(nonEmpty(v))
		if err != nil {
			return fmt.Errorf("quick-jump: %w", err)
		}
		next.QuickJumpModifiers = set
	}
	if flags.Changed("mark-to-position") {
		v, _ := flags.GetStringSlice("mark-to-position")
		set, err := keybind.ParseModifierSet(nonEmpty(v))
		if err != nil {
			return fmt.Errorf("mark-to-position: %w", err)
		}
		next.MarkToPositionModifiers = set
	}

	if err := store.Update(next); err != nil {
		return err
	}
	c := store.Current()
	return output.Print(output.KeysResult{Path: f.Path, Config: c, Bindings: c.Bindings()})
}

func runKeysValidate(cmd *cobra.Command, args []string) error {
	f := keybindFile()
	if len(args) == 1 {
		f = keybind.File{Path: args[0]}
	}
	result := KeysValidateResult{Path: f.Path, Valid: true}
	if _, err := f.Load(); err != nil {
		var invalid *keybind.InvalidConfigError
		if !errors.As(err, &invalid) {
			return err
		}
		result.Valid = false
		result.Violations = invalid.Violations
	}
	if err := output.Print(result); err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("%s: %d violation(s)", f.Path, len(result.Violations))
	}
	return nil
}

func runKeysReset(cmd *cobra.Command, args []string) error {
	f := keybindFile()
	if err := f.Save(keybind.Default()); err != nil {
		return err
	}
	c := keybind.Default()
	return output.Print(output.KeysResult{Path: f.Path, Config: c, Bindings: c.Bindings()})
}

// nonEmpty drops blank entries so --quick-jump "" means no extra modifiers.
func nonEmpty(ss []string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
