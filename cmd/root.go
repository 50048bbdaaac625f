package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/config"
	"github.com/mj1618/slotjump/internal/logging"
	"github.com/mj1618/slotjump/internal/output"
	"github.com/mj1618/slotjump/internal/platform"
	"github.com/mj1618/slotjump/internal/version"

	// Platform backends register themselves with platform.NewProviderFunc.
	_ "github.com/mj1618/slotjump/internal/platform/darwin"
	_ "github.com/mj1618/slotjump/internal/platform/x11"
)

var (
	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
	backend   string
)

var rootCmd = &cobra.Command{
	Use:   "slotjump",
	Short: "Pin windows to numbered slots and jump to them with global chords",
	Long: `slotjump pins application windows to slots 1-9 and brings them back with
global keyboard chords (control+digit by default). Run "slotjump run" to start
the hotkey daemon; the other commands inspect and edit the pins directly.`,
	SilenceUsage: true,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/slotjump/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Write JSON logs to this file instead of stderr")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("backend", "auto", "Window backend: auto, darwin, x11, fake")
	rootCmd.PersistentFlags().Bool("fake", false, "Use an in-memory demo desktop (same as --backend fake)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		flags := rootCmd.PersistentFlags()

		format, _ := flags.GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		output.PrettyOutput, _ = flags.GetBool("pretty")

		path, _ := flags.GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if lvl, _ := flags.GetString("log-level"); lvl != "" {
			loaded.LogLevel = lvl
		}
		if f, _ := flags.GetString("log-file"); f != "" {
			loaded.LogFile = f
		}
		cfg = loaded

		log, logCloser, err = logging.New(logging.Options{Level: cfg.LogLevel, Path: cfg.LogFile})
		if err != nil {
			return err
		}
		cmd.SetContext(logging.WithContext(cmd.Context(), log))

		b, _ := flags.GetString("backend")
		if backend, err = platform.ParseBackend(b); err != nil {
			return err
		}
		if fake, _ := flags.GetBool("fake"); fake {
			backend = "fake"
		}
		return nil
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	}
}
