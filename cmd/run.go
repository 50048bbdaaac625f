package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/keybind"
	"github.com/mj1618/slotjump/internal/server"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hotkey daemon",
	Long: `Listen for the global chords and keep the pins up to date until interrupted.

Edits to the keybinds file apply immediately. With --mcp-port the MCP tools
are also served over streamable HTTP on that port.

Examples:
  slotjump run
  slotjump run --mcp-port 8080
  slotjump run --fake --log-level debug`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("mcp-port", 0, "Also serve MCP tools over HTTP on this port (0 disables)")
	runCmd.Flags().Int("cache-ttl", 500, "Window list cache TTL for MCP tools in milliseconds (0 to disable)")
}

func runRun(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("mcp-port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	f := keybindFile()
	keys := keybind.NewStore(keybind.LoadOrDefault(f, log), f, log)
	stop, err := keybind.Follow(f, keys, log)
	if err != nil {
		log.Warn().Err(err).Msg("keybinds file will not be reloaded on change")
	} else {
		defer stop()
	}

	a, cleanup, err := buildApp(appOptions{keys: true, validate: true, notifier: true, keybinds: keys})
	if err != nil {
		return err
	}
	defer cleanup()

	var services []app.Service
	if port > 0 {
		srv := server.New(a, server.Options{
			CacheTTL: time.Duration(cacheTTLMs) * time.Millisecond,
			Log:      log,
		})
		addr := fmt.Sprintf(":%d", port)
		services = append(services, func(ctx context.Context) error {
			return srv.ServeHTTP(ctx, addr)
		})
	}

	log.Info().Str("backend", backend).Msg("slotjump running")
	return a.Run(cmd.Context(), services...)
}
