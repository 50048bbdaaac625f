package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the pin tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the pins as tools
(list_pins, find_pins, mark_window, jump, remove_pin, validate_pins,
list_windows, show_keys). Global chords are not grabbed; use "run" for that.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  slotjump serve
  slotjump serve --transport streamable-http --port 8080
  slotjump serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Window list cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	if transport != "stdio" && transport != "streamable-http" {
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}

	return withApp(cmd, appOptions{validate: true}, func(ctx context.Context, a *app.App) error {
		srv := server.New(a, server.Options{
			CacheTTL: time.Duration(cacheTTLMs) * time.Millisecond,
			Log:      log,
		})
		if transport == "stdio" {
			return srv.ServeStdio(ctx, os.Stdin, os.Stdout)
		}
		return srv.ServeHTTP(ctx, fmt.Sprintf(":%d", port))
	})
}
