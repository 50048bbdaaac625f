// Package server exposes the pin registry to agents as MCP tools over stdio
// or streamable HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/mj1618/slotjump/internal/app"
	"github.com/mj1618/slotjump/internal/version"
)

// Options configures a Server.
type Options struct {
	// CacheTTL bounds how stale list_windows results may be. Zero disables
	// caching.
	CacheTTL time.Duration
	Log      zerolog.Logger
}

// Server wraps the MCP server with the app it drives.
type Server struct {
	app     *app.App
	windows *WindowCache
	mcp     *mcpserver.MCPServer
	log     zerolog.Logger
}

// New creates a server with every tool registered.
func New(a *app.App, opts Options) *Server {
	s := &Server{
		app:     a,
		windows: NewWindowCache(opts.CacheTTL),
		log:     opts.Log.With().Str("component", "mcp").Logger(),
	}
	s.mcp = mcpserver.NewMCPServer(
		"slotjump",
		version.Version,
		mcpserver.WithToolCapabilities(false),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// ServeStdio serves on in and out until ctx is cancelled or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.log.Info().Msg("serving MCP on stdio")
	return mcpserver.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// ServeHTTP serves the streamable HTTP transport on addr until ctx is
// cancelled.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("serving MCP over HTTP")
		errc <- httpServer.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mcp http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Warn().Err(err).Msg("mcp http shutdown")
		}
		return nil
	}
}
