package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kmzmerge/internal/logger"
)

const (
	serverName      = "kmzmerge"
	shutdownTimeout = 5 * time.Second
)

// Server exposes merges and run history to MCP clients.
type Server struct {
	ports   *Ports
	version string
	server  *mcp.Server
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the version reported during initialisation.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// NewServer registers the tools and resources backed by ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{ports: ports, version: "dev"}
	for _, opt := range opts {
		opt(s)
	}
	s.server = mcp.NewServer(&mcp.Implementation{Name: serverName, Version: s.version}, nil)

	s.registerTools()
	s.registerResources()
	return s, nil
}

// Version returns the version reported to clients.
func (s *Server) Version() string {
	return s.version
}

// Run serves JSON-RPC over stdio until ctx ends or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP transport for this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.server }, nil)
}

// Serve accepts connections on ln until ctx ends, then drains open
// requests for up to five seconds.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP HTTP shutdown: %v", err)
		}
	}()

	logger.Info("MCP server listening on %s", ln.Addr())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-stopped
		return nil
	}
	return err
}
