// Package mcp implements a Model Context Protocol server exposing lintfang
// verification and autofix as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/lintfang/internal/observability"
	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

const (
	// serverName is the MCP server implementation name.
	serverName = "lintfang"
	// serverVersion is the MCP server implementation version.
	serverVersion = "1.0.0"

	// toolCount is the expected number of registered tools.
	toolCount = 3
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Engine is the configured verification engine. Required.
	Engine *linter.Linter

	// Config is the base verification config tool calls start from.
	Config linter.Config

	// Logger is an optional structured logger. Nil uses slog default.
	Logger *slog.Logger

	// Metrics is an optional lint metrics recorder. Nil disables per-call metrics.
	Metrics *observability.LintMetrics
}

// Server wraps the MCP SDK server with lintfang tool registrations.
type Server struct {
	inner   *mcpsdk.Server
	engine  *linter.Linter
	config  linter.Config
	metrics *observability.LintMetrics

	mu    sync.RWMutex
	tools []string
}

// NewServer creates a new MCP server with all lintfang tools registered.
func NewServer(deps ServerDeps) *Server {
	opts := &mcpsdk.ServerOptions{}
	if deps.Logger != nil {
		opts.Logger = deps.Logger
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    serverName,
			Version: serverVersion,
		},
		opts,
	)

	srv := &Server{
		inner:   inner,
		engine:  deps.Engine,
		config:  deps.Config,
		metrics: deps.Metrics,
		tools:   make([]string, 0, toolCount),
	}

	srv.registerTools()

	return srv
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.tools))
	copy(names, s.tools)
	sort.Strings(names)

	return names
}

// Run starts the MCP server on stdio transport. It blocks until the context
// is canceled or the connection closes.
func (s *Server) Run(ctx context.Context) error {
	err := s.inner.Run(ctx, &mcpsdk.StdioTransport{})
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// RunWithTransport starts the MCP server on the given transport. It blocks
// until the context is canceled or the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	err := s.inner.Run(ctx, transport)
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// registerTools adds all lintfang MCP tools to the server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameLint,
		Description: lintToolDescription,
	}, s.handleLint)
	s.trackTool(ToolNameLint)

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameFix,
		Description: fixToolDescription,
	}, s.handleFix)
	s.trackTool(ToolNameFix)

	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        ToolNameRules,
		Description: rulesToolDescription,
	}, s.handleRules)
	s.trackTool(ToolNameRules)
}

func (s *Server) trackTool(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools = append(s.tools, name)
}
