package mcp

import (
	"context"
	"log/slog"

	"github.com/ylchen07/confluence-request/internal/confluence"

	"github.com/mark3labs/mcp-go/server"
)

// Requester executes a single Confluence call. confluence.Request satisfies it.
type Requester func(ctx context.Context, in confluence.Input) (*confluence.Result, error)

// Dependencies bundles what the MCP server needs to reach Confluence.
type Dependencies struct {
	Connection confluence.Connection
	Request    Requester
	Logger     *slog.Logger
	Version    string
}

// NewServer builds an MCP server with the Confluence tools registered.
func NewServer(deps Dependencies) *server.MCPServer {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Version == "" {
		deps.Version = "dev"
	}

	srv := server.NewMCPServer(
		"Confluence Request",
		deps.Version,
		server.WithToolCapabilities(true),
		server.WithInstructions("Tools for Confluence Cloud pages, spaces and raw REST requests."),
		server.WithRecovery(),
	)

	NewConfluenceTools(srv, deps.Connection, deps.Request, deps.Logger)

	return srv
}
