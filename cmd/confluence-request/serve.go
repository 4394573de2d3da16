package main

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpserver "github.com/ylchen07/confluence-request/internal/mcp"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the Confluence operations as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.load(cmd)
			if err != nil {
				return err
			}

			srv := mcpserver.NewServer(mcpserver.Dependencies{
				Connection: s.conn,
				Logger:     s.logger,
				Version:    version,
			})

			s.logger.Info("serving MCP over stdio", slog.String("domain", s.conn.Domain))
			if err := server.ServeStdio(srv); err != nil {
				s.logger.Error("stdio server terminated", slog.Any("error", err))
				return err
			}
			return nil
		},
	}
}
