package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/ylchen07/confluence-request/internal/config"
	"github.com/ylchen07/confluence-request/internal/confluence"
	"github.com/ylchen07/confluence-request/internal/output"
	"github.com/ylchen07/confluence-request/pkg/logging"
)

// app carries state shared by every command.
type app struct {
	cfgPath string
	jq      string
	fail    bool

	stdin io.Reader
	// transport overrides the base round tripper; tests point it at a fake.
	transport http.RoundTripper
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "confluence-request",
		Short:         "Send authenticated requests to the Confluence Cloud REST API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "Path to configuration directory or file")
	flags.String("domain", "", "Confluence site name, as in https://<domain>.atlassian.net")
	flags.String("username", "", "Account email used for basic auth")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&a.jq, "jq", "", "jq expression applied to the {statusCode, content} result")
	flags.BoolVar(&a.fail, "fail", false, "Exit non-zero when Confluence answers with a non-2xx status")

	root.AddCommand(
		newRequestCmd(a),
		newPageCmd(a),
		newSpaceCmd(a),
		newServeCmd(a),
		newAuthCmd(a),
	)

	return root
}

// session is a loaded configuration plus the logger built from it.
type session struct {
	conn   confluence.Connection
	logger *slog.Logger
}

func (a *app) load(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(a.cfgPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	conn := cfg.Confluence.Connection()
	conn.Transport = a.transport

	return &session{
		conn:   conn,
		logger: logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Server.LogLevel),
	}, nil
}

// run executes op and prints the result.
func (a *app) run(cmd *cobra.Command, op confluence.Operation) error {
	s, err := a.load(cmd)
	if err != nil {
		return err
	}

	kind := slog.String("operation", string(op.Kind()))
	s.logger.Debug("sending confluence request", kind, slog.String("domain", s.conn.Domain))

	res, err := confluence.Request(cmd.Context(), confluence.Input{Connection: s.conn, Operation: op})
	if err != nil {
		s.logger.Error("confluence request failed", kind, slog.Any("error", err))
		return err
	}

	s.logger.Debug("confluence request finished", kind, slog.Int("status", res.StatusCode))

	if err := output.Write(cmd.OutOrStdout(), res, a.jq); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if a.fail {
		return res.Err()
	}
	return nil
}
