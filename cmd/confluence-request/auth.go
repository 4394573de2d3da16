package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ylchen07/confluence-request/internal/config"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored credentials",
	}

	var token string
	setToken := &cobra.Command{
		Use:   "set-token",
		Short: "Store the API token for --username in the system keyring",
		Long: "Store the API token for the configured username in the system keyring.\n" +
			"The token is read from --token or, when omitted, from the first line of stdin.\n" +
			"Set CONFLUENCE_USE_KEYRING=true to have later commands pick it up.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read(a.cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			username := cfg.Confluence.Username
			if username == "" {
				return errors.New("auth: a username is required (--username or CONFLUENCE_USERNAME)")
			}

			if token == "" {
				token, err = readLine(a.stdin)
				if err != nil {
					return err
				}
			}

			if err := config.StoreToken(username, token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "stored API token for %s\n", username)
			return nil
		},
	}
	setToken.Flags().StringVar(&token, "token", "", "API token; read from stdin when omitted")

	cmd.AddCommand(setToken)
	return cmd
}

func readLine(r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("auth: no token given")
	}
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("auth: read token: %w", err)
		}
		return "", errors.New("auth: no token given")
	}
	return strings.TrimSpace(sc.Text()), nil
}
