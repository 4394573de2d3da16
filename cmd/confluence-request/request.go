package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ylchen07/confluence-request/internal/confluence"
)

func newRequestCmd(a *app) *cobra.Command {
	var (
		apiVersion string
		params     []string
		body       string
		bodyFile   string
	)

	cmd := &cobra.Command{
		Use:   "request METHOD SUFFIX",
		Short: "Send a raw request, e.g. request GET /pages --api v2 --param limit=5",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := confluence.ParseAPIVersion(apiVersion)
			if err != nil {
				return err
			}

			query, err := parseParams(params)
			if err != nil {
				return err
			}

			if body != "" && bodyFile != "" {
				return fmt.Errorf("--body and --body-file are mutually exclusive")
			}
			if bodyFile != "" {
				body, err = readBody(a.stdin, bodyFile)
				if err != nil {
					return err
				}
			}

			return a.run(cmd, confluence.CustomRequest{
				Version: version,
				Method:  confluence.Method(strings.ToUpper(args[0])),
				Suffix:  args[1],
				Query:   query,
				Body:    body,
			})
		},
	}

	cmd.Flags().StringVar(&apiVersion, "api", "v2", "API version: v1 (/wiki/rest/api/) or v2 (/wiki/api/v2/)")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Query parameter as key=value; repeatable, the value is sent as given")
	cmd.Flags().StringVar(&body, "body", "", "JSON request body")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the JSON request body from a file, or - for stdin")

	return cmd
}

// parseParams splits each key=value entry on its first '='. The value is
// kept verbatim, so it may contain '=', commas or quotes.
func parseParams(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	query := make(map[string]string, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --param %q: want key=value", entry)
		}
		query[key] = value
	}
	return query, nil
}

func readBody(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read body from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read body file: %w", err)
	}
	return string(data), nil
}
