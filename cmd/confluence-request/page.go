package main

import (
	"github.com/spf13/cobra"

	"github.com/ylchen07/confluence-request/internal/confluence"
)

func newPageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Create, update, fetch, find and delete pages",
	}

	cmd.AddCommand(
		newPageCreateCmd(a),
		newPageUpdateCmd(a),
		&cobra.Command{
			Use:   "get PAGE_ID",
			Short: "Fetch a page by id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, confluence.GetPageByID{PageID: args[0]})
			},
		},
		&cobra.Command{
			Use:   "delete PAGE_ID",
			Short: "Delete a page by id",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, confluence.DeletePage{PageID: args[0]})
			},
		},
		newPageFindCmd(a),
	)

	return cmd
}

func newPageCreateCmd(a *app) *cobra.Command {
	var op confluence.CreatePage
	var bodyFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a page in a space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bodyFile != "" {
				body, err := readBody(a.stdin, bodyFile)
				if err != nil {
					return err
				}
				op.Body = body
			}
			return a.run(cmd, op)
		},
	}

	cmd.Flags().StringVar(&op.SpaceID, "space-id", "", "Numeric id of the space")
	cmd.Flags().StringVar(&op.Title, "title", "", "Page title")
	cmd.Flags().StringVar(&op.Body, "body", "", "Page body in storage format")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the page body from a file, or - for stdin")
	_ = cmd.MarkFlagRequired("space-id")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newPageUpdateCmd(a *app) *cobra.Command {
	var op confluence.UpdatePage
	var bodyFile string

	cmd := &cobra.Command{
		Use:   "update PAGE_ID",
		Short: "Replace a page's title and body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op.PageID = args[0]
			if bodyFile != "" {
				body, err := readBody(a.stdin, bodyFile)
				if err != nil {
					return err
				}
				op.Body = body
			}
			return a.run(cmd, op)
		},
	}

	cmd.Flags().StringVar(&op.Title, "title", "", "Page title")
	cmd.Flags().StringVar(&op.Body, "body", "", "Page body in storage format")
	cmd.Flags().StringVar(&bodyFile, "body-file", "", "Read the page body from a file, or - for stdin")
	cmd.Flags().IntVar(&op.Version, "version", 0, "New version number (current version + 1)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func newPageFindCmd(a *app) *cobra.Command {
	var op confluence.GetPageByTitle

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find pages by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, op)
		},
	}

	cmd.Flags().StringVar(&op.Title, "title", "", "Exact page title")
	cmd.Flags().StringVar(&op.SpaceKey, "space-key", "", "Restrict the search to a space")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
