package main

import (
	"github.com/spf13/cobra"

	"github.com/ylchen07/confluence-request/internal/confluence"
)

func newSpaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "space",
		Short: "Create, find and delete spaces",
	}

	var create confluence.CreateSpace
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, create)
		},
	}
	createCmd.Flags().StringVar(&create.Key, "key", "", "Space key")
	createCmd.Flags().StringVar(&create.Name, "name", "", "Space name")
	_ = createCmd.MarkFlagRequired("key")
	_ = createCmd.MarkFlagRequired("name")

	cmd.AddCommand(
		createCmd,
		&cobra.Command{
			Use:   "delete SPACE_KEY",
			Short: "Delete a space by key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, confluence.DeleteSpace{Key: args[0]})
			},
		},
		&cobra.Command{
			Use:   "find NAME",
			Short: "Find spaces by name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, confluence.GetSpaceByName{Name: args[0]})
			},
		},
	)

	return cmd
}
