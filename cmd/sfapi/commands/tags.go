package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewTagsCommand creates the tags command group.
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
		Long:    "List, create, rename and delete the tags used to label documents and clients",
	}

	cmd.AddCommand(newTagsListCommand())
	cmd.AddCommand(newTagsCreateCommand())
	cmd.AddCommand(newTagsRenameCommand())
	cmd.AddCommand(newTagsDeleteCommand())

	return cmd
}

func newTagsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Tags().GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list tags: %w", err)
			}

			return renderKeyValues(cmd.OutOrStdout(), resp)
		},
	}
}

func newTagsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Tags().Create(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create tag: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, fmt.Sprintf("Created tag %q", args[0]))
		},
	}
}

func newTagsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2), //nolint:mnd // id and name
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Tags().Update(cmd.Context(), id, args[1])
			if err != nil {
				return fmt.Errorf("failed to rename tag: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, fmt.Sprintf("Renamed tag %d to %q", id, args[1]))
		},
	}
}

func newTagsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a tag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Tags().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete tag: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, "Deleted tag "+strconv.Itoa(id))
		},
	}
}
