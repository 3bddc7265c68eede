package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const clientEntity = "Client"

var clientColumns = []column{
	{header: "ID", field: "id"},
	{header: "Name", field: "name"},
	{header: "ICO", field: "ico"},
	{header: "E-mail", field: "email"},
	{header: "City", field: "city"},
	{header: "Country", field: "country"},
}

// NewClientsCommand creates the clients command group.
func NewClientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client"},
		Short:   "Manage clients",
		Long:    "List and inspect clients and their contact people",
	}

	cmd.AddCommand(newClientsListCommand())
	cmd.AddCommand(newClientsGetCommand())
	cmd.AddCommand(newClientsDeleteCommand())
	cmd.AddCommand(newClientsContactsCommand())

	return cmd
}

func newClientsListCommand() *cobra.Command {
	var (
		list       listFlags
		created    = newPeriodFlags("created")
		search     string
		charFilter string
		tag        int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			pagination, sort, err := list.build()
			if err != nil {
				return err
			}

			query := &sfapi.ClientQuery{
				Pagination: pagination,
				Sort:       sort,
				Search:     search,
				CharFilter: charFilter,
				Tag:        optionalID(cmd, "tag", tag),
			}

			query.Created, err = created.build()
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Clients().GetAll(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			return renderList(cmd.OutOrStdout(), resp, clientEntity, clientColumns)
		},
	}

	list.register(cmd)
	created.register(cmd)
	cmd.Flags().StringVar(&search, "search", "", "full text search")
	cmd.Flags().StringVar(&charFilter, "char", "", "only clients whose name starts with this letter")
	cmd.Flags().IntVar(&tag, "tag", 0, "only clients with this tag")

	return cmd
}

func newClientsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get client details",
		Args:  cobra.ExactArgs(1),
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

			resp, err := client.Clients().GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get client: %w", err)
			}

			return renderEntity(cmd.OutOrStdout(), resp, clientEntity)
		},
	}
}

func newClientsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a client",
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

			resp, err := client.Clients().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete client: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, "Deleted client "+strconv.Itoa(id))
		},
	}
}

func newClientsContactsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contacts CLIENT_ID",
		Short: "List contact people of a client",
		Args:  cobra.ExactArgs(1),
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

			resp, err := client.Contacts().GetAllByClientID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}

			return renderKeyValues(cmd.OutOrStdout(), resp)
		},
	}
}
