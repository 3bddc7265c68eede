package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const stockItemEntity = "StockItem"

var stockItemColumns = []column{
	{header: "ID", field: "id"},
	{header: "SKU", field: "sku"},
	{header: "Name", field: "name"},
	{header: "Price", field: "unit_price"},
	{header: "VAT", field: "vat"},
	{header: "In Stock", field: "stock"},
}

// NewStockCommand creates the stock command group.
func NewStockCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stock",
		Aliases: []string{"stock-items"},
		Short:   "Manage stock items",
		Long:    "List stock items and inspect their movements",
	}

	cmd.AddCommand(newStockListCommand())
	cmd.AddCommand(newStockGetCommand())
	cmd.AddCommand(newStockMovementsCommand())

	return cmd
}

func newStockListCommand() *cobra.Command {
	var (
		list      listFlags
		search    string
		sku       string
		priceFrom string
		priceTo   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stock items",
		RunE: func(cmd *cobra.Command, args []string) error {
			pagination, sort, err := list.build()
			if err != nil {
				return err
			}

			query := &sfapi.StockItemQuery{
				Pagination: pagination,
				Sort:       sort,
				Search:     search,
				SKU:        sku,
			}

			query.PriceFrom, err = parseDecimal(priceFrom)
			if err != nil {
				return fmt.Errorf("--price-from: %w", err)
			}

			query.PriceTo, err = parseDecimal(priceTo)
			if err != nil {
				return fmt.Errorf("--price-to: %w", err)
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.StockItems().GetAll(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("failed to list stock items: %w", err)
			}

			return renderList(cmd.OutOrStdout(), resp, stockItemEntity, stockItemColumns)
		},
	}

	list.register(cmd)
	cmd.Flags().StringVar(&search, "search", "", "full text search")
	cmd.Flags().StringVar(&sku, "sku", "", "exact SKU")
	cmd.Flags().StringVar(&priceFrom, "price-from", "", "minimum unit price")
	cmd.Flags().StringVar(&priceTo, "price-to", "", "maximum unit price")

	return cmd
}

func newStockGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get stock item details",
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

			resp, err := client.StockItems().GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get stock item: %w", err)
			}

			return renderEntity(cmd.OutOrStdout(), resp, stockItemEntity)
		},
	}
}

func newStockMovementsCommand() *cobra.Command {
	var (
		list    listFlags
		created = newPeriodFlags("created")
	)

	cmd := &cobra.Command{
		Use:   "movements ID",
		Short: "List movements of a stock item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			pagination, sort, err := list.build()
			if err != nil {
				return err
			}

			query := &sfapi.StockMovementQuery{Pagination: pagination, Sort: sort}

			query.Created, err = created.build()
			if err != nil {
				return err
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.StockMovements().GetAll(cmd.Context(), id, query)
			if err != nil {
				return fmt.Errorf("failed to list stock movements: %w", err)
			}

			return renderList(cmd.OutOrStdout(), resp, "StockLog", []column{
				{header: "ID", field: "id"},
				{header: "Quantity", field: "quantity"},
				{header: "Note", field: "note"},
				{header: "Created", field: "created"},
			})
		},
	}

	list.register(cmd)
	created.register(cmd)

	return cmd
}
