package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const expenseEntity = "Expense"

var expenseColumns = []column{
	{header: "ID", field: "id"},
	{header: "Name", field: "name"},
	{header: "Type", field: "type"},
	{header: "Total", field: "amount"},
	{header: "Currency", field: "currency"},
	{header: "Status", field: "status"},
	{header: "Due", field: "due"},
}

// NewExpensesCommand creates the expenses command group.
func NewExpensesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense", "exp"},
		Short:   "Manage expenses",
		Long:    "List and inspect expenses and record their payments",
	}

	cmd.AddCommand(newExpensesListCommand())
	cmd.AddCommand(newExpensesGetCommand())
	cmd.AddCommand(newExpensesCategoriesCommand())
	cmd.AddCommand(newExpensesDeleteCommand())
	cmd.AddCommand(newExpensesPayCommand())

	return cmd
}

type expenseListOptions struct {
	list     listFlags
	created  *periodFlags
	due      *periodFlags
	search   string
	typ      string
	statuses []int
	category int
	clientID int
}

func newExpensesListCommand() *cobra.Command {
	opts := &expenseListOptions{
		created: newPeriodFlags("created"),
		due:     newPeriodFlags("due"),
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpensesListCommand(cmd, opts)
		},
	}

	opts.list.register(cmd)
	opts.created.register(cmd)
	opts.due.register(cmd)
	cmd.Flags().StringVar(&opts.search, "search", "", "full text search")
	cmd.Flags().StringVar(&opts.typ, "type", "", "expense type (invoice, bill, internal, contribution)")
	cmd.Flags().IntSliceVar(&opts.statuses, "status", nil, "expense status (1 new, 2 partially paid, 3 paid, 99 overdue)")
	cmd.Flags().IntVar(&opts.category, "category", 0, "only expenses in this category")
	cmd.Flags().IntVar(&opts.clientID, "client-id", 0, "only expenses of this supplier")

	return cmd
}

func runExpensesListCommand(cmd *cobra.Command, opts *expenseListOptions) error {
	pagination, sort, err := opts.list.build()
	if err != nil {
		return err
	}

	query := &sfapi.ExpenseQuery{
		Pagination: pagination,
		Sort:       sort,
		Search:     opts.search,
		Type:       sfapi.ExpenseType(strings.ToLower(opts.typ)),
		Category:   optionalID(cmd, "category", opts.category),
		ClientID:   optionalID(cmd, "client-id", opts.clientID),
	}

	if query.Type != "" && !query.Type.IsValid() {
		return fmt.Errorf("%w: unknown expense type %q", sfapi.ErrInvalidArgument, opts.typ)
	}

	for _, status := range opts.statuses {
		expenseStatus := sfapi.ExpenseStatus(status)
		if !expenseStatus.IsValid() {
			return fmt.Errorf("%w: unknown expense status %d", sfapi.ErrInvalidArgument, status)
		}

		query.Statuses = append(query.Statuses, expenseStatus)
	}

	query.Created, err = opts.created.build()
	if err != nil {
		return err
	}

	query.Due, err = opts.due.build()
	if err != nil {
		return err
	}

	client, cleanup, err := CreateClient(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := client.Expenses().GetAll(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to list expenses: %w", err)
	}

	return renderList(cmd.OutOrStdout(), resp, expenseEntity, expenseColumns)
}

func newExpensesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get expense details",
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

			resp, err := client.Expenses().GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get expense: %w", err)
			}

			return renderEntity(cmd.OutOrStdout(), resp, expenseEntity)
		},
	}
}

func newExpensesCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List expense categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.Expenses().GetAllCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list expense categories: %w", err)
			}

			return renderKeyValues(cmd.OutOrStdout(), resp)
		},
	}
}

func newExpensesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
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

			resp, err := client.Expenses().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, "Deleted expense "+strconv.Itoa(id))
		},
	}
}

func newExpensesPayCommand() *cobra.Command {
	var (
		amount      string
		paymentType string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "pay ID",
		Short: "Record a payment of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var payment sfapi.ExpensePayment

			payment.Amount, err = parseDecimal(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}

			payment.PaidOn, err = parseDate(date)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}

			if paymentType != "" {
				payment.PaymentType, err = sfapi.ParsePaymentType(paymentType)
				if err != nil {
					return err
				}
			}

			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := client.ExpensePayments().Pay(cmd.Context(), id, payment)
			if err != nil {
				return fmt.Errorf("failed to pay expense: %w", err)
			}

			return renderMessage(cmd.OutOrStdout(), resp, fmt.Sprintf("Payment recorded for expense %d", id))
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "paid amount")
	cmd.Flags().StringVar(&paymentType, "type", "", "payment type (transfer, cash, card, ...)")
	cmd.Flags().StringVar(&date, "date", "", "payment date (YYYY-MM-DD)")

	return cmd
}
