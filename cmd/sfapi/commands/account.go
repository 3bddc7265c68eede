package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

type fetchFunc func(ctx context.Context, client sfapi.Client) (*sfapi.Response, error)

// NewCountriesCommand lists the countries known to the API.
func NewCountriesCommand() *cobra.Command {
	return newReferenceCommand("countries", "List countries and their IDs",
		func(ctx context.Context, client sfapi.Client) (*sfapi.Response, error) {
			return client.Countries().GetAll(ctx)
		})
}

// NewCompaniesCommand lists the companies the account can act for.
func NewCompaniesCommand() *cobra.Command {
	return newReferenceCommand("companies", "List companies of the account",
		func(ctx context.Context, client sfapi.Client) (*sfapi.Response, error) {
			return client.Companies().GetAll(ctx)
		})
}

// NewBankAccountsCommand lists bank accounts.
func NewBankAccountsCommand() *cobra.Command {
	return newReferenceCommand("bank-accounts", "List bank accounts",
		func(ctx context.Context, client sfapi.Client) (*sfapi.Response, error) {
			return client.BankAccounts().GetAll(ctx)
		})
}

// NewCashRegistersCommand lists cash registers.
func NewCashRegistersCommand() *cobra.Command {
	return newReferenceCommand("cash-registers", "List cash registers",
		func(ctx context.Context, client sfapi.Client) (*sfapi.Response, error) {
			return client.CashRegisters().GetAll(ctx)
		})
}

// newReferenceCommand builds a command printing one unfiltered collection.
func newReferenceCommand(use, short string, fetch fetchFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cleanup, err := CreateClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := fetch(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", use, err)
			}

			return renderKeyValues(cmd.OutOrStdout(), resp)
		},
	}
}
