package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subcommandNames(cmd *cobra.Command) []string {
	var names []string
	for _, subcmd := range cmd.Commands() {
		names = append(names, subcmd.Name())
	}

	return names
}

func TestNewInvoicesCommand(t *testing.T) {
	cmd := NewInvoicesCommand()
	assert.Equal(t, "invoices", cmd.Use)
	assert.Equal(t, []string{"invoice", "inv"}, cmd.Aliases)
	assert.Equal(t, "Manage invoices", cmd.Short)

	assert.ElementsMatch(t,
		[]string{"list", "get", "pdf", "delete", "language", "mark-sent", "send", "pay"},
		subcommandNames(cmd))
}

func TestInvoicesListCommand(t *testing.T) {
	cmd := newInvoicesListCommand()
	assert.Equal(t, "list", cmd.Use)
	assert.Equal(t, "List invoices", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	flags := []string{
		"page", "per-page", "sort", "direction", "search", "number", "type", "status",
		"client-id", "tag", "amount-from", "amount-to",
		"created", "created-from", "created-to", "paid", "paid-from", "paid-to",
	}
	for _, flagName := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	assert.Equal(t, "100", cmd.Flags().Lookup("per-page").DefValue)
	assert.Equal(t, "DESC", cmd.Flags().Lookup("direction").DefValue)
}

func TestInvoicesPDFCommand(t *testing.T) {
	cmd := newInvoicesPDFCommand()
	assert.Equal(t, "pdf ID", cmd.Use)
	assert.NotNil(t, cmd.Args)

	languageFlag := cmd.Flags().Lookup("language")
	require.NotNil(t, languageFlag)
	assert.Equal(t, "l", languageFlag.Shorthand)
	assert.Equal(t, "slo", languageFlag.DefValue)

	fileFlag := cmd.Flags().Lookup("file")
	require.NotNil(t, fileFlag)
	assert.Equal(t, "f", fileFlag.Shorthand)
}

func TestInvoicesSendCommand(t *testing.T) {
	cmd := newInvoicesSendCommand()
	assert.Equal(t, "send ID", cmd.Use)

	for _, flagName := range []string{"to", "cc", "bcc", "subject", "body", "language"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	annotations := cmd.Flags().Lookup("to").Annotations
	assert.Contains(t, annotations, cobra.BashCompOneRequiredFlag)
}

func TestNewExpensesCommand(t *testing.T) {
	cmd := NewExpensesCommand()
	assert.Equal(t, "expenses", cmd.Use)
	assert.Equal(t, "Manage expenses", cmd.Short)
	assert.ElementsMatch(t, []string{"list", "get", "categories", "delete", "pay"}, subcommandNames(cmd))

	list := findSubcommand(cmd, "list")
	require.NotNil(t, list)

	for _, flagName := range []string{"due", "due-from", "due-to", "category", "status"} {
		assert.NotNil(t, list.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}
}

func TestNewClientsCommand(t *testing.T) {
	cmd := NewClientsCommand()
	assert.Equal(t, "clients", cmd.Use)
	assert.ElementsMatch(t, []string{"list", "get", "delete", "contacts"}, subcommandNames(cmd))

	list := findSubcommand(cmd, "list")
	require.NotNil(t, list)
	assert.NotNil(t, list.Flags().Lookup("char"))
	assert.NotNil(t, list.Flags().Lookup("search"))
}

func TestNewTagsCommand(t *testing.T) {
	cmd := NewTagsCommand()
	assert.Equal(t, "tags", cmd.Use)
	assert.Equal(t, "Manage tags", cmd.Short)
	assert.ElementsMatch(t, []string{"list", "create", "rename", "delete"}, subcommandNames(cmd))
}

func TestNewStockCommand(t *testing.T) {
	cmd := NewStockCommand()
	assert.Equal(t, "stock", cmd.Use)
	assert.ElementsMatch(t, []string{"list", "get", "movements"}, subcommandNames(cmd))

	list := findSubcommand(cmd, "list")
	require.NotNil(t, list)

	for _, flagName := range []string{"sku", "price-from", "price-to"} {
		assert.NotNil(t, list.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}
}

func TestNewExportsCommand(t *testing.T) {
	cmd := NewExportsCommand()
	assert.Equal(t, "exports", cmd.Use)
	assert.ElementsMatch(t, []string{"create", "status", "download"}, subcommandNames(cmd))

	create := findSubcommand(cmd, "create")
	require.NotNil(t, create)
	assert.Equal(t, "pdf", create.Flags().Lookup("format").DefValue)
	assert.Equal(t, "false", create.Flags().Lookup("merge").DefValue)
}

func TestReferenceCommands(t *testing.T) {
	tests := []struct {
		cmd *cobra.Command
		use string
	}{
		{NewCountriesCommand(), "countries"},
		{NewCompaniesCommand(), "companies"},
		{NewBankAccountsCommand(), "bank-accounts"},
		{NewCashRegistersCommand(), "cash-registers"},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotNil(t, tt.cmd.RunE)
			assert.Error(t, tt.cmd.Args(tt.cmd, []string{"extra"}))
		})
	}
}

func TestNewConfigCommand(t *testing.T) {
	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.ElementsMatch(t, []string{"show", "set", "unset"}, subcommandNames(cmd))
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "abc", "today")
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Display version information", cmd.Short)
}

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}
