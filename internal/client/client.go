package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/sfapi/internal/auth"
	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/fivetwenty-io/sfapi/internal/http"
	"github.com/fivetwenty-io/sfapi/internal/response"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
	"github.com/rs/zerolog"
)

// Client implements the sfapi.Client interface. It holds no mutable state and
// may be shared between goroutines.
type Client struct {
	requester *requester

	// Resource clients
	invoices          *InvoicesClient
	invoicePayments   *InvoicePaymentsClient
	expenses          *ExpensesClient
	expensePayments   *ExpensePaymentsClient
	clients           *ClientsClient
	contacts          *ContactsClient
	stockItems        *StockItemsClient
	stockMovements    *StockMovementsClient
	tags              *TagsClient
	bankAccounts      *BankAccountsClient
	cashRegisters     *CashRegistersClient
	cashRegisterItems *CashRegisterItemsClient
	companies         *CompaniesClient
	countries         *CountriesClient
	relatedDocuments  *RelatedDocumentsClient
	exports           *ExportsClient
}

var _ sfapi.Client = (*Client)(nil)

// New creates a client from config. The Authorization header is computed once
// here.
func New(config *sfapi.Config) (*Client, error) {
	if config == nil {
		return nil, sfapi.ErrConfigRequired
	}

	err := config.Authorization.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating authorization: %w", err)
	}

	baseURL, err := normalizeBaseURL(config.BaseURL)
	if err != nil {
		return nil, err
	}

	responses, err := response.NewFactory()
	if err != nil {
		return nil, fmt.Errorf("creating response factory: %w", err)
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = constants.DefaultUserAgent + "/" + auth.LibraryVersion()
	}

	doer := config.HTTPClient
	if doer == nil {
		doer = http.NewClient(createHTTPClientOptions(config, logger)...)
	}

	var requestFactory sfapi.RequestFactory = http.RequestFactory{}
	if config.RequestFactory != nil {
		requestFactory = config.RequestFactory
	}

	client := &Client{
		requester: &requester{
			doer:           doer,
			requestFactory: requestFactory,
			responses:      responses,
			baseURL:        baseURL,
			authHeader:     auth.BuildHeader(config.Authorization),
			userAgent:      userAgent,
			logger:         logger,
			observer:       config.RateLimitObserver,
		},
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *sfapi.Config, logger zerolog.Logger) []http.Option {
	httpOpts := []http.Option{http.WithLogger(logger)}

	if logger.GetLevel() <= zerolog.DebugLevel && config.Logger != nil {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	return httpOpts
}

func normalizeBaseURL(baseURL string) (string, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = sfapi.DefaultBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", sfapi.ErrBaseURLRequired, baseURL)
	}

	return baseURL, nil
}

func (c *Client) initializeResourceClients() {
	c.invoices = newInvoicesClient(c.requester)
	c.invoicePayments = newInvoicePaymentsClient(c.requester)
	c.expenses = newExpensesClient(c.requester)
	c.expensePayments = newExpensePaymentsClient(c.requester)
	c.clients = newClientsClient(c.requester)
	c.contacts = newContactsClient(c.requester)
	c.stockItems = newStockItemsClient(c.requester)
	c.stockMovements = newStockMovementsClient(c.requester)
	c.tags = newTagsClient(c.requester)
	c.bankAccounts = newBankAccountsClient(c.requester)
	c.cashRegisters = newCashRegistersClient(c.requester)
	c.cashRegisterItems = newCashRegisterItemsClient(c.requester)
	c.companies = newCompaniesClient(c.requester)
	c.countries = newCountriesClient(c.requester)
	c.relatedDocuments = newRelatedDocumentsClient(c.requester)
	c.exports = newExportsClient(c.requester)
}

// Invoices implements sfapi.Client.Invoices.
func (c *Client) Invoices() sfapi.InvoicesClient {
	return c.invoices
}

// InvoicePayments implements sfapi.Client.InvoicePayments.
func (c *Client) InvoicePayments() sfapi.InvoicePaymentsClient {
	return c.invoicePayments
}

// Expenses implements sfapi.Client.Expenses.
func (c *Client) Expenses() sfapi.ExpensesClient {
	return c.expenses
}

// ExpensePayments implements sfapi.Client.ExpensePayments.
func (c *Client) ExpensePayments() sfapi.ExpensePaymentsClient {
	return c.expensePayments
}

// Clients implements sfapi.Client.Clients.
func (c *Client) Clients() sfapi.ClientsClient {
	return c.clients
}

// Contacts implements sfapi.Client.Contacts.
func (c *Client) Contacts() sfapi.ContactsClient {
	return c.contacts
}

// StockItems implements sfapi.Client.StockItems.
func (c *Client) StockItems() sfapi.StockItemsClient {
	return c.stockItems
}

// StockMovements implements sfapi.Client.StockMovements.
func (c *Client) StockMovements() sfapi.StockMovementsClient {
	return c.stockMovements
}

// Tags implements sfapi.Client.Tags.
func (c *Client) Tags() sfapi.TagsClient {
	return c.tags
}

// BankAccounts implements sfapi.Client.BankAccounts.
func (c *Client) BankAccounts() sfapi.BankAccountsClient {
	return c.bankAccounts
}

// CashRegisters implements sfapi.Client.CashRegisters.
func (c *Client) CashRegisters() sfapi.CashRegistersClient {
	return c.cashRegisters
}

// CashRegisterItems implements sfapi.Client.CashRegisterItems.
func (c *Client) CashRegisterItems() sfapi.CashRegisterItemsClient {
	return c.cashRegisterItems
}

// Companies implements sfapi.Client.Companies.
func (c *Client) Companies() sfapi.CompaniesClient {
	return c.companies
}

// Countries implements sfapi.Client.Countries.
func (c *Client) Countries() sfapi.CountriesClient {
	return c.countries
}

// RelatedDocuments implements sfapi.Client.RelatedDocuments.
func (c *Client) RelatedDocuments() sfapi.RelatedDocumentsClient {
	return c.relatedDocuments
}

// Exports implements sfapi.Client.Exports.
func (c *Client) Exports() sfapi.ExportsClient {
	return c.exports
}
