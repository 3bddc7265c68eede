package sfapi

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Service endpoints.
const (
	BaseURLSlovakia        = "https://moja.superfaktura.sk"
	BaseURLSlovakiaSandbox = "https://sandbox.superfaktura.sk"
	BaseURLCzechia         = "https://moje.superfaktura.cz"
	BaseURLCzechiaSandbox  = "https://sandbox.superfaktura.cz"
	BaseURLAustria         = "https://meine.superfaktura.at"
	DefaultBaseURL         = BaseURLSlovakia
)

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestFactory creates outbound requests. Headers and bodies are attached by
// the resource clients.
type RequestFactory interface {
	NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error)
}

// RateLimitObserver is notified with the rate limits of every decoded response.
type RateLimitObserver interface {
	ObserveRateLimits(ctx context.Context, daily, monthly *RateLimit)
}

// Config represents client configuration for building a Client.
//
// Only Authorization is required. HTTPClient and RequestFactory default to the
// built-in retry-free transport; Timeout is only honoured by that default.
type Config struct {
	Authorization Authorization

	BaseURL        string
	HTTPClient     Doer
	RequestFactory RequestFactory
	Logger         *zerolog.Logger
	UserAgent      string
	Timeout        time.Duration

	RateLimitObserver RateLimitObserver
}

// InvoicesClient manages invoices.
type InvoicesClient interface {
	GetByID(ctx context.Context, id int) (*Response, error)
	GetByIDs(ctx context.Context, ids []int) (*Response, error)
	GetAll(ctx context.Context, query *InvoiceQuery) (*Response, error)
	Create(ctx context.Context, data InvoiceData) (*Response, error)
	Update(ctx context.Context, id int, data InvoiceData) (*Response, error)
	Delete(ctx context.Context, id int) (*Response, error)
	DeleteItems(ctx context.Context, invoiceID int, itemIDs []int) (*Response, error)
	ChangeLanguage(ctx context.Context, id int, language Language) (*Response, error)
	MarkAsSent(ctx context.Context, id int) (*Response, error)
	MarkAsSentViaEmail(ctx context.Context, id int, email InvoiceEmail) (*Response, error)
	SendViaEmail(ctx context.Context, id int, email InvoiceEmail) (*Response, error)
	SendViaPostOffice(ctx context.Context, id int, address PostalAddress) (*Response, error)
	DownloadPDF(ctx context.Context, id int, language Language) (*BinaryResponse, error)
}

// InvoicePaymentsClient records invoice payments.
type InvoicePaymentsClient interface {
	Pay(ctx context.Context, invoiceID int, payment InvoicePayment) (*Response, error)
	MarkAsWillNotBePaid(ctx context.Context, invoiceID int) (*Response, error)
	Delete(ctx context.Context, paymentID int) (*Response, error)
}

// ExpensesClient manages expenses.
type ExpensesClient interface {
	GetByID(ctx context.Context, id int) (*Response, error)
	GetAll(ctx context.Context, query *ExpenseQuery) (*Response, error)
	GetAllCategories(ctx context.Context) (*Response, error)
	Create(ctx context.Context, data ExpenseData) (*Response, error)
	Update(ctx context.Context, id int, data ExpenseData) (*Response, error)
	Delete(ctx context.Context, id int) (*Response, error)
}

// ExpensePaymentsClient records expense payments.
type ExpensePaymentsClient interface {
	Pay(ctx context.Context, expenseID int, payment ExpensePayment) (*Response, error)
	Delete(ctx context.Context, paymentID int) (*Response, error)
}

// ClientsClient manages the address book.
type ClientsClient interface {
	GetByID(ctx context.Context, id int) (*Response, error)
	GetAll(ctx context.Context, query *ClientQuery) (*Response, error)
	Create(ctx context.Context, client Fields) (*Response, error)
	Update(ctx context.Context, id int, client Fields) (*Response, error)
	Delete(ctx context.Context, id int) (*Response, error)
}

// ContactsClient manages contact persons of a client.
type ContactsClient interface {
	Create(ctx context.Context, clientID int, contact Fields) (*Response, error)
	GetAllByClientID(ctx context.Context, clientID int) (*Response, error)
	Delete(ctx context.Context, id int) (*Response, error)
}

// StockItemsClient manages stock items.
type StockItemsClient interface {
	GetByID(ctx context.Context, id int) (*Response, error)
	GetAll(ctx context.Context, query *StockItemQuery) (*Response, error)
	Create(ctx context.Context, item Fields) (*Response, error)
	Update(ctx context.Context, id int, item Fields) (*Response, error)
	Delete(ctx context.Context, id int) (*Response, error)
}

// StockMovementsClient records stock movements.
type StockMovementsClient interface {
	Create(ctx context.Context, stockItemID int, movements []Fields) (*Response, error)
	CreateWithSKU(ctx context.Context, sku string, movements []Fields) (*Response, error)
	GetAll(ctx context.Context, stockItemID int, query *StockMovementQuery) (*Response, error)
}

// TagsClient manages tags.
type TagsClient interface {
	GetAll(ctx context.Context) (*Response, error)
	Create(ctx context.Context, name string) (*Response, error)
	Update(ctx context.Context, id int, name string) (*Response, error)
	Delete(ctx context.Context, id int) (*Response, error)
}

// BankAccountsClient manages bank accounts.
type BankAccountsClient interface {
	GetAll(ctx context.Context) (*Response, error)
	Create(ctx context.Context, account Fields) (*Response, error)
	Update(ctx context.Context, id int, account Fields) (*Response, error)
	Delete(ctx context.Context, id int) (*Response, error)
}

// CashRegistersClient reads cash registers.
type CashRegistersClient interface {
	GetAll(ctx context.Context) (*Response, error)
	GetByID(ctx context.Context, id int) (*Response, error)
}

// CashRegisterItemsClient manages the items of a cash register.
type CashRegisterItemsClient interface {
	Create(ctx context.Context, cashRegisterID int, item Fields) (*Response, error)
	GetAll(ctx context.Context, cashRegisterID int, query *CashRegisterItemQuery) (*Response, error)
	Delete(ctx context.Context, id int) (*Response, error)
}

// CompaniesClient lists the companies the credentials have access to.
type CompaniesClient interface {
	GetAll(ctx context.Context) (*Response, error)
}

// CountriesClient lists countries known to the API.
type CountriesClient interface {
	GetAll(ctx context.Context) (*Response, error)
}

// RelatedDocumentsClient links documents together.
type RelatedDocumentsClient interface {
	Link(ctx context.Context, link RelatedDocumentLink) (*Response, error)
	Unlink(ctx context.Context, relationID int) (*Response, error)
}

// ExportsClient runs bulk exports.
type ExportsClient interface {
	Export(ctx context.Context, request ExportRequest) (*Response, error)
	GetStatus(ctx context.Context, id int) (*Response, error)
	Download(ctx context.Context, id int) (*BinaryResponse, error)
}

// DocumentClients provides access to sales and purchase documents.
type DocumentClients interface {
	Invoices() InvoicesClient
	InvoicePayments() InvoicePaymentsClient
	Expenses() ExpensesClient
	ExpensePayments() ExpensePaymentsClient
	RelatedDocuments() RelatedDocumentsClient
	Exports() ExportsClient
}

// DirectoryClients provides access to clients, contacts and tags.
type DirectoryClients interface {
	Clients() ClientsClient
	Contacts() ContactsClient
	Tags() TagsClient
}

// InventoryClients provides access to stock.
type InventoryClients interface {
	StockItems() StockItemsClient
	StockMovements() StockMovementsClient
}

// AccountClients provides access to account level resources.
type AccountClients interface {
	BankAccounts() BankAccountsClient
	CashRegisters() CashRegistersClient
	CashRegisterItems() CashRegisterItemsClient
	Companies() CompaniesClient
	Countries() CountriesClient
}

// Client is the SuperFaktura API facade.
type Client interface {
	DocumentClients
	DirectoryClients
	InventoryClients
	AccountClients
}
