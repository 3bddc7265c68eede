package sfapi

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the date layout the API uses in payloads and filters.
const DateFormat = "2006-01-02"

// InvoiceData groups the sections of an invoice create or update call.
// Empty sections are left out of the request body.
type InvoiceData struct {
	Invoice  Fields
	Items    []Fields
	Client   Fields
	Settings Fields
	Extra    Fields
	MyData   Fields
	Tags     []int
}

// ExpenseData groups the sections of an expense create or update call.
type ExpenseData struct {
	Expense Fields
	Items   []Fields
	Client  Fields
	Extra   Fields
	MyData  Fields
	Tags    []int
}

// InvoicePayment records a payment against an invoice. Nil fields are not sent
// and the API applies its own defaults (full amount, today, invoice currency).
type InvoicePayment struct {
	Amount         *decimal.Decimal
	Currency       Currency
	PaymentType    PaymentType
	PaidOn         *time.Time
	CashRegisterID *int
	DocumentNumber string
}

// Fields renders the payment for invoiceID, omitting unset values.
func (p InvoicePayment) Fields(invoiceID int) Fields {
	fields := Fields{"invoice_id": invoiceID}

	if p.Amount != nil {
		fields["amount"] = json.Number(p.Amount.String())
	}

	if p.Currency != "" {
		fields["currency"] = string(p.Currency)
	}

	if p.PaymentType != "" {
		fields["payment_type"] = string(p.PaymentType)
	}

	if p.PaidOn != nil {
		fields["created"] = p.PaidOn.Format(DateFormat)
	}

	if p.CashRegisterID != nil {
		fields["cash_register_id"] = *p.CashRegisterID
	}

	if p.DocumentNumber != "" {
		fields["document_number"] = p.DocumentNumber
	}

	return fields
}

// ExpensePayment records a payment of an expense.
type ExpensePayment struct {
	Amount      *decimal.Decimal
	Currency    Currency
	PaymentType PaymentType
	PaidOn      *time.Time
}

// Fields renders the payment for expenseID, omitting unset values.
func (p ExpensePayment) Fields(expenseID int) Fields {
	fields := Fields{"expense_id": expenseID}

	if p.Amount != nil {
		fields["amount"] = json.Number(p.Amount.String())
	}

	if p.Currency != "" {
		fields["currency"] = string(p.Currency)
	}

	if p.PaymentType != "" {
		fields["payment_type"] = string(p.PaymentType)
	}

	if p.PaidOn != nil {
		fields["created"] = p.PaidOn.Format(DateFormat)
	}

	return fields
}

// InvoiceEmail describes an e-mail sending an invoice, or an e-mail the invoice
// was already sent with when marking it as sent.
type InvoiceEmail struct {
	To          string
	CC          []string
	BCC         []string
	Subject     string
	Body        string
	PDFLanguage Language
}

// PostalAddress is the delivery address for sending an invoice by post. Empty
// fields fall back to the client address stored with the invoice.
type PostalAddress struct {
	Name      string
	Address   string
	City      string
	ZIP       string
	CountryID int
}

// ExportRequest asks for a bulk export of invoices.
type ExportRequest struct {
	InvoiceIDs []int
	Format     ExportFormat
	Language   Language
	// MergePDF produces a single PDF instead of an archive of files.
	MergePDF bool
}

// RelatedDocumentLink links two documents, e.g. an invoice and an expense.
type RelatedDocumentLink struct {
	ParentID   int
	ParentType DocumentType
	ChildID    int
	ChildType  DocumentType
}

// Validate checks that both ends of the link are set.
func (l RelatedDocumentLink) Validate() error {
	if l.ParentID <= 0 || l.ChildID <= 0 {
		return invalidArgument("related document ids must be positive")
	}

	if !l.ParentType.IsValid() || !l.ChildType.IsValid() {
		return invalidArgument("unknown related document type %q/%q", l.ParentType, l.ChildType)
	}

	return nil
}
