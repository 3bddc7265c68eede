package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const (
	resourceInvoice  = "invoice"
	resourceInvoices = "invoices"
)

// InvoicesClient implements the sfapi.InvoicesClient interface.
type InvoicesClient struct {
	requester *requester
}

func newInvoicesClient(requester *requester) *InvoicesClient {
	return &InvoicesClient{requester: requester}
}

// GetByID retrieves one invoice with its items, client and payments.
func (c *InvoicesClient) GetByID(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceInvoice,
		operation: "get",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/invoices/view/%d.json", id),
	})
}

// GetByIDs retrieves several invoices in one request.
func (c *InvoicesClient) GetByIDs(ctx context.Context, ids []int) (*sfapi.Response, error) {
	get := call{
		resource:  resourceInvoices,
		operation: "get",
		method:    http.MethodGet,
	}

	if len(ids) == 0 {
		return nil, c.requester.invalid(get, "at least one invoice ID is required")
	}

	get.path = "/invoices/getInvoiceDetails/" + joinIDs(ids)

	return c.requester.do(ctx, get)
}

// GetAll lists invoices matching query. A nil query lists the first page.
func (c *InvoicesClient) GetAll(ctx context.Context, query *sfapi.InvoiceQuery) (*sfapi.Response, error) {
	list := call{
		resource:  resourceInvoices,
		operation: "list",
		method:    http.MethodGet,
	}

	params, err := invoiceListParams(query)
	if err != nil {
		return nil, c.requester.fail(list, sfapi.KindConstructionFailed, nil, 0, err)
	}

	list.path = namedPath("/invoices/index.json", params)

	return c.requester.do(ctx, list)
}

// Create creates an invoice from its sections.
func (c *InvoicesClient) Create(ctx context.Context, data sfapi.InvoiceData) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceInvoice,
		operation: "create",
		method:    http.MethodPost,
		path:      "/invoices/create",
		encoding:  formEncoding,
		payload:   invoiceEnvelope(data.Invoice, data),
	})
}

// Update edits invoice id. Only the provided sections are changed.
func (c *InvoicesClient) Update(ctx context.Context, id int, data sfapi.InvoiceData) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceInvoice,
		operation: "update",
		method:    http.MethodPost,
		path:      "/invoices/edit",
		encoding:  formEncoding,
		payload:   invoiceEnvelope(withID(data.Invoice, id), data),
	})
}

// Delete deletes an invoice.
func (c *InvoicesClient) Delete(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceInvoice,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/invoices/delete/%d", id),
	})
}

// DeleteItems removes items from an invoice.
func (c *InvoicesClient) DeleteItems(ctx context.Context, invoiceID int, itemIDs []int) (*sfapi.Response, error) {
	del := call{
		resource:  "invoice items",
		operation: "delete",
		method:    http.MethodDelete,
	}

	if len(itemIDs) == 0 {
		return nil, c.requester.invalid(del, "at least one item ID is required")
	}

	del.path = fmt.Sprintf("/invoice_items/delete/%s/invoice_id:%d", joinIDs(itemIDs), invoiceID)

	return c.requester.do(ctx, del)
}

// ChangeLanguage sets the document language. The endpoint expects a literal
// colon in "lang:<code>".
func (c *InvoicesClient) ChangeLanguage(ctx context.Context, id int, language sfapi.Language) (*sfapi.Response, error) {
	change := call{
		resource:  resourceInvoice,
		operation: "change language of",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/invoices/setinvoicelanguage/%d/lang:%s", id, language),
	}

	if !language.IsValid() {
		return nil, c.requester.invalid(change, "unknown language %q", language)
	}

	return c.requester.do(ctx, change)
}

// MarkAsSent marks an invoice as sent without sending it.
func (c *InvoicesClient) MarkAsSent(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceInvoice,
		operation: "mark as sent",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/invoices/mark_sent/%d", id),
	})
}

// MarkAsSentViaEmail records that the invoice was sent by e-mail outside of
// SuperFaktura.
func (c *InvoicesClient) MarkAsSentViaEmail(ctx context.Context, id int, email sfapi.InvoiceEmail) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceInvoice,
		operation: "mark as sent",
		method:    http.MethodPost,
		path:      "/invoices/mark_as_sent",
		encoding:  formEncoding,
		payload: newEnvelope().add("InvoiceEmail", sfapi.Fields{
			"invoice_id": id,
			"email":      email.To,
			"subject":    email.Subject,
			"message":    email.Body,
		}),
	})
}

// SendViaEmail sends the invoice PDF by e-mail.
func (c *InvoicesClient) SendViaEmail(ctx context.Context, id int, email sfapi.InvoiceEmail) (*sfapi.Response, error) {
	send := call{
		resource:  resourceInvoice,
		operation: "send",
		method:    http.MethodPost,
		path:      "/invoices/send",
		encoding:  formEncoding,
	}

	if email.To == "" {
		return nil, c.requester.invalid(send, "recipient is required")
	}

	fields := sfapi.Fields{
		"invoice_id": id,
		"to":         email.To,
	}

	if len(email.CC) > 0 {
		fields["cc"] = email.CC
	}

	if len(email.BCC) > 0 {
		fields["bcc"] = email.BCC
	}

	if email.Subject != "" {
		fields["subject"] = email.Subject
	}

	if email.Body != "" {
		fields["body"] = email.Body
	}

	if email.PDFLanguage != "" {
		fields["pdf_language"] = string(email.PDFLanguage)
	}

	send.payload = newEnvelope().add("Email", fields)

	return c.requester.do(ctx, send)
}

// SendViaPostOffice orders a printed copy to be mailed.
func (c *InvoicesClient) SendViaPostOffice(ctx context.Context, id int, address sfapi.PostalAddress) (*sfapi.Response, error) {
	fields := sfapi.Fields{"invoice_id": id}

	if address.Name != "" {
		fields["delivery_name"] = address.Name
	}

	if address.Address != "" {
		fields["delivery_address"] = address.Address
	}

	if address.City != "" {
		fields["delivery_city"] = address.City
	}

	if address.ZIP != "" {
		fields["delivery_zip"] = address.ZIP
	}

	if address.CountryID != 0 {
		fields["delivery_country_id"] = address.CountryID
	}

	return c.requester.do(ctx, call{
		resource:  resourceInvoice,
		operation: "send by post",
		method:    http.MethodPost,
		path:      "/invoices/post",
		encoding:  formEncoding,
		payload:   newEnvelope().add("Post", fields),
	})
}

// DownloadPDF streams the invoice PDF. The caller must close the response.
func (c *InvoicesClient) DownloadPDF(ctx context.Context, id int, language sfapi.Language) (*sfapi.BinaryResponse, error) {
	download := call{
		resource:  resourceInvoice,
		operation: "download PDF of",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/%s/invoices/pdf/%d", language, id),
	}

	if !language.IsValid() {
		return nil, c.requester.invalid(download, "unknown language %q", language)
	}

	return c.requester.doBinary(ctx, download)
}

func invoiceEnvelope(invoice sfapi.Fields, data sfapi.InvoiceData) *envelope {
	return newEnvelope().
		add("Invoice", invoice).
		add("InvoiceItem", data.Items).
		add("Client", data.Client).
		add("InvoiceSetting", data.Settings).
		add("InvoiceExtra", data.Extra).
		add("MyData", data.MyData).
		tags(data.Tags)
}

func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}

	return strings.Join(parts, ",")
}
