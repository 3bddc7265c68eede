package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceInvoicePayment = "invoice payment"

// InvoicePaymentsClient implements the sfapi.InvoicePaymentsClient interface.
type InvoicePaymentsClient struct {
	requester *requester
}

func newInvoicePaymentsClient(requester *requester) *InvoicePaymentsClient {
	return &InvoicePaymentsClient{requester: requester}
}

// Pay records a payment. Unset payment fields are left for the API to fill in.
func (c *InvoicePaymentsClient) Pay(ctx context.Context, invoiceID int, payment sfapi.InvoicePayment) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceInvoicePayment,
		operation: "create",
		method:    http.MethodPost,
		path:      "/invoice_payments/add/ajax:1/api:1",
		encoding:  formEncoding,
		payload:   newEnvelope().add("InvoicePayment", payment.Fields(invoiceID)),
	})
}

// MarkAsWillNotBePaid flags the invoice as uncollectable.
func (c *InvoicePaymentsClient) MarkAsWillNotBePaid(ctx context.Context, invoiceID int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceInvoice,
		operation: "mark as will not be paid",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/invoices/will_not_be_paid/%d", invoiceID),
	})
}

// Delete deletes a payment.
func (c *InvoicePaymentsClient) Delete(ctx context.Context, paymentID int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceInvoicePayment,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/invoice_payments/delete/%d", paymentID),
	})
}
