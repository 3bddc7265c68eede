package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceExpensePayment = "expense payment"

// ExpensePaymentsClient implements the sfapi.ExpensePaymentsClient interface.
type ExpensePaymentsClient struct {
	requester *requester
}

func newExpensePaymentsClient(requester *requester) *ExpensePaymentsClient {
	return &ExpensePaymentsClient{requester: requester}
}

// Pay records an expense payment.
func (c *ExpensePaymentsClient) Pay(ctx context.Context, expenseID int, payment sfapi.ExpensePayment) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceExpensePayment,
		operation: "create",
		method:    http.MethodPost,
		path:      "/expense_payments/add",
		encoding:  formEncoding,
		payload:   newEnvelope().add("ExpensePayment", payment.Fields(expenseID)),
	})
}

// Delete deletes an expense payment.
func (c *ExpensePaymentsClient) Delete(ctx context.Context, paymentID int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceExpensePayment,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/expense_payments/delete/%d", paymentID),
	})
}
