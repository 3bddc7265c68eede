package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceBankAccount = "bank account"

// BankAccountsClient implements the sfapi.BankAccountsClient interface.
type BankAccountsClient struct {
	requester *requester
}

func newBankAccountsClient(requester *requester) *BankAccountsClient {
	return &BankAccountsClient{requester: requester}
}

// GetAll lists bank accounts.
func (c *BankAccountsClient) GetAll(ctx context.Context) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  "bank accounts",
		operation: "list",
		method:    http.MethodGet,
		path:      "/bank_accounts/index",
	})
}

// Create adds a bank account.
func (c *BankAccountsClient) Create(ctx context.Context, account sfapi.Fields) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceBankAccount,
		operation: "create",
		method:    http.MethodPost,
		path:      "/bank_accounts/add",
		encoding:  jsonEncoding,
		payload:   newEnvelope().add("BankAccount", account),
	})
}

// Update edits bank account id.
func (c *BankAccountsClient) Update(ctx context.Context, id int, account sfapi.Fields) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceBankAccount,
		operation: "update",
		method:    http.MethodPost,
		path:      fmt.Sprintf("/bank_accounts/update/%d", id),
		encoding:  jsonEncoding,
		payload:   newEnvelope().add("BankAccount", account),
	})
}

// Delete deletes a bank account.
func (c *BankAccountsClient) Delete(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceBankAccount,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/bank_accounts/delete/%d", id),
	})
}
