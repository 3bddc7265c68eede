package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const (
	resourceExpense  = "expense"
	resourceExpenses = "expenses"
)

// ExpensesClient implements the sfapi.ExpensesClient interface.
type ExpensesClient struct {
	requester *requester
}

func newExpensesClient(requester *requester) *ExpensesClient {
	return &ExpensesClient{requester: requester}
}

// GetByID retrieves one expense.
func (c *ExpensesClient) GetByID(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceExpense,
		operation: "get",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/expenses/edit/%d.json", id),
	})
}

// GetAll lists expenses matching query. A nil query lists the first page.
func (c *ExpensesClient) GetAll(ctx context.Context, query *sfapi.ExpenseQuery) (*sfapi.Response, error) {
	list := call{
		resource:  resourceExpenses,
		operation: "list",
		method:    http.MethodGet,
	}

	params, err := expenseListParams(query)
	if err != nil {
		return nil, c.requester.fail(list, sfapi.KindConstructionFailed, nil, 0, err)
	}

	list.path = namedPath("/expenses/index.json", params)

	return c.requester.do(ctx, list)
}

// GetAllCategories lists expense categories.
func (c *ExpensesClient) GetAllCategories(ctx context.Context) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  "expense categories",
		operation: "list",
		method:    http.MethodGet,
		path:      "/expenses/expense_categories",
	})
}

// Create creates an expense from its sections.
func (c *ExpensesClient) Create(ctx context.Context, data sfapi.ExpenseData) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceExpense,
		operation: "create",
		method:    http.MethodPost,
		path:      "/expenses/add",
		encoding:  formEncoding,
		payload:   expenseEnvelope(data.Expense, data),
	})
}

// Update edits expense id.
func (c *ExpensesClient) Update(ctx context.Context, id int, data sfapi.ExpenseData) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceExpense,
		operation: "update",
		method:    http.MethodPost,
		path:      "/expenses/edit",
		encoding:  formEncoding,
		payload:   expenseEnvelope(withID(data.Expense, id), data),
	})
}

// Delete deletes an expense.
func (c *ExpensesClient) Delete(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceExpense,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/expenses/delete/%d", id),
	})
}

func expenseEnvelope(expense sfapi.Fields, data sfapi.ExpenseData) *envelope {
	return newEnvelope().
		add("Expense", expense).
		add("ExpenseItem", data.Items).
		add("Client", data.Client).
		add("ExpenseExtra", data.Extra).
		add("MyData", data.MyData).
		tags(data.Tags)
}
