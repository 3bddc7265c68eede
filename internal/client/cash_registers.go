package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// CashRegistersClient implements the sfapi.CashRegistersClient interface.
type CashRegistersClient struct {
	requester *requester
}

func newCashRegistersClient(requester *requester) *CashRegistersClient {
	return &CashRegistersClient{requester: requester}
}

// GetAll lists cash registers with their balances.
func (c *CashRegistersClient) GetAll(ctx context.Context) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  "cash registers",
		operation: "list",
		method:    http.MethodGet,
		path:      "/cash_registers/getDetails",
	})
}

// GetByID retrieves one cash register.
func (c *CashRegistersClient) GetByID(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  "cash register",
		operation: "get",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/cash_registers/getDetails/%d", id),
	})
}

const resourceCashRegisterItem = "cash register item"

// CashRegisterItemsClient implements the sfapi.CashRegisterItemsClient interface.
type CashRegisterItemsClient struct {
	requester *requester
}

func newCashRegisterItemsClient(requester *requester) *CashRegisterItemsClient {
	return &CashRegisterItemsClient{requester: requester}
}

// Create adds an item to cash register cashRegisterID.
func (c *CashRegisterItemsClient) Create(ctx context.Context, cashRegisterID int, item sfapi.Fields) (*sfapi.Response, error) {
	create := call{
		resource:  resourceCashRegisterItem,
		operation: "create",
		method:    http.MethodPost,
		path:      "/cash_register_items/add",
		encoding:  jsonEncoding,
	}

	if itemType, ok := item["type"].(string); ok && !sfapi.CashRegisterItemType(itemType).IsValid() {
		return nil, c.requester.invalid(create, "unknown cash register item type %q", itemType)
	}

	create.payload = newEnvelope().add("CashRegisterItem", withField(item, "cash_register_id", cashRegisterID))

	return c.requester.do(ctx, create)
}

// GetAll pages through the items of a cash register.
func (c *CashRegisterItemsClient) GetAll(ctx context.Context, cashRegisterID int, query *sfapi.CashRegisterItemQuery) (*sfapi.Response, error) {
	list := call{
		resource:  "cash register items",
		operation: "list",
		method:    http.MethodGet,
	}

	if query == nil {
		query = &sfapi.CashRegisterItemQuery{}
	}

	params, err := createdPageParams(query.Pagination, query.Sort, query.Created)
	if err != nil {
		return nil, c.requester.fail(list, sfapi.KindConstructionFailed, nil, 0, err)
	}

	list.path = queryStringPath(fmt.Sprintf("/cash_register_items/index/%d", cashRegisterID), params)

	return c.requester.do(ctx, list)
}

// Delete deletes a cash register item.
func (c *CashRegisterItemsClient) Delete(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceCashRegisterItem,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/cash_register_items/delete/%d", id),
	})
}
