package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceStockItem = "stock item"

// StockItemsClient implements the sfapi.StockItemsClient interface.
type StockItemsClient struct {
	requester *requester
}

func newStockItemsClient(requester *requester) *StockItemsClient {
	return &StockItemsClient{requester: requester}
}

// GetByID retrieves one stock item.
func (c *StockItemsClient) GetByID(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceStockItem,
		operation: "get",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/stock_items/view/%d", id),
	})
}

// GetAll lists stock items matching query.
func (c *StockItemsClient) GetAll(ctx context.Context, query *sfapi.StockItemQuery) (*sfapi.Response, error) {
	list := call{
		resource:  "stock items",
		operation: "list",
		method:    http.MethodGet,
	}

	params, err := stockItemListParams(query)
	if err != nil {
		return nil, c.requester.fail(list, sfapi.KindConstructionFailed, nil, 0, err)
	}

	list.path = namedPath("/stock_items/index.json", params)

	return c.requester.do(ctx, list)
}

// Create adds a stock item.
func (c *StockItemsClient) Create(ctx context.Context, item sfapi.Fields) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceStockItem,
		operation: "create",
		method:    http.MethodPost,
		path:      "/stock_items/add",
		encoding:  jsonEncoding,
		payload:   newEnvelope().add("StockItem", item),
	})
}

// Update edits stock item id.
func (c *StockItemsClient) Update(ctx context.Context, id int, item sfapi.Fields) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceStockItem,
		operation: "update",
		method:    http.MethodPatch,
		path:      fmt.Sprintf("/stock_items/edit/%d", id),
		encoding:  jsonEncoding,
		payload:   newEnvelope().add("StockItem", item),
	})
}

// Delete deletes a stock item.
func (c *StockItemsClient) Delete(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceStockItem,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/stock_items/delete/%d", id),
	})
}
