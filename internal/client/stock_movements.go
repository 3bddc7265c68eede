package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceStockMovement = "stock movement"

// StockMovementsClient implements the sfapi.StockMovementsClient interface.
type StockMovementsClient struct {
	requester *requester
}

func newStockMovementsClient(requester *requester) *StockMovementsClient {
	return &StockMovementsClient{requester: requester}
}

// Create records movements of stock item stockItemID.
func (c *StockMovementsClient) Create(ctx context.Context, stockItemID int, movements []sfapi.Fields) (*sfapi.Response, error) {
	return c.create(ctx, "stock_item_id", stockItemID, movements)
}

// CreateWithSKU records movements of the stock item identified by sku.
func (c *StockMovementsClient) CreateWithSKU(ctx context.Context, sku string, movements []sfapi.Fields) (*sfapi.Response, error) {
	if sku == "" {
		return nil, c.requester.invalid(c.createCall(), "SKU is required")
	}

	return c.create(ctx, "sku", sku, movements)
}

// GetAll pages through the movements of a stock item.
func (c *StockMovementsClient) GetAll(ctx context.Context, stockItemID int, query *sfapi.StockMovementQuery) (*sfapi.Response, error) {
	list := call{
		resource:  "stock movements",
		operation: "list",
		method:    http.MethodGet,
	}

	if query == nil {
		query = &sfapi.StockMovementQuery{}
	}

	params, err := createdPageParams(query.Pagination, query.Sort, query.Created)
	if err != nil {
		return nil, c.requester.fail(list, sfapi.KindConstructionFailed, nil, 0, err)
	}

	list.path = queryStringPath(fmt.Sprintf("/stock_items/movements/%d", stockItemID), params)

	return c.requester.do(ctx, list)
}

// create tags every movement with the item reference before sending.
func (c *StockMovementsClient) create(ctx context.Context, key string, value any, movements []sfapi.Fields) (*sfapi.Response, error) {
	create := c.createCall()

	if len(movements) == 0 {
		return nil, c.requester.invalid(create, "at least one movement is required")
	}

	logs := make([]sfapi.Fields, 0, len(movements))
	for _, movement := range movements {
		logs = append(logs, withField(movement, key, value))
	}

	create.payload = newEnvelope().add("StockLog", logs)

	return c.requester.do(ctx, create)
}

func (c *StockMovementsClient) createCall() call {
	return call{
		resource:  resourceStockMovement,
		operation: "create",
		method:    http.MethodPost,
		path:      "/stock_items/addstockmovement",
		encoding:  jsonEncoding,
	}
}
