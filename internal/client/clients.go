package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceClient = "client"

// ClientsClient implements the sfapi.ClientsClient interface.
type ClientsClient struct {
	requester *requester
}

func newClientsClient(requester *requester) *ClientsClient {
	return &ClientsClient{requester: requester}
}

// GetByID retrieves one client.
func (c *ClientsClient) GetByID(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceClient,
		operation: "get",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/clients/view/%d", id),
	})
}

// GetAll lists clients matching query.
func (c *ClientsClient) GetAll(ctx context.Context, query *sfapi.ClientQuery) (*sfapi.Response, error) {
	list := call{
		resource:  "clients",
		operation: "list",
		method:    http.MethodGet,
	}

	params, err := clientListParams(query)
	if err != nil {
		return nil, c.requester.fail(list, sfapi.KindConstructionFailed, nil, 0, err)
	}

	list.path = namedPath("/clients/index.json", params)

	return c.requester.do(ctx, list)
}

// Create adds a client to the address book.
func (c *ClientsClient) Create(ctx context.Context, client sfapi.Fields) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceClient,
		operation: "create",
		method:    http.MethodPost,
		path:      "/clients/create",
		encoding:  formEncoding,
		payload:   newEnvelope().add("Client", client),
	})
}

// Update edits client id.
func (c *ClientsClient) Update(ctx context.Context, id int, client sfapi.Fields) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceClient,
		operation: "update",
		method:    http.MethodPatch,
		path:      fmt.Sprintf("/clients/edit/%d", id),
		encoding:  jsonEncoding,
		payload:   newEnvelope().add("Client", client),
	})
}

// Delete deletes a client.
func (c *ClientsClient) Delete(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceClient,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/clients/delete/%d", id),
	})
}
