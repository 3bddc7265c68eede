package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// CompaniesClient implements the sfapi.CompaniesClient interface.
type CompaniesClient struct {
	requester *requester
}

func newCompaniesClient(requester *requester) *CompaniesClient {
	return &CompaniesClient{requester: requester}
}

// GetAll lists the companies of the authenticated user.
func (c *CompaniesClient) GetAll(ctx context.Context) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  "companies",
		operation: "list",
		method:    http.MethodGet,
		path:      "/users/getUserCompaniesData",
	})
}

// CountriesClient implements the sfapi.CountriesClient interface.
type CountriesClient struct {
	requester *requester
}

func newCountriesClient(requester *requester) *CountriesClient {
	return &CountriesClient{requester: requester}
}

// GetAll lists countries.
func (c *CountriesClient) GetAll(ctx context.Context) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  "countries",
		operation: "list",
		method:    http.MethodGet,
		path:      "/countries",
	})
}
