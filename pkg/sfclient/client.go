package sfclient

import (
	"fmt"

	"github.com/fivetwenty-io/sfapi/internal/auth"
	"github.com/fivetwenty-io/sfapi/internal/client"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// New creates a new SuperFaktura API client.
func New(config *sfapi.Config) (sfapi.Client, error) {
	client, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return client, nil
}

// NewWithCredentials creates a client for the default endpoint with the given
// credentials and the built-in transport.
func NewWithCredentials(email, key string, companyID int, module, appTitle string) (sfapi.Client, error) {
	return New(&sfapi.Config{
		Authorization: sfapi.Authorization{
			Email:     email,
			Key:       key,
			CompanyID: companyID,
			Module:    module,
			AppTitle:  appTitle,
		},
	})
}

// NewFromEnvFile creates a client with credentials read from a .env file.
// Fields of base other than Authorization are kept; BaseURL is taken from
// SFAPI_BASE_URL when base does not set one. base may be nil.
func NewFromEnvFile(path string, base *sfapi.Config) (sfapi.Client, error) {
	credentials, err := auth.LoadEnvFile(path)
	if err != nil {
		return nil, err
	}

	config := sfapi.Config{}
	if base != nil {
		config = *base
	}

	config.Authorization = credentials.Authorization

	if config.BaseURL == "" {
		config.BaseURL = credentials.BaseURL
	}

	return New(&config)
}
