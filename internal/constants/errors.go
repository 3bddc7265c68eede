package constants

import "errors"

// Configuration errors.
var (
	ErrNoCredentials     = errors.New("no credentials configured, use 'sfapi config set' or --env-file")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidCompanyID  = errors.New("company ID must be a number")
	ErrInvalidOutputType = errors.New("output must be one of table, json, yaml")
)

// Command errors.
var (
	ErrInvalidID          = errors.New("invalid ID")
	ErrOutputIsTerminal   = errors.New("refusing to write binary data to a terminal, use --file")
	ErrNoInvoiceIDs       = errors.New("at least one invoice ID is required")
	ErrUnexpectedResponse = errors.New("unexpected response shape")
)
