// Package sfapi provides types, interfaces, and helpers for working with the
// SuperFaktura API.
//
// # Overview
//
// The sfapi package defines the request and response types (Response,
// BinaryResponse, RateLimit), the query value objects used by list operations
// (Pagination, Sort, TimePeriod and the per-resource queries), closed
// enumerations for wire values, and the interfaces of the resource clients
// (InvoicesClient, ExpensesClient, ...). A concrete implementation is provided
// by the sfclient package. Most consumers import sfclient to construct a client
// and then use the interfaces defined here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/sfapi/pkg/sfapi"
//	  "github.com/fivetwenty-io/sfapi/pkg/sfclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := sfclient.NewWithCredentials("me@example.com", "apikey", 1, "My app", "Shop")
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := cli.Invoices().GetAll(ctx, &sfapi.InvoiceQuery{Search: "ACME"})
//	  if err != nil { log.Fatal(err) }
//	  _ = resp.Data
//	}
//
// # Responses
//
// The API reports business errors through an "error" flag in the body, often
// with HTTP 200. Resource clients check both the status code and the flag, so
// a returned *Response is always a successful one. Rate limits are attached to
// every response when the server reports them.
//
// # Errors
//
// Every failure is a *RequestError carrying the resource, the operation, a
// snapshot of the request and an ErrorKind. Use errors.Is with ErrNotFound,
// ErrConflict, ErrValidationFailed or ErrCannotCreateRequest to branch on
// specific failures, and ErrRequestFailed as the generic fallback.
package sfapi
