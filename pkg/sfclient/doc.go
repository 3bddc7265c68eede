// Package sfclient provides the primary entry point for constructing a
// SuperFaktura API client that implements the sfapi.Client interface.
//
// It wires the Authorization header, the default transport and the response
// decoding on top of the resource interfaces and types defined in the sfapi
// package. Most applications should import sfclient to build a client, then use
// the returned sfapi.Client to access resource-specific clients, for example
// Invoices(), Expenses(), Clients(), etc.
//
// Quick start
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
//
//	  cli, err := sfclient.NewWithCredentials("me@example.com", "api-key", 1234, "My shop", "")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or read SFAPI_EMAIL, SFAPI_KEY, SFAPI_COMPANY_ID, SFAPI_MODULE and
//	  // SFAPI_APP_TITLE from a .env file and talk to the Czech sandbox:
//	  cli, err = sfclient.NewFromEnvFile(".env", &sfapi.Config{
//	    BaseURL: sfapi.BaseURLCzechiaSandbox,
//	  })
//
//	  invoices, err := cli.Invoices().GetAll(ctx, &sfapi.InvoiceQuery{
//	    Statuses: []sfapi.InvoiceStatus{sfapi.InvoiceStatusOverdue},
//	  })
//	  if err != nil {
//	    if sfapi.IsNotFound(err) { /* ... */ }
//	    log.Fatal(err)
//	  }
//	  _ = invoices
//	}
//
// Errors
//
// Every operation returns a *sfapi.RequestError. Use errors.Is with
// sfapi.ErrNotFound, sfapi.ErrConflict, sfapi.ErrValidationFailed,
// sfapi.ErrCannotCreateRequest or the catch-all sfapi.ErrRequestFailed.
//
// The client performs exactly one HTTP exchange per call and never retries.
// It is immutable after construction and safe for concurrent use.
package sfclient
