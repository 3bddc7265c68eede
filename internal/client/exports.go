package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceExport = "export"

// ExportsClient implements the sfapi.ExportsClient interface.
type ExportsClient struct {
	requester *requester
}

func newExportsClient(requester *requester) *ExportsClient {
	return &ExportsClient{requester: requester}
}

// Export starts an asynchronous export on the server. Poll GetStatus until it
// is finished, then Download the result.
func (c *ExportsClient) Export(ctx context.Context, request sfapi.ExportRequest) (*sfapi.Response, error) {
	create := call{
		resource:  resourceExport,
		operation: "create",
		method:    http.MethodPost,
		path:      "/exports",
		encoding:  jsonEncoding,
	}

	if len(request.InvoiceIDs) == 0 {
		return nil, c.requester.invalid(create, "at least one invoice ID is required")
	}

	format := request.Format
	if format == "" {
		format = sfapi.ExportFormatPDF
	}

	if !format.IsValid() {
		return nil, c.requester.invalid(create, "unknown export format %q", format)
	}

	fields := sfapi.Fields{
		"invoices": request.InvoiceIDs,
		"format":   string(format),
		"merge":    request.MergePDF,
	}

	if request.Language != "" {
		if !request.Language.IsValid() {
			return nil, c.requester.invalid(create, "unknown language %q", request.Language)
		}

		fields["language"] = string(request.Language)
	}

	create.payload = newEnvelope().add("Export", fields)

	return c.requester.do(ctx, create)
}

// GetStatus reports the progress of an export.
func (c *ExportsClient) GetStatus(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceExport,
		operation: "get status of",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/exports/getStatus/%d", id),
	})
}

// Download streams a finished export. The caller must close the response.
func (c *ExportsClient) Download(ctx context.Context, id int) (*sfapi.BinaryResponse, error) {
	return c.requester.doBinary(ctx, call{
		resource:  resourceExport,
		operation: "download",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/exports/download_export/%d", id),
	})
}
