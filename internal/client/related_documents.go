package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceRelatedDocument = "related document"

// RelatedDocumentsClient implements the sfapi.RelatedDocumentsClient interface.
type RelatedDocumentsClient struct {
	requester *requester
}

func newRelatedDocumentsClient(requester *requester) *RelatedDocumentsClient {
	return &RelatedDocumentsClient{requester: requester}
}

// Link relates two documents.
func (c *RelatedDocumentsClient) Link(ctx context.Context, link sfapi.RelatedDocumentLink) (*sfapi.Response, error) {
	create := call{
		resource:  resourceRelatedDocument,
		operation: "link",
		method:    http.MethodPost,
		path:      "/invoices/addRelatedItem",
		encoding:  jsonEncoding,
	}

	err := link.Validate()
	if err != nil {
		return nil, c.requester.fail(create, sfapi.KindConstructionFailed, nil, 0, err)
	}

	create.payload = newEnvelope().add("RelatedItem", sfapi.Fields{
		"parent_id":   link.ParentID,
		"parent_type": string(link.ParentType),
		"child_id":    link.ChildID,
		"child_type":  string(link.ChildType),
	})

	return c.requester.do(ctx, create)
}

// Unlink removes a relation.
func (c *RelatedDocumentsClient) Unlink(ctx context.Context, relationID int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceRelatedDocument,
		operation: "unlink",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/invoices/deleteRelatedItem/%d", relationID),
	})
}
