package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceTag = "tag"

// TagsClient implements the sfapi.TagsClient interface.
type TagsClient struct {
	requester *requester
}

func newTagsClient(requester *requester) *TagsClient {
	return &TagsClient{requester: requester}
}

// GetAll lists tags.
func (c *TagsClient) GetAll(ctx context.Context) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  "tags",
		operation: "list",
		method:    http.MethodGet,
		path:      "/tags/index.json",
	})
}

// Create adds a tag. An existing name fails with sfapi.ErrConflict.
func (c *TagsClient) Create(ctx context.Context, name string) (*sfapi.Response, error) {
	create := call{
		resource:  resourceTag,
		operation: "create",
		method:    http.MethodPost,
		path:      "/tags/add",
		encoding:  jsonEncoding,
		conflict:  true,
	}

	if strings.TrimSpace(name) == "" {
		return nil, c.requester.invalid(create, "tag name is required")
	}

	create.payload = newEnvelope().add("Tag", sfapi.Fields{"name": name})

	return c.requester.do(ctx, create)
}

// Update renames tag id.
func (c *TagsClient) Update(ctx context.Context, id int, name string) (*sfapi.Response, error) {
	update := call{
		resource:  resourceTag,
		operation: "update",
		method:    http.MethodPatch,
		path:      fmt.Sprintf("/tags/edit/%d", id),
		encoding:  jsonEncoding,
	}

	if strings.TrimSpace(name) == "" {
		return nil, c.requester.invalid(update, "tag name is required")
	}

	update.payload = newEnvelope().add("Tag", sfapi.Fields{"name": name})

	return c.requester.do(ctx, update)
}

// Delete deletes a tag.
func (c *TagsClient) Delete(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceTag,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/tags/delete/%d", id),
	})
}
