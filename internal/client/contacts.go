package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

const resourceContact = "contact person"

// ContactsClient implements the sfapi.ContactsClient interface.
type ContactsClient struct {
	requester *requester
}

func newContactsClient(requester *requester) *ContactsClient {
	return &ContactsClient{requester: requester}
}

// Create adds a contact person to client clientID.
func (c *ContactsClient) Create(ctx context.Context, clientID int, contact sfapi.Fields) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceContact,
		operation: "create",
		method:    http.MethodPost,
		path:      "/contact_people/add/api:1",
		encoding:  jsonEncoding,
		payload:   newEnvelope().add("ContactPerson", withField(contact, "client_id", clientID)),
	})
}

// GetAllByClientID lists the contact persons of a client.
func (c *ContactsClient) GetAllByClientID(ctx context.Context, clientID int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  "contact people",
		operation: "list",
		method:    http.MethodGet,
		path:      fmt.Sprintf("/contact_people/getContactPeople/%d", clientID),
	})
}

// Delete deletes a contact person.
func (c *ContactsClient) Delete(ctx context.Context, id int) (*sfapi.Response, error) {
	return c.requester.do(ctx, call{
		resource:  resourceContact,
		operation: "delete",
		method:    http.MethodDelete,
		path:      fmt.Sprintf("/contact_people/delete/%d", id),
	})
}
