// Package apollo wraps the Apollo.io REST API: people search, person
// enrichment, and organization lookup.
//
// Apollo authenticates with an X-Api-Key header; wrap the key in
// connectors.APIKey when constructing the client.
package apollo

import (
	"github.com/porticolabs/connectors"
)

// BaseURL is the Apollo API root.
const BaseURL = "https://api.apollo.io/v1"

// PersonID identifies an Apollo person record.
type PersonID string

// OrganizationID identifies an Apollo organization record.
type OrganizationID string

// AuthHeader is the header Apollo expects the API key in.
const AuthHeader = "X-Api-Key"

// Client calls the Apollo API.
type Client struct {
	api *connectors.Client
}

// New creates an Apollo client.
func New(auth connectors.Authorizer, opts ...connectors.Option) *Client {
	return &Client{
		api: connectors.NewClient("apollo", BaseURL, auth, opts...),
	}
}
