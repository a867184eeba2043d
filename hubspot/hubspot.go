// Package hubspot wraps the HubSpot CRM v3 REST API: contact CRUD and
// search, plus the property schema endpoint that drives value coercion.
//
// HubSpot transmits every property value as a string. The declared property
// schema (name to type) is fetched explicitly once per batch of work and
// passed to the coercion helpers; there is no implicit schema cache.
package hubspot

import (
	"github.com/porticolabs/connectors"
)

// BaseURL is the HubSpot API root.
const BaseURL = "https://api.hubapi.com"

// ContactID identifies a HubSpot contact.
type ContactID string

// ObjectType names a CRM object collection (contacts, companies, deals).
type ObjectType string

// ObjectContacts is the contacts collection.
const ObjectContacts ObjectType = "contacts"

// Client calls the HubSpot CRM API.
type Client struct {
	api *connectors.Client
}

// New creates a HubSpot client authenticated with a private-app token or
// OAuth bearer token.
func New(auth connectors.Authorizer, opts ...connectors.Option) *Client {
	return &Client{
		api: connectors.NewClient("hubspot", BaseURL, auth, opts...),
	}
}
