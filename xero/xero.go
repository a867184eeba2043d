// Package xero wraps the Xero Accounting API: invoice and contact listing
// and contact creation.
//
// Every request carries the Xero-Tenant-Id header naming the organisation
// connection; the OAuth token alone is not enough to address a tenant.
// Xero serialises timestamps in the legacy .NET /Date(ms+zone)/ form,
// which this package decodes transparently.
package xero

import (
	"github.com/porticolabs/connectors"
)

// BaseURL is the Xero Accounting API root.
const BaseURL = "https://api.xero.com/api.xro/2.0"

// TenantID identifies a Xero organisation connection.
type TenantID string

// InvoiceID identifies an invoice.
type InvoiceID string

// ContactID identifies a contact.
type ContactID string

// pageSize is the fixed Xero page size; a short page signals the last one.
const pageSize = 100

// Client calls the Xero API for one tenant.
type Client struct {
	api *connectors.Client
}

// New creates a Xero client bound to a tenant.
func New(auth connectors.Authorizer, tenant TenantID, opts ...connectors.Option) *Client {
	defaults := []connectors.Option{
		connectors.WithHeader("Xero-Tenant-Id", string(tenant)),
		connectors.WithHeader("Accept", "application/json"),
	}
	return &Client{
		api: connectors.NewClient("xero", BaseURL, auth, append(defaults, opts...)...),
	}
}
