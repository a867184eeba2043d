// Package airtable wraps the Airtable REST API: record CRUD against a base
// table, the base schema endpoint, and schema-driven field coercion.
//
// Airtable identifiers are opaque prefixed strings (app.../tbl.../viw...
// /rec...); each kind gets its own marker type so a table ID cannot be
// passed where a base ID is expected.
package airtable

import (
	"github.com/porticolabs/connectors"
)

// BaseURL is the Airtable API root.
const BaseURL = "https://api.airtable.com/v0"

// MaxBatchSize is the Airtable limit on records per create/update/delete
// call.
const MaxBatchSize = 10

// BaseID identifies an Airtable base (app...).
type BaseID string

// TableID identifies a table within a base (tbl...).
type TableID string

// ViewID identifies a view within a table (viw...).
type ViewID string

// RecordID identifies a record within a table (rec...).
type RecordID string

// FieldID identifies a field within a table (fld...).
type FieldID string

// Client calls the Airtable API.
type Client struct {
	api *connectors.Client
}

// New creates an Airtable client. Airtable rate-limits at 5 requests per
// second per base; the client throttles proactively and retries 429/5xx
// responses per Airtable's retry guidance (which covers the PATCH update
// endpoints as well as reads).
func New(auth connectors.Authorizer, opts ...connectors.Option) *Client {
	defaults := []connectors.Option{connectors.WithRateLimit(5)}
	return &Client{
		api: connectors.NewClient("airtable", BaseURL, auth, append(defaults, opts...)...),
	}
}
