package hubspot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/porticolabs/connectors"
)

// Contact is a HubSpot contact: the identity properties every contact
// carries, plus an open extension map for account-defined properties.
// Check Properties for presence before use; unset properties are omitted
// rather than zero-valued.
type Contact struct {
	ID        ContactID
	Email     string
	FirstName string
	LastName  string

	// Properties holds the remaining properties, coerced per the schema
	// passed to the fetching call.
	Properties map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// wireContact is the CRM v3 object envelope.
type wireContact struct {
	ID         ContactID         `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

type wirePage struct {
	Results []wireContact `json:"results"`
	Paging  *struct {
		Next struct {
			After string `json:"after"`
		} `json:"next"`
	} `json:"paging"`
}

func (p *wirePage) nextToken() connectors.PageToken {
	if p.Paging == nil {
		return ""
	}
	return connectors.PageToken(p.Paging.Next.After)
}

func contactFromWire(schema PropertySchema, w wireContact) Contact {
	props := schema.CoerceAll(w.Properties)

	c := Contact{
		ID:         w.ID,
		Properties: props,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
	if v, ok := props["email"].(string); ok {
		c.Email = v
		delete(props, "email")
	}
	if v, ok := props["firstname"].(string); ok {
		c.FirstName = v
		delete(props, "firstname")
	}
	if v, ok := props["lastname"].(string); ok {
		c.LastName = v
		delete(props, "lastname")
	}
	return c
}

// GetContact fetches a single contact with the named properties.
// GET https://api.hubapi.com/crm/v3/objects/contacts/{contactId}
func (c *Client) GetContact(
	ctx context.Context, schema PropertySchema, id ContactID, properties []string,
) (*Contact, error) {
	query := url.Values{}
	if len(properties) > 0 {
		query.Set("properties", strings.Join(properties, ","))
	}

	var w wireContact
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/crm/v3/objects/contacts/%s", id),
		Query:  query,
	}, &w)
	if err != nil {
		return nil, err
	}

	contact := contactFromWire(schema, w)
	return &contact, nil
}

// ListOptions filters a ListContacts call.
type ListOptions struct {
	// Properties names the properties to return for each contact.
	Properties []string

	// Limit caps contacts per page (HubSpot max 100).
	Limit int
}

// ListContacts fetches one page of contacts.
// GET https://api.hubapi.com/crm/v3/objects/contacts
//
// The token is HubSpot's paging.next.after cursor passed through opaquely.
func (c *Client) ListContacts(
	ctx context.Context, schema PropertySchema, opts ListOptions, token connectors.PageToken,
) ([]Contact, connectors.PageToken, error) {
	query := url.Values{}
	if len(opts.Properties) > 0 {
		query.Set("properties", strings.Join(opts.Properties, ","))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if !token.IsZero() {
		query.Set("after", string(token))
	}

	var page wirePage
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   "/crm/v3/objects/contacts",
		Query:  query,
	}, &page)
	if err != nil {
		return nil, "", err
	}

	return contactsFromPage(schema, &page), page.nextToken(), nil
}

// Filter is one search criterion.
type Filter struct {
	PropertyName string `json:"propertyName"`
	Operator     string `json:"operator"`
	Value        string `json:"value,omitempty"`
}

// SearchContacts runs a filtered contact search.
// POST https://api.hubapi.com/crm/v3/objects/contacts/search
//
// The endpoint is a read despite the verb, so the default transient-retry
// policy applies. Filters within the group are ANDed.
func (c *Client) SearchContacts(
	ctx context.Context, schema PropertySchema, filters []Filter, opts ListOptions, token connectors.PageToken,
) ([]Contact, connectors.PageToken, error) {
	body := map[string]any{
		"filterGroups": []map[string]any{{"filters": filters}},
	}
	if len(opts.Properties) > 0 {
		body["properties"] = opts.Properties
	}
	if opts.Limit > 0 {
		body["limit"] = opts.Limit
	}
	if !token.IsZero() {
		body["after"] = string(token)
	}

	var page wirePage
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPost,
		Path:   "/crm/v3/objects/contacts/search",
		Body:   body,
	}, &page)
	if err != nil {
		return nil, "", err
	}

	return contactsFromPage(schema, &page), page.nextToken(), nil
}

// CreateContact creates a contact from typed property values, coercing
// them to wire form per the schema.
// POST https://api.hubapi.com/crm/v3/objects/contacts
//
// Creates are not safe to repeat and are never retried.
func (c *Client) CreateContact(
	ctx context.Context, schema PropertySchema, properties map[string]any,
) (*Contact, error) {
	wire, err := coerceOutboundAll(schema, properties)
	if err != nil {
		return nil, err
	}

	noRetry := connectors.NoRetry()
	var w wireContact
	err = c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPost,
		Path:   "/crm/v3/objects/contacts",
		Body:   map[string]any{"properties": wire},
		Retry:  &noRetry,
	}, &w)
	if err != nil {
		return nil, err
	}

	contact := contactFromWire(schema, w)
	return &contact, nil
}

// UpdateContact patches the named properties of a contact.
// PATCH https://api.hubapi.com/crm/v3/objects/contacts/{contactId}
//
// The patch sets absolute values, so repeating it is safe and the default
// retry policy applies.
func (c *Client) UpdateContact(
	ctx context.Context, schema PropertySchema, id ContactID, properties map[string]any,
) (*Contact, error) {
	wire, err := coerceOutboundAll(schema, properties)
	if err != nil {
		return nil, err
	}

	var w wireContact
	err = c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/crm/v3/objects/contacts/%s", id),
		Body:   map[string]any{"properties": wire},
	}, &w)
	if err != nil {
		return nil, err
	}

	contact := contactFromWire(schema, w)
	return &contact, nil
}

func contactsFromPage(schema PropertySchema, page *wirePage) []Contact {
	contacts := make([]Contact, 0, len(page.Results))
	for _, w := range page.Results {
		contacts = append(contacts, contactFromWire(schema, w))
	}
	return contacts
}

func coerceOutboundAll(schema PropertySchema, properties map[string]any) (map[string]string, error) {
	wire := make(map[string]string, len(properties))
	for name, v := range properties {
		s, err := schema.CoerceOutbound(name, v)
		if err != nil {
			return nil, err
		}
		wire[name] = s
	}
	return wire, nil
}
