package xero

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/porticolabs/connectors"
)

// Contact is a Xero contact record.
type Contact struct {
	ContactID    ContactID `json:"ContactID,omitempty"`
	Name         string    `json:"Name"`
	EmailAddress string    `json:"EmailAddress,omitempty"`
	IsCustomer   bool      `json:"IsCustomer,omitempty"`
	IsSupplier   bool      `json:"IsSupplier,omitempty"`
	Status       string    `json:"ContactStatus,omitempty"`
	UpdatedDate  *Date     `json:"UpdatedDateUTC,omitempty"`
}

// ListContacts fetches one page of contacts. Paging works like
// ListInvoices: page numbers in an opaque token, a short page ends the
// sequence.
// GET https://api.xero.com/api.xro/2.0/Contacts?page=N
func (c *Client) ListContacts(
	ctx context.Context, token connectors.PageToken,
) ([]Contact, connectors.PageToken, error) {
	cursor := pageCursor{Page: 1}
	if err := connectors.DecodeToken(token, &cursor); err != nil {
		return nil, "", err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(cursor.Page))

	var resp struct {
		Contacts []Contact `json:"Contacts"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   "/Contacts",
		Query:  query,
	}, &resp)
	if err != nil {
		return nil, "", err
	}

	var next connectors.PageToken
	if len(resp.Contacts) == pageSize {
		next = connectors.EncodeToken(pageCursor{Page: cursor.Page + 1})
	}
	return resp.Contacts, next, nil
}

// CreateContacts creates contacts in one batch. Xero's PUT /Contacts is
// documented as create-only and safe to repeat, so transient failures are
// retried under the client's default policy.
// PUT https://api.xero.com/api.xro/2.0/Contacts
func (c *Client) CreateContacts(ctx context.Context, contacts []Contact) ([]Contact, error) {
	body := struct {
		Contacts []Contact `json:"Contacts"`
	}{Contacts: contacts}

	var resp struct {
		Contacts []Contact `json:"Contacts"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPut,
		Path:   "/Contacts",
		Body:   body,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Contacts, nil
}
