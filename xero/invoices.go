package xero

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/porticolabs/connectors"
)

// Invoice is one accounts-receivable or accounts-payable invoice.
// Field names follow Xero's PascalCase wire keys via static struct tags.
type Invoice struct {
	InvoiceID     InvoiceID  `json:"InvoiceID"`
	InvoiceNumber string     `json:"InvoiceNumber"`
	Type          string     `json:"Type"`
	Status        string     `json:"Status"`
	Contact       ContactRef `json:"Contact"`
	Date          Date       `json:"Date"`
	DueDate       Date       `json:"DueDate"`
	SubTotal      float64    `json:"SubTotal"`
	TotalTax      float64    `json:"TotalTax"`
	Total         float64    `json:"Total"`
	AmountDue     float64    `json:"AmountDue"`
	CurrencyCode  string     `json:"CurrencyCode"`
}

// ContactRef is the embedded contact summary on an invoice.
type ContactRef struct {
	ContactID ContactID `json:"ContactID"`
	Name      string    `json:"Name"`
}

// pageCursor is the state carried by list tokens: the next page number.
type pageCursor struct {
	Page int `json:"page"`
}

// InvoiceFilter narrows a ListInvoices call.
type InvoiceFilter struct {
	// Statuses filters on invoice status (AUTHORISED, PAID, ...).
	Statuses []string

	// Where is a raw Xero where clause.
	Where string
}

// ListInvoices fetches one page of invoices.
// GET https://api.xero.com/api.xro/2.0/Invoices?page=N
//
// Xero's paging has no explicit continuation marker: a page shorter than
// the fixed page size is the last one. The page number is carried in an
// opaque token.
func (c *Client) ListInvoices(
	ctx context.Context, filter InvoiceFilter, token connectors.PageToken,
) ([]Invoice, connectors.PageToken, error) {
	cursor := pageCursor{Page: 1}
	if err := connectors.DecodeToken(token, &cursor); err != nil {
		return nil, "", err
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(cursor.Page))
	if len(filter.Statuses) > 0 {
		query.Set("Statuses", strings.Join(filter.Statuses, ","))
	}
	if filter.Where != "" {
		query.Set("where", filter.Where)
	}

	var resp struct {
		Invoices []Invoice `json:"Invoices"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   "/Invoices",
		Query:  query,
	}, &resp)
	if err != nil {
		return nil, "", err
	}

	var next connectors.PageToken
	if len(resp.Invoices) == pageSize {
		next = connectors.EncodeToken(pageCursor{Page: cursor.Page + 1})
	}
	return resp.Invoices, next, nil
}

// GetInvoice fetches a single invoice.
// GET https://api.xero.com/api.xro/2.0/Invoices/{invoiceID}
func (c *Client) GetInvoice(ctx context.Context, id InvoiceID) (*Invoice, error) {
	var resp struct {
		Invoices []Invoice `json:"Invoices"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/Invoices/%s", id),
	}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Invoices) == 0 {
		return nil, &connectors.APIError{
			Provider:   "xero",
			StatusCode: http.StatusNotFound,
			Message:    "invoice not found",
		}
	}
	return &resp.Invoices[0], nil
}
