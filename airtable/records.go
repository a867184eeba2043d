package airtable

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/porticolabs/connectors"
)

// Record is one Airtable record. Fields holds the raw wire values; use
// Schema.CoerceRecord to convert them according to declared field types.
type Record struct {
	ID          RecordID       `json:"id"`
	Fields      map[string]any `json:"fields"`
	CreatedTime time.Time      `json:"createdTime"`
}

// ListOptions filters a ListRecords call. All fields are optional.
type ListOptions struct {
	// View restricts results to records visible in the view.
	View ViewID

	// PageSize caps records per page (Airtable max 100).
	PageSize int

	// FilterByFormula is an Airtable formula string.
	FilterByFormula string

	// Fields restricts which fields are returned.
	Fields []string
}

type recordPage struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// ListRecords fetches one page of records from a table.
// GET https://api.airtable.com/v0/{baseId}/{tableId}
//
// The returned token is Airtable's native offset cursor passed through
// opaquely; a zero token means the listing is exhausted.
func (c *Client) ListRecords(
	ctx context.Context, base BaseID, table TableID, opts ListOptions, token connectors.PageToken,
) ([]Record, connectors.PageToken, error) {
	query := url.Values{}
	if opts.View != "" {
		query.Set("view", string(opts.View))
	}
	if opts.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(opts.PageSize))
	}
	if opts.FilterByFormula != "" {
		query.Set("filterByFormula", opts.FilterByFormula)
	}
	for _, f := range opts.Fields {
		query.Add("fields[]", f)
	}
	if !token.IsZero() {
		query.Set("offset", string(token))
	}

	var page recordPage
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/%s/%s", base, table),
		Query:  query,
	}, &page)
	if err != nil {
		return nil, "", err
	}

	return page.Records, connectors.PageToken(page.Offset), nil
}

// GetRecord fetches a single record.
// GET https://api.airtable.com/v0/{baseId}/{tableId}/{recordId}
func (c *Client) GetRecord(
	ctx context.Context, base BaseID, table TableID, id RecordID,
) (*Record, error) {
	var rec Record
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/%s/%s/%s", base, table, id),
	}, &rec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

type writeBatch struct {
	Records  []writeRecord `json:"records"`
	Typecast bool          `json:"typecast,omitempty"`
}

type writeRecord struct {
	ID     RecordID       `json:"id,omitempty"`
	Fields map[string]any `json:"fields"`
}

type writeResult struct {
	Records []Record `json:"records"`
}

// CreateRecords creates up to MaxBatchSize records in one call.
// POST https://api.airtable.com/v0/{baseId}/{tableId}
//
// Creates are not safe to repeat, so transient failures are not retried.
func (c *Client) CreateRecords(
	ctx context.Context, base BaseID, table TableID, fields []map[string]any,
) ([]Record, error) {
	if err := checkBatch(len(fields)); err != nil {
		return nil, err
	}

	batch := writeBatch{Records: make([]writeRecord, 0, len(fields))}
	for _, f := range fields {
		batch.Records = append(batch.Records, writeRecord{Fields: f})
	}

	noRetry := connectors.NoRetry()
	var result writeResult
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/%s/%s", base, table),
		Body:   batch,
		Retry:  &noRetry,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// RecordUpdate names the record and the fields to change.
type RecordUpdate struct {
	ID     RecordID
	Fields map[string]any
}

// UpdateRecords patches up to MaxBatchSize records in one call.
// PATCH https://api.airtable.com/v0/{baseId}/{tableId}
//
// PATCH sets only the named fields, so repeating it yields the same state;
// Airtable's guidance permits retrying these on 429/5xx and the default
// policy applies.
func (c *Client) UpdateRecords(
	ctx context.Context, base BaseID, table TableID, updates []RecordUpdate,
) ([]Record, error) {
	if err := checkBatch(len(updates)); err != nil {
		return nil, err
	}

	batch := writeBatch{Records: make([]writeRecord, 0, len(updates))}
	for _, u := range updates {
		batch.Records = append(batch.Records, writeRecord{ID: u.ID, Fields: u.Fields})
	}

	var result writeResult
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPatch,
		Path:   fmt.Sprintf("/%s/%s", base, table),
		Body:   batch,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

type deleteResult struct {
	Records []struct {
		ID      RecordID `json:"id"`
		Deleted bool     `json:"deleted"`
	} `json:"records"`
}

// DeleteRecords deletes up to MaxBatchSize records in one call, returning
// the IDs Airtable confirmed as deleted.
// DELETE https://api.airtable.com/v0/{baseId}/{tableId}?records[]=...
func (c *Client) DeleteRecords(
	ctx context.Context, base BaseID, table TableID, ids []RecordID,
) ([]RecordID, error) {
	if err := checkBatch(len(ids)); err != nil {
		return nil, err
	}

	query := url.Values{}
	for _, id := range ids {
		query.Add("records[]", string(id))
	}

	var result deleteResult
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/%s/%s", base, table),
		Query:  query,
	}, &result)
	if err != nil {
		return nil, err
	}

	deleted := make([]RecordID, 0, len(result.Records))
	for _, r := range result.Records {
		if r.Deleted {
			deleted = append(deleted, r.ID)
		}
	}
	return deleted, nil
}

func checkBatch(n int) error {
	switch {
	case n == 0:
		return ErrEmptyBatch
	case n > MaxBatchSize:
		return ErrBatchTooLarge
	default:
		return nil
	}
}
