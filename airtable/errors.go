package airtable

import (
	"errors"
	"net/http"

	"github.com/porticolabs/connectors"
)

// Airtable-specific errors.
var (
	// ErrBatchTooLarge indicates more records than MaxBatchSize were
	// passed to a single create/update/delete call.
	ErrBatchTooLarge = errors.New("airtable: batch exceeds 10 records")

	// ErrInvalidURL indicates a URL that is not an Airtable base URL.
	ErrInvalidURL = errors.New("airtable: not an airtable.com base URL")

	// ErrEmptyBatch indicates a create/update/delete call with no records.
	ErrEmptyBatch = errors.New("airtable: empty record batch")
)

// IsInvalidValue reports whether err is an Airtable 422 validation error,
// the class of error that EnrichError can annotate with schema context.
func IsInvalidValue(err error) bool {
	var apiErr *connectors.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnprocessableEntity
	}
	return false
}
