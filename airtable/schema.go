package airtable

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/porticolabs/connectors"
)

// FieldType is an Airtable-declared field type. Only the types that need
// coercion are enumerated; everything else is treated as text.
type FieldType string

const (
	TypeCheckbox       FieldType = "checkbox"
	TypeNumber         FieldType = "number"
	TypeDate           FieldType = "date"
	TypeDateTime       FieldType = "dateTime"
	TypeSingleLineText FieldType = "singleLineText"
	TypeMultilineText  FieldType = "multilineText"
)

// Field is one column of a table schema.
type Field struct {
	ID   FieldID   `json:"id"`
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// Table is one table of a base schema.
type Table struct {
	ID     TableID `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Schema is the declared structure of a base, fetched once per logical
// batch of work and passed explicitly to coercion and error enrichment.
type Schema struct {
	Tables []Table `json:"tables"`
}

// FetchSchema fetches the base schema.
// GET https://api.airtable.com/v0/meta/bases/{baseId}/tables
func (c *Client) FetchSchema(ctx context.Context, base BaseID) (*Schema, error) {
	var schema Schema
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/meta/bases/%s/tables", base),
	}, &schema)
	if err != nil {
		return nil, err
	}
	return &schema, nil
}

// Table looks a table up by ID or name.
func (s *Schema) Table(ref string) (*Table, bool) {
	for i := range s.Tables {
		if string(s.Tables[i].ID) == ref || s.Tables[i].Name == ref {
			return &s.Tables[i], true
		}
	}
	return nil, false
}

// FieldType returns the declared type of a field within a table, or false
// when either is unknown.
func (s *Schema) FieldType(table TableID, fieldName string) (FieldType, bool) {
	t, ok := s.Table(string(table))
	if !ok {
		return "", false
	}
	for _, f := range t.Fields {
		if f.Name == fieldName {
			return f.Type, true
		}
	}
	return "", false
}

// EnrichError annotates an Airtable validation error (422) with the
// declared types of any schema fields named in the provider's message.
// Other errors pass through unchanged. The schema is an explicit argument;
// callers fetch it once and reuse it across a batch.
func (s *Schema) EnrichError(err error, table TableID) error {
	if err == nil || !IsInvalidValue(err) {
		return err
	}

	var apiErr *connectors.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	t, ok := s.Table(string(table))
	if !ok {
		return err
	}

	var hints []string
	for _, f := range t.Fields {
		if strings.Contains(apiErr.Message, f.Name) {
			hints = append(hints, fmt.Sprintf("%q is declared as %s", f.Name, f.Type))
		}
	}
	if len(hints) == 0 {
		return err
	}

	return fmt.Errorf("%w (schema: %s)", err, strings.Join(hints, ", "))
}
