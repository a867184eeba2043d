package airtable

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticolabs/connectors"
)

func TestFetchSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meta/bases/appA/tables", r.URL.Path)
		w.Write([]byte(`{"tables":[
			{"id":"tblB","name":"Tasks","fields":[
				{"id":"fld1","name":"Name","type":"singleLineText"},
				{"id":"fld2","name":"Done","type":"checkbox"}
			]}
		]}`))
	}))
	defer srv.Close()

	c := New(connectors.NoAuth, connectors.WithBaseURL(srv.URL))
	schema, err := c.FetchSchema(context.Background(), "appA")

	require.NoError(t, err)
	ft, ok := schema.FieldType("tblB", "Done")
	require.True(t, ok)
	assert.Equal(t, TypeCheckbox, ft)

	_, ok = schema.FieldType("tblB", "Missing")
	assert.False(t, ok)
	_, ok = schema.FieldType("tblNope", "Done")
	assert.False(t, ok)
}

func TestSchemaTableLookupByName(t *testing.T) {
	schema := testSchema()

	byID, ok := schema.Table("tblB")
	require.True(t, ok)
	byName, ok2 := schema.Table("Tasks")
	require.True(t, ok2)
	assert.Equal(t, byID, byName)
}

func TestEnrichError(t *testing.T) {
	schema := testSchema()

	t.Run("annotates validation error naming a schema field", func(t *testing.T) {
		err := &connectors.APIError{
			Provider:   "airtable",
			StatusCode: http.StatusUnprocessableEntity,
			Message:    `Field "Score" cannot accept the provided value`,
		}

		got := schema.EnrichError(err, "tblB")
		assert.Contains(t, got.Error(), `"Score" is declared as number`)
		assert.ErrorIs(t, got, err, "original error stays in the chain")
	})

	t.Run("leaves non-validation errors alone", func(t *testing.T) {
		err := &connectors.APIError{Provider: "airtable", StatusCode: http.StatusNotFound}
		assert.Equal(t, err, schema.EnrichError(err, "tblB"))
	})

	t.Run("leaves errors naming no known field alone", func(t *testing.T) {
		err := &connectors.APIError{
			Provider:   "airtable",
			StatusCode: http.StatusUnprocessableEntity,
			Message:    "something else went wrong",
		}
		assert.Equal(t, err, schema.EnrichError(err, "tblB"))
	})

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, schema.EnrichError(nil, "tblB"))
	})
}
