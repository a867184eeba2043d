package airtable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceRoundTrip(t *testing.T) {
	date := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	stamp := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		typ   FieldType
		typed any
	}{
		{name: "checkbox true", typ: TypeCheckbox, typed: true},
		{name: "checkbox false", typ: TypeCheckbox, typed: false},
		{name: "number", typ: TypeNumber, typed: 42.5},
		{name: "date", typ: TypeDate, typed: date},
		{name: "datetime", typ: TypeDateTime, typed: stamp},
		{name: "text fallback", typ: TypeSingleLineText, typed: "hello"},
		{name: "unknown type falls back to string", typ: FieldType("barcode"), typed: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wire, err := CoerceOutbound(tt.typ, tt.typed)
			require.NoError(t, err)

			back, present := CoerceInbound(tt.typ, wire)
			require.True(t, present)
			assert.Equal(t, tt.typed, back)
		})
	}
}

func TestCoerceInboundAbsentValues(t *testing.T) {
	// Empty-string sentinels mean "absent", not zero value.
	_, present := CoerceInbound(TypeNumber, "")
	assert.False(t, present)

	_, present = CoerceInbound(TypeSingleLineText, "")
	assert.False(t, present)

	_, present = CoerceInbound(TypeDate, nil)
	assert.False(t, present)

	// Checkbox is the exception: absent means false by provider semantics.
	v, present := CoerceInbound(TypeCheckbox, nil)
	assert.True(t, present)
	assert.Equal(t, false, v)
}

func TestCoerceOutboundTypeMismatch(t *testing.T) {
	_, err := CoerceOutbound(TypeCheckbox, "yes")
	assert.Error(t, err)

	_, err = CoerceOutbound(TypeNumber, "42")
	assert.Error(t, err)

	_, err = CoerceOutbound(TypeDate, "2025-06-15")
	assert.Error(t, err)
}

func testSchema() *Schema {
	return &Schema{Tables: []Table{
		{
			ID:   "tblB",
			Name: "Tasks",
			Fields: []Field{
				{ID: "fld1", Name: "Name", Type: TypeSingleLineText},
				{ID: "fld2", Name: "Done", Type: TypeCheckbox},
				{ID: "fld3", Name: "Score", Type: TypeNumber},
				{ID: "fld4", Name: "Due", Type: TypeDate},
			},
		},
	}}
}

func TestCoerceRecord(t *testing.T) {
	schema := testSchema()
	rec := Record{
		ID: "rec001",
		Fields: map[string]any{
			"Name":  "write report",
			"Score": 3.0,
			"Due":   "2025-06-15",
			// "Done" omitted: Airtable drops unchecked boxes.
		},
	}

	got := schema.CoerceRecord("tblB", rec)

	assert.Equal(t, "write report", got["Name"])
	assert.Equal(t, 3.0, got["Score"])
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), got["Due"])
	assert.Equal(t, false, got["Done"], "absent checkbox defaults to false")
}

func TestCoerceRecordOmitsEmptyStrings(t *testing.T) {
	schema := testSchema()
	rec := Record{ID: "rec001", Fields: map[string]any{"Name": ""}}

	got := schema.CoerceRecord("tblB", rec)

	_, ok := got["Name"]
	assert.False(t, ok, "empty-string sentinel must be omitted, not zeroed")
}
