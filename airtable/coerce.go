package airtable

import (
	"fmt"
	"time"
)

// Wire layouts for Airtable date fields.
const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

// CoerceInbound converts a wire value into a typed value according to the
// declared field type. The second return is false when the value is absent
// (nil, or the empty-string sentinel Airtable uses for cleared cells).
//
// One exception to empty-means-absent: a checkbox field is always present,
// because Airtable omits unchecked boxes from the payload entirely and the
// provider semantics define that as false.
func CoerceInbound(t FieldType, v any) (any, bool) {
	if t == TypeCheckbox {
		b, _ := v.(bool)
		return b, true
	}
	if v == nil {
		return nil, false
	}
	if s, ok := v.(string); ok && s == "" {
		return nil, false
	}

	switch t {
	case TypeNumber:
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		}
		return nil, false
	case TypeDate:
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, false
		}
		return d, true
	case TypeDateTime:
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		d, err := time.Parse(dateTimeLayout, s)
		if err != nil {
			return nil, false
		}
		return d, true
	default:
		// Unknown and text-like types fall back to their string form.
		if s, ok := v.(string); ok {
			return s, true
		}
		return fmt.Sprint(v), true
	}
}

// CoerceOutbound converts a typed value into the wire representation the
// declared field type requires.
func CoerceOutbound(t FieldType, v any) (any, error) {
	switch t {
	case TypeCheckbox:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("airtable: checkbox field wants bool, got %T", v)
		}
		return b, nil
	case TypeNumber:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
		return nil, fmt.Errorf("airtable: number field wants numeric value, got %T", v)
	case TypeDate:
		d, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("airtable: date field wants time.Time, got %T", v)
		}
		return d.Format(dateLayout), nil
	case TypeDateTime:
		d, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("airtable: dateTime field wants time.Time, got %T", v)
		}
		return d.UTC().Format(dateTimeLayout), nil
	default:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	}
}

// CoerceRecord converts all wire values of a record according to the table
// schema. Absent values (empty-string sentinels) are omitted from the
// result; fields without a schema entry keep their string fallback.
// Declared checkbox fields missing from the payload are materialized as
// false, since Airtable omits unchecked boxes entirely.
func (s *Schema) CoerceRecord(table TableID, rec Record) map[string]any {
	out := make(map[string]any, len(rec.Fields))
	for name, raw := range rec.Fields {
		t, _ := s.FieldType(table, name)
		v, present := CoerceInbound(t, raw)
		if present {
			out[name] = v
		}
	}

	if t, ok := s.Table(string(table)); ok {
		for _, f := range t.Fields {
			if f.Type == TypeCheckbox {
				if _, seen := rec.Fields[f.Name]; !seen {
					out[f.Name] = false
				}
			}
		}
	}
	return out
}
