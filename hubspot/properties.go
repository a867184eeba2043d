package hubspot

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/porticolabs/connectors"
)

// PropertyType is a HubSpot-declared property type.
type PropertyType string

const (
	TypeBool        PropertyType = "bool"
	TypeNumber      PropertyType = "number"
	TypeDate        PropertyType = "date"
	TypeDateTime    PropertyType = "datetime"
	TypeString      PropertyType = "string"
	TypeEnumeration PropertyType = "enumeration"
)

// dateLayout is the wire form of date-typed properties.
const dateLayout = "2006-01-02"

// PropertySchema maps property names to their declared types for one
// object collection.
type PropertySchema map[string]PropertyType

// propertyDef is one entry of the properties endpoint response.
type propertyDef struct {
	Name string       `json:"name"`
	Type PropertyType `json:"type"`
}

// FetchProperties fetches the property schema for an object collection.
// GET https://api.hubapi.com/crm/v3/properties/{objectType}
//
// This is phase one of the fetch-then-coerce flow: fetch the schema once,
// then pass it to CoerceOutbound/CoerceInbound for every value in the
// batch.
func (c *Client) FetchProperties(ctx context.Context, object ObjectType) (PropertySchema, error) {
	var resp struct {
		Results []propertyDef `json:"results"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/crm/v3/properties/%s", object),
	}, &resp)
	if err != nil {
		return nil, err
	}

	schema := make(PropertySchema, len(resp.Results))
	for _, def := range resp.Results {
		schema[def.Name] = def.Type
	}
	return schema, nil
}

// Type returns the declared type of a property, defaulting to string for
// unknown names.
func (s PropertySchema) Type(name string) PropertyType {
	if t, ok := s[name]; ok {
		return t
	}
	return TypeString
}

// CoerceOutbound converts a caller-supplied typed value into the string
// wire form the declared property type requires. nil becomes the empty
// string, which HubSpot interprets as clearing the property.
func (s PropertySchema) CoerceOutbound(name string, v any) (string, error) {
	if v == nil {
		return "", nil
	}

	switch s.Type(name) {
	case TypeBool:
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("hubspot: property %q wants bool, got %T", name, v)
		}
		return strconv.FormatBool(b), nil
	case TypeNumber:
		switch n := v.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), nil
		case int:
			return strconv.Itoa(n), nil
		case int64:
			return strconv.FormatInt(n, 10), nil
		}
		return "", fmt.Errorf("hubspot: property %q wants numeric value, got %T", name, v)
	case TypeDate:
		d, ok := v.(time.Time)
		if !ok {
			return "", fmt.Errorf("hubspot: property %q wants time.Time, got %T", name, v)
		}
		return d.Format(dateLayout), nil
	case TypeDateTime:
		d, ok := v.(time.Time)
		if !ok {
			return "", fmt.Errorf("hubspot: property %q wants time.Time, got %T", name, v)
		}
		return strconv.FormatInt(d.UnixMilli(), 10), nil
	default:
		// string, enumeration, and unknown types ride as strings.
		if str, ok := v.(string); ok {
			return str, nil
		}
		return fmt.Sprint(v), nil
	}
}

// CoerceInbound converts a wire string back into a typed value according
// to the declared property type. The second return is false when the wire
// value is the empty-string sentinel HubSpot uses for unset properties;
// such values must be omitted, not zeroed.
func (s PropertySchema) CoerceInbound(name, wire string) (any, bool) {
	if wire == "" {
		return nil, false
	}

	switch s.Type(name) {
	case TypeBool:
		b, err := strconv.ParseBool(wire)
		if err != nil {
			return wire, true
		}
		return b, true
	case TypeNumber:
		n, err := strconv.ParseFloat(wire, 64)
		if err != nil {
			return wire, true
		}
		return n, true
	case TypeDate:
		d, err := time.Parse(dateLayout, wire)
		if err != nil {
			return wire, true
		}
		return d, true
	case TypeDateTime:
		if ms, err := strconv.ParseInt(wire, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC(), true
		}
		if d, err := time.Parse(time.RFC3339, wire); err == nil {
			return d.UTC(), true
		}
		return wire, true
	default:
		return wire, true
	}
}

// CoerceAll converts a full wire property map, omitting empty-string
// sentinels.
func (s PropertySchema) CoerceAll(wire map[string]string) map[string]any {
	out := make(map[string]any, len(wire))
	for name, raw := range wire {
		if v, present := s.CoerceInbound(name, raw); present {
			out[name] = v
		}
	}
	return out
}
