package xero

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date wraps time.Time to decode Xero's legacy .NET JSON date form:
//
//	"/Date(1672531200000+0000)/"
//
// The number is milliseconds since the Unix epoch; the trailing zone
// offset is display-only and ignored.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Decode the JSON string first: Xero escapes the slashes on the wire
	// ("\/Date(...)\/"), and only unescaping yields the /Date(...)/ form.
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("xero: malformed date %s", data)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	if strings.HasPrefix(s, "/Date(") && strings.HasSuffix(s, ")/") {
		inner := s[len("/Date(") : len(s)-len(")/")]
		if idx := strings.IndexAny(inner, "+-"); idx > 0 {
			inner = inner[:idx]
		}
		ms, err := strconv.ParseInt(inner, 10, 64)
		if err != nil {
			return fmt.Errorf("xero: malformed date %q", s)
		}
		d.Time = time.UnixMilli(ms).UTC()
		return nil
	}

	// Some endpoints already emit ISO 8601.
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return fmt.Errorf("xero: malformed date %q", s)
	}
	d.Time = t.UTC()
	return nil
}

// MarshalJSON implements json.Marshaler, emitting the ISO form Xero
// accepts on writes.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.UTC().Format("2006-01-02T15:04:05") + `"`), nil
}
