package connectors

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrInvalidPageToken indicates a pagination token was not produced by
// this module or has been corrupted.
var ErrInvalidPageToken = errors.New("connectors: invalid page token")

// PageToken is an opaque continuation marker returned by list operations.
// Callers must treat it as a black box: its internal representation is
// provider-specific (a native cursor string, an offset, a page number) and
// is not stable across providers or releases. The zero value means "start
// from the beginning" when passed in, and "result set exhausted" when
// returned.
type PageToken string

// IsZero reports whether the token is empty.
func (t PageToken) IsZero() bool {
	return t == ""
}

// EncodeToken serializes provider cursor state into an opaque token.
// Used by providers whose native pagination state is not already a single
// opaque string (page numbers, composite cursors).
func EncodeToken(state any) PageToken {
	data, err := json.Marshal(state)
	if err != nil {
		return ""
	}
	return PageToken(base64.RawURLEncoding.EncodeToString(data))
}

// DecodeToken deserializes an opaque token into provider cursor state.
// An empty token leaves state untouched so providers start from the
// beginning.
func DecodeToken(token PageToken, state any) error {
	if token.IsZero() {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(string(token))
	if err != nil {
		return ErrInvalidPageToken
	}
	if err := json.Unmarshal(data, state); err != nil {
		return ErrInvalidPageToken
	}
	return nil
}
