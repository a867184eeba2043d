package slack

import (
	"errors"
	"fmt"
	"strings"
)

// Slack-specific errors.
var (
	// ErrUserNotFound indicates no user matched the given name.
	ErrUserNotFound = errors.New("slack: no user with that name")

	// ErrChannelNotFound indicates no channel matched the given name.
	ErrChannelNotFound = errors.New("slack: no channel with that name")
)

// APIError is an in-band Slack failure: "ok": false with a short error
// code such as channel_not_found or invalid_auth.
type APIError struct {
	Code string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack: API error: %s", e.Code)
}

// AmbiguousNameError indicates a human-readable name resolved to more than
// one ID. Callers must disambiguate; the connector never picks one.
type AmbiguousNameError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf("slack: name %q is ambiguous, matches %s",
		e.Name, strings.Join(e.Matches, ", "))
}

// IsAmbiguous reports whether err is an ambiguous-name failure.
func IsAmbiguous(err error) bool {
	var ambiguous *AmbiguousNameError
	return errors.As(err, &ambiguous)
}
