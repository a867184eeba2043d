package connectors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of an unstructured error body is kept in the
// APIError message.
const maxErrorBody = 512

// APIError represents a non-2xx response from a provider API.
type APIError struct {
	// Provider is the connector identifier (e.g. "airtable").
	Provider string

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is a human-readable message extracted from the response body.
	Message string

	// URL is the request URL that produced the error.
	URL string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: API error %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 API error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 API error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err is a 403 API error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited reports whether err is a 429 API error.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// errorEnvelope matches the common JSON error shapes providers return.
// "error" is decoded leniently because it may be a string, an object, or
// absent depending on the provider.
type errorEnvelope struct {
	Error   json.RawMessage `json:"error"`
	Errors  []nestedError   `json:"errors"`
	Message string          `json:"message"`
}

type nestedError struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// ExtractMessage pulls a human-readable message out of a provider error
// body. It understands the common envelopes:
//
//	{"error": {"type": "...", "message": "..."}}
//	{"error": "plain string"}
//	{"message": "..."}
//	{"errors": [{"message": "..."}]}
//
// Anything else is returned as (truncated) raw text.
func ExtractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if msg := env.message(); msg != "" {
			return msg
		}
	}

	if len(trimmed) > maxErrorBody {
		trimmed = trimmed[:maxErrorBody]
	}
	return trimmed
}

func (e *errorEnvelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	for _, nested := range e.Errors {
		if nested.Message != "" {
			return nested.Message
		}
		if nested.Detail != "" {
			return nested.Detail
		}
	}
	if len(e.Error) == 0 {
		return ""
	}

	// "error" may be a bare string or an object with a message.
	var s string
	if err := json.Unmarshal(e.Error, &s); err == nil {
		return s
	}
	var obj nestedError
	if err := json.Unmarshal(e.Error, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Detail != "" {
			return obj.Detail
		}
	}
	return ""
}
