package connectors

import (
	"context"
	"net/http"
)

// TokenProvider supplies a valid access token for authenticated API calls.
// Implementations handle refresh transparently; this module only ever asks
// for a token at request time.
type TokenProvider interface {
	// GetToken returns a valid access token.
	GetToken(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to the TokenProvider interface.
type TokenFunc func(ctx context.Context) (string, error)

// GetToken implements TokenProvider.
func (f TokenFunc) GetToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken is a TokenProvider that always returns the same token.
// Works for PATs and long-lived API keys.
type StaticToken string

// GetToken implements TokenProvider.
func (t StaticToken) GetToken(_ context.Context) (string, error) {
	return string(t), nil
}

// Authorizer attaches credentials to an outgoing request.
// The request is fully built (URL, body, content type) before Authorize is
// called; implementations should only set auth-related headers or query
// parameters.
type Authorizer interface {
	Authorize(ctx context.Context, req *http.Request) error
}

// AuthorizerFunc adapts a function to the Authorizer interface.
type AuthorizerFunc func(ctx context.Context, req *http.Request) error

// Authorize implements Authorizer.
func (f AuthorizerFunc) Authorize(ctx context.Context, req *http.Request) error {
	return f(ctx, req)
}

// BearerToken authorizes requests with an "Authorization: Bearer" header.
type BearerToken struct {
	Tokens TokenProvider
}

// Authorize implements Authorizer.
func (b BearerToken) Authorize(ctx context.Context, req *http.Request) error {
	token, err := b.Tokens.GetToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

// APIKey authorizes requests by setting a provider-specific header
// (e.g. Apollo's X-Api-Key).
type APIKey struct {
	Header string
	Tokens TokenProvider
}

// Authorize implements Authorizer.
func (k APIKey) Authorize(ctx context.Context, req *http.Request) error {
	token, err := k.Tokens.GetToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set(k.Header, token)
	return nil
}

// NoAuth is an Authorizer for endpoints that need no credentials, such as
// plain webhook targets.
var NoAuth = AuthorizerFunc(func(context.Context, *http.Request) error {
	return nil
})
