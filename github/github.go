// Package github wraps the GitHub REST API via go-github: repository
// lookup, issue and pull request listing, and issue comments.
//
// Unlike most connectors in this module, requests go through the go-github
// client rather than the shared HTTP client; errors are still normalized to
// *connectors.APIError so callers can use the shared status helpers.
package github

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/porticolabs/connectors"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client calls the GitHub API.
type Client struct {
	mu      sync.Mutex
	gh      *gh.Client
	tokens  connectors.TokenProvider
	limiter *RateLimiter
}

// New creates a GitHub client. The go-github client is initialized lazily
// so the token is only requested when the first call is made.
func New(tokens connectors.TokenProvider) *Client {
	return &Client{
		tokens:  tokens,
		limiter: NewRateLimiter(),
	}
}

// NewWithHTTPClient creates a GitHub client over a caller-supplied
// *http.Client (e.g. an oauth2 client that refreshes its own token).
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{
		gh:      gh.NewClient(hc),
		limiter: NewRateLimiter(),
	}
}

// NewEnterprise creates a client for a GitHub Enterprise instance rooted
// at baseURL.
func NewEnterprise(baseURL string, hc *http.Client) (*Client, error) {
	client, err := gh.NewClient(hc).WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{gh: client, limiter: NewRateLimiter()}, nil
}

// ensure initializes the go-github client on first use. Concurrent first
// calls serialize here so exactly one client is built.
func (c *Client) ensure(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gh != nil {
		return nil
	}

	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = DefaultTimeout
	c.gh = gh.NewClient(hc)
	return nil
}

// wrapError normalizes go-github errors to *connectors.APIError.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &connectors.APIError{
			Provider:   "github",
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &connectors.APIError{
			Provider:   "github",
			StatusCode: http.StatusTooManyRequests,
			Message:    rateErr.Message,
		}
	}

	return err
}
