package connectors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client is the shared HTTP client the provider packages are built on.
// It owns the concerns every connector needs: authorization, proactive
// rate limiting, transient-status retries, and error envelope parsing.
type Client struct {
	provider string
	baseURL  string
	http     *http.Client
	auth     Authorizer
	retry    RetryPolicy
	limiter  *rate.Limiter
	headers  map[string]string
	log      *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider's API root. Mostly useful for tests
// and self-hosted/regional endpoints.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetryPolicy replaces the client's default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithRateLimit throttles outgoing requests to rps requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// WithHeader sets a header on every request (e.g. Xero-Tenant-Id).
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithLogger enables debug logging of requests and retries.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for one provider. baseURL is the provider's
// API root; request paths are resolved against it.
func NewClient(provider, baseURL string, auth Authorizer, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		auth:     auth,
		retry:    DefaultRetryPolicy(),
		headers:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provider returns the connector identifier this client serves.
func (c *Client) Provider() string {
	return c.provider
}

// Request describes one API call.
type Request struct {
	// Method is the HTTP verb.
	Method string

	// Path is resolved against the client's base URL. An absolute
	// http(s) URL is used as-is.
	Path string

	// Query is appended to the URL.
	Query url.Values

	// Body, when non-nil, is JSON-encoded into the request body.
	Body any

	// Form, when non-empty, is form-encoded into the request body.
	// Mutually exclusive with Body.
	Form url.Values

	// Header holds request-specific headers.
	Header map[string]string

	// Retry overrides the client's retry policy for this call. Write
	// endpoints that are not documented as safe to repeat should set
	// this to NoRetry().
	Retry *RetryPolicy
}

// Response is the outcome of a successful (2xx) API call. The body is
// fully read and the connection released before Do returns.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do executes the request, retrying transient statuses per the effective
// retry policy. Non-2xx responses become *APIError values. The response
// body is always drained and closed.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	policy := c.retry
	if req.Retry != nil {
		policy = *req.Retry
	}

	target, err := c.resolve(req)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		resp, err := c.attempt(ctx, req, target)
		if err == nil {
			return resp, nil
		}

		delay, retryable := c.shouldRetry(policy, attempt, err)
		if !retryable {
			if te, ok := err.(*transientError); ok {
				return nil, te.apiErr
			}
			return nil, err
		}
		if c.log != nil {
			c.log.Debug("retrying request",
				"provider", c.provider, "url", target, "attempt", attempt+1, "delay", delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// DoJSON executes the request and JSON-decodes the response body into out.
// Pass nil to discard the body.
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.provider, err)
	}
	return nil
}

// transientError carries the response alongside an *APIError so the retry
// loop can consult Retry-After.
type transientError struct {
	apiErr *APIError
	resp   *http.Response
}

func (e *transientError) Error() string { return e.apiErr.Error() }
func (e *transientError) Unwrap() error { return e.apiErr }

// attempt performs a single request/response exchange.
func (c *Client) attempt(ctx context.Context, req Request, target string) (*Response, error) {
	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", c.provider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.provider, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	if err := c.auth.Authorize(ctx, httpReq); err != nil {
		return nil, fmt.Errorf("%s: authorize: %w", c.provider, err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.provider, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", c.provider, err)
	}

	if c.log != nil {
		c.log.Debug("request",
			"provider", c.provider, "method", req.Method, "url", target, "status", resp.StatusCode)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
	}

	apiErr := &APIError{
		Provider:   c.provider,
		StatusCode: resp.StatusCode,
		Message:    ExtractMessage(data),
		URL:        target,
	}
	return nil, &transientError{apiErr: apiErr, resp: resp}
}

// shouldRetry decides whether the error from an attempt is retryable under
// the policy, and if so for how long to wait. attempt is 0-based.
func (c *Client) shouldRetry(policy RetryPolicy, attempt int, err error) (time.Duration, bool) {
	if len(policy.Transient) == 0 || policy.exhausted(attempt+1) {
		return 0, false
	}

	te, ok := err.(*transientError)
	if !ok {
		return 0, false
	}
	if !policy.IsTransient(te.apiErr.StatusCode) {
		return 0, false
	}

	delay := policy.Backoff(attempt)
	if ra := retryAfter(te.resp); ra > delay {
		delay = ra
	}
	return delay, true
}

// resolve builds the full request URL.
func (c *Client) resolve(req Request) (string, error) {
	target := req.Path
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = c.baseURL + "/" + strings.TrimPrefix(target, "/")
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%s: invalid URL %q: %w", c.provider, req.Path, err)
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// encodeBody renders the request body, returning the reader and its
// content type. Body and Form are mutually exclusive; Body wins.
func encodeBody(req Request) (io.Reader, string, error) {
	switch {
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	case len(req.Form) > 0:
		return strings.NewReader(req.Form.Encode()), "application/x-www-form-urlencoded", nil
	default:
		return http.NoBody, "", nil
	}
}
