package connectors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryPolicy() RetryPolicy {
	p := DefaultRetryPolicy()
	p.BaseDelay = time.Millisecond
	p.MaxDelay = 5 * time.Millisecond
	return p
}

func TestDoAppliesAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL, BearerToken{Tokens: StaticToken("tok-123")})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/thing"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDoRetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL, NoAuth, WithRetryPolicy(fastRetryPolicy()))
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/thing"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoDoesNotRetryPermanentErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"type":"INVALID_VALUE","message":"field mismatch"}}`))
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL, NoAuth, WithRetryPolicy(fastRetryPolicy()))
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/thing"})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "field mismatch", apiErr.Message)
	assert.Equal(t, "test", apiErr.Provider)
}

func TestDoHonoursPerRequestNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	noRetry := NoRetry()
	c := NewClient("test", srv.URL, NoAuth, WithRetryPolicy(fastRetryPolicy()))
	_, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/write",
		Retry:  &noRetry,
	})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, hasStatus(err, http.StatusServiceUnavailable))
}

func TestDoStopsWhenAttemptsExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := fastRetryPolicy()
	p.MaxAttempts = 3
	c := NewClient("test", srv.URL, NoAuth, WithRetryPolicy(p))
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/thing"})

	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoJSONDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"widget","count":2}`))
	}))
	defer srv.Close()

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	c := NewClient("test", srv.URL, NoAuth)
	err := c.DoJSON(context.Background(), Request{Method: http.MethodGet, Path: "/"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "widget", out.Name)
	assert.Equal(t, 2, out.Count)
}

func TestDoCancelledContextStopsRetrying(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := fastRetryPolicy()
	p.BaseDelay = 50 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	c := NewClient("test", srv.URL, NoAuth, WithRetryPolicy(p))
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/thing"})

	require.ErrorIs(t, err, context.DeadlineExceeded)
}
