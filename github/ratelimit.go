package github

import (
	"context"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"
)

// proactiveRate throttles to ~1.2 req/sec, comfortably inside GitHub's
// 5000/hour authenticated limit.
const proactiveRate = 1.2

// minRemaining is the quota floor below which calls wait for the reset.
const minRemaining = 100

// RateLimiter combines a proactive token bucket with reactive quota
// tracking from GitHub response headers.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	resetAt   time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter creates a limiter assuming a full quota.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining: 5000,
		bucket:    rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

// Wait blocks until a request may be sent.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetAt := r.resetAt
	r.mu.Unlock()

	if remaining < minRemaining && time.Now().Before(resetAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetAt)):
		}
	}
	return nil
}

// Update records the quota state from a go-github response.
func (r *RateLimiter) Update(resp *gh.Response) {
	if resp == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = resp.Rate.Remaining
	r.resetAt = resp.Rate.Reset.Time
}
