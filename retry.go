package connectors

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// Default retry tuning. Providers may override via RetryPolicy fields.
const (
	// DefaultBaseDelay is the initial backoff delay.
	DefaultBaseDelay = 500 * time.Millisecond

	// DefaultMaxDelay is the backoff ceiling.
	DefaultMaxDelay = 30 * time.Second

	// DefaultMultiplier is the backoff growth factor per attempt.
	DefaultMultiplier = 2.0
)

// RetryPolicy decides which response statuses are retried and how long to
// wait between attempts. The zero value disables retries entirely; use
// DefaultRetryPolicy for the standard transient set.
//
// Attempts are unbounded by default: a request keeps retrying (with the
// delay capped at MaxDelay) until it succeeds, hits a non-transient status,
// or the context is cancelled. Set MaxAttempts to bound it.
type RetryPolicy struct {
	// Transient is the set of status codes that are retried.
	Transient []int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// Multiplier grows the delay after each attempt.
	Multiplier float64

	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration

	// MaxAttempts bounds the total number of attempts. Zero means
	// unbounded.
	MaxAttempts int
}

// DefaultRetryPolicy returns the standard policy: retry 429 and 5xx
// gateway/unavailability statuses with full-jitter exponential backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Transient: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
		BaseDelay:  DefaultBaseDelay,
		Multiplier: DefaultMultiplier,
		MaxDelay:   DefaultMaxDelay,
	}
}

// NoRetry returns a policy that never retries. Used for write operations
// that are not documented as safe to repeat.
func NoRetry() RetryPolicy {
	return RetryPolicy{}
}

// IsTransient reports whether the status code is in the policy's
// transient set.
func (p RetryPolicy) IsTransient(status int) bool {
	for _, code := range p.Transient {
		if code == status {
			return true
		}
	}
	return false
}

// Backoff returns the delay before the given retry attempt (0-based),
// with full jitter applied and capped at MaxDelay.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	mult := p.Multiplier
	if mult <= 1 {
		mult = DefaultMultiplier
	}
	ceiling := p.MaxDelay
	if ceiling <= 0 {
		ceiling = DefaultMaxDelay
	}

	delay := float64(base)
	for i := 0; i < attempt; i++ {
		delay *= mult
		if delay >= float64(ceiling) {
			delay = float64(ceiling)
			break
		}
	}

	// Full jitter: uniform in (0, delay].
	jittered := time.Duration(rand.Int63n(int64(delay))) + 1
	return jittered
}

// exhausted reports whether the attempt budget is spent. attempt is the
// number of attempts already made.
func (p RetryPolicy) exhausted(attempt int) bool {
	return p.MaxAttempts > 0 && attempt >= p.MaxAttempts
}

// retryAfter parses a Retry-After header into a delay, returning zero when
// the header is absent or malformed. Only the delta-seconds form is
// supported; providers in this module do not send HTTP dates.
func retryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
