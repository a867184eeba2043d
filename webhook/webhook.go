// Package webhook delivers JSON event payloads to caller-supplied HTTP
// endpoints.
//
// Each delivery carries a unique X-Delivery-Id header so receivers can
// deduplicate replays, and an optional HMAC-SHA256 signature over the
// exact request body so receivers can authenticate the sender.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/porticolabs/connectors"
)

// Header names stamped on every delivery.
const (
	HeaderDeliveryID = "X-Delivery-Id"
	HeaderSignature  = "X-Signature-256"
	HeaderEvent      = "X-Event-Type"
)

// Sender posts events to webhook endpoints.
type Sender struct {
	api    *connectors.Client
	secret []byte
}

// NewSender creates a webhook sender. secret, when non-empty, enables the
// HMAC-SHA256 signature header on every delivery.
func NewSender(secret []byte, opts ...connectors.Option) *Sender {
	return &Sender{
		api:    connectors.NewClient("webhook", "", connectors.NoAuth, opts...),
		secret: secret,
	}
}

// Event is one outgoing notification.
type Event struct {
	// Type names the event, delivered in the X-Event-Type header.
	Type string

	// Payload is JSON-encoded into the request body.
	Payload any
}

// Delivery records the outcome of an accepted delivery.
type Delivery struct {
	// ID is the value sent in X-Delivery-Id.
	ID uuid.UUID

	// StatusCode is the receiver's response status.
	StatusCode int

	// Body is the receiver's response body, if any.
	Body []byte

	// Duration covers the whole delivery including retries.
	Duration time.Duration
}

// Send delivers an event to endpoint. Transient receiver statuses are
// retried under the sender's policy; the delivery ID stays stable across
// retries so receivers can deduplicate.
func (s *Sender) Send(ctx context.Context, endpoint string, event Event) (*Delivery, error) {
	body, err := json.Marshal(event.Payload)
	if err != nil {
		return nil, fmt.Errorf("webhook: encode payload: %w", err)
	}

	id := uuid.New()
	headers := map[string]string{
		HeaderDeliveryID: id.String(),
	}
	if event.Type != "" {
		headers[HeaderEvent] = event.Type
	}
	if len(s.secret) > 0 {
		headers[HeaderSignature] = "sha256=" + s.sign(body)
	}

	start := time.Now()
	resp, err := s.api.Do(ctx, connectors.Request{
		Method: http.MethodPost,
		Path:   endpoint,
		Body:   json.RawMessage(body),
		Header: headers,
	})
	if err != nil {
		return nil, err
	}

	return &Delivery{
		ID:         id,
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Duration:   time.Since(start),
	}, nil
}

// sign computes the hex HMAC-SHA256 of body under the sender's secret.
func (s *Sender) sign(body []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a received signature header value against the body and
// secret. Receivers should compare with this rather than string equality.
func Verify(secret, body []byte, header string) bool {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(header))
}
