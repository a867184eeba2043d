// Package slack wraps the Slack Web API: user and channel listing, message
// posting, and name-to-ID resolution.
//
// Slack reports failures in-band: HTTP 200 with {"ok":false,"error":"code"}.
// Every call therefore decodes the envelope before the payload, and only
// 429 responses (with Retry-After) surface as transport-level errors.
package slack

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/porticolabs/connectors"
)

// BaseURL is the Slack Web API root.
const BaseURL = "https://slack.com/api"

// UserID identifies a Slack user (U.../W...).
type UserID string

// ChannelID identifies a Slack conversation (C.../G.../D...).
type ChannelID string

// Client calls the Slack Web API.
type Client struct {
	api *connectors.Client
}

// New creates a Slack client authenticated with a bot or user token.
func New(auth connectors.Authorizer, opts ...connectors.Option) *Client {
	return &Client{
		api: connectors.NewClient("slack", BaseURL, auth, opts...),
	}
}

// envelope is the common wrapper on every Web API response.
type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// call executes a Web API method, checks the ok/error envelope, then
// decodes the payload into out.
func (c *Client) call(ctx context.Context, req connectors.Request, out any) error {
	resp, err := c.api.Do(ctx, req)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return fmt.Errorf("slack: decode envelope: %w", err)
	}
	if !env.OK {
		return &APIError{Code: env.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("slack: decode response: %w", err)
	}
	return nil
}
