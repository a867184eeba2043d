// Package zoom wraps the Zoom REST API: meeting listing, lookup and
// scheduling, plus user lookup.
//
// List endpoints return a native next_page_token which is passed through
// as the opaque page token unchanged.
package zoom

import (
	"github.com/porticolabs/connectors"
)

// BaseURL is the Zoom API v2 root.
const BaseURL = "https://api.zoom.us/v2"

// MeetingID identifies a meeting. Zoom meeting IDs are numeric but opaque.
type MeetingID int64

// UserID identifies a user. The literal "me" addresses the token owner,
// and an email address is also accepted wherever a UserID is.
type UserID string

// Me addresses the user who owns the access token.
const Me UserID = "me"

// Client calls the Zoom API.
type Client struct {
	api *connectors.Client
}

// New creates a Zoom client.
func New(auth connectors.Authorizer, opts ...connectors.Option) *Client {
	return &Client{api: connectors.NewClient("zoom", BaseURL, auth, opts...)}
}
