package zoom

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/porticolabs/connectors"
)

// Meeting type codes.
const (
	TypeInstant   = 1
	TypeScheduled = 2
	TypeRecurring = 8
)

// Meeting is one scheduled or past meeting.
type Meeting struct {
	ID        MeetingID `json:"id"`
	UUID      string    `json:"uuid"`
	HostID    string    `json:"host_id"`
	Topic     string    `json:"topic"`
	Type      int       `json:"type"`
	StartTime time.Time `json:"start_time"`
	Duration  int       `json:"duration"`
	Timezone  string    `json:"timezone"`
	Agenda    string    `json:"agenda"`
	JoinURL   string    `json:"join_url"`
	StartURL  string    `json:"start_url,omitempty"`
}

// ListOptions narrows a ListMeetings call.
type ListOptions struct {
	// Type filters the listing: "scheduled", "live", "upcoming" or
	// "previous_meetings". Empty means Zoom's default (live).
	Type string

	// PageSize caps the page, up to 300. Zero means the server default.
	PageSize int
}

// ListMeetings fetches one page of a user's meetings. The token is Zoom's
// own next_page_token carried through verbatim; an empty token in the
// response ends the sequence.
// GET https://api.zoom.us/v2/users/{userID}/meetings
func (c *Client) ListMeetings(
	ctx context.Context, user UserID, opts ListOptions, token connectors.PageToken,
) ([]Meeting, connectors.PageToken, error) {
	query := url.Values{}
	if opts.Type != "" {
		query.Set("type", opts.Type)
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}
	if !token.IsZero() {
		query.Set("next_page_token", string(token))
	}

	var resp struct {
		Meetings      []Meeting `json:"meetings"`
		NextPageToken string    `json:"next_page_token"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/users/%s/meetings", url.PathEscape(string(user))),
		Query:  query,
	}, &resp)
	if err != nil {
		return nil, "", err
	}
	return resp.Meetings, connectors.PageToken(resp.NextPageToken), nil
}

// GetMeeting fetches one meeting by ID.
// GET https://api.zoom.us/v2/meetings/{meetingID}
func (c *Client) GetMeeting(ctx context.Context, id MeetingID) (*Meeting, error) {
	var m Meeting
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/meetings/%d", id),
	}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MeetingRequest describes a meeting to schedule.
type MeetingRequest struct {
	Topic     string    `json:"topic"`
	Type      int       `json:"type"`
	StartTime time.Time `json:"start_time,omitempty"`
	Duration  int       `json:"duration,omitempty"`
	Timezone  string    `json:"timezone,omitempty"`
	Agenda    string    `json:"agenda,omitempty"`
}

// CreateMeeting schedules a meeting for a user. Scheduling is not safe to
// repeat and is never retried.
// POST https://api.zoom.us/v2/users/{userID}/meetings
func (c *Client) CreateMeeting(ctx context.Context, user UserID, req MeetingRequest) (*Meeting, error) {
	if req.Type == 0 {
		req.Type = TypeScheduled
	}

	noRetry := connectors.NoRetry()
	var m Meeting
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/users/%s/meetings", url.PathEscape(string(user))),
		Body:   req,
		Retry:  &noRetry,
	}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
