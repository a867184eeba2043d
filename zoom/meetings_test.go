package zoom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticolabs/connectors"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(connectors.NoAuth, connectors.WithBaseURL(srv.URL))
}

func TestListMeetingsPagination(t *testing.T) {
	var tokens []string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/meetings", r.URL.Path)
		assert.Equal(t, "upcoming", r.URL.Query().Get("type"))
		token := r.URL.Query().Get("next_page_token")
		tokens = append(tokens, token)

		if token == "" {
			w.Write([]byte(`{"next_page_token":"tok-2","meetings":[
				{"id":91001,"topic":"standup","type":2,"duration":15,
				 "start_time":"2026-09-01T09:00:00Z","join_url":"https://zoom.us/j/91001"},
				{"id":91002,"topic":"retro","type":2}
			]}`))
			return
		}
		w.Write([]byte(`{"next_page_token":"","meetings":[
			{"id":91003,"topic":"planning","type":2}
		]}`))
	}))

	ctx := context.Background()

	meetings, token, err := c.ListMeetings(ctx, Me, ListOptions{Type: "upcoming"}, "")
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, MeetingID(91001), meetings[0].ID)
	assert.Equal(t, time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), meetings[0].StartTime)
	require.False(t, token.IsZero())

	meetings, token, err = c.ListMeetings(ctx, Me, ListOptions{Type: "upcoming"}, token)
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	assert.True(t, token.IsZero(), "empty next_page_token means exhausted")

	assert.Equal(t, []string{"", "tok-2"}, tokens)
}

func TestGetMeeting(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/meetings/91001", r.URL.Path)
		w.Write([]byte(`{"id":91001,"uuid":"abc==","topic":"standup","host_id":"h1","duration":15}`))
	}))

	m, err := c.GetMeeting(context.Background(), 91001)

	require.NoError(t, err)
	assert.Equal(t, "standup", m.Topic)
	assert.Equal(t, "h1", m.HostID)
}

func TestCreateMeeting(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/alice@example.com/meetings", r.URL.Path)

		var req MeetingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "design review", req.Topic)
		assert.Equal(t, TypeScheduled, req.Type, "type defaults to scheduled")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":92000,"topic":"design review","type":2,
			"join_url":"https://zoom.us/j/92000","start_url":"https://zoom.us/s/92000"}`))
	}))

	m, err := c.CreateMeeting(context.Background(), "alice@example.com", MeetingRequest{
		Topic:    "design review",
		Duration: 45,
	})

	require.NoError(t, err)
	assert.Equal(t, MeetingID(92000), m.ID)
	assert.NotEmpty(t, m.StartURL)
}

func TestCreateMeetingNoRetry(t *testing.T) {
	var calls int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.CreateMeeting(context.Background(), Me, MeetingRequest{Topic: "x"})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "scheduling is never retried")
}

func TestGetUser(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		w.Write([]byte(`{"id":"u123","first_name":"Ada","last_name":"Lovelace",
			"email":"ada@example.com","status":"active"}`))
	}))

	u, err := c.GetUser(context.Background(), Me)

	require.NoError(t, err)
	assert.Equal(t, UserID("u123"), u.ID)
	assert.Equal(t, "ada@example.com", u.Email)
}
