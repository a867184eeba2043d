package hubspot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticolabs/connectors"
)

func TestListContactsPagination(t *testing.T) {
	var afters []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		after := r.URL.Query().Get("after")
		afters = append(afters, after)

		if after == "" {
			w.Write([]byte(`{
				"results": [
					{"id":"101","properties":{"email":"ada@example.com","firstname":"Ada"},
					 "createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-02T00:00:00Z"},
					{"id":"102","properties":{"email":"grace@example.com","firstname":"Grace"},
					 "createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-02T00:00:00Z"}
				],
				"paging": {"next": {"after": "102"}}
			}`))
			return
		}
		w.Write([]byte(`{"results":[
			{"id":"103","properties":{"email":"alan@example.com"},
			 "createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-02T00:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	c := New(connectors.NoAuth, connectors.WithBaseURL(srv.URL))
	schema := testPropertySchema()
	ctx := context.Background()

	contacts, token, err := c.ListContacts(ctx, schema, ListOptions{Limit: 2}, "")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, ContactID("101"), contacts[0].ID)
	assert.Equal(t, "ada@example.com", contacts[0].Email)
	assert.Equal(t, "Ada", contacts[0].FirstName)
	require.False(t, token.IsZero())

	contacts, token, err = c.ListContacts(ctx, schema, ListOptions{Limit: 2}, token)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.True(t, token.IsZero(), "no paging field means exhausted")

	assert.Equal(t, []string{"", "102"}, afters)
}

func TestGetContactSplitsKnownFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crm/v3/objects/contacts/101", r.URL.Path)
		assert.Equal(t, "email,firstname,deal_value", r.URL.Query().Get("properties"))
		w.Write([]byte(`{
			"id":"101",
			"properties":{"email":"ada@example.com","firstname":"Ada","deal_value":"1250.75","lastname":""},
			"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-02T00:00:00Z"
		}`))
	}))
	defer srv.Close()

	c := New(connectors.NoAuth, connectors.WithBaseURL(srv.URL))
	contact, err := c.GetContact(context.Background(), testPropertySchema(), "101",
		[]string{"email", "firstname", "deal_value"})

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", contact.Email)
	assert.Equal(t, "Ada", contact.FirstName)
	assert.Equal(t, "", contact.LastName, "empty-string property leaves known field zero")
	assert.Equal(t, 1250.75, contact.Properties["deal_value"], "extension property coerced to number")

	_, ok := contact.Properties["email"]
	assert.False(t, ok, "known fields are not duplicated in the extension map")
}

func TestSearchContactsBody(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/crm/v3/objects/contacts/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := New(connectors.NoAuth, connectors.WithBaseURL(srv.URL))
	_, token, err := c.SearchContacts(context.Background(), testPropertySchema(),
		[]Filter{{PropertyName: "email", Operator: "EQ", Value: "ada@example.com"}},
		ListOptions{Limit: 10}, "")

	require.NoError(t, err)
	assert.True(t, token.IsZero())

	groups := body["filterGroups"].([]any)
	require.Len(t, groups, 1)
	assert.EqualValues(t, 10, body["limit"])
}

func TestCreateContactCoercesOutbound(t *testing.T) {
	var body struct {
		Properties map[string]string `json:"properties"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"201","properties":{"email":"new@example.com"},
			"createdAt":"2025-01-01T00:00:00Z","updatedAt":"2025-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	c := New(connectors.NoAuth, connectors.WithBaseURL(srv.URL))
	contact, err := c.CreateContact(context.Background(), testPropertySchema(), map[string]any{
		"email":         "new@example.com",
		"is_subscribed": true,
		"deal_value":    99.5,
	})

	require.NoError(t, err)
	assert.Equal(t, ContactID("201"), contact.ID)
	assert.Equal(t, "true", body.Properties["is_subscribed"])
	assert.Equal(t, "99.5", body.Properties["deal_value"])
}

func TestCreateContactRejectsBadValueLocally(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(connectors.NoAuth, connectors.WithBaseURL(srv.URL))
	_, err := c.CreateContact(context.Background(), testPropertySchema(), map[string]any{
		"is_subscribed": "yes",
	})

	require.Error(t, err)
	assert.Zero(t, calls, "coercion failures must not reach the network")
}
