package slack

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/porticolabs/connectors"
)

// User is one workspace member.
type User struct {
	ID          UserID `json:"id"`
	Name        string `json:"name"`
	RealName    string `json:"real_name"`
	DisplayName string
	Email       string
	IsBot       bool `json:"is_bot"`
	Deleted     bool `json:"deleted"`
}

// wireUser carries the nested profile Slack returns.
type wireUser struct {
	User
	Profile struct {
		DisplayName string `json:"display_name"`
		Email       string `json:"email"`
	} `json:"profile"`
}

func (w wireUser) toUser() User {
	u := w.User
	u.DisplayName = w.Profile.DisplayName
	u.Email = w.Profile.Email
	return u
}

// ListUsers fetches one page of workspace members.
// GET https://slack.com/api/users.list
//
// The token is Slack's response_metadata.next_cursor passed through
// opaquely; Slack signals exhaustion with an empty cursor.
func (c *Client) ListUsers(
	ctx context.Context, limit int, token connectors.PageToken,
) ([]User, connectors.PageToken, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if !token.IsZero() {
		query.Set("cursor", string(token))
	}

	var resp struct {
		Members          []wireUser `json:"members"`
		ResponseMetadata struct {
			NextCursor string `json:"next_cursor"`
		} `json:"response_metadata"`
	}
	err := c.call(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   "/users.list",
		Query:  query,
	}, &resp)
	if err != nil {
		return nil, "", err
	}

	users := make([]User, 0, len(resp.Members))
	for _, w := range resp.Members {
		users = append(users, w.toUser())
	}
	return users, connectors.PageToken(resp.ResponseMetadata.NextCursor), nil
}

// ResolveUserByName finds the single active user whose display name or
// real name equals name. Two users sharing a display name is a hard
// failure (AmbiguousNameError): silently picking one would route messages
// to the wrong person.
func (c *Client) ResolveUserByName(ctx context.Context, name string) (UserID, error) {
	var matches []string

	token := connectors.PageToken("")
	for {
		users, next, err := c.ListUsers(ctx, 200, token)
		if err != nil {
			return "", err
		}
		for _, u := range users {
			if u.Deleted {
				continue
			}
			if u.DisplayName == name || u.RealName == name {
				matches = append(matches, string(u.ID))
			}
		}
		if next.IsZero() {
			break
		}
		token = next
	}

	switch len(matches) {
	case 0:
		return "", ErrUserNotFound
	case 1:
		return UserID(matches[0]), nil
	default:
		return "", &AmbiguousNameError{Name: name, Matches: matches}
	}
}
