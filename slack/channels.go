package slack

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/porticolabs/connectors"
)

// Channel is one conversation.
type Channel struct {
	ID         ChannelID `json:"id"`
	Name       string    `json:"name"`
	IsPrivate  bool      `json:"is_private"`
	IsArchived bool      `json:"is_archived"`
	NumMembers int       `json:"num_members"`
}

// ListChannels fetches one page of conversations the token can see.
// GET https://slack.com/api/conversations.list
func (c *Client) ListChannels(
	ctx context.Context, limit int, token connectors.PageToken,
) ([]Channel, connectors.PageToken, error) {
	query := url.Values{}
	query.Set("types", "public_channel,private_channel")
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if !token.IsZero() {
		query.Set("cursor", string(token))
	}

	var resp struct {
		Channels         []Channel `json:"channels"`
		ResponseMetadata struct {
			NextCursor string `json:"next_cursor"`
		} `json:"response_metadata"`
	}
	err := c.call(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   "/conversations.list",
		Query:  query,
	}, &resp)
	if err != nil {
		return nil, "", err
	}

	return resp.Channels, connectors.PageToken(resp.ResponseMetadata.NextCursor), nil
}

// ResolveChannelByName finds the single unarchived channel named name
// (without the leading #). Multiple matches fail with AmbiguousNameError.
func (c *Client) ResolveChannelByName(ctx context.Context, name string) (ChannelID, error) {
	var matches []string

	token := connectors.PageToken("")
	for {
		channels, next, err := c.ListChannels(ctx, 200, token)
		if err != nil {
			return "", err
		}
		for _, ch := range channels {
			if ch.IsArchived {
				continue
			}
			if ch.Name == name {
				matches = append(matches, string(ch.ID))
			}
		}
		if next.IsZero() {
			break
		}
		token = next
	}

	switch len(matches) {
	case 0:
		return "", ErrChannelNotFound
	case 1:
		return ChannelID(matches[0]), nil
	default:
		return "", &AmbiguousNameError{Name: name, Matches: matches}
	}
}
