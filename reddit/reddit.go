// Package reddit wraps the Reddit OAuth API: subreddit listings, subreddit
// metadata, and post submission.
//
// Reddit wraps list responses in a Listing envelope whose "after" fullname
// doubles as the pagination cursor.
package reddit

import (
	"github.com/porticolabs/connectors"
)

// BaseURL is the Reddit OAuth API root.
const BaseURL = "https://oauth.reddit.com"

// Fullname is a Reddit thing ID with its kind prefix (t3_ for posts,
// t5_ for subreddits).
type Fullname string

// Sort orders a subreddit listing.
type Sort string

const (
	SortHot    Sort = "hot"
	SortNew    Sort = "new"
	SortTop    Sort = "top"
	SortRising Sort = "rising"
)

// Client calls the Reddit API.
type Client struct {
	api *connectors.Client
}

// New creates a Reddit client. Reddit requires a descriptive User-Agent
// on every request; pass the app's identifier.
func New(auth connectors.Authorizer, userAgent string, opts ...connectors.Option) *Client {
	defaults := []connectors.Option{
		connectors.WithHeader("User-Agent", userAgent),
		connectors.WithRateLimit(1),
	}
	return &Client{
		api: connectors.NewClient("reddit", BaseURL, auth, append(defaults, opts...)...),
	}
}
