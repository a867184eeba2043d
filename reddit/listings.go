package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/porticolabs/connectors"
)

// Post is one subreddit submission.
type Post struct {
	ID          string
	Fullname    Fullname
	Subreddit   string
	Title       string
	Author      string
	SelfText    string
	URL         string
	Permalink   string
	Score       int
	NumComments int
	Stickied    bool
	Created     time.Time
}

// wirePost is the raw thing data inside a Listing child.
type wirePost struct {
	ID          string   `json:"id"`
	Name        Fullname `json:"name"`
	Subreddit   string   `json:"subreddit"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	SelfText    string   `json:"selftext"`
	URL         string   `json:"url"`
	Permalink   string   `json:"permalink"`
	Score       int      `json:"score"`
	NumComments int      `json:"num_comments"`
	Stickied    bool     `json:"stickied"`
	CreatedUTC  float64  `json:"created_utc"`
}

func (w wirePost) toPost() Post {
	return Post{
		ID:          w.ID,
		Fullname:    w.Name,
		Subreddit:   w.Subreddit,
		Title:       w.Title,
		Author:      w.Author,
		SelfText:    w.SelfText,
		URL:         w.URL,
		Permalink:   "https://www.reddit.com" + w.Permalink,
		Score:       w.Score,
		NumComments: w.NumComments,
		Stickied:    w.Stickied,
		Created:     time.Unix(int64(w.CreatedUTC), 0).UTC(),
	}
}

// listing is Reddit's universal list envelope.
type listing struct {
	Kind string `json:"kind"`
	Data struct {
		Children []struct {
			Data wirePost `json:"data"`
		} `json:"children"`
		After string `json:"after"`
	} `json:"data"`
}

// ListPosts fetches one page of a subreddit listing.
// GET https://oauth.reddit.com/r/{subreddit}/{sort}
//
// The token is the listing's "after" fullname passed through opaquely;
// Reddit returns null when the listing is exhausted.
func (c *Client) ListPosts(
	ctx context.Context, subreddit string, sort Sort, limit int, token connectors.PageToken,
) ([]Post, connectors.PageToken, error) {
	if sort == "" {
		sort = SortHot
	}

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if !token.IsZero() {
		query.Set("after", string(token))
	}

	var page listing
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/r/%s/%s", subreddit, sort),
		Query:  query,
	}, &page)
	if err != nil {
		return nil, "", err
	}

	posts := make([]Post, 0, len(page.Data.Children))
	for _, child := range page.Data.Children {
		posts = append(posts, child.Data.toPost())
	}
	return posts, connectors.PageToken(page.Data.After), nil
}

// Subreddit is community metadata.
type Subreddit struct {
	Fullname    Fullname `json:"name"`
	DisplayName string   `json:"display_name"`
	Title       string   `json:"title"`
	Description string   `json:"public_description"`
	Subscribers int      `json:"subscribers"`
	Over18      bool     `json:"over18"`
}

// GetSubreddit fetches community metadata.
// GET https://oauth.reddit.com/r/{subreddit}/about
func (c *Client) GetSubreddit(ctx context.Context, subreddit string) (*Subreddit, error) {
	var resp struct {
		Data Subreddit `json:"data"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/r/%s/about", subreddit),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
