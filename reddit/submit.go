package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/porticolabs/connectors"
)

// ErrSubmitRejected indicates Reddit accepted the request but rejected
// the submission (e.g. rate limits, banned community).
var ErrSubmitRejected = errors.New("reddit: submission rejected")

// Submission is a new post. Exactly one of SelfText and LinkURL should be
// set; LinkURL wins when both are present.
type Submission struct {
	Subreddit string
	Title     string
	SelfText  string
	LinkURL   string
}

// SubmittedPost locates an accepted submission.
type SubmittedPost struct {
	ID       string   `json:"id"`
	Fullname Fullname `json:"name"`
	URL      string   `json:"url"`
}

// SubmitPost submits a post to a subreddit. Submissions are not safe to
// repeat and are never retried.
// POST https://oauth.reddit.com/api/submit (form-encoded)
func (c *Client) SubmitPost(ctx context.Context, sub Submission) (*SubmittedPost, error) {
	form := url.Values{}
	form.Set("sr", sub.Subreddit)
	form.Set("title", sub.Title)
	form.Set("api_type", "json")
	if sub.LinkURL != "" {
		form.Set("kind", "link")
		form.Set("url", sub.LinkURL)
	} else {
		form.Set("kind", "self")
		form.Set("text", sub.SelfText)
	}

	noRetry := connectors.NoRetry()
	var resp struct {
		JSON struct {
			Errors [][]string    `json:"errors"`
			Data   SubmittedPost `json:"data"`
		} `json:"json"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPost,
		Path:   "/api/submit",
		Form:   form,
		Retry:  &noRetry,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.JSON.Errors) > 0 {
		first := resp.JSON.Errors[0]
		if len(first) > 1 {
			return nil, fmt.Errorf("%w: %s", ErrSubmitRejected, first[1])
		}
		return nil, ErrSubmitRejected
	}
	return &resp.JSON.Data, nil
}
