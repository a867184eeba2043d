package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/porticolabs/connectors"
)

// pageCursor is the state carried by list tokens: the next page number.
type pageCursor struct {
	Page int `json:"page"`
}

func nextToken(resp *gh.Response) connectors.PageToken {
	if resp == nil || resp.NextPage == 0 {
		return ""
	}
	return connectors.EncodeToken(pageCursor{Page: resp.NextPage})
}

// Issue is one repository issue.
type Issue struct {
	Number    int
	Title     string
	State     string
	Body      string
	Author    string
	Labels    []string
	CreatedAt time.Time
	UpdatedAt time.Time
	HTMLURL   string
}

// IssueListOptions filters a ListIssues call.
type IssueListOptions struct {
	// State is open, closed, or all. Defaults to open.
	State string

	// Since restricts results to issues updated at or after this time.
	Since time.Time

	// PerPage caps issues per page (GitHub max 100).
	PerPage int
}

// ListIssues fetches one page of issues for a repository. The listing
// includes pull requests, which GitHub models as issues; callers that want
// only issues should skip entries with a pull request link via the
// underlying endpoint semantics.
// GET /repos/{owner}/{repo}/issues
func (c *Client) ListIssues(
	ctx context.Context, owner, repo string, opts IssueListOptions, token connectors.PageToken,
) ([]Issue, connectors.PageToken, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, "", err
	}

	var cursor pageCursor
	if err := connectors.DecodeToken(token, &cursor); err != nil {
		return nil, "", err
	}

	ghOpts := &gh.IssueListByRepoOptions{
		State: opts.State,
		Since: opts.Since,
		ListOptions: gh.ListOptions{
			Page:    cursor.Page,
			PerPage: opts.PerPage,
		},
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}
	issues, resp, err := c.gh.Issues.ListByRepo(ctx, owner, repo, ghOpts)
	if err != nil {
		return nil, "", wrapError(err)
	}
	c.limiter.Update(resp)

	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		out = append(out, issueFromWire(is))
	}
	return out, nextToken(resp), nil
}

func issueFromWire(is *gh.Issue) Issue {
	labels := make([]string, 0, len(is.Labels))
	for _, l := range is.Labels {
		labels = append(labels, l.GetName())
	}
	return Issue{
		Number:    is.GetNumber(),
		Title:     is.GetTitle(),
		State:     is.GetState(),
		Body:      is.GetBody(),
		Author:    is.GetUser().GetLogin(),
		Labels:    labels,
		CreatedAt: is.GetCreatedAt().Time,
		UpdatedAt: is.GetUpdatedAt().Time,
		HTMLURL:   is.GetHTMLURL(),
	}
}

// Comment is one issue comment.
type Comment struct {
	ID        int64
	Body      string
	Author    string
	CreatedAt time.Time
	HTMLURL   string
}

// CreateIssueComment posts a comment on an issue or pull request. Comments
// are not safe to repeat, so transient failures surface immediately.
// POST /repos/{owner}/{repo}/issues/{number}/comments
func (c *Client) CreateIssueComment(
	ctx context.Context, owner, repo string, number int, body string,
) (*Comment, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	created, resp, err := c.gh.Issues.CreateComment(ctx, owner, repo, number, &gh.IssueComment{
		Body: gh.Ptr(body),
	})
	if err != nil {
		return nil, wrapError(err)
	}
	c.limiter.Update(resp)

	return &Comment{
		ID:        created.GetID(),
		Body:      created.GetBody(),
		Author:    created.GetUser().GetLogin(),
		CreatedAt: created.GetCreatedAt().Time,
		HTMLURL:   created.GetHTMLURL(),
	}, nil
}
