package github

import (
	"context"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/porticolabs/connectors"
)

// PullRequest is one repository pull request.
type PullRequest struct {
	Number     int
	Title      string
	State      string
	Author     string
	BaseBranch string
	HeadBranch string
	Draft      bool
	Merged     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	HTMLURL    string
}

// PullListOptions filters a ListPullRequests call.
type PullListOptions struct {
	// State is open, closed, or all. Defaults to open.
	State string

	// Base restricts results to PRs targeting this branch.
	Base string

	// PerPage caps PRs per page (GitHub max 100).
	PerPage int
}

// ListPullRequests fetches one page of pull requests for a repository.
// GET /repos/{owner}/{repo}/pulls
func (c *Client) ListPullRequests(
	ctx context.Context, owner, repo string, opts PullListOptions, token connectors.PageToken,
) ([]PullRequest, connectors.PageToken, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, "", err
	}

	var cursor pageCursor
	if err := connectors.DecodeToken(token, &cursor); err != nil {
		return nil, "", err
	}

	ghOpts := &gh.PullRequestListOptions{
		State: opts.State,
		Base:  opts.Base,
		ListOptions: gh.ListOptions{
			Page:    cursor.Page,
			PerPage: opts.PerPage,
		},
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}
	prs, resp, err := c.gh.PullRequests.List(ctx, owner, repo, ghOpts)
	if err != nil {
		return nil, "", wrapError(err)
	}
	c.limiter.Update(resp)

	out := make([]PullRequest, 0, len(prs))
	for _, pr := range prs {
		out = append(out, PullRequest{
			Number:     pr.GetNumber(),
			Title:      pr.GetTitle(),
			State:      pr.GetState(),
			Author:     pr.GetUser().GetLogin(),
			BaseBranch: pr.GetBase().GetRef(),
			HeadBranch: pr.GetHead().GetRef(),
			Draft:      pr.GetDraft(),
			Merged:     pr.GetMerged(),
			CreatedAt:  pr.GetCreatedAt().Time,
			UpdatedAt:  pr.GetUpdatedAt().Time,
			HTMLURL:    pr.GetHTMLURL(),
		})
	}
	return out, nextToken(resp), nil
}
