package github

import (
	"context"
	"time"
)

// Repository is the subset of repository metadata the connector exposes.
type Repository struct {
	Owner         string
	Name          string
	FullName      string
	Description   string
	DefaultBranch string
	Private       bool
	Archived      bool
	Stars         int
	PushedAt      time.Time
}

// GetRepository fetches a single repository.
// GET /repos/{owner}/{repo}
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	r, resp, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, wrapError(err)
	}
	c.limiter.Update(resp)

	return &Repository{
		Owner:         r.GetOwner().GetLogin(),
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
		Archived:      r.GetArchived(),
		Stars:         r.GetStargazersCount(),
		PushedAt:      r.GetPushedAt().Time,
	}, nil
}
