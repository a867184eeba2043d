package apollo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/porticolabs/connectors"
)

// Organization is one Apollo organization record.
type Organization struct {
	ID         OrganizationID `json:"id"`
	Name       string         `json:"name"`
	WebsiteURL string         `json:"website_url"`
	Domain     string         `json:"primary_domain"`
	Industry   string         `json:"industry"`
}

// GetOrganization fetches a single organization.
// GET https://api.apollo.io/v1/organizations/{id}
func (c *Client) GetOrganization(ctx context.Context, id OrganizationID) (*Organization, error) {
	var resp struct {
		Organization *Organization `json:"organization"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/organizations/%s", id),
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Organization == nil {
		return nil, &connectors.APIError{
			Provider:   "apollo",
			StatusCode: http.StatusNotFound,
			Message:    "organization not found",
		}
	}
	return resp.Organization, nil
}
