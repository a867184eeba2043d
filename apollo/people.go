package apollo

import (
	"context"
	"net/http"

	"github.com/porticolabs/connectors"
)

// Person is one Apollo person record. OrganizationURL is derived from a
// secondary organization lookup and may be empty when that lookup fails;
// its absence is not an error.
type Person struct {
	ID               PersonID       `json:"id"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Name             string         `json:"name"`
	Title            string         `json:"title"`
	Email            string         `json:"email"`
	LinkedinURL      string         `json:"linkedin_url"`
	OrganizationID   OrganizationID `json:"organization_id"`
	OrganizationName string
	OrganizationURL  string
}

// wirePerson carries the nested organization Apollo inlines in search
// results.
type wirePerson struct {
	Person
	Organization *struct {
		Name       string `json:"name"`
		WebsiteURL string `json:"website_url"`
	} `json:"organization"`
}

func (w wirePerson) toPerson() Person {
	p := w.Person
	if w.Organization != nil {
		p.OrganizationName = w.Organization.Name
		p.OrganizationURL = w.Organization.WebsiteURL
	}
	return p
}

// SearchQuery filters a SearchPeople call.
type SearchQuery struct {
	// Titles matches person titles (person_titles).
	Titles []string

	// OrganizationDomains restricts to people at these company domains.
	OrganizationDomains []string

	// Keywords is a free-text query.
	Keywords string

	// PerPage caps people per page (Apollo max 100).
	PerPage int
}

// searchCursor is the state carried by search tokens: the next page
// number.
type searchCursor struct {
	Page int `json:"page"`
}

// SearchPeople runs one page of a people search.
// POST https://api.apollo.io/v1/mixed_people/search
//
// The search endpoint is a read despite the verb; the default
// transient-retry policy applies. Pagination is page-numbered underneath
// but surfaced as an opaque token.
func (c *Client) SearchPeople(
	ctx context.Context, query SearchQuery, token connectors.PageToken,
) ([]Person, connectors.PageToken, error) {
	cursor := searchCursor{Page: 1}
	if err := connectors.DecodeToken(token, &cursor); err != nil {
		return nil, "", err
	}

	body := map[string]any{"page": cursor.Page}
	if len(query.Titles) > 0 {
		body["person_titles"] = query.Titles
	}
	if len(query.OrganizationDomains) > 0 {
		body["q_organization_domains"] = query.OrganizationDomains
	}
	if query.Keywords != "" {
		body["q_keywords"] = query.Keywords
	}
	if query.PerPage > 0 {
		body["per_page"] = query.PerPage
	}

	var resp struct {
		People     []wirePerson `json:"people"`
		Pagination struct {
			Page       int `json:"page"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPost,
		Path:   "/mixed_people/search",
		Body:   body,
	}, &resp)
	if err != nil {
		return nil, "", err
	}

	people := make([]Person, 0, len(resp.People))
	for _, w := range resp.People {
		people = append(people, w.toPerson())
	}

	var next connectors.PageToken
	if resp.Pagination.Page < resp.Pagination.TotalPages {
		next = connectors.EncodeToken(searchCursor{Page: resp.Pagination.Page + 1})
	}
	return people, next, nil
}

// MatchPerson enriches a person from an email address, deriving the
// organization website URL with a secondary lookup. Failing to fetch the
// organization is non-fatal: the person is returned with the URL omitted.
// POST https://api.apollo.io/v1/people/match
func (c *Client) MatchPerson(ctx context.Context, email string) (*Person, error) {
	var resp struct {
		Person *wirePerson `json:"person"`
	}
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodPost,
		Path:   "/people/match",
		Body:   map[string]any{"email": email},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Person == nil {
		return nil, &connectors.APIError{
			Provider:   "apollo",
			StatusCode: http.StatusNotFound,
			Message:    "no person matched " + email,
		}
	}

	person := resp.Person.toPerson()
	if person.OrganizationURL == "" && person.OrganizationID != "" {
		if org, err := c.GetOrganization(ctx, person.OrganizationID); err == nil {
			person.OrganizationName = org.Name
			person.OrganizationURL = org.WebsiteURL
		}
	}
	return &person, nil
}
