package zoom

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/porticolabs/connectors"
)

// User is a Zoom account member.
type User struct {
	ID        UserID `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Type      int    `json:"type"`
	Timezone  string `json:"timezone"`
	Status    string `json:"status"`
}

// GetUser fetches a user by ID, by email, or via the Me constant.
// GET https://api.zoom.us/v2/users/{userID}
func (c *Client) GetUser(ctx context.Context, id UserID) (*User, error) {
	var u User
	err := c.api.DoJSON(ctx, connectors.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/users/%s", url.PathEscape(string(id))),
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
