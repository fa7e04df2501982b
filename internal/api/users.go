package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListUsers fetches user records, optionally filtered by role (passed as
// the userType query parameter). The returned slice is never nil.
func (c *Client) ListUsers(ctx context.Context, role string) ([]UserRecord, error) {
	var query url.Values
	if role != "" {
		query = url.Values{"userType": {role}}
	}

	users := []UserRecord{}
	err := c.Do(ctx, Endpoint{
		Method: http.MethodGet,
		Path:   "/api/users",
		Query:  query,
	}, &users)
	if err != nil {
		return []UserRecord{}, err
	}
	return users, nil
}
