package api

import (
	"context"
	"net/http"
	"sort"
)

// CommunityGroup is a support group in the community section.
type CommunityGroup struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"memberCount,omitempty"`
}

// CommunityRequest is a medicine-availability request posted by a user.
type CommunityRequest struct {
	ID          ID                  `json:"id"`
	UserID      ID                  `json:"userId,omitempty"`
	Author      string              `json:"author,omitempty"`
	Medicine    string              `json:"medicine,omitempty"`
	Description string              `json:"description,omitempty"`
	Urgency     string              `json:"urgency,omitempty"`
	Verified    bool                `json:"verified"`
	Responses   []CommunityResponse `json:"responses,omitempty"`
	CreatedAt   string              `json:"createdAt,omitempty"`
}

// CommunityResponse is one reply appended to a request.
type CommunityResponse struct {
	UserID    ID     `json:"userId,omitempty"`
	Author    string `json:"author,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// CommunityRequestInput is the payload for posting a new request.
type CommunityRequestInput struct {
	Medicine    string `json:"medicine"`
	Description string `json:"description,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
}

// ListCommunityGroups fetches the support groups. The returned slice is
// never nil.
func (c *Client) ListCommunityGroups(ctx context.Context) ([]CommunityGroup, error) {
	groups := []CommunityGroup{}
	err := c.Do(ctx, Endpoint{
		Method: http.MethodGet,
		Path:   "/api/community/groups",
	}, &groups)
	if err != nil {
		return []CommunityGroup{}, err
	}
	return groups, nil
}

// ListCommunityRequests fetches medicine requests, newest first by creation
// timestamp. The ordering is a client-side convenience; the backend does
// not guarantee it. The returned slice is never nil.
func (c *Client) ListCommunityRequests(ctx context.Context) ([]CommunityRequest, error) {
	requests := []CommunityRequest{}
	err := c.Do(ctx, Endpoint{
		Method: http.MethodGet,
		Path:   "/api/community/requests",
	}, &requests)
	if err != nil {
		return []CommunityRequest{}, err
	}

	// RFC 3339 timestamps compare chronologically as strings.
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt > requests[j].CreatedAt
	})
	return requests, nil
}

// CreateCommunityRequest posts a new medicine request.
func (c *Client) CreateCommunityRequest(ctx context.Context, req CommunityRequestInput) (*CommunityRequest, error) {
	var created CommunityRequest
	err := c.Do(ctx, Endpoint{
		Method: http.MethodPost,
		Path:   "/api/community/requests",
		Body:   req,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// AddResponseToRequest appends a response to an existing request.
func (c *Client) AddResponseToRequest(ctx context.Context, id ID, response CommunityResponse) (*CommunityRequest, error) {
	var updated CommunityRequest
	err := c.Do(ctx, Endpoint{
		Method: http.MethodPost,
		Path:   "/api/community/requests/" + id.String() + "/responses",
		Body:   response,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ToggleVerify flips the verified flag on a request.
func (c *Client) ToggleVerify(ctx context.Context, id ID) (*CommunityRequest, error) {
	var updated CommunityRequest
	err := c.Do(ctx, Endpoint{
		Method: http.MethodPost,
		Path:   "/api/community/requests/" + id.String() + "/toggle-verify",
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveRequest deletes a request.
func (c *Client) RemoveRequest(ctx context.Context, id ID) error {
	return c.Do(ctx, Endpoint{
		Method: http.MethodDelete,
		Path:   "/api/community/requests/" + id.String(),
	}, nil)
}
