package api

import (
	"context"
	"net/http"
)

// Doctor is a doctor profile.
type Doctor struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Qualification  string `json:"qualification,omitempty"`
	Experience     string `json:"experience,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Availability   string `json:"availability,omitempty"`
}

// DoctorRequest is the payload for creating or updating a doctor profile.
type DoctorRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Qualification  string `json:"qualification,omitempty"`
	Experience     string `json:"experience,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Availability   string `json:"availability,omitempty"`
}

// ListDoctors fetches all doctor profiles. The returned slice is never nil.
func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	doctors := []Doctor{}
	err := c.Do(ctx, Endpoint{
		Method: http.MethodGet,
		Path:   "/api/doctors",
	}, &doctors)
	if err != nil {
		return []Doctor{}, err
	}
	return doctors, nil
}

// CreateDoctor registers a new doctor profile.
func (c *Client) CreateDoctor(ctx context.Context, req DoctorRequest) (*Doctor, error) {
	var created Doctor
	err := c.Do(ctx, Endpoint{
		Method: http.MethodPost,
		Path:   "/api/doctors",
		Body:   req,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetDoctorProfile fetches one doctor profile.
func (c *Client) GetDoctorProfile(ctx context.Context, id ID) (*Doctor, error) {
	var doctor Doctor
	err := c.Do(ctx, Endpoint{
		Method: http.MethodGet,
		Path:   "/api/doctors/" + id.String() + "/profile",
	}, &doctor)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

// UpdateDoctorProfile replaces a doctor profile.
func (c *Client) UpdateDoctorProfile(ctx context.Context, id ID, req DoctorRequest) (*Doctor, error) {
	var updated Doctor
	err := c.Do(ctx, Endpoint{
		Method: http.MethodPut,
		Path:   "/api/doctors/" + id.String() + "/profile",
		Body:   req,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDoctor removes a doctor profile.
func (c *Client) DeleteDoctor(ctx context.Context, id ID) error {
	return c.Do(ctx, Endpoint{
		Method: http.MethodDelete,
		Path:   "/api/doctors/" + id.String() + "/profile",
	}, nil)
}
