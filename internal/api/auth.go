package api

import (
	"context"
	"net/http"
	"net/url"
)

// LoginResult is the backend's response to a login attempt. A rejected
// login arrives as a 200 with Success false and the reason in Error.
type LoginResult struct {
	Success bool       `json:"success"`
	Token   string     `json:"token,omitempty"`
	User    UserRecord `json:"user,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts credentials and returns the backend's verdict.
// Login never writes session state; the auth facade owns that.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.Do(ctx, Endpoint{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   credentials{Email: email, Password: password},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account. Registration alone never authenticates.
func (c *Client) Register(ctx context.Context, userData UserRecord) (UserRecord, error) {
	var created UserRecord
	err := c.Do(ctx, Endpoint{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   userData,
	}, &created)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Logout tells the backend to invalidate the current token. Callers that
// must never fail (the auth facade's logout) ignore the returned error.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, Endpoint{
		Method: http.MethodPost,
		Path:   "/auth/logout",
	}, nil)
}

// SendEmailVerification asks the backend to send a verification mail.
func (c *Client) SendEmailVerification(ctx context.Context, email string) error {
	return c.Do(ctx, Endpoint{
		Method: http.MethodPost,
		Path:   "/auth/verify-email",
		Body:   map[string]string{"email": email},
	}, nil)
}

// CheckEmailVerification reports whether the address has been verified.
func (c *Client) CheckEmailVerification(ctx context.Context, email string) (bool, error) {
	var result struct {
		Verified bool `json:"verified"`
	}
	err := c.Do(ctx, Endpoint{
		Method: http.MethodGet,
		Path:   "/auth/verify-email/" + url.PathEscape(email),
	}, &result)
	if err != nil {
		return false, err
	}
	return result.Verified, nil
}
