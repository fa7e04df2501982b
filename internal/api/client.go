// Package api is the CareSync backend client: a request dispatcher plus
// typed per-resource endpoint methods.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/caresync/caresync/internal/config"
	cserr "github.com/caresync/caresync/internal/errors"
	"github.com/caresync/caresync/internal/log"
)

// TokenSource yields the current bearer token, if any.
// The session store is the canonical implementation; the dispatcher reads it
// on every call so a concurrent logout is reflected on the next request.
type TokenSource interface {
	Token() (string, bool)
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() (string, bool)

// Token implements TokenSource.
func (f TokenSourceFunc) Token() (string, bool) { return f() }

// Endpoint describes one HTTP call: method, path, optional query, optional
// JSON body, optional extra headers. Endpoints are constructed per call and
// never persisted.
type Endpoint struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// RequestError is a non-2xx response from the backend.
type RequestError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Status is the HTTP status text, e.g. "404 Not Found".
	Status string

	// Detail is the human-readable message parsed from the JSON error body,
	// or empty when the body had none.
	Detail string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed: %s: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("request failed: %s", e.Status)
}

// Client is the CareSync API client.
//
// The base URL is resolved once at construction from the injected
// configuration. The zero-retry, single-round-trip behavior is deliberate;
// every call carries a context and the underlying http.Client enforces the
// configured timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *log.Logger
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the bearer token source.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithUserAgent sets the User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the origin resolved in cfg.
func NewClient(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.APIURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:    log.DefaultLogger(),
		userAgent: "caresync",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do executes exactly one round trip for the endpoint and classifies the
// outcome.
//
// On a 2xx response the JSON body is decoded into out when out is non-nil;
// an empty or non-JSON success body leaves out untouched and returns nil
// (a 204 is a valid result). Any other status yields a *RequestError with
// the status code and the best-effort detail string from the error body.
// Failures before a response is obtained are wrapped as transport errors.
func (c *Client) Do(ctx context.Context, ep Endpoint, out any) error {
	var reqBody io.Reader
	if ep.Body != nil {
		jsonBody, err := json.Marshal(ep.Body)
		if err != nil {
			return cserr.Wrap(cserr.ErrCodeRequestBuild, "failed to marshal request body", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	target := c.baseURL + ep.Path
	if len(ep.Query) > 0 {
		target += "?" + ep.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, target, reqBody)
	if err != nil {
		return cserr.Wrap(cserr.ErrCodeRequestBuild, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	// Caller-supplied headers win over the defaults.
	for key, values := range ep.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	c.logger.Debug("dispatching request",
		"method", ep.Method,
		"path", ep.Path,
		"request_id", req.Header.Get("X-Request-ID"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return cserr.NewNetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cserr.NewNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RequestError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     parseErrorDetail(body),
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		// A successful response with a non-JSON body resolves to no result.
		c.logger.Debug("ignoring undecodable success body",
			"path", ep.Path, "status", resp.StatusCode, "error", err)
	}

	return nil
}

// parseErrorDetail extracts a human-readable message from a JSON error body.
// The backend is inconsistent about the field name, so several are tried;
// an unparseable body yields the empty string.
func parseErrorDetail(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Error != "":
		return payload.Error
	case payload.Message != "":
		return payload.Message
	default:
		return payload.Detail
	}
}
