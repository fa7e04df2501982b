package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/caresync/internal/config"
)

func testClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{APIURL: srv.URL, Timeout: 5 * time.Second}
	return NewClient(cfg, opts...)
}

func staticToken(token string) TokenSource {
	return TokenSourceFunc(func() (string, bool) { return token, token != "" })
}

func TestDo_NotFoundCarriesDetail(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))

	err := client.Do(context.Background(), Endpoint{Method: http.MethodGet, Path: "/api/doctors/9/profile"}, nil)
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Contains(t, reqErr.Detail, "not found")
}

func TestDo_NoContentResolvesToNilResult(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	var out map[string]any
	err := client.Do(context.Background(), Endpoint{Method: http.MethodDelete, Path: "/api/appointments/1"}, &out)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDo_NonJSONSuccessBodyIsNotAnError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))

	var out map[string]any
	err := client.Do(context.Background(), Endpoint{Method: http.MethodGet, Path: "/ping"}, &out)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDo_BearerTokenAttached(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})
	client := testClient(t, handler, WithTokenSource(staticToken("abc")))

	err := client.Do(context.Background(), Endpoint{Method: http.MethodGet, Path: "/api/appointments"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
}

func TestDo_NoTokenMeansNoAuthorizationHeader(t *testing.T) {
	var hadAuth bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	})
	client := testClient(t, handler, WithTokenSource(staticToken("")))

	err := client.Do(context.Background(), Endpoint{Method: http.MethodGet, Path: "/api/doctors"}, nil)
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestDo_DefaultHeadersAndCallerOverride(t *testing.T) {
	var contentType, requestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	})
	client := testClient(t, handler)

	ep := Endpoint{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"email": "user@x.com"},
		Header: http.Header{"Content-Type": {"application/json; charset=utf-8"}},
	}
	require.NoError(t, client.Do(context.Background(), ep, nil))

	assert.Equal(t, "application/json; charset=utf-8", contentType)
	assert.NotEmpty(t, requestID)
}

func TestDo_QueryEncoding(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	})
	client := testClient(t, handler)

	users, err := client.ListUsers(context.Background(), "doctor")
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, "userType=doctor", gotQuery)
}

func TestDo_TransportErrorIsWrapped(t *testing.T) {
	cfg := &config.Config{APIURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond}
	client := NewClient(cfg)

	err := client.Do(context.Background(), Endpoint{Method: http.MethodGet, Path: "/api/appointments"}, nil)
	require.Error(t, err)

	var reqErr *RequestError
	assert.False(t, errors.As(err, &reqErr), "transport failures must not classify as request errors")
}

func TestParseErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"not found"}`, "not found"},
		{"message field", `{"message":"bad request"}`, "bad request"},
		{"detail field", `{"detail":"conflict"}`, "conflict"},
		{"error wins", `{"error":"a","message":"b"}`, "a"},
		{"not json", `<html>boom</html>`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseErrorDetail([]byte(tt.body)))
		})
	}
}
