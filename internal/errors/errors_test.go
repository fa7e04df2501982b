package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	err := New(ErrCodeInvalidEmail, "invalid email address: bob")

	assert.Contains(t, err.Error(), "[AUTH-002]")
	assert.Contains(t, err.Error(), "invalid email address: bob")
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeNetworkUnreachable, "could not reach the CareSync backend", cause)

	assert.Contains(t, err.Error(), "[NET-001]")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_ErrorWithSuggestions(t *testing.T) {
	err := New(ErrCodeNotAuthenticated, "not logged in").
		WithSuggestion("Run 'caresync auth login' to authenticate")

	assert.Contains(t, err.Error(), "Suggestions:")
	assert.Contains(t, err.Error(), "caresync auth login")
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrCodeStoreWrite, "failed to persist session", cause)

	require.ErrorIs(t, err, cause)
}

func TestError_Categories(t *testing.T) {
	tests := []struct {
		name       string
		code       ErrorCode
		validation bool
		storage    bool
	}{
		{"missing credentials", ErrCodeMissingCredentials, true, false},
		{"invalid email", ErrCodeInvalidEmail, true, false},
		{"store read", ErrCodeStoreRead, false, true},
		{"store write", ErrCodeStoreWrite, false, true},
		{"request failed", ErrCodeRequestFailed, false, false},
		{"network unreachable", ErrCodeNetworkUnreachable, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, "test")
			assert.Equal(t, tt.validation, err.IsValidation())
			assert.Equal(t, tt.storage, err.IsStorage())
		})
	}
}

func TestNewInvalidEmailError(t *testing.T) {
	err := NewInvalidEmailError("bob.example.com")

	assert.Equal(t, ErrCodeInvalidEmail, err.Code)
	assert.Contains(t, err.Message, "bob.example.com")
	assert.NotEmpty(t, err.Suggestions)
}
