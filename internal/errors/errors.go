package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Validation errors (AUTH-001 to AUTH-099), raised before any network call
	ErrCodeMissingCredentials ErrorCode = "AUTH-001"
	ErrCodeInvalidEmail       ErrorCode = "AUTH-002"
	ErrCodeLoginRejected      ErrorCode = "AUTH-003"
	ErrCodeNotAuthenticated   ErrorCode = "AUTH-004"

	// Request errors (API-001 to API-099), non-2xx responses from the backend
	ErrCodeRequestFailed  ErrorCode = "API-001"
	ErrCodeResponseDecode ErrorCode = "API-002"

	// Transport errors (NET-001 to NET-099), no response obtained
	ErrCodeNetworkUnreachable ErrorCode = "NET-001"
	ErrCodeRequestBuild       ErrorCode = "NET-002"

	// Storage errors (STORE-001 to STORE-099), local persistence failures
	ErrCodeStoreRead  ErrorCode = "STORE-001"
	ErrCodeStoreWrite ErrorCode = "STORE-002"

	// Config errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"
	ErrCodeConfigTarget  ErrorCode = "CONFIG-002"
)

// Error represents an enhanced error with code and suggestions
type Error struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new Error wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *Error) WithSuggestions(suggestions ...string) *Error {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// IsValidation reports whether the error is a client-side validation
// error, raised before any network call.
func (e *Error) IsValidation() bool {
	return e.Code == ErrCodeMissingCredentials || e.Code == ErrCodeInvalidEmail
}

// IsAuth reports whether the error is an authentication failure.
func (e *Error) IsAuth() bool {
	return e.Code == ErrCodeLoginRejected || e.Code == ErrCodeNotAuthenticated
}

// IsStorage reports whether the error is a local persistence failure.
// Storage errors are swallowed at the session store boundary and never
// surface to callers.
func (e *Error) IsStorage() bool {
	return strings.HasPrefix(string(e.Code), "STORE-")
}

// Common error constructors for frequently used errors

// NewMissingCredentialsError creates an error for an empty email or password
func NewMissingCredentialsError() *Error {
	return New(ErrCodeMissingCredentials, "email and password are required").
		WithSuggestion("Provide both --email and --password, or answer the interactive prompt")
}

// NewInvalidEmailError creates an error for a syntactically implausible email
func NewInvalidEmailError(email string) *Error {
	return New(ErrCodeInvalidEmail, fmt.Sprintf("invalid email address: %s", email)).
		WithSuggestion("Check that the address contains an @ sign")
}

// NewNotAuthenticatedError creates an error for operations that require a session
func NewNotAuthenticatedError() *Error {
	return New(ErrCodeNotAuthenticated, "not logged in").
		WithSuggestion("Run 'caresync auth login' to authenticate")
}

// NewNetworkError creates a transport-level failure error
func NewNetworkError(cause error) *Error {
	return Wrap(ErrCodeNetworkUnreachable, "could not reach the CareSync backend", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the API origin with CARESYNC_API_URL or the config file")
}

// NewConfigTargetError creates an error for an unknown runtime target
func NewConfigTargetError(target string) *Error {
	return New(ErrCodeConfigTarget, fmt.Sprintf("unknown runtime target: %s", target)).
		WithSuggestion("Use one of: android-emulator, ios-simulator, local")
}
