// Package exitcode maps errors to process exit codes so scripts can
// distinguish failure classes.
package exitcode

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/caresync/caresync/internal/api"
	cserr "github.com/caresync/caresync/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args)
	UsageError = 2

	// ValidationError indicates client-side input validation failed
	ValidationError = 3

	// AuthError indicates an authentication or authorization failure
	AuthError = 4

	// NetworkError indicates the backend could not be reached
	NetworkError = 5

	// RequestFailed indicates the backend answered with a non-2xx status
	RequestFailed = 6

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var reqErr *api.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.StatusCode == http.StatusUnauthorized || reqErr.StatusCode == http.StatusForbidden {
			return AuthError
		}
		return RequestFailed
	}

	var coded *cserr.Error
	if errors.As(err, &coded) {
		switch {
		case coded.IsValidation():
			return ValidationError
		case coded.IsAuth():
			return AuthError
		case strings.HasPrefix(string(coded.Code), "NET-"):
			return NetworkError
		case strings.HasPrefix(string(coded.Code), "CONFIG-"):
			return UsageError
		}
		return GeneralError
	}

	// cobra reports flag and argument problems as plain errors.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unknown command") ||
		strings.Contains(msg, "unknown flag") ||
		strings.Contains(msg, "required flag") ||
		strings.Contains(msg, "invalid argument") {
		return UsageError
	}

	return GeneralError
}
