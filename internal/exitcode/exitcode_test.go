package exitcode

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caresync/caresync/internal/api"
	cserr "github.com/caresync/caresync/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, Success},
		{"plain error", fmt.Errorf("boom"), GeneralError},
		{"unknown command", fmt.Errorf(`unknown command "fly" for "caresync"`), UsageError},
		{"required flag", fmt.Errorf(`required flag(s) "medicine" not set`), UsageError},
		{"validation", cserr.NewMissingCredentialsError(), ValidationError},
		{"invalid email", cserr.NewInvalidEmailError("x"), ValidationError},
		{"rejected login", cserr.New(cserr.ErrCodeLoginRejected, "bad credentials"), AuthError},
		{"not authenticated", cserr.NewNotAuthenticatedError(), AuthError},
		{"network", cserr.NewNetworkError(fmt.Errorf("dial tcp: refused")), NetworkError},
		{"config target", cserr.NewConfigTargetError("flip-phone"), UsageError},
		{"unauthorized", &api.RequestError{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"}, AuthError},
		{"forbidden", &api.RequestError{StatusCode: http.StatusForbidden, Status: "403 Forbidden"}, AuthError},
		{"server error", &api.RequestError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"}, RequestFailed},
		{"wrapped request error", fmt.Errorf("booking failed: %w", &api.RequestError{StatusCode: 409, Status: "409 Conflict"}), RequestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}
