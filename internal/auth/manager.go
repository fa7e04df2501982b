// Package auth is the single seam between callers and the authentication
// subsystem. The Manager owns the session: it is the only writer of the
// session store, while the API dispatcher and other readers observe it
// through point-in-time reads.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/caresync/caresync/internal/api"
	cserr "github.com/caresync/caresync/internal/errors"
	"github.com/caresync/caresync/internal/log"
	"github.com/caresync/caresync/internal/session"
)

// State is the facade's lifecycle state for the current process.
type State int

const (
	// StateUnauthenticated means no session is active.
	StateUnauthenticated State = iota
	// StateAuthenticating means a login call is in flight.
	StateAuthenticating
	// StateAuthenticated means a login was accepted this run, or a
	// persisted token was found at startup.
	StateAuthenticated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// FailureReason classifies why a login attempt did not authenticate.
// Callers decide whether to surface the detail or just the boolean.
type FailureReason string

const (
	// FailureNone means the attempt succeeded.
	FailureNone FailureReason = ""
	// FailureInvalidInput means validation failed before any network call.
	FailureInvalidInput FailureReason = "invalid_input"
	// FailureRejected means the backend refused the credentials.
	FailureRejected FailureReason = "rejected"
	// FailureNetwork means no verdict was obtained from the backend.
	FailureNetwork FailureReason = "network_failure"
)

// LoginResult is the outcome of a login attempt.
type LoginResult struct {
	OK      bool
	Reason  FailureReason
	Message string
}

// Manager composes the session store and the auth endpoint client.
type Manager struct {
	store  *session.Store
	client *api.Client
	logger *log.Logger

	// writeMu serializes session store writes. Login and logout racing
	// each other would otherwise leave whichever write lands last.
	writeMu sync.Mutex

	mu      sync.RWMutex
	state   State
	loading bool

	loadOnce sync.Once
}

// NewManager creates the facade. The loading flag starts true and flips
// false exactly once, after the first Load completes.
func NewManager(store *session.Store, client *api.Client, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Manager{
		store:   store,
		client:  client,
		logger:  logger,
		state:   StateUnauthenticated,
		loading: true,
	}
}

// Load performs the one startup read of persisted session state. If a
// token was persisted, the facade starts out authenticated. Safe to call
// more than once; only the first call does the work.
func (m *Manager) Load(ctx context.Context) {
	m.loadOnce.Do(func() {
		defer func() {
			m.mu.Lock()
			m.loading = false
			m.mu.Unlock()
		}()

		if _, ok := m.store.Get(session.KeyAuthToken); ok {
			m.mu.Lock()
			m.state = StateAuthenticated
			m.mu.Unlock()
			m.logger.Debug("restored persisted session")
		}
	})
}

// Loading reports whether the startup load has not yet completed.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// State returns the facade's current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// IsAuthenticated reports whether a token is present in the session store
// right now. This is a point-in-time check, not a cached flag: a token the
// server has expired is only discovered on the next request, and a
// concurrent logout is reflected on the next call.
func (m *Manager) IsAuthenticated() bool {
	token, ok := m.store.Get(session.KeyAuthToken)
	return ok && token != ""
}

// CurrentUser returns the persisted user record, if any.
func (m *Manager) CurrentUser() (api.UserRecord, bool) {
	var user api.UserRecord
	if !m.store.GetJSON(session.KeyUserData, &user) {
		return nil, false
	}
	return user, true
}

// TokenSource exposes the session store's token to the API dispatcher.
func (m *Manager) TokenSource() api.TokenSource {
	return api.TokenSourceFunc(func() (string, bool) {
		return m.store.Get(session.KeyAuthToken)
	})
}

// Login validates the credentials, asks the backend, and on acceptance
// persists the session. The store write happens only after the response is
// classified successful; a validation failure never reaches the network.
func (m *Manager) Login(ctx context.Context, email, password string) LoginResult {
	if email == "" || password == "" {
		return LoginResult{
			Reason:  FailureInvalidInput,
			Message: cserr.NewMissingCredentialsError().Message,
		}
	}
	if !plausibleEmail(email) {
		return LoginResult{
			Reason:  FailureInvalidInput,
			Message: cserr.NewInvalidEmailError(email).Message,
		}
	}

	m.setState(StateAuthenticating)

	result, err := m.client.Login(ctx, email, password)
	if err != nil {
		m.setState(StateUnauthenticated)

		var reqErr *api.RequestError
		if errors.As(err, &reqErr) {
			// The backend answered; it just said no.
			message := reqErr.Detail
			if message == "" {
				message = reqErr.Status
			}
			m.logger.Debug("login rejected", "status", reqErr.StatusCode)
			return LoginResult{Reason: FailureRejected, Message: message}
		}

		m.logger.WithError(err).Warn("login failed before a verdict was obtained")
		return LoginResult{Reason: FailureNetwork, Message: "could not reach the CareSync backend"}
	}

	if !result.Success || result.Token == "" {
		m.setState(StateUnauthenticated)
		return LoginResult{Reason: FailureRejected, Message: result.Error}
	}

	m.writeMu.Lock()
	m.store.Set(session.KeyAuthToken, result.Token)
	if result.User != nil {
		m.store.SetJSON(session.KeyUserData, result.User)
	}
	m.writeMu.Unlock()

	m.setState(StateAuthenticated)
	m.logger.Info("logged in", "user", result.User.ID())

	return LoginResult{OK: true}
}

// Signup registers a new account. Registration never authenticates; the
// caller logs in separately. Errors propagate so the caller can surface
// the specific reason.
func (m *Manager) Signup(ctx context.Context, userData api.UserRecord) (api.UserRecord, error) {
	return m.client.Register(ctx, userData)
}

// Logout ends the session. The remote call and the storage clears are
// best-effort; from the caller's perspective logout always succeeds, and
// afterwards no Authorization header is attached to outgoing requests.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Logout(ctx); err != nil {
		m.logger.WithError(err).Debug("remote logout failed, clearing local session anyway")
	}

	m.writeMu.Lock()
	if user, ok := m.CurrentUser(); ok {
		if uid := user.ID(); uid != "" {
			m.store.RemovePrefix(session.CachePrefix + uid + ".")
		}
	}
	m.store.Remove(session.KeyAuthToken, session.KeyUserData)
	m.writeMu.Unlock()

	m.setState(StateUnauthenticated)
	m.logger.Info("logged out")
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// plausibleEmail applies the same minimal syntactic check the backend's
// mobile clients use before spending a network call.
func plausibleEmail(email string) bool {
	for _, r := range email {
		if r == '@' {
			return true
		}
	}
	return false
}
