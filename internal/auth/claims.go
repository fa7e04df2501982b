package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of JWT claims the CLI surfaces in status
// output. The client never validates signatures; the backend is the
// authority and an expired or forged token simply fails the next request.
type TokenClaims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed. Tokens without
// an expiry claim are treated as unexpired.
func (c *TokenClaims) Expired() bool {
	return !c.ExpiresAt.IsZero() && c.ExpiresAt.Before(time.Now())
}

// Claims decodes the stored token without verification. Returns false when
// no token is stored or it is not a well-formed JWT.
func (m *Manager) Claims() (*TokenClaims, bool) {
	token, ok := m.TokenSource().Token()
	if !ok || token == "" {
		return nil, false
	}
	return parseClaims(token)
}

func parseClaims(token string) (*TokenClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, true
}
