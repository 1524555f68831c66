// Package auth talks to the external auth provider.
package auth

import (
	"context"
	"time"
)

// User is the provider's account record.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Session is a provider session as returned by the token endpoints.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	User         User   `json:"user"`
}

// Valid reports whether the session carries a user and an access token.
func (s *Session) Valid() bool {
	return s != nil && s.User.ID != "" && s.AccessToken != ""
}

func (s *Session) expired(now time.Time, leeway time.Duration) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return now.Add(leeway).Unix() >= s.ExpiresAt
}

// Provider is the contract of the external auth provider. GetSession returns
// (nil, nil) when nothing is stored.
type Provider interface {
	GetSession(ctx context.Context) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
}

// Error is a provider-reported failure with a human-readable message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
