package auth

import (
	"context"
	"time"
)

// TopicAuthChanged carries the new *Session (nil on sign-out).
const TopicAuthChanged = "auth.changed"

// User is the provider-side account identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated provider session. The access token is a JWT
// signed by the provider; credentials themselves are never stored here.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Provider is the capability boundary to the external identity provider.
// SignIn and SignOut are the only fallible, externally-dependent operations
// in the system; their failures surface as messages and never touch the
// cart or tracking stores.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	CurrentSession() *Session
	OnChange(fn func(*Session))
}
