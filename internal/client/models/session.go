package models

import "time"

// AuthSession bundles the authenticated user with a token and expiry.
// In local mode this is the sole persisted artifact; in external mode the
// provider owns its own session and this shape is synthesized client-side.
type AuthSession struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session's validity window has passed.
// The boundary counts as expired.
func (s *AuthSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// StoredUser is a mock registry entry used by the local credential store.
// The password is kept in plaintext: this registry is a demo stand-in for a
// real credential backend, not production-grade storage.
type StoredUser struct {
	User     User   `json:"user"`
	Password string `json:"password"`
}
