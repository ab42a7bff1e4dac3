package models

import "time"

// Session represents one authenticated browser
type Session struct {
	Token     string    // opaque identifier delivered as a cookie
	UserID    int64     // owner of the session
	Username  string    // denormalized at login time
	ExpiresAt time.Time // absolute expiry, never extended
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
