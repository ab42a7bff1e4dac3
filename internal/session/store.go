// Package session manages the mapping from opaque cookie tokens to
// authenticated identities.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/Dan9191/auth-gateway/internal/models"
)

// tokenLength is the number of random bytes in a session token.
const tokenLength = 32

// ErrSessionExpired is returned by Get for tokens that are unknown or past
// their expiry. Callers treat both cases the same way: the browser is
// anonymous.
var ErrSessionExpired = errors.New("session expired or not found")

// Store holds live sessions. Implementations must reject expired sessions on
// lookup; the periodic cleanup only reclaims space.
type Store interface {
	// Create generates a fresh token, binds it to the identity and stores
	// the session with an expiry one TTL from now.
	Create(ctx context.Context, userID int64, username string) (*models.Session, error)

	// Get retrieves a live session by token. Expired or unknown tokens
	// yield ErrSessionExpired.
	Get(ctx context.Context, token string) (*models.Session, error)

	// Delete removes a session. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error

	// CleanupExpired removes all expired sessions from the store.
	CleanupExpired(ctx context.Context) error
}

func generateToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
