package session

import (
	"net/http"
	"time"

	"github.com/Dan9191/auth-gateway/internal/models"
	"github.com/gorilla/securecookie"
)

// CookieName is the name of the session cookie.
const CookieName = "session_token"

// Manager pairs a Store with the signed cookie that carries its tokens. The
// cookie value is the token signed with the session secret, so a tampered
// cookie fails decoding before it ever reaches the store.
type Manager struct {
	store Store
	codec *securecookie.SecureCookie
}

// NewManager builds a Manager signing cookies with the given secret.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	codec := securecookie.New([]byte(secret), nil)
	codec.MaxAge(int(ttl / time.Second))
	return &Manager{store: store, codec: codec}
}

// Issue creates a session for the identity and sets the signed cookie. The
// cookie expiry matches the session expiry and is never extended on activity.
func (m *Manager) Issue(w http.ResponseWriter, r *http.Request, userID int64, username string) (*models.Session, error) {
	sess, err := m.store.Create(r.Context(), userID, username)
	if err != nil {
		return nil, err
	}

	encoded, err := m.codec.Encode(CookieName, sess.Token)
	if err != nil {
		// The session is unreachable without its cookie; drop it again.
		_ = m.store.Delete(r.Context(), sess.Token)
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

// FromRequest returns the live session for the request's cookie, or
// ErrSessionExpired when there is no usable session.
func (m *Manager) FromRequest(r *http.Request) (*models.Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrSessionExpired
	}

	var token string
	if err := m.codec.Decode(CookieName, cookie.Value, &token); err != nil {
		return nil, ErrSessionExpired
	}
	return m.store.Get(r.Context(), token)
}

// Clear destroys the request's session server-side and expires the cookie.
// A request without a session is not an error; only a failing store is.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(CookieName); err == nil {
		var token string
		if decErr := m.codec.Decode(CookieName, cookie.Value, &token); decErr == nil {
			if delErr := m.store.Delete(r.Context(), token); delErr != nil {
				return delErr
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
