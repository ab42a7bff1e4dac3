package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Dan9191/auth-gateway/internal/models"
	"github.com/Dan9191/auth-gateway/internal/session"
	"github.com/sirupsen/logrus"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Guard gates protected routes on a live session.
type Guard struct {
	sessions *session.Manager
	log      *logrus.Logger
}

// NewGuard initializes a new access guard.
func NewGuard(sessions *session.Manager, log *logrus.Logger) *Guard {
	return &Guard{sessions: sessions, log: log}
}

// RequirePage protects a page route: unauthenticated requests are redirected
// to the login page.
func (g *Guard) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := g.sessions.FromRequest(r)
		if err != nil {
			http.Redirect(w, r, "/login.html", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

// RequireAPI protects an API route: unauthenticated requests get a 401 JSON
// body rather than a redirect, which a JSON client cannot follow usefully.
func (g *Guard) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := g.sessions.FromRequest(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			if err := json.NewEncoder(w).Encode(map[string]string{"error": "authentication required"}); err != nil {
				g.log.Errorf("Failed to encode response: %v", err)
			}
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

func withSession(ctx context.Context, sess *models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionFromContext returns the session attached by the guard, if any.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*models.Session)
	return sess, ok
}
