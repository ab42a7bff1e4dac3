package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Dan9191/auth-gateway/internal/email"
	"github.com/Dan9191/auth-gateway/internal/middleware"
	"github.com/Dan9191/auth-gateway/internal/models"
	"github.com/Dan9191/auth-gateway/internal/service"
	"github.com/Dan9191/auth-gateway/internal/session"
	"github.com/sirupsen/logrus"
)

// Handler wires the auth service and session manager to the HTTP surface.
type Handler struct {
	svc       *service.Service
	sessions  *session.Manager
	mailer    *email.Sender // nil when SMTP is not configured
	log       *logrus.Logger
	staticDir string
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, sessions *session.Manager, mailer *email.Sender, log *logrus.Logger, staticDir string) *Handler {
	return &Handler{
		svc:       svc,
		sessions:  sessions,
		mailer:    mailer,
		log:       log,
		staticDir: staticDir,
	}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool              `json:"success"`
	User    models.PublicUser `json:"user"`
}

type meResponse struct {
	User *models.User `json:"user"`
}

// Register handles POST /api/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, models.ErrMissingFields.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err, "server error during registration")
		return
	}

	if _, err := h.sessions.Issue(w, r, user.ID, user.Username); err != nil {
		h.log.Errorf("Failed to issue session: %v", err)
		h.writeError(w, http.StatusInternalServerError, "server error during registration")
		return
	}

	if h.mailer != nil {
		// Best effort; never blocks or fails the registration.
		go func() {
			_ = h.mailer.SendWelcome(user.Email, user.Username)
		}()
	}

	h.writeJSON(w, http.StatusOK, authResponse{Success: true, User: user.Public()})
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, models.ErrMissingFields.Error())
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err, "server error during login")
		return
	}

	if _, err := h.sessions.Issue(w, r, user.ID, user.Username); err != nil {
		h.log.Errorf("Failed to issue session: %v", err)
		h.writeError(w, http.StatusInternalServerError, "server error during login")
		return
	}

	h.writeJSON(w, http.StatusOK, authResponse{Success: true, User: user.Public()})
}

// Logout handles POST /api/logout. Logging out without a session still
// succeeds; only a failing session store is an error.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.log.Errorf("Failed to destroy session: %v", err)
		h.writeError(w, http.StatusInternalServerError, "server error during logout")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me handles GET /api/me. The access guard has already attached the session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), sess.UserID)
	if err != nil {
		h.writeServiceError(w, err, "server error")
		return
	}

	h.writeJSON(w, http.StatusOK, meResponse{User: user})
}
