package handler

import (
	"net/http"
	"path/filepath"
)

// Index redirects to the dashboard or the login page depending on whether
// the browser carries a live session.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sessions.FromRequest(r); err == nil {
		http.Redirect(w, r, "/dashboard.html", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/login.html", http.StatusFound)
}

// Dashboard serves the dashboard page. It is registered behind the page
// guard, so the request is authenticated by the time it gets here.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, "dashboard.html"))
}

// AuthPage serves login.html or register.html, bouncing browsers that are
// already authenticated straight to the dashboard.
func (h *Handler) AuthPage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.sessions.FromRequest(r); err == nil {
			http.Redirect(w, r, "/dashboard.html", http.StatusFound)
			return
		}
		http.ServeFile(w, r, filepath.Join(h.staticDir, name))
	}
}
