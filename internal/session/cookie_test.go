package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store := NewMemoryStore(24*time.Hour, testLogger())
	return NewManager(store, "test-secret", 24*time.Hour)
}

func issueSession(t *testing.T, m *Manager) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	_, err := m.Issue(w, r, 1, "alice")
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestManagerIssueSetsCookie(t *testing.T) {
	m := newTestManager(t)
	cookie := issueSession(t, m)

	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), cookie.Expires, time.Minute)
	// The raw token never appears in the cookie; only the signed form does.
	assert.NotEmpty(t, cookie.Value)
}

func TestManagerRoundTrip(t *testing.T) {
	m := newTestManager(t)
	cookie := issueSession(t, m)

	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.AddCookie(cookie)

	sess, err := m.FromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sess.UserID)
	assert.Equal(t, "alice", sess.Username)
}

func TestManagerRejectsMissingCookie(t *testing.T) {
	m := newTestManager(t)

	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	_, err := m.FromRequest(r)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestManagerRejectsTamperedCookie(t *testing.T) {
	m := newTestManager(t)
	cookie := issueSession(t, m)

	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: cookie.Value + "x"})

	_, err := m.FromRequest(r)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestManagerRejectsForeignSignature(t *testing.T) {
	// A cookie signed under one secret must not validate under another.
	store := NewMemoryStore(24*time.Hour, testLogger())
	issuer := NewManager(store, "secret-one", 24*time.Hour)
	verifier := NewManager(store, "secret-two", 24*time.Hour)

	cookie := issueSession(t, issuer)
	r := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.AddCookie(cookie)

	_, err := verifier.FromRequest(r)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestManagerClear(t *testing.T) {
	m := newTestManager(t)
	cookie := issueSession(t, m)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	r.AddCookie(cookie)
	require.NoError(t, m.Clear(w, r))

	// Server-side session is gone.
	r = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.AddCookie(cookie)
	_, err := m.FromRequest(r)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// And the browser was told to drop the cookie.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestManagerClearWithoutSession(t *testing.T) {
	m := newTestManager(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	assert.NoError(t, m.Clear(w, r))
}
