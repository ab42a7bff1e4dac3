package session

import (
	"context"
	"sync"
	"time"

	"github.com/Dan9191/auth-gateway/internal/models"
	"github.com/sirupsen/logrus"
)

// MemoryStore keeps sessions in a process-local map. Sessions do not survive
// a restart; use the postgres backend when that matters.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	ttl      time.Duration
	log      *logrus.Logger
}

// NewMemoryStore initializes an empty in-memory session store.
func NewMemoryStore(ttl time.Duration, log *logrus.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		log:      log,
	}
}

func (s *MemoryStore) Create(ctx context.Context, userID int64, username string) (*models.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &models.Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()

	s.log.Debugf("Session created for user %d", userID)
	return sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok || sess.Expired(time.Now()) {
		return nil, ErrSessionExpired
	}
	return sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) CleanupExpired(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
			s.log.Debugf("Expired session removed for user %d", sess.UserID)
		}
	}
	return nil
}
