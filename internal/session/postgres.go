package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/auth-gateway/internal/models"
	"github.com/sirupsen/logrus"
)

// PostgresStore keeps sessions in the sessions table so they survive process
// restarts.
type PostgresStore struct {
	db  *sql.DB
	ttl time.Duration
	log *logrus.Logger
}

// NewPostgresStore initializes a session store backed by the database.
func NewPostgresStore(db *sql.DB, ttl time.Duration, log *logrus.Logger) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, log: log}
}

func (s *PostgresStore) Create(ctx context.Context, userID int64, username string) (*models.Session, error) {
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

	query := `
		INSERT INTO sessions (token, user_id, username, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.db.ExecContext(ctx, query,
		sess.Token, sess.UserID, sess.Username, sess.ExpiresAt, sess.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Debugf("Session created for user %d", userID)
	return sess, nil
}

func (s *PostgresStore) Get(ctx context.Context, token string) (*models.Session, error) {
	sess := &models.Session{}
	query := `
		SELECT token, user_id, username, expires_at, created_at
		FROM sessions
		WHERE token = $1 AND expires_at > CURRENT_TIMESTAMP`
	err := s.db.QueryRowContext(ctx, query, token).
		Scan(&sess.Token, &sess.UserID, &sess.Username, &sess.ExpiresAt, &sess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

func (s *PostgresStore) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`
	if _, err := s.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) CleanupExpired(ctx context.Context) error {
	query := `DELETE FROM sessions WHERE expires_at <= CURRENT_TIMESTAMP`
	res, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to clean up sessions: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.log.Debugf("Removed %d expired sessions", n)
	}
	return nil
}
