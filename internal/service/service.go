package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/auth-gateway/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the subset of the repository the service depends on.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Service handles business logic
type Service struct {
	repo UserRepository
	log  *logrus.Logger
}

// NewService initializes a new service
func NewService(repo UserRepository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Register creates a new user with a hashed password.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, models.ErrMissingFields
	}

	// Fast-path rejection; the unique constraints in the store catch
	// concurrent duplicates that slip past this check.
	existing, err := s.repo.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user by email and password. Unknown email and wrong
// password return the same error so callers cannot enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	s.log.Infof("User logged in: %s", user.Email)
	return user, nil
}

// CurrentUser loads the public record for an authenticated user id. The row
// can be gone even though a session still references it.
func (s *Service) CurrentUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}
