// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"papertrade/internal/domain"
	"papertrade/internal/lib/jwt"
	"papertrade/internal/repository"
	"papertrade/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// passwordSymbols is the fixed punctuation set of which at least one character
// is required in every password.
const passwordSymbols = "!@#$%^&*"

const minPasswordLength = 8

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, confirmation string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	logger     *slog.Logger
	jwtSecret  string
	tokenTTL   time.Duration
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	logger *slog.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		logger:     logger,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}

// validatePassword enforces the strength policy: at least 8 characters, at
// least one digit and at least one symbol from passwordSymbols.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return util.ErrWeakPassword
	}
	if !strings.ContainsAny(password, "0123456789") {
		return util.ErrWeakPassword
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		return util.ErrWeakPassword
	}
	return nil
}

// Register creates a new account with the starting cash balance. Only the
// bcrypt hash of the password is stored. Username uniqueness is pre-checked
// for a friendly error, but the database constraint is the authority: a
// concurrent registration losing the race still surfaces ErrUsernameTaken.
func (s *authService) Register(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	if username == "" {
		return nil, util.ErrInvalidInput
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if password != confirmation {
		return nil, util.ErrPasswordMismatch
	}

	if _, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username); err == nil {
		return nil, util.ErrUsernameTaken
	} else if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("register: failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: failed to hash password: %w", err)
	}

	user := domain.NewUser(username, string(hash))
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		if errors.Is(err, util.ErrUsernameTaken) {
			return nil, util.ErrUsernameTaken
		}
		return nil, fmt.Errorf("register: failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// Login verifies the credentials and issues a signed token for the session.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", util.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetUserByUsername(ctx, s.dbExecutor, username)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return "", util.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	token, err := jwt.NewToken(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("login: failed to issue token: %w", err)
	}

	return token, nil
}
