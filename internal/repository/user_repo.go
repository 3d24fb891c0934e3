// internal/repository/user_repo.go
package repository

import (
	"context"

	"papertrade/internal/domain"

	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// CreateUser adds a new user. A username collision is reported as
	// util.ErrUsernameTaken, including the race where the uniqueness
	// pre-check passed but the insert hits the constraint.
	CreateUser(ctx context.Context, q DBExecutor, user *domain.User) error
	// GetUserByID retrieves a user by their ID.
	GetUserByID(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// GetUserByUsername retrieves a user by their username (case-sensitive).
	GetUserByUsername(ctx context.Context, q DBExecutor, username string) (*domain.User, error)
	// GetUserForUpdate retrieves a user by ID with their row locked for the
	// duration of the surrounding transaction. Trades for the same user
	// serialize on this lock so affordability and holding checks never run
	// against a stale balance.
	GetUserForUpdate(ctx context.Context, q DBExecutor, id int64) (*domain.User, error)
	// UpdateCash adjusts the user's cash balance by delta (negative for buys).
	UpdateCash(ctx context.Context, q DBExecutor, userID int64, delta decimal.Decimal) error
}
