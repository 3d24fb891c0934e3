// internal/domain/user.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartingCash is the virtual cash balance every new account begins with.
var StartingCash = decimal.NewFromInt(10000)

// User represents a registered account in the trading simulator.
type User struct {
	ID           int64           `db:"id" json:"id"`                 // Primary key, BIGSERIAL in DB
	Username     string          `db:"username" json:"username"`     // Unique username
	PasswordHash string          `db:"password_hash" json:"-"`       // bcrypt hash, never serialized
	Cash         decimal.Decimal `db:"cash" json:"cash"`             // NUMERIC(20, 4) in DB, non-negative
	CreatedAt    time.Time       `db:"created_at" json:"created_at"` // Timestamp of registration
}

// NewUser creates a new User with the default starting cash balance.
func NewUser(username, passwordHash string) *User {
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Cash:         StartingCash,
		CreatedAt:    time.Now().UTC(),
	}
}
