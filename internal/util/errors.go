// internal/util/errors.go
package util

import "errors"

// Common application-specific errors. All of them describe operations rejected
// with a reason the user can act on; none is a crash.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrInvalidSymbol      = errors.New("invalid or unknown symbol")
	ErrInvalidQuantity    = errors.New("share count must be a positive integer")
	ErrCannotAfford       = errors.New("cost exceeds cash balance")
	ErrInsufficientShares = errors.New("not enough shares to sell")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWeakPassword       = errors.New("password does not meet the strength policy")
	ErrPasswordMismatch   = errors.New("password and confirmation do not match")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrQuoteUnavailable   = errors.New("quote provider unavailable")
)

// IsError reports whether err wraps target. Thin alias kept so handlers read
// as a table of mappings.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
