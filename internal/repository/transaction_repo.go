// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"papertrade/internal/domain"
)

// TransactionRepository defines the interface for ledger data operations.
// Ledger rows are append-only: there is no update or delete.
type TransactionRepository interface {
	// CreateTransaction appends a new ledger entry.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByUserID retrieves the user's ledger in insertion order,
	// paginated, together with the total row count.
	GetTransactionsByUserID(ctx context.Context, q DBExecutor, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
	// GetHoldings derives the user's non-zero net positions by summing signed
	// shares per symbol over the ledger.
	GetHoldings(ctx context.Context, q DBExecutor, userID int64) ([]domain.Holding, error)
	// GetHolding derives the user's net position in a single symbol. A symbol
	// never traded yields zero shares, not an error.
	GetHolding(ctx context.Context, q DBExecutor, userID int64, symbol string) (int64, error)
}
