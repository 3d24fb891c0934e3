// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"fmt"

	"papertrade/internal/domain"
	"papertrade/internal/repository"

	"github.com/jmoiron/sqlx"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new ledger entry using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (user_id, symbol, shares, price, type, transacted_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		transaction.UserID,
		transaction.Symbol,
		transaction.Shares,
		transaction.Price,
		transaction.Type,
		transaction.TransactedAt,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionsByUserID retrieves a paginated slice of the user's ledger in
// the order recorded, plus the total row count.
func (r *TransactionRepository) GetTransactionsByUserID(ctx context.Context, q repository.DBExecutor, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}

	query := `
		SELECT id, user_id, symbol, shares, price, type, transacted_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`
	err := q.SelectContext(ctx, &transactions, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for user %d: %w", userID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE user_id = $1`
	err = q.GetContext(ctx, &totalCount, countQuery, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total transaction count for user %d: %w", userID, err)
	}

	return transactions, totalCount, nil
}

// GetHoldings derives the user's net positions from the ledger. Symbols whose
// net share count has decayed to zero through selling are filtered out.
func (r *TransactionRepository) GetHoldings(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Holding, error) {
	holdings := []domain.Holding{}

	query := `
		SELECT symbol, SUM(shares) AS shares
		FROM transactions
		WHERE user_id = $1
		GROUP BY symbol
		HAVING SUM(shares) <> 0
		ORDER BY symbol`
	err := q.SelectContext(ctx, &holdings, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive holdings for user %d: %w", userID, err)
	}

	return holdings, nil
}

// GetHolding derives the user's net position in one symbol. COALESCE keeps a
// never-traded symbol at zero shares instead of a missing row.
func (r *TransactionRepository) GetHolding(ctx context.Context, q repository.DBExecutor, userID int64, symbol string) (int64, error) {
	var shares int64
	query := `SELECT COALESCE(SUM(shares), 0) FROM transactions WHERE user_id = $1 AND symbol = $2`
	err := q.GetContext(ctx, &shares, query, userID, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to derive holding for user %d symbol %s: %w", userID, symbol, err)
	}
	return shares, nil
}
