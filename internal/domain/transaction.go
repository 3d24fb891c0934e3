// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the kind of a ledger entry.
type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

// Transaction is one append-only ledger entry. Shares is signed: positive for
// buys, negative for sells. The ledger is the sole source of truth for
// holdings; rows are never updated or deleted once written.
type Transaction struct {
	ID           int64           `db:"id" json:"id"`                       // Primary key, BIGSERIAL in DB
	UserID       int64           `db:"user_id" json:"user_id"`             // Foreign key to User
	Symbol       string          `db:"symbol" json:"symbol"`               // Ticker symbol, upper-case
	Shares       int64           `db:"shares" json:"shares"`               // Signed share count
	Price        decimal.Decimal `db:"price" json:"price"`                 // Execution price per share, NUMERIC(20, 4)
	Type         TransactionType `db:"type" json:"type"`                   // BUY or SELL
	TransactedAt time.Time       `db:"transacted_at" json:"transacted_at"` // Time of execution
}

// NewTransaction creates a new ledger entry for a trade.
func NewTransaction(userID int64, symbol string, shares int64, price decimal.Decimal, txType TransactionType) *Transaction {
	return &Transaction{
		UserID:       userID,
		Symbol:       symbol,
		Shares:       shares,
		Price:        price,
		Type:         txType,
		TransactedAt: time.Now().UTC(),
	}
}

// Holding is the derived net position of one user in one symbol. It is never
// persisted: it always equals the sum of signed shares over the user's ledger
// rows for that symbol.
type Holding struct {
	Symbol string `db:"symbol" json:"symbol"`
	Shares int64  `db:"shares" json:"shares"`
}
