// internal/domain/portfolio.go
package domain

import "github.com/shopspring/decimal"

// Position is one row of a valuated portfolio: a non-zero holding priced at
// the current quote.
type Position struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	Shares     int64           `json:"shares"`
	Price      decimal.Decimal `json:"price"`
	TotalValue decimal.Decimal `json:"total_value"` // Price * Shares
	Stale      bool            `json:"stale,omitempty"`
}

// Portfolio is the computed view of a user's account: current positions, cash
// and the grand total (cash plus market value of all positions). It is derived
// from the ledger on every read, never stored.
type Portfolio struct {
	Positions  []Position      `json:"positions"`
	Cash       decimal.Decimal `json:"cash"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}
