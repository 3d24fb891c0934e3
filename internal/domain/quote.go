// internal/domain/quote.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a live (name, price) pair for a ticker symbol, fetched from the
// market data provider at the moment of use. Quotes are ephemeral and not
// persisted; Stale marks a price served from the last-known cache because the
// provider could not be reached.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	At     time.Time       `json:"at"`
	Stale  bool            `json:"stale,omitempty"`
}
