// internal/quote/provider.go
package quote

import (
	"context"
	"strings"

	"papertrade/internal/domain"
)

// Provider returns live quotes for ticker symbols. Lookups are pure reads,
// case-insensitive on symbol, and must complete within a bounded timeout.
// An unresolvable symbol is reported as util.ErrInvalidSymbol.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (*domain.Quote, error)
}

// Source is what the portfolio engine consumes: live lookups plus a
// last-known-price fallback. The fallback is used only when valuating
// holdings that already exist; trades always require a live quote.
type Source interface {
	Provider
	// LastKnown returns the most recent successfully fetched quote for the
	// symbol, marked stale, or util.ErrQuoteUnavailable if none was recorded.
	LastKnown(ctx context.Context, symbol string) (*domain.Quote, error)
}

// NormalizeSymbol upper-cases and trims a user-supplied ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
