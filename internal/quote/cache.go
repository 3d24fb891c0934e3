// internal/quote/cache.go
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"papertrade/internal/domain"
	"papertrade/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

// lastKnownTTL bounds how long a cached price may serve as a stale fallback.
const lastKnownTTL = 24 * time.Hour

// CachedSource wraps a Provider and records every successful lookup in Redis
// so valuations of existing holdings can fall back to the last-known price
// when the upstream provider fails. It implements Source.
type CachedSource struct {
	provider Provider
	rdb      *redis.Client
	logger   *slog.Logger
}

// NewCachedSource creates a CachedSource around the given provider.
func NewCachedSource(provider Provider, rdb *redis.Client, logger *slog.Logger) *CachedSource {
	return &CachedSource{provider: provider, rdb: rdb, logger: logger}
}

type cachedQuote struct {
	Name  string    `json:"name"`
	Price string    `json:"price"`
	At    time.Time `json:"at"`
}

func lastKnownKey(symbol string) string {
	return fmt.Sprintf("quote:%s:last", symbol)
}

// Lookup delegates to the upstream provider and records the result. A cache
// write failure is logged, not surfaced: the live quote is still good.
func (s *CachedSource) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	q, err := s.provider.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(cachedQuote{Name: q.Name, Price: q.Price.String(), At: q.At})
	if err == nil {
		if err := s.rdb.Set(ctx, lastKnownKey(q.Symbol), payload, lastKnownTTL).Err(); err != nil {
			s.logger.Warn("failed to cache last-known quote", "symbol", q.Symbol, "error", err)
		}
	}

	return q, nil
}

// LastKnown returns the most recent successfully fetched quote for the
// symbol, marked stale.
func (s *CachedSource) LastKnown(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = NormalizeSymbol(symbol)

	payload, err := s.rdb.Get(ctx, lastKnownKey(symbol)).Bytes()
	if err == redis.Nil {
		return nil, util.ErrQuoteUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last-known quote for %s: %w", symbol, err)
	}

	var cached cachedQuote
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, fmt.Errorf("failed to decode last-known quote for %s: %w", symbol, err)
	}

	price, err := decimal.NewFromString(cached.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to decode last-known price for %s: %w", symbol, err)
	}

	return &domain.Quote{
		Symbol: symbol,
		Name:   cached.Name,
		Price:  price,
		At:     cached.At,
		Stale:  true,
	}, nil
}
