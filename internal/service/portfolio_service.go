// internal/service/portfolio_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"papertrade/internal/domain"
	"papertrade/internal/quote"
	"papertrade/internal/repository"
	"papertrade/internal/util"
	"papertrade/pkg/db"

	"github.com/shopspring/decimal"
)

// PortfolioService defines the interface for the trading engine: portfolio
// valuation, buy/sell execution and ledger history. Share counts arrive as
// raw strings because the presentation layer never pre-validates input.
type PortfolioService interface {
	Valuate(ctx context.Context, userID int64) (*domain.Portfolio, error)
	Buy(ctx context.Context, userID int64, symbol, shares string) (*domain.Transaction, error)
	Sell(ctx context.Context, userID int64, symbol, shares string) (*domain.Transaction, error)
	History(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
}

// portfolioService implements PortfolioService.
type portfolioService struct {
	dbBeginner      db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	quotes          quote.Source
	logger          *slog.Logger
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewPortfolioService creates a new instance of PortfolioService.
func NewPortfolioService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	quotes quote.Source,
	logger *slog.Logger,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) PortfolioService {
	return &portfolioService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		quotes:          quotes,
		logger:          logger,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// parseShares validates a user-supplied share count: it must parse as a
// positive integer.
func parseShares(shares string) (int64, error) {
	n, err := strconv.ParseInt(shares, 10, 64)
	if err != nil || n <= 0 {
		return 0, util.ErrInvalidQuantity
	}
	return n, nil
}

// Valuate derives the user's current positions from the ledger, prices each
// against a live quote and returns positions, cash and the grand total. When
// the provider cannot resolve a previously-traded symbol, the last-known
// cached price is used and the position is marked stale. No side effects.
func (s *portfolioService) Valuate(ctx context.Context, userID int64) (*domain.Portfolio, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("valuate: failed to get user %d: %w", userID, err)
	}

	holdings, err := s.transactionRepo.GetHoldings(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("valuate: failed to derive holdings: %w", err)
	}

	portfolio := &domain.Portfolio{
		Positions: make([]domain.Position, 0, len(holdings)),
		Cash:      user.Cash,
	}

	total := decimal.Zero
	for _, h := range holdings {
		q, err := s.quotes.Lookup(ctx, h.Symbol)
		if err != nil {
			// The symbol has historical transactions, so a failed lookup is a
			// provider-side inconsistency. Fall back to the last-known price
			// rather than failing the whole valuation.
			s.logger.Warn("live quote failed for held symbol, using last-known price",
				"symbol", h.Symbol, "error", err)
			q, err = s.quotes.LastKnown(ctx, h.Symbol)
			if err != nil {
				return nil, fmt.Errorf("valuate: no price available for held symbol %s: %w", h.Symbol, util.ErrQuoteUnavailable)
			}
		}

		value := q.Price.Mul(decimal.NewFromInt(h.Shares))
		portfolio.Positions = append(portfolio.Positions, domain.Position{
			Symbol:     h.Symbol,
			Name:       q.Name,
			Shares:     h.Shares,
			Price:      q.Price,
			TotalValue: value,
			Stale:      q.Stale,
		})
		total = total.Add(value)
	}

	portfolio.GrandTotal = user.Cash.Add(total)
	return portfolio, nil
}

// Buy executes a market buy. Preconditions are checked in order: symbol
// present, quote resolvable, share count a positive integer, cost within the
// cash balance. The ledger append and the cash debit happen in one database
// transaction with the user row locked, so concurrent buys from the same user
// serialize and the balance can never go negative.
func (s *portfolioService) Buy(ctx context.Context, userID int64, symbol, shares string) (*domain.Transaction, error) {
	symbol = quote.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, util.ErrInvalidInput
	}

	q, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, util.ErrInvalidSymbol
	}

	shareCount, err := parseShares(shares)
	if err != nil {
		return nil, err
	}

	cost := q.Price.Mul(decimal.NewFromInt(shareCount))

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("buy: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("buy: transaction controller does not implement DBExecutor")
	}

	user, err := s.userRepo.GetUserForUpdate(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("buy: failed to lock user %d: %w", userID, err)
	}

	if cost.GreaterThan(user.Cash) {
		return nil, util.ErrCannotAfford
	}

	transaction := domain.NewTransaction(userID, symbol, shareCount, q.Price, domain.TransactionTypeBuy)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("buy: failed to append transaction: %w", err)
	}

	if err := s.userRepo.UpdateCash(ctx, txExecutor, userID, cost.Neg()); err != nil {
		return nil, fmt.Errorf("buy: failed to debit cash: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("buy: failed to commit transaction: %w", err)
	}

	s.logger.Info("buy executed",
		"user_id", userID, "symbol", symbol, "shares", shareCount, "price", q.Price.String())
	return transaction, nil
}

// Sell executes a market sell. Preconditions are checked in order: symbol
// present, share count a positive integer, derived holding covers the sale,
// quote resolvable. The ledger append and the cash credit happen in one
// database transaction with the user row locked, so the post-sell holding is
// never negative.
func (s *portfolioService) Sell(ctx context.Context, userID int64, symbol, shares string) (*domain.Transaction, error) {
	symbol = quote.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, util.ErrInvalidInput
	}

	shareCount, err := parseShares(shares)
	if err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("sell: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("sell: transaction controller does not implement DBExecutor")
	}

	// Lock the user row first: the holding is derived inside the same
	// transaction, so a concurrent sell cannot double-spend shares.
	if _, err := s.userRepo.GetUserForUpdate(ctx, txExecutor, userID); err != nil {
		return nil, fmt.Errorf("sell: failed to lock user %d: %w", userID, err)
	}

	held, err := s.transactionRepo.GetHolding(ctx, txExecutor, userID, symbol)
	if err != nil {
		return nil, fmt.Errorf("sell: failed to derive holding: %w", err)
	}
	if held < shareCount {
		return nil, util.ErrInsufficientShares
	}

	q, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, util.ErrInvalidSymbol
	}

	proceeds := q.Price.Mul(decimal.NewFromInt(shareCount))

	transaction := domain.NewTransaction(userID, symbol, -shareCount, q.Price, domain.TransactionTypeSell)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("sell: failed to append transaction: %w", err)
	}

	if err := s.userRepo.UpdateCash(ctx, txExecutor, userID, proceeds); err != nil {
		return nil, fmt.Errorf("sell: failed to credit cash: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("sell: failed to commit transaction: %w", err)
	}

	s.logger.Info("sell executed",
		"user_id", userID, "symbol", symbol, "shares", shareCount, "price", q.Price.String())
	return transaction, nil
}

// History returns the user's ledger in the order recorded, paginated, with no
// aggregation.
func (s *portfolioService) History(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions, totalCount, err := s.transactionRepo.GetTransactionsByUserID(ctx, s.dbExecutor, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("history: failed to retrieve transactions: %w", err)
	}
	return transactions, totalCount, nil
}

// GetQuote validates the symbol and returns its live quote.
func (s *portfolioService) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = quote.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, util.ErrInvalidInput
	}

	q, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, util.ErrInvalidSymbol
	}
	return q, nil
}
