// internal/api/handler/portfolio.go
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"papertrade/internal/api/types"
	"papertrade/internal/service"
	"papertrade/internal/util"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// userIDResolver extracts the authenticated user from the request context.
// Declared as a dependency so handler tests do not need real tokens.
type userIDResolver func(ctx context.Context) (int64, bool)

// PortfolioHandler handles HTTP requests for the trading engine.
type PortfolioHandler struct {
	service service.PortfolioService
	logger  *slog.Logger
	userID  userIDResolver
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(svc service.PortfolioService, logger *slog.Logger, userID func(ctx context.Context) (int64, bool)) *PortfolioHandler {
	return &PortfolioHandler{service: svc, logger: logger, userID: userID}
}

func (h *PortfolioHandler) actingUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := h.userID(r.Context())
	if !ok {
		http.Error(w, "no active session", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// GetPortfolio returns the user's valuated portfolio.
// GET /api/portfolio
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	portfolio, err := h.service.Valuate(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, portfolio)
}

// TradeRequest represents the request body for buy and sell. Shares stays a
// raw string; the engine validates it.
type TradeRequest struct {
	Symbol string `json:"symbol"`
	Shares string `json:"shares"`
}

// Buy handles a market buy request.
// POST /api/buy
func (h *PortfolioHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transaction, err := h.service.Buy(r.Context(), userID, req.Symbol, req.Shares)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.TradeResponse{
		Message:       "Buy successful",
		TransactionID: transaction.ID,
		Symbol:        transaction.Symbol,
		Shares:        transaction.Shares,
		Price:         transaction.Price.String(),
	})
}

// Sell handles a market sell request.
// POST /api/sell
func (h *PortfolioHandler) Sell(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transaction, err := h.service.Sell(r.Context(), userID, req.Symbol, req.Shares)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.TradeResponse{
		Message:       "Sell successful",
		TransactionID: transaction.ID,
		Symbol:        transaction.Symbol,
		Shares:        transaction.Shares,
		Price:         transaction.Price.String(),
	})
}

// GetHistory returns the user's transaction ledger, paginated.
// GET /api/history?limit=&offset=
func (h *PortfolioHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.actingUser(w, r)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxHistoryLimit {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
		limit = n
	}

	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
		offset = n
	}

	transactions, totalCount, err := h.service.History(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.HistoryResponse{
		Transactions: transactions,
		TotalCount:   totalCount,
		Limit:        limit,
		Offset:       offset,
	})
}

// GetQuote returns a live quote for a symbol.
// GET /api/quote?symbol=
func (h *PortfolioHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.actingUser(w, r); !ok {
		return
	}

	quote, err := h.service.GetQuote(r.Context(), r.URL.Query().Get("symbol"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, quote)
}
