// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"papertrade/internal/api/types"
	"papertrade/internal/util"
)

// DefaultTimeout bounds every request, including the quote lookup it may
// trigger.
const DefaultTimeout = 30 * time.Second

// respondWithJSON writes a JSON response body with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps domain errors to HTTP status codes. Every engine
// error is a rejected operation with a reason, never a crash.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput),
		util.IsError(err, util.ErrInvalidQuantity),
		util.IsError(err, util.ErrInvalidSymbol),
		util.IsError(err, util.ErrWeakPassword),
		util.IsError(err, util.ErrPasswordMismatch):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrCannotAfford),
		util.IsError(err, util.ErrInsufficientShares):
		statusCode = http.StatusPaymentRequired
		message = err.Error()
	case util.IsError(err, util.ErrUsernameTaken):
		statusCode = http.StatusConflict
		message = err.Error()
	case util.IsError(err, util.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = err.Error()
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrQuoteUnavailable):
		statusCode = http.StatusServiceUnavailable
		message = "Quote provider unavailable"
	default:
		logger.Error("unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, types.ErrorResponse{Error: message})
}
