// internal/api/types/response.go
package types

// ErrorResponse is the JSON envelope for rejected operations.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// TradeResponse reports the outcome of an executed buy or sell.
type TradeResponse struct {
	Message       string `json:"message"`
	TransactionID int64  `json:"transaction_id"`
	Symbol        string `json:"symbol"`
	Shares        int64  `json:"shares"`
	Price         string `json:"price"`
}

// HistoryResponse is a paginated slice of the transaction ledger.
type HistoryResponse struct {
	Transactions interface{} `json:"transactions"`
	TotalCount   int64       `json:"total_count"`
	Limit        int         `json:"limit"`
	Offset       int         `json:"offset"`
}
