// internal/quote/alphavantage.go
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"papertrade/internal/domain"
	"papertrade/internal/util"

	"github.com/shopspring/decimal"
)

const defaultLookupTimeout = 10 * time.Second

// AlphaVantageClient fetches live quotes from the Alpha Vantage HTTP API.
type AlphaVantageClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAlphaVantageClient creates a quote client with a bounded request timeout.
// A non-positive timeout falls back to the default.
func NewAlphaVantageClient(baseURL, apiKey string, timeout time.Duration) *AlphaVantageClient {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &AlphaVantageClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol string `json:"01. symbol"`
		Price  string `json:"05. price"`
	} `json:"Global Quote"`
}

type symbolSearchResponse struct {
	BestMatches []struct {
		Symbol string `json:"1. symbol"`
		Name   string `json:"2. name"`
	} `json:"bestMatches"`
}

// Lookup resolves a symbol to its current name and price. An empty quote in
// the provider response means the symbol does not exist.
func (c *AlphaVantageClient) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, util.ErrInvalidSymbol
	}

	var quoteResp globalQuoteResponse
	if err := c.get(ctx, "GLOBAL_QUOTE", symbol, &quoteResp); err != nil {
		return nil, err
	}
	if quoteResp.GlobalQuote.Price == "" {
		return nil, util.ErrInvalidSymbol
	}

	price, err := decimal.NewFromString(quoteResp.GlobalQuote.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse quoted price %q for %s: %w", quoteResp.GlobalQuote.Price, symbol, err)
	}

	// The quote endpoint carries no company name; resolve it separately and
	// fall back to the symbol itself if the search returns nothing.
	name := symbol
	var searchResp symbolSearchResponse
	if err := c.get(ctx, "SYMBOL_SEARCH", symbol, &searchResp); err == nil {
		for _, match := range searchResp.BestMatches {
			if NormalizeSymbol(match.Symbol) == symbol {
				name = match.Name
				break
			}
		}
	}

	return &domain.Quote{
		Symbol: symbol,
		Name:   name,
		Price:  price,
		At:     time.Now().UTC(),
	}, nil
}

func (c *AlphaVantageClient) get(ctx context.Context, function, symbol string, dest interface{}) error {
	params := url.Values{}
	params.Set("function", function)
	params.Set("apikey", c.apiKey)
	if function == "SYMBOL_SEARCH" {
		params.Set("keywords", symbol)
	} else {
		params.Set("symbol", symbol)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: provider returned %s", util.ErrQuoteUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to parse quote response: %w", err)
	}
	return nil
}
