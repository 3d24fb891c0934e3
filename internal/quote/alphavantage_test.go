// internal/quote/alphavantage_test.go
package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"papertrade/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("function") {
		case "GLOBAL_QUOTE":
			if r.URL.Query().Get("symbol") == "AAPL" {
				_, _ = w.Write([]byte(`{"Global Quote": {"01. symbol": "AAPL", "05. price": "150.2500"}}`))
				return
			}
			// Unknown symbols come back as an empty quote object.
			_, _ = w.Write([]byte(`{"Global Quote": {}}`))
		case "SYMBOL_SEARCH":
			_, _ = w.Write([]byte(`{"bestMatches": [{"1. symbol": "AAPL", "2. name": "Apple Inc"}]}`))
		default:
			http.Error(w, "unknown function", http.StatusBadRequest)
		}
	}))
}

func TestLookup_Success(t *testing.T) {
	srv := quoteServer(t)
	defer srv.Close()

	client := NewAlphaVantageClient(srv.URL, "demo", 5*time.Second)

	q, err := client.Lookup(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, "Apple Inc", q.Name)
	assert.True(t, q.Price.Equal(decimal.RequireFromString("150.25")))
}

func TestLookup_CaseInsensitive(t *testing.T) {
	srv := quoteServer(t)
	defer srv.Close()

	client := NewAlphaVantageClient(srv.URL, "demo", 5*time.Second)

	q, err := client.Lookup(context.Background(), "  aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)
}

func TestLookup_UnknownSymbol(t *testing.T) {
	srv := quoteServer(t)
	defer srv.Close()

	client := NewAlphaVantageClient(srv.URL, "demo", 5*time.Second)

	_, err := client.Lookup(context.Background(), "NOPE")
	assert.ErrorIs(t, err, util.ErrInvalidSymbol)
}

func TestLookup_EmptySymbol(t *testing.T) {
	client := NewAlphaVantageClient("http://unused", "demo", 5*time.Second)

	_, err := client.Lookup(context.Background(), "   ")
	assert.ErrorIs(t, err, util.ErrInvalidSymbol)
}

func TestLookup_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewAlphaVantageClient(srv.URL, "demo", 5*time.Second)

	_, err := client.Lookup(context.Background(), "AAPL")
	assert.ErrorIs(t, err, util.ErrQuoteUnavailable)
}

func TestLookup_BoundedTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer slow.Close()

	client := NewAlphaVantageClient(slow.URL, "demo", 50*time.Millisecond)

	start := time.Now()
	_, err := client.Lookup(context.Background(), "AAPL")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "lookup must not hang past its timeout")
}

func TestLookup_NameFallsBackToSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("function") {
		case "GLOBAL_QUOTE":
			_, _ = w.Write([]byte(`{"Global Quote": {"01. symbol": "XYZ", "05. price": "10"}}`))
		default:
			_, _ = w.Write([]byte(`{"bestMatches": []}`))
		}
	}))
	defer srv.Close()

	client := NewAlphaVantageClient(srv.URL, "demo", 5*time.Second)

	q, err := client.Lookup(context.Background(), "XYZ")
	require.NoError(t, err)
	assert.Equal(t, "XYZ", q.Name)
}
