package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler, parallel bool) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(srv.Client(), Config{
		CurrencyAPIKey:  "test-key",
		StocksAPIKey:    "test-key",
		BaseCurrency:    "RUB",
		CurrencyBaseURL: srv.URL,
		StocksBaseURL:   srv.URL,
		Parallel:        parallel,
	})
	return c, srv
}

func TestExchangeRates(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/USD"):
			w.Write([]byte(`{"conversion_rates": {"RUB": 92.5, "EUR": 0.9}}`))
		case strings.HasSuffix(r.URL.Path, "/EUR"):
			w.Write([]byte(`{"conversion_rates": {"USD": 1.1}}`)) // no RUB rate
		default:
			http.Error(w, "unknown currency", http.StatusNotFound)
		}
	})
	c, _ := newTestClient(t, handler, false)

	got := c.ExchangeRates(context.Background(), []string{"USD", "EUR", "GBP"})
	if len(got) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(got))
	}
	if got[0].Currency != "USD" || got[0].Rate == nil || *got[0].Rate != 92.5 {
		t.Errorf("USD quote = %+v, want rate 92.5", got[0])
	}
	if got[1].Rate != nil {
		t.Errorf("EUR quote without target rate must be null, got %v", *got[1].Rate)
	}
	if got[2].Rate != nil {
		t.Errorf("GBP quote after 404 must be null, got %v", *got[2].Rate)
	}
}

func TestExchangeRates_TotalFailureKeepsOrderAndLength(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})
	c, _ := newTestClient(t, handler, false)

	got := c.ExchangeRates(context.Background(), []string{"USD", "EUR"})
	if len(got) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(got))
	}
	if got[0].Currency != "USD" || got[1].Currency != "EUR" {
		t.Errorf("order not preserved: %v", got)
	}
	for _, q := range got {
		if q.Rate != nil {
			t.Errorf("quote %s must be null under total failure", q.Currency)
		}
	}
}

func TestStockPrices(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("symbol") {
		case "AAPL":
			w.Write([]byte(`{"Time Series (Daily)": {
				"2024-01-02": {"4. close": "185.64"},
				"2024-01-03": {"4. close": "184.25"}
			}}`))
		case "MSFT":
			w.Write([]byte(`{"Note": "rate limit reached"}`)) // missing series
		default:
			w.Write([]byte(`{"Time Series (Daily)": {"2024-01-03": {"4. close": "not a number"}}}`))
		}
	})
	c, _ := newTestClient(t, handler, false)

	got := c.StockPrices(context.Background(), []string{"AAPL", "MSFT", "TSLA"})
	if got[0].Price == nil || *got[0].Price != 184.25 {
		t.Errorf("AAPL must use latest close 184.25, got %+v", got[0])
	}
	if got[1].Price != nil {
		t.Errorf("missing series must yield null, got %v", *got[1].Price)
	}
	if got[2].Price != nil {
		t.Errorf("malformed close must yield null, got %v", *got[2].Price)
	}
}

func TestFetchAll_CachesRepeatedSymbols(t *testing.T) {
	var hits atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"conversion_rates": {"RUB": 92.5}}`))
	})
	c, _ := newTestClient(t, handler, false)

	c.ExchangeRates(context.Background(), []string{"USD", "USD", "USD"})
	if n := hits.Load(); n != 1 {
		t.Errorf("expected 1 upstream hit for repeated symbol, got %d", n)
	}
}

func TestFetchAll_Parallel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
		if strings.HasSuffix(r.URL.Path, "/BAD") {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"conversion_rates": {"RUB": 92.5}}`))
	})
	c, _ := newTestClient(t, handler, true)

	got := c.ExchangeRates(context.Background(), []string{"USD", "BAD", "EUR", "CNY"})
	if len(got) != 4 {
		t.Fatalf("expected 4 quotes, got %d", len(got))
	}
	if got[1].Rate != nil {
		t.Error("failed symbol must stay null in parallel mode")
	}
	for _, i := range []int{0, 2, 3} {
		if got[i].Rate == nil || *got[i].Rate != 92.5 {
			t.Errorf("quote %d = %+v, want 92.5 (one failure must not cancel others)", i, got[i])
		}
	}
}
