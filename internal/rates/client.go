// Package rates fetches currency exchange rates and stock closing prices
// from external quote APIs and merges them into report output.
//
// Lookups degrade gracefully: any failure for one symbol (transport error,
// non-2xx status, malformed payload, missing field) produces a null-valued
// quote and never aborts the rest of the batch. Output order always matches
// input order.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"kopilka/internal/cache"
	"kopilka/internal/core"
)

// Default public endpoints, overridable for tests.
const (
	DefaultCurrencyBaseURL = "https://v6.exchangerate-api.com"
	DefaultStocksBaseURL   = "https://www.alphavantage.co"
)

// CurrencyRate is one exchange-rate quote. Rate is nil when the lookup
// failed.
type CurrencyRate struct {
	Currency string   `json:"currency"`
	Rate     *float64 `json:"rate"`
}

// StockPrice is one stock quote. Price is nil when the lookup failed.
type StockPrice struct {
	Stock string   `json:"stock"`
	Price *float64 `json:"price"`
}

// Config holds the client's keys and endpoints.
type Config struct {
	CurrencyAPIKey  string
	StocksAPIKey    string
	BaseCurrency    string // target currency of exchange rates, e.g. "RUB"
	CurrencyBaseURL string
	StocksBaseURL   string
	CacheSize       int
	CacheTTL        time.Duration
	// Parallel runs independent lookups concurrently. Per-symbol failure
	// isolation holds either way.
	Parallel bool
}

// Client performs quote lookups with a shared HTTP client and a TTL cache so
// repeated symbols within one run hit the network once.
type Client struct {
	httpClient *http.Client
	cfg        Config
	quotes     *cache.LRU[float64]
}

// New creates a quote client. A nil httpClient falls back to a 10 second
// timeout default; the transport owns all timeout behavior.
func New(httpClient *http.Client, cfg Config) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.CurrencyBaseURL == "" {
		cfg.CurrencyBaseURL = DefaultCurrencyBaseURL
	}
	if cfg.StocksBaseURL == "" {
		cfg.StocksBaseURL = DefaultStocksBaseURL
	}
	if cfg.BaseCurrency == "" {
		cfg.BaseCurrency = "RUB"
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 64
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	return &Client{
		httpClient: httpClient,
		cfg:        cfg,
		quotes:     cache.NewLRU[float64](cfg.CacheSize, cfg.CacheTTL),
	}
}

// ExchangeRates returns one quote per currency code, in input order. Failed
// lookups carry a nil rate.
func (c *Client) ExchangeRates(ctx context.Context, currencies []string) []CurrencyRate {
	prices := c.fetchAll(ctx, currencies, "currency", c.exchangeRate)
	out := make([]CurrencyRate, len(currencies))
	for i, cur := range currencies {
		out[i] = CurrencyRate{Currency: cur, Rate: prices[i]}
	}
	return out
}

// StockPrices returns one quote per ticker, in input order. Failed lookups
// carry a nil price.
func (c *Client) StockPrices(ctx context.Context, tickers []string) []StockPrice {
	prices := c.fetchAll(ctx, tickers, "stock", c.stockClose)
	out := make([]StockPrice, len(tickers))
	for i, tick := range tickers {
		out[i] = StockPrice{Stock: tick, Price: prices[i]}
	}
	return out
}

// fetchAll resolves every symbol through the cache and the given lookup,
// converting failures into nil slots. With Parallel set, lookups run in a
// bounded errgroup; each goroutine owns its output slot and never returns an
// error, so one symbol cannot cancel the others.
func (c *Client) fetchAll(ctx context.Context, symbols []string, kind string, lookup func(context.Context, string) (float64, error)) []*float64 {
	out := make([]*float64, len(symbols))

	one := func(i int, symbol string) {
		key := kind + ":" + symbol
		if v, ok := c.quotes.Get(key); ok {
			out[i] = &v
			return
		}
		v, err := lookup(ctx, symbol)
		if err != nil {
			slog.WarnContext(ctx, "Quote lookup failed, degrading to null",
				"kind", kind, "symbol", symbol, "error", err)
			return
		}
		c.quotes.Set(key, v)
		out[i] = &v
	}

	if !c.cfg.Parallel {
		for i, s := range symbols {
			one(i, s)
		}
		return out
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, s := range symbols {
		g.Go(func() error {
			one(i, s)
			return nil
		})
	}
	g.Wait() // never errors; goroutines swallow failures into nil slots
	return out
}

// exchangeRate fetches units of the base currency per one unit of the given
// currency from exchangerate-api.
func (c *Client) exchangeRate(ctx context.Context, currency string) (float64, error) {
	u := fmt.Sprintf("%s/v6/%s/latest/%s",
		c.cfg.CurrencyBaseURL, url.PathEscape(c.cfg.CurrencyAPIKey), url.PathEscape(currency))

	var payload struct {
		ConversionRates map[string]float64 `json:"conversion_rates"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return 0, &core.LookupError{Symbol: currency, Err: err}
	}
	rate, ok := payload.ConversionRates[c.cfg.BaseCurrency]
	if !ok {
		return 0, &core.LookupError{Symbol: currency,
			Err: fmt.Errorf("no %s rate in payload", c.cfg.BaseCurrency)}
	}
	return rate, nil
}

// stockClose fetches the most recent daily closing price from alphavantage.
func (c *Client) stockClose(ctx context.Context, ticker string) (float64, error) {
	u := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s",
		c.cfg.StocksBaseURL, url.QueryEscape(ticker), url.QueryEscape(c.cfg.StocksAPIKey))

	var payload struct {
		TimeSeries map[string]struct {
			Close string `json:"4. close"`
		} `json:"Time Series (Daily)"`
	}
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return 0, &core.LookupError{Symbol: ticker, Err: err}
	}
	if len(payload.TimeSeries) == 0 {
		return 0, &core.LookupError{Symbol: ticker, Err: fmt.Errorf("no daily series in payload")}
	}

	latest := ""
	for day := range payload.TimeSeries {
		if day > latest {
			latest = day
		}
	}
	price, err := strconv.ParseFloat(payload.TimeSeries[latest].Close, 64)
	if err != nil {
		return 0, &core.LookupError{Symbol: ticker, Err: fmt.Errorf("close price: %w", err)}
	}
	return price, nil
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
