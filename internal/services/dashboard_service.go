// Package services composes the analytics core into the documents the
// binaries emit: the JSON dashboard and the standalone reports.
package services

import (
	"context"
	"fmt"
	"time"

	"kopilka/internal/core"
	"kopilka/internal/ledger"
	"kopilka/internal/log"
	"kopilka/internal/rates"
	"kopilka/internal/report"
	"kopilka/internal/timewin"
)

// Time-of-day greetings, bounds inclusive on the lower hour.
const (
	GreetingMorning   = "Good morning"
	GreetingAfternoon = "Good afternoon"
	GreetingEvening   = "Good evening"
	GreetingNight     = "Good night"
)

// QuoteProvider is the external rate lookup collaborator. Implementations
// degrade per-symbol failures to null quotes and never return an error.
type QuoteProvider interface {
	ExchangeRates(ctx context.Context, currencies []string) []rates.CurrencyRate
	StockPrices(ctx context.Context, tickers []string) []rates.StockPrice
}

// Dashboard is the one-shot JSON summary document.
type Dashboard struct {
	Greeting        string                     `json:"greeting"`
	Cards           []core.CardSummary         `json:"cards"`
	TopTransactions []report.RankedTransaction `json:"top_transactions"`
	ExchangeRates   []rates.CurrencyRate       `json:"exchange_rates"`
	Stocks          []rates.StockPrice         `json:"stocks"`
}

// DashboardService builds the dashboard from a ledger source and a quote
// provider. All of its dependencies are injected, including the clock.
type DashboardService struct {
	source     ledger.Source
	quotes     QuoteProvider
	clock      timewin.Clock
	currencies []string
	stocks     []string
	logger     *log.Logger
}

func NewDashboardService(source ledger.Source, quotes QuoteProvider, clock timewin.Clock, currencies, stocks []string, logger *log.Logger) *DashboardService {
	if clock == nil {
		clock = timewin.SystemClock{}
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentDashboard)
	}
	return &DashboardService{
		source:     source,
		quotes:     quotes,
		clock:      clock,
		currencies: currencies,
		stocks:     stocks,
		logger:     logger,
	}
}

// Build produces the dashboard for the month-to-date window ending at ref.
// A zero ref means "now". Ledger failures abort the build; quote failures
// degrade to null entries inside the document.
func (s *DashboardService) Build(ctx context.Context, ref time.Time) (Dashboard, error) {
	if ref.IsZero() {
		ref = s.clock.Now()
	}

	txs, err := s.source.Load(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load ledger: %w", err)
	}

	window := timewin.MonthToDate(ref)
	scoped := report.FilterByWindow(txs, window)
	s.logger.InfoContext(ctx, "Dashboard window scoped",
		log.FieldRefDate, ref.Format(core.DayDateLayout),
		log.FieldRecords, len(scoped))

	dash := Dashboard{
		Greeting:        GreetingForHour(s.clock.Now().Hour()),
		Cards:           report.CardSummaries(scoped),
		TopTransactions: report.TopByAmount(scoped, report.DefaultTopN),
		ExchangeRates:   []rates.CurrencyRate{},
		Stocks:          []rates.StockPrice{},
	}
	if s.quotes != nil {
		dash.ExchangeRates = s.quotes.ExchangeRates(ctx, s.currencies)
		dash.Stocks = s.quotes.StockPrices(ctx, s.stocks)
	}
	return dash, nil
}

// GreetingForHour maps an hour of day to the dashboard greeting.
func GreetingForHour(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return GreetingMorning
	case hour >= 12 && hour < 18:
		return GreetingAfternoon
	case hour >= 18 && hour < 23:
		return GreetingEvening
	default:
		return GreetingNight
	}
}
