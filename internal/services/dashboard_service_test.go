package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"kopilka/internal/core"
	"kopilka/internal/ledger/memory"
	"kopilka/internal/rates"
	"kopilka/internal/report"
	"kopilka/internal/timewin"
)

type stubQuotes struct{}

func (stubQuotes) ExchangeRates(_ context.Context, currencies []string) []rates.CurrencyRate {
	out := make([]rates.CurrencyRate, len(currencies))
	for i, c := range currencies {
		out[i] = rates.CurrencyRate{Currency: c} // all lookups fail
	}
	return out
}

func (stubQuotes) StockPrices(_ context.Context, tickers []string) []rates.StockPrice {
	out := make([]rates.StockPrice, len(tickers))
	for i, tick := range tickers {
		price := 100.0
		out[i] = rates.StockPrice{Stock: tick, Price: &price}
	}
	return out
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := core.ParseOperationDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestDashboardBuild(t *testing.T) {
	src := memory.New([]core.Transaction{
		{Date: mustDate(t, "05.03.2020 10:00:00"), Card: "*7197", Category: "Food", Amount: -262},
		{Date: mustDate(t, "15.03.2020 10:00:00"), Card: "*7197", Category: "Food", Amount: -100},
		{Date: mustDate(t, "25.03.2020 10:00:00"), Card: "*7197", Amount: -999}, // after ref, outside window
		{Date: mustDate(t, "28.02.2020 10:00:00"), Card: "*7197", Amount: -999}, // previous month
	})
	clock := timewin.FixedClock{T: mustDate(t, "20.03.2020 07:00:00")}
	svc := NewDashboardService(src, stubQuotes{}, clock, []string{"USD", "EUR"}, []string{"AAPL"}, nil)

	ref, _ := core.ParseDayDate("20.03.2020")
	dash, err := svc.Build(context.Background(), ref)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if dash.Greeting != GreetingMorning {
		t.Errorf("greeting = %q, want %q", dash.Greeting, GreetingMorning)
	}
	if len(dash.Cards) != 1 || dash.Cards[0].TotalSpent != 362 {
		t.Errorf("cards = %+v, want one card with total 362", dash.Cards)
	}
	if len(dash.TopTransactions) != 2 {
		t.Errorf("expected 2 top transactions inside window, got %d", len(dash.TopTransactions))
	}
	if len(dash.ExchangeRates) != 2 || dash.ExchangeRates[0].Rate != nil {
		t.Errorf("exchange rates must keep order and degrade to null: %+v", dash.ExchangeRates)
	}
	if len(dash.Stocks) != 1 || dash.Stocks[0].Price == nil {
		t.Errorf("stocks = %+v", dash.Stocks)
	}
}

func TestDashboardBuild_ZeroRefUsesClock(t *testing.T) {
	src := memory.New([]core.Transaction{
		{Date: mustDate(t, "05.03.2020 10:00:00"), Card: "*1", Amount: -10},
	})
	clock := timewin.FixedClock{T: mustDate(t, "20.03.2020 13:00:00")}
	svc := NewDashboardService(src, stubQuotes{}, clock, nil, nil, nil)

	dash, err := svc.Build(context.Background(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if dash.Greeting != GreetingAfternoon {
		t.Errorf("greeting = %q, want %q", dash.Greeting, GreetingAfternoon)
	}
	if len(dash.Cards) != 1 {
		t.Errorf("record inside the clock's month-to-date window must count: %+v", dash.Cards)
	}
}

func TestGreetingForHour(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{7, GreetingMorning},
		{11, GreetingMorning},
		{12, GreetingAfternoon},
		{17, GreetingAfternoon},
		{18, GreetingEvening},
		{22, GreetingEvening},
		{23, GreetingNight},
		{2, GreetingNight},
		{5, GreetingNight},
	}
	for _, tc := range cases {
		if got := GreetingForHour(tc.hour); got != tc.want {
			t.Errorf("GreetingForHour(%d) = %q, want %q", tc.hour, got, tc.want)
		}
	}
}

func TestDashboardRendersUnescaped(t *testing.T) {
	src := memory.New([]core.Transaction{
		{Date: mustDate(t, "05.03.2020 10:00:00"), Card: "*1", Category: "Супермаркеты", Amount: -10},
	})
	clock := timewin.FixedClock{T: mustDate(t, "20.03.2020 13:00:00")}
	svc := NewDashboardService(src, stubQuotes{}, clock, nil, nil, nil)

	dash, err := svc.Build(context.Background(), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	out, err := report.RenderJSON(dash)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "Супермаркеты") {
		t.Errorf("unicode must pass through unescaped:\n%s", out)
	}
	if !strings.Contains(string(out), "    \"greeting\"") {
		t.Errorf("expected 4-space indentation:\n%s", out)
	}
}
