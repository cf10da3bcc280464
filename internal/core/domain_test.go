package core

import (
	"errors"
	"testing"
	"time"
)

func fptr(v float64) *float64 { return &v }

func TestHasCard(t *testing.T) {
	cases := []struct {
		card string
		want bool
	}{
		{"*1234", true},
		{"", false},
		{"  ", false},
		{"nan", false},
		{"NaN", false},
		{" nan ", false},
	}
	for _, tc := range cases {
		tx := Transaction{Card: tc.card}
		if got := tx.HasCard(); got != tc.want {
			t.Errorf("HasCard(%q) = %v, want %v", tc.card, got, tc.want)
		}
	}
}

func TestCashbackEarned(t *testing.T) {
	cases := []struct {
		name string
		tx   Transaction
		want float64
	}{
		{"income earns nothing", Transaction{Amount: 500}, 0},
		{"default 1 percent", Transaction{Amount: -100}, 1.0},
		{"stored value wins", Transaction{Amount: -100, Cashback: fptr(5)}, 5.0},
		{"stored zero wins", Transaction{Amount: -100, Cashback: fptr(0)}, 0},
		{"negative stored falls back", Transaction{Amount: -100, Cashback: fptr(-1)}, 1.0},
		{"five decimal rounding", Transaction{Amount: -33.333}, 0.33333},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.tx.CashbackEarned(); got != tc.want {
				t.Errorf("CashbackEarned() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExcludedFromCashback(t *testing.T) {
	if !ExcludedFromCashback(CategoryTransfers) || !ExcludedFromCashback(CategoryCash) {
		t.Error("transfers and cash must be excluded")
	}
	if ExcludedFromCashback("Food") {
		t.Error("regular categories must not be excluded")
	}
}

func TestParseOperationDate(t *testing.T) {
	got, err := ParseOperationDate("20.03.2020 14:30:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2020, 3, 20, 14, 30, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseOperationDate("2020-03-20"); err == nil {
		t.Error("expected error for wrong layout")
	}
	var perr *ParseError
	_, err = ParseOperationDate("garbage")
	if !errors.As(err, &perr) {
		t.Errorf("expected *ParseError, got %T", err)
	}
}

func TestParseYearMonth(t *testing.T) {
	year, month, err := ParseYearMonth("2020.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2020 || month != time.May {
		t.Errorf("got %d-%d, want 2020-5", year, month)
	}
	if _, _, err := ParseYearMonth("05.2020"); err == nil {
		t.Error("expected error for wrong layout")
	}
}
