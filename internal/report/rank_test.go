package report

import (
	"testing"

	"kopilka/internal/core"
)

func TestTopByAmount(t *testing.T) {
	txs := []core.Transaction{
		{Date: mustDate(t, "01.05.2020 10:00:00"), Amount: -100, Category: "Food", Description: "lunch"},
		{Date: mustDate(t, "02.05.2020 10:00:00"), Amount: 900, Category: "Salary", Description: "payday"},
		{Date: mustDate(t, "03.05.2020 10:00:00"), Amount: -500, Category: "Rent", Description: "rent"},
		{Date: mustDate(t, "04.05.2020 10:00:00"), Amount: -50, Category: "Food", Description: "coffee"},
	}

	got := TopByAmount(txs, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got[0].Amount != 900 || got[1].Amount != -500 || got[2].Amount != -100 {
		t.Errorf("unexpected ranking order: %v", got)
	}
	if got[0].Date != "02.05.2020" {
		t.Errorf("date not reformatted: %q", got[0].Date)
	}
}

func TestTopByAmount_StableTieBreak(t *testing.T) {
	txs := []core.Transaction{
		{Date: mustDate(t, "01.05.2020 10:00:00"), Amount: -100, Description: "first"},
		{Date: mustDate(t, "02.05.2020 10:00:00"), Amount: 100, Description: "second"},
		{Date: mustDate(t, "03.05.2020 10:00:00"), Amount: -100, Description: "third"},
	}

	got := TopByAmount(txs, 0) // default depth
	if len(got) != 3 {
		t.Fatalf("expected min(5, 3) = 3 rows, got %d", len(got))
	}
	order := []string{"first", "second", "third"}
	for i, want := range order {
		if got[i].Description != want {
			t.Errorf("row %d = %q, want %q (ties must keep original order)", i, got[i].Description, want)
		}
	}
}

func TestTopByAmount_TruncatesToLength(t *testing.T) {
	txs := []core.Transaction{
		{Date: mustDate(t, "01.05.2020 10:00:00"), Amount: -1},
	}
	if got := TopByAmount(txs, 5); len(got) != 1 {
		t.Errorf("expected 1 row, got %d", len(got))
	}
	if got := TopByAmount(nil, 5); len(got) != 0 {
		t.Errorf("expected no rows for empty input, got %d", len(got))
	}
}
