package amqp

import (
	"encoding/json"
	"testing"
)

func TestReportMessageRoundTrip(t *testing.T) {
	doc := []byte(`{"Workday": 400, "Weekend": 750}`)
	msg := NewReportMessage("spending_by_workday", doc)

	if msg.Name != "spending_by_workday" {
		t.Errorf("name = %q", msg.Name)
	}
	if msg.GeneratedAt.IsZero() {
		t.Error("generated_at must be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ReportMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != msg.Name {
		t.Errorf("round trip name = %q", got.Name)
	}

	// The document must survive as-is, still valid JSON.
	var inner map[string]float64
	if err := json.Unmarshal(got.Document, &inner); err != nil {
		t.Fatalf("document no longer valid JSON: %v", err)
	}
	if inner["Weekend"] != 750 {
		t.Errorf("document content lost: %v", inner)
	}
}

func TestReportMessageFromJSON_Invalid(t *testing.T) {
	if _, err := ReportMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
