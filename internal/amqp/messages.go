package amqp

import (
	"encoding/json"
	"time"
)

// ReportMessage wraps a rendered report document for publishing. Document is
// kept as raw JSON so consumers can archive it without knowing every report
// shape.
type ReportMessage struct {
	Name        string          `json:"name"`
	GeneratedAt time.Time       `json:"generated_at"`
	Document    json.RawMessage `json:"document"`
}

// NewReportMessage creates a message for a rendered report document.
func NewReportMessage(name string, document []byte) *ReportMessage {
	return &ReportMessage{
		Name:        name,
		GeneratedAt: time.Now(),
		Document:    json.RawMessage(document),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportMessageFromJSON creates a message from JSON bytes
func ReportMessageFromJSON(data []byte) (*ReportMessage, error) {
	var msg ReportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
