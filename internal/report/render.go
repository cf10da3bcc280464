package report

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RenderJSON renders a report document for humans: four-space indentation,
// HTML escaping off so Unicode categories and descriptions pass through
// untouched.
func RenderJSON(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
