package backend

import "testing"

func TestTypeIsValid(t *testing.T) {
	valid := []Type{CSVBackend, SQLiteBackend, SheetsBackend, MemoryBackend}
	for _, v := range valid {
		if !v.IsValid() {
			t.Errorf("%s must be valid", v)
		}
	}
	for _, bad := range []Type{"", "excel", "postgres"} {
		if bad.IsValid() {
			t.Errorf("%q must be invalid", bad)
		}
	}
}
