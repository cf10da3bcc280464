package core

import "fmt"

// ParseError reports an unparseable date or number in a record or input
// parameter. Ledger rows are assumed internally consistent, so a single bad
// row fails the whole load rather than being dropped silently.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LookupError reports a failed external rate or price fetch. Callers convert
// it into a null-valued quote instead of propagating it; one symbol's failure
// never aborts a batch.
type LookupError struct {
	Symbol string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s: %v", e.Symbol, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// ValidationError reports a malformed caller-supplied parameter.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}
