// Package parsererror defines the typed errors shared by the statement
// parsers and the import orchestrator.
package parsererror

import "fmt"

// ParseError represents a row-level parsing failure. The orchestrator counts
// these as skipped rows; they never abort a whole import.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a run-level validation failure.
type ValidationError struct {
	Source string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Source, e.Reason)
}

// InvalidFormatError is returned when an input does not conform to any
// recognized statement format, or when the generic CSV fallback cannot
// locate its required columns.
type InvalidFormatError struct {
	Source         string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in '%s': %s. Expected: %s",
		e.Source, e.Msg, e.ExpectedFormat)
}

// RowLimitError is returned when a statement holds more data rows than the
// configured import cap allows. It fires before any row is persisted.
type RowLimitError struct {
	Count int
	Limit int
}

func (e *RowLimitError) Error() string {
	return fmt.Sprintf("statement has %d rows, import limit is %d", e.Count, e.Limit)
}

// ImportTimeoutError is returned when PDF extraction and parsing exceed the
// configured wall-clock budget.
type ImportTimeoutError struct {
	Stage string
	Err   error
}

func (e *ImportTimeoutError) Error() string {
	return fmt.Sprintf("import timed out during %s: %v", e.Stage, e.Err)
}

func (e *ImportTimeoutError) Unwrap() error {
	return e.Err
}

// ImportInProgressError is returned when a second import is started while
// another one is still running.
type ImportInProgressError struct{}

func (e *ImportInProgressError) Error() string {
	return "another import is already in progress"
}
