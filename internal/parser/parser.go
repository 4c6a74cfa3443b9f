// Package parser defines the contracts every bank statement parser
// implements, plus the shared line-splitting and field-location heuristics.
package parser

import (
	"kopilka/bank-import/internal/models"
)

// StatementParser is the contract for line-oriented (CSV-like) bank formats.
// Implementations are stateless strategy objects constructed per import run;
// they hold only compiled pattern tables, date layout lists and per-run
// fallback counters.
type StatementParser interface {
	// Name returns the bank display name used as the record source label.
	Name() string

	// IsValidFormat decides from a peek at the first lines whether this
	// parser understands the input.
	IsValidFormat(preview []string) bool

	// SkipHeaders returns how many leading lines are headers to skip.
	SkipHeaders(lines []string) int

	// ShouldSkipLine reports whether a data line is boilerplate (totals,
	// balances, empty separators) rather than a transaction row.
	ShouldSkipLine(line string) bool

	// ParseLine converts one raw data line into a transaction record.
	// Row-level failures come back as *parsererror.ParseError.
	ParseLine(line string) (models.Transaction, error)

	// Fallbacks reports how often the silent best-effort fallbacks fired
	// during this parser's lifetime.
	Fallbacks() Fallbacks
}

// DocumentParser is the contract for PDF-sourced statements, which parse the
// whole extracted text at once instead of line by line.
type DocumentParser interface {
	Name() string

	// ParseText converts the full extracted PDF text into records.
	ParseText(text string) ([]models.Transaction, error)

	Fallbacks() Fallbacks
}

// Fallbacks counts the silent data-quality compromises a parser made:
// unparseable dates defaulted to "now" and unparseable amounts defaulted to
// zero. Tests and callers use these to detect when the fallbacks fire.
type Fallbacks struct {
	DateNow    int
	ZeroAmount int
}
