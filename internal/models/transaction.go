// Package models provides the data structures shared by the statement
// parsers, the categorizer and the import orchestrator.
package models

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Field length bounds applied when a transaction is normalized.
const (
	MaxIDLength       = 40
	MaxCategoryLength = 40
	MaxNoteLength     = 160
)

// Transaction is the canonical record every parser produces.
//
// Amount is always stored as an absolute value; the direction of the original
// signed source value lives solely in IsExpense.
type Transaction struct {
	ID        string
	Amount    decimal.Decimal
	Category  string
	Date      time.Time
	Note      string
	Source    string
	IsExpense bool
}

// Normalize enforces the record invariants in place: absolute amount,
// bounded field lengths and a placeholder category when none was assigned.
func (t *Transaction) Normalize() {
	t.Amount = t.Amount.Abs()

	t.ID = truncate(strings.TrimSpace(t.ID), MaxIDLength)
	t.Note = truncate(strings.TrimSpace(t.Note), MaxNoteLength)

	t.Category = truncate(strings.TrimSpace(t.Category), MaxCategoryLength)
	if t.Category == "" {
		t.Category = CategoryOther
	}
}

// MakeID derives a transaction identifier from the source label and a
// timestamp. The nanosecond component keeps identifiers unique within one
// import run; the result is bounded by MaxIDLength. Because the timestamp is
// the moment of parsing, re-importing the same input mints fresh identifiers
// (the PDF path relies on this and therefore has no dedup).
func MakeID(source string, at time.Time) string {
	id := fmt.Sprintf("%s_%d_%d", sanitizeLabel(source), at.Unix(), at.Nanosecond())
	return truncate(id, MaxIDLength)
}

// DeriveID builds a deterministic, content-derived identifier for CSV rows:
// source + transaction date + amount + a short hash of the note. Literal
// re-import of the same file reproduces the same identifiers, which is what
// the orchestrator's dedup check keys on.
func DeriveID(source string, date time.Time, amount decimal.Decimal, note string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(note))
	id := fmt.Sprintf("%s_%d_%s_%08x",
		sanitizeLabel(source), date.Unix(), amount.Abs().StringFixed(2), h.Sum32())
	return truncate(id, MaxIDLength)
}

func sanitizeLabel(source string) string {
	label := strings.ToLower(strings.TrimSpace(source))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == ';' || r == ',' {
			return '_'
		}
		return r
	}, label)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		// Bound is in bytes, matching storage limits, not runes.
		return s
	}
	cut := s[:max]
	// Do not split a multi-byte rune at the boundary.
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
