// Package moneyutils normalizes the amount notations found in bank statement
// exports: decimal commas, thousands separators, currency markers and
// embedded sign characters.
package moneyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	amountShapeRe = regexp.MustCompile(`[-+]?(?:\d{1,3}(?:[\s\x{00a0}']\d{3})+|\d+)(?:[.,]\d{1,2})?`)
	// A field that is an amount and nothing else (currency marker allowed).
	strictAmountRe = regexp.MustCompile(`^[-+]?\d[\d\s\x{00a0}']*(?:[.,]\d{1,2})?\s*(?:₽|RUB|RUR|руб\.?|Р)?$`)
	letterRe       = regexp.MustCompile(`\p{L}`)
)

// currency markers stripped before parsing
var currencyMarkers = []string{"₽", "RUB", "RUR", "руб.", "руб", "Р"}

// Clean strips whitespace, thousands separators and currency markers from an
// amount string and converts a decimal comma to a dot. The sign is preserved.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	for _, marker := range currencyMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strings.TrimSpace(s)
}

// Parse converts an amount string to a decimal. Parse failure yields zero,
// never an error: the orchestrator treats zero-amount rows as skippable, so
// unparseable amounts silently degrade instead of aborting an import.
func Parse(raw string) decimal.Decimal {
	cleaned := Clean(raw)
	if cleaned == "" || cleaned == "-" || cleaned == "+" {
		return decimal.Zero
	}
	dec, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

// IsNegative reports whether the raw amount string carries a leading minus,
// checked before any cleanup so "- 500,00" is still recognized.
func IsNegative(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "-")
}

// LooksLikeAmount reports whether a whole field reads as a monetary amount:
// an optionally signed number with comma-or-dot separator and either a
// currency marker or no letters at all.
func LooksLikeAmount(field string) bool {
	s := strings.TrimSpace(field)
	if s == "" {
		return false
	}
	if strictAmountRe.MatchString(s) {
		return true
	}
	// Tolerate a trailing currency word as the only letters in the field.
	stripped := Clean(s)
	if stripped == "" || letterRe.MatchString(stripped) {
		return false
	}
	_, err := decimal.NewFromString(stripped)
	return err == nil
}

// FindAmount returns the first amount-shaped substring in free text, or ""
// when none is present. Used by the PDF fallback extraction strategy.
// Date fragments like "15.03" inside "15.03.2024" are rejected by checking
// the characters around each candidate match.
func FindAmount(text string) string {
	for _, loc := range amountShapeRe.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if end < len(text) && (text[end] == '.' || text[end] == ':' || isDigit(text[end])) {
			continue // date, time or a longer number continues past the match
		}
		if start > 0 && (text[start-1] == '.' || text[start-1] == ':' || isDigit(text[start-1])) {
			continue
		}
		match := strings.TrimSpace(text[start:end])
		if match != "" {
			return match
		}
	}
	return ""
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
