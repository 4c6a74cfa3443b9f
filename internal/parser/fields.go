package parser

import (
	"encoding/csv"
	"errors"
	"strings"

	"kopilka/bank-import/internal/dateutils"
	"kopilka/bank-import/internal/moneyutils"
)

// Shared row-rejection causes wrapped in *parsererror.ParseError.
var (
	ErrTooFewFields      = errors.New("row has fewer than 3 non-blank fields")
	ErrUnresolvedColumns = errors.New("date or amount column could not be resolved")
)

// DetectDelimiter chooses the field delimiter for one raw line. Semicolon is
// preferred, then tab, then comma. The choice is per line, not per file:
// several banks mix delimiters across export versions.
func DetectDelimiter(line string) rune {
	switch {
	case strings.ContainsRune(line, ';'):
		return ';'
	case strings.ContainsRune(line, '\t'):
		return '\t'
	default:
		return ','
	}
}

// SplitFields splits a raw statement line into fields using the per-line
// detected delimiter, honoring quoted fields.
func SplitFields(line string) []string {
	delim := DetectDelimiter(line)
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		fields = strings.Split(line, string(delim))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// CountNonBlank returns the number of non-blank fields.
func CountNonBlank(fields []string) int {
	n := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	return n
}

// LocateFields finds the date, amount and description fields in a row by
// content shape rather than by position. Used for banks whose column order
// is unstable across export versions (Alfa, Gazprombank, Ozon, VTB).
//
// The date field matches DD.MM.YYYY or YYYY-MM-DD with an optional trailing
// time. The amount field is a signed decimal with either a currency marker
// or no letters at all. The description is the longest remaining field with
// more than 5 characters that is neither date- nor amount-shaped; it comes
// back as -1 when absent. A row where the date or the amount cannot be
// located fails with ErrUnresolvedColumns.
func LocateFields(fields []string) (dateIdx, amountIdx, descIdx int, err error) {
	dateIdx, amountIdx, descIdx = -1, -1, -1

	for i, f := range fields {
		if dateIdx == -1 && dateutils.LooksLikeDate(f) {
			dateIdx = i
		}
	}
	for i, f := range fields {
		if i == dateIdx {
			continue
		}
		if amountIdx == -1 && moneyutils.LooksLikeAmount(f) {
			amountIdx = i
		}
	}

	longest := 0
	for i, f := range fields {
		if i == dateIdx || i == amountIdx {
			continue
		}
		trimmed := strings.TrimSpace(f)
		if len([]rune(trimmed)) <= 5 {
			continue
		}
		if dateutils.LooksLikeDate(trimmed) || moneyutils.LooksLikeAmount(trimmed) {
			continue
		}
		if len(trimmed) > longest {
			longest = len(trimmed)
			descIdx = i
		}
	}
	if dateIdx == -1 || amountIdx == -1 {
		return dateIdx, amountIdx, descIdx, ErrUnresolvedColumns
	}
	return dateIdx, amountIdx, descIdx, nil
}

// debit keywords that mark a row as an expense regardless of amount sign
var debitKeywords = []string{"списание", "расход"}

// HasDebitKeyword reports whether any field carries an explicit debit marker.
// Combined with the amount sign by an OR, which can misclassify ambiguous
// rows; that is the documented best-effort behavior.
func HasDebitKeyword(fields []string) bool {
	for _, f := range fields {
		lower := strings.ToLower(f)
		for _, kw := range debitKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}

// HeaderIndex finds the index of a header column matching any of the given
// case-insensitive names. Used for banks with a stable schema where fields
// are located by header name with synonyms.
func HeaderIndex(header []string, names ...string) int {
	for i, col := range header {
		colLower := strings.ToLower(strings.TrimSpace(col))
		for _, name := range names {
			if colLower == strings.ToLower(name) {
				return i
			}
		}
	}
	return -1
}

// ContainsAny reports whether the lower-cased haystack contains any of the
// lower-cased needles. The workhorse of every bank's IsValidFormat check.
func ContainsAny(haystack string, needles ...string) bool {
	lower := strings.ToLower(haystack)
	for _, needle := range needles {
		if strings.Contains(lower, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}
