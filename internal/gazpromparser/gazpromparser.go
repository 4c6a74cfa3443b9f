// Package gazpromparser parses Gazprombank CSV statement exports. Field
// positions are located by content shape on every row.
package gazpromparser

import (
	"strings"

	"kopilka/bank-import/internal/categorizer"
	"kopilka/bank-import/internal/dateutils"
	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
	"kopilka/bank-import/internal/moneyutils"
	"kopilka/bank-import/internal/parser"
	"kopilka/bank-import/internal/parsererror"
)

// SourceName is the record source label for Gazprombank statements.
const SourceName = "Газпромбанк"

var dateLayouts = []string{
	dateutils.LayoutRuTime,
	dateutils.LayoutRuShortTime,
	dateutils.LayoutRu,
	dateutils.LayoutISO,
}

// CSVParser parses the Gazprombank CSV export.
type CSVParser struct {
	parser.BaseParser
	engine *categorizer.Engine
}

// NewCSVParser constructs a Gazprombank CSV parser for one import run.
func NewCSVParser(logger logging.Logger) *CSVParser {
	return &CSVParser{
		BaseParser: parser.NewBaseParser(logger),
		engine:     categorizer.NewEngine(categorizer.GazpromRules, logger),
	}
}

// Name returns the bank display name.
func (p *CSVParser) Name() string { return SourceName }

// IsValidFormat recognizes Gazprombank exports by bank name tokens.
func (p *CSVParser) IsValidFormat(preview []string) bool {
	joined := strings.Join(preview, "\n")
	return parser.ContainsAny(joined, "газпромбанк", "gazprombank", "гпб", "gpb")
}

// SkipHeaders skips leading metadata lines until a row with a locatable
// date+amount pair appears.
func (p *CSVParser) SkipHeaders(lines []string) int {
	limit := len(lines)
	if limit > 8 {
		limit = 8
	}
	for i := 0; i < limit; i++ {
		fields := parser.SplitFields(lines[i])
		if _, _, _, err := parser.LocateFields(fields); err == nil {
			return i
		}
	}
	return 0
}

// ShouldSkipLine drops blank lines and statement footers.
func (p *CSVParser) ShouldSkipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	return parser.ContainsAny(trimmed, "итого", "остаток на", "баланс на", "обороты по счету", "обороты по счёту")
}

// ParseLine converts one Gazprombank CSV row into a transaction record.
func (p *CSVParser) ParseLine(line string) (models.Transaction, error) {
	fields := parser.SplitFields(line)
	if parser.CountNonBlank(fields) < 3 {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: SourceName, Field: "row", Value: line,
			Err: parser.ErrTooFewFields,
		}
	}

	dateIdx, amountIdx, descIdx, err := parser.LocateFields(fields)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: SourceName, Field: "columns", Value: line, Err: err,
		}
	}

	date, fellBack := dateutils.ParseOrNow(fields[dateIdx], dateLayouts)
	if fellBack {
		p.CountDateFallback()
		p.Logger().WithField("value", fields[dateIdx]).
			Warn("Unparseable date defaulted to now")
	}

	rawAmount := fields[amountIdx]
	amount := moneyutils.Parse(rawAmount)
	if amount.IsZero() && strings.TrimSpace(rawAmount) != "" {
		p.CountZeroAmountFallback()
	}

	isExpense := moneyutils.IsNegative(rawAmount) || parser.HasDebitKeyword(fields)

	note := ""
	if descIdx >= 0 {
		note = strings.TrimSpace(fields[descIdx])
	}
	category := p.engine.Infer(note, isExpense)

	tx := models.Transaction{
		ID:        models.DeriveID(SourceName, date, amount, note),
		Amount:    amount,
		Category:  category,
		Date:      date,
		Note:      note,
		Source:    SourceName,
		IsExpense: isExpense,
	}
	tx.Normalize()
	return tx, nil
}
