// Package ozonparser parses Ozon Bank statement exports, both the CSV
// format and the PDF text layout. Ozon exports carry no stable header
// schema, so field positions are located by content shape on every row.
package ozonparser

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

// SourceName is the record source label for Ozon Bank statements.
const SourceName = "Озон"

var dateLayouts = []string{
	dateutils.LayoutRuTime,
	dateutils.LayoutRuShortTime,
	dateutils.LayoutRu,
	dateutils.LayoutISOTime,
	dateutils.LayoutISO,
}

// CSVParser parses the Ozon Bank CSV export.
type CSVParser struct {
	parser.BaseParser
	engine *categorizer.Engine
}

// NewCSVParser constructs an Ozon CSV parser for one import run.
func NewCSVParser(logger logging.Logger) *CSVParser {
	return &CSVParser{
		BaseParser: parser.NewBaseParser(logger),
		engine:     categorizer.NewEngine(categorizer.OzonRules, logger),
	}
}

// Name returns the bank display name.
func (p *CSVParser) Name() string { return SourceName }

// IsValidFormat recognizes Ozon exports by bank name tokens only. The export
// has no distinctive header shape, so without a token the generic parser is
// the safer claim.
func (p *CSVParser) IsValidFormat(preview []string) bool {
	joined := strings.Join(preview, "\n")
	return parser.ContainsAny(joined, "озон банк", "ozon банк", "ozon bank", "озон·банк")
}

// SkipHeaders skips any leading lines that carry no locatable date+amount
// pair; the export often opens with account metadata.
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
	return parser.ContainsAny(trimmed, "итого", "остаток на", "баланс на", "доступно на")
}

// ParseLine converts one Ozon CSV row into a transaction record, locating
// the date, amount and description fields by shape.
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
