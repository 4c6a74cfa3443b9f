// Package genericparser parses CSV files in the application's own export
// format and, best-effort, any unrecognized bank CSV that carries named
// date and amount headers. It is the detector's fallback parser.
package genericparser

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

// SourceName is the default record source label when the file names none.
const SourceName = "Импорт"

// ExpectedHeader is the canonical export header this parser round-trips.
const ExpectedHeader = "ID,Дата,Категория,Сумма,Тип,Примечание,Источник"

var dateLayouts = dateutils.CommonLayouts

type columns struct {
	id       int
	date     int
	category int
	amount   int
	kind     int
	note     int
	source   int
}

// CSVParser parses the canonical export format. Columns are resolved from
// the header row by name; date and amount are mandatory, the rest optional.
type CSVParser struct {
	parser.BaseParser
	engine   *categorizer.Engine
	cols     columns
	resolved bool
}

// NewCSVParser constructs a generic CSV parser for one import run.
func NewCSVParser(logger logging.Logger) *CSVParser {
	return &CSVParser{
		BaseParser: parser.NewBaseParser(logger),
		engine:     categorizer.NewEngine(categorizer.GenericRules, logger),
		cols:       columns{id: -1, date: -1, category: -1, amount: -1, kind: -1, note: -1, source: -1},
	}
}

// Name returns the parser display name.
func (p *CSVParser) Name() string { return SourceName }

// IsValidFormat always claims the input. The generic parser is registered
// last, so it only sees files no bank parser claimed.
func (p *CSVParser) IsValidFormat(preview []string) bool { return true }

// SkipHeaders locates the header row within the first lines and resolves
// column positions from it.
func (p *CSVParser) SkipHeaders(lines []string) int {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		fields := parser.SplitFields(lines[i])
		if p.resolveColumns(fields) {
			return i + 1
		}
	}
	return 0
}

// ShouldSkipLine drops blank lines only; the export carries no footers.
func (p *CSVParser) ShouldSkipLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// ParseLine converts one export row into a transaction record. When no
// header row resolved the date and amount columns, parsing fails fatally:
// without them every row of the file is garbage, so the whole import
// aborts instead of skipping rows one by one.
func (p *CSVParser) ParseLine(line string) (models.Transaction, error) {
	if !p.resolved {
		return models.Transaction{}, &parsererror.InvalidFormatError{
			Source:         SourceName,
			ExpectedFormat: ExpectedHeader,
			Msg:            "no header row with date and amount columns",
		}
	}

	fields := parser.SplitFields(line)
	if parser.CountNonBlank(fields) < 2 {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: SourceName, Field: "row", Value: line,
			Err: parser.ErrTooFewFields,
		}
	}
	if p.cols.date >= len(fields) || p.cols.amount >= len(fields) {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: SourceName, Field: "columns", Value: line,
			Err: parser.ErrUnresolvedColumns,
		}
	}

	date, fellBack := dateutils.ParseOrNow(fields[p.cols.date], dateLayouts)
	if fellBack {
		p.CountDateFallback()
		p.Logger().WithField("value", fields[p.cols.date]).
			Warn("Unparseable date defaulted to now")
	}

	rawAmount := fields[p.cols.amount]
	amount := moneyutils.Parse(rawAmount)
	if amount.IsZero() && strings.TrimSpace(rawAmount) != "" {
		p.CountZeroAmountFallback()
	}

	kind := p.field(fields, p.cols.kind)
	isExpense := moneyutils.IsNegative(rawAmount) ||
		parser.ContainsAny(kind, "расход", "списание", "оплата", "expense")

	note := p.field(fields, p.cols.note)

	category := p.field(fields, p.cols.category)
	if category == "" {
		category = p.engine.Infer(note, isExpense)
	}

	source := p.field(fields, p.cols.source)
	if source == "" {
		source = SourceName
	}

	id := p.field(fields, p.cols.id)
	if id == "" {
		id = models.DeriveID(source, date, amount, note)
	}

	tx := models.Transaction{
		ID:        id,
		Amount:    amount,
		Category:  category,
		Date:      date,
		Note:      note,
		Source:    source,
		IsExpense: isExpense,
	}
	tx.Normalize()
	return tx, nil
}

func (p *CSVParser) field(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}

// resolveColumns resolves column positions from a candidate header row.
// The row counts as a header only when both a date and an amount column
// are named.
func (p *CSVParser) resolveColumns(header []string) bool {
	date := parser.HeaderIndex(header, "дата", "дата операции", "date")
	amount := parser.HeaderIndex(header, "сумма", "сумма операции", "amount")
	if date < 0 || amount < 0 {
		return false
	}
	p.cols.date = date
	p.cols.amount = amount
	p.cols.id = parser.HeaderIndex(header, "id", "идентификатор")
	p.cols.category = parser.HeaderIndex(header, "категория", "category")
	p.cols.kind = parser.HeaderIndex(header, "тип", "тип операции", "type")
	p.cols.note = parser.HeaderIndex(header, "примечание", "описание", "note", "description")
	p.cols.source = parser.HeaderIndex(header, "источник", "банк", "source")
	p.resolved = true
	return true
}
