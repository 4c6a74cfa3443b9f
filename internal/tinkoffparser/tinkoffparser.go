// Package tinkoffparser parses T-Bank (ex-Tinkoff) statement exports: the
// CSV format, the PDF operations statement and the PDF "Справка о движении
// средств" layout.
package tinkoffparser

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

// SourceName is the record source label for T-Bank statements.
const SourceName = "Т-Банк"

var nativeCategories = map[string]string{
	"супермаркеты":    models.CategoryGroceries,
	"рестораны":       models.CategoryRestaurants,
	"фастфуд":         models.CategoryRestaurants,
	"транспорт":       models.CategoryTransport,
	"такси":           models.CategoryTransport,
	"аптеки":          models.CategoryHealth,
	"медицина":        models.CategoryHealth,
	"связь":           models.CategoryCommunication,
	"одежда и обувь":  models.CategoryClothes,
	"дом и ремонт":    models.CategoryHome,
	"жкх":             models.CategoryHome,
	"развлечения":     models.CategoryEntertainment,
	"кино":            models.CategoryEntertainment,
	"путешествия":     models.CategoryTravel,
	"образование":     models.CategoryEducation,
	"животные":        models.CategoryPets,
	"переводы":        models.CategoryTransfers,
	"наличные":        models.CategoryCash,
	"кэшбэк":          models.CategoryCashback,
	"зарплата":        models.CategorySalary,
	"другое":          models.CategoryOther,
	"прочие операции": models.CategoryOther,
}

var dateLayouts = []string{
	dateutils.LayoutRuTime,
	dateutils.LayoutRuShortTime,
	dateutils.LayoutRu,
}

type columns struct {
	date     int
	status   int
	amount   int
	category int
	desc     int
}

// Fallback positions for headerless exports, matching the published schema:
// operation date, payment date, card, status, operation amount, currency,
// payment amount, payment currency, cashback, category, MCC, description.
var defaultColumns = columns{date: 0, status: 3, amount: 4, category: 9, desc: 11}

// CSVParser parses the T-Bank CSV export.
type CSVParser struct {
	parser.BaseParser
	engine *categorizer.Engine
	cols   columns
}

// NewCSVParser constructs a T-Bank CSV parser for one import run.
func NewCSVParser(logger logging.Logger) *CSVParser {
	return &CSVParser{
		BaseParser: parser.NewBaseParser(logger),
		engine:     categorizer.NewEngine(categorizer.TinkoffRules, logger),
		cols:       defaultColumns,
	}
}

// Name returns the bank display name.
func (p *CSVParser) Name() string { return SourceName }

// IsValidFormat recognizes T-Bank exports by bank name tokens or the
// characteristic header shape.
func (p *CSVParser) IsValidFormat(preview []string) bool {
	joined := strings.Join(preview, "\n")
	if parser.ContainsAny(joined, "тинькофф", "tinkoff", "т-банк", "tbank", "t-bank") {
		return true
	}
	for _, line := range preview {
		if p.isHeaderRow(parser.SplitFields(line)) {
			return true
		}
	}
	return false
}

// SkipHeaders locates the header row and resolves column positions.
func (p *CSVParser) SkipHeaders(lines []string) int {
	limit := len(lines)
	if limit > 5 {
		limit = 5
	}
	for i := 0; i < limit; i++ {
		fields := parser.SplitFields(lines[i])
		if p.isHeaderRow(fields) {
			p.resolveColumns(fields)
			return i + 1
		}
	}
	return 0
}

// ShouldSkipLine drops blanks, footers and rows for failed operations.
func (p *CSVParser) ShouldSkipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	if parser.ContainsAny(trimmed, "итого", "остаток на") {
		return true
	}
	fields := parser.SplitFields(trimmed)
	if p.cols.status < len(fields) {
		status := strings.ToUpper(strings.TrimSpace(fields[p.cols.status]))
		if status == "FAILED" || status == "ОТКЛОНЕНА" {
			return true
		}
	}
	return false
}

// ParseLine converts one T-Bank CSV row into a transaction record.
func (p *CSVParser) ParseLine(line string) (models.Transaction, error) {
	fields := parser.SplitFields(line)
	if parser.CountNonBlank(fields) < 3 {
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

	isExpense := moneyutils.IsNegative(rawAmount) || parser.HasDebitKeyword(fields)

	note := ""
	if p.cols.desc >= 0 && p.cols.desc < len(fields) {
		note = strings.TrimSpace(fields[p.cols.desc])
	}

	category := ""
	if p.cols.category >= 0 && p.cols.category < len(fields) {
		category = nativeCategories[strings.ToLower(strings.TrimSpace(fields[p.cols.category]))]
	}
	if category == "" {
		category = p.engine.Infer(note, isExpense)
	}

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

func (p *CSVParser) isHeaderRow(fields []string) bool {
	hasDate := parser.HeaderIndex(fields, "дата операции", "дата", "date") >= 0
	hasAmount := parser.HeaderIndex(fields, "сумма операции", "сумма платежа", "сумма", "amount") >= 0
	hasDesc := parser.HeaderIndex(fields, "описание", "description") >= 0
	return hasDate && hasAmount && hasDesc
}

func (p *CSVParser) resolveColumns(header []string) {
	if i := parser.HeaderIndex(header, "дата операции", "дата", "date"); i >= 0 {
		p.cols.date = i
	}
	if i := parser.HeaderIndex(header, "статус", "status"); i >= 0 {
		p.cols.status = i
	}
	if i := parser.HeaderIndex(header, "сумма операции", "сумма платежа", "сумма", "amount"); i >= 0 {
		p.cols.amount = i
	}
	if i := parser.HeaderIndex(header, "категория", "category"); i >= 0 {
		p.cols.category = i
	}
	if i := parser.HeaderIndex(header, "описание", "description"); i >= 0 {
		p.cols.desc = i
	}
}
