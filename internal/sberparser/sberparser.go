// Package sberparser parses Sberbank statement exports, both the CSV format
// and the PDF text layout.
package sberparser

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

// SourceName is the record source label for Sberbank statements.
const SourceName = "Сбер"

// Native statement categories mapped to application categories. Sberbank
// exposes a category column, so the keyword engine is only the fallback.
var nativeCategories = map[string]string{
	"супермаркеты":        models.CategoryGroceries,
	"рестораны и кафе":    models.CategoryRestaurants,
	"рестораны":           models.CategoryRestaurants,
	"фастфуд":             models.CategoryRestaurants,
	"транспорт":           models.CategoryTransport,
	"автомобиль":          models.CategoryTransport,
	"здоровье и красота":  models.CategoryHealth,
	"аптеки":              models.CategoryHealth,
	"связь, интернет, тв": models.CategoryCommunication,
	"связь":               models.CategoryCommunication,
	"одежда и аксессуары": models.CategoryClothes,
	"всё для дома":        models.CategoryHome,
	"все для дома":        models.CategoryHome,
	"коммунальные платежи": models.CategoryHome,
	"отдых и развлечения": models.CategoryEntertainment,
	"путешествия":         models.CategoryTravel,
	"образование":         models.CategoryEducation,
	"перевод с карты":     models.CategoryTransfers,
	"перевод на карту":    models.CategoryTransfers,
	"внутренний перевод":  models.CategoryTransfers,
	"выдача наличных":     models.CategoryCash,
	"зачисления":          models.CategoryIncome,
	"зарплата":            models.CategorySalary,
	"прочие операции":     models.CategoryOther,
	"прочие расходы":      models.CategoryOther,
}

var dateLayouts = []string{
	dateutils.LayoutRuTime,
	dateutils.LayoutRuShortTime,
	dateutils.LayoutRu,
}

// Column positions in the Sberbank export. The schema is stable, so the
// header row resolves columns by name; these are the fallback positions when
// an export arrives with the header stripped.
type columns struct {
	date     int
	amount   int
	category int
	desc     int
}

var defaultColumns = columns{date: 0, amount: 4, category: 5, desc: 7}

// CSVParser parses the Sberbank CSV export.
type CSVParser struct {
	parser.BaseParser
	engine *categorizer.Engine
	cols   columns
}

// NewCSVParser constructs a Sberbank CSV parser for one import run.
func NewCSVParser(logger logging.Logger) *CSVParser {
	return &CSVParser{
		BaseParser: parser.NewBaseParser(logger),
		engine:     categorizer.NewEngine(categorizer.SberRules, logger),
		cols:       defaultColumns,
	}
}

// Name returns the bank display name.
func (p *CSVParser) Name() string { return SourceName }

// IsValidFormat recognizes Sberbank exports by bank name tokens or by the
// co-occurrence of the schema's date, amount and category header tokens.
func (p *CSVParser) IsValidFormat(preview []string) bool {
	joined := strings.Join(preview, "\n")
	if parser.ContainsAny(joined, "сбербанк", "sberbank", "сбер банк", "sber") {
		return true
	}
	for _, line := range preview {
		if p.isHeaderRow(parser.SplitFields(line)) {
			return true
		}
	}
	return false
}

// SkipHeaders locates the header row within the first lines, resolves the
// column positions from it and returns how many lines to skip.
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

// ShouldSkipLine drops blank lines and statement footers.
func (p *CSVParser) ShouldSkipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	return parser.ContainsAny(trimmed, "итого", "остаток на", "баланс на")
}

// ParseLine converts one Sberbank CSV row into a transaction record.
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
	// "Дата операции" (never a bare "Дата") keeps this from claiming the
	// application's own export header; the T-Bank schema shares these
	// columns but always carries cashback/MCC markers.
	hasDate := parser.HeaderIndex(fields, "дата операции", "дата списания") >= 0
	hasAmount := parser.HeaderIndex(fields,
		"сумма в валюте счёта", "сумма в валюте счета", "сумма операции", "сумма", "amount") >= 0
	hasCategory := parser.HeaderIndex(fields, "категория", "category") >= 0
	hasTBankMarkers := parser.ContainsAny(strings.Join(fields, ";"), "кэшбэк", "mcc", "валюта операции")
	return hasDate && hasAmount && hasCategory && !hasTBankMarkers
}

func (p *CSVParser) resolveColumns(header []string) {
	if i := parser.HeaderIndex(header, "дата операции", "дата", "date"); i >= 0 {
		p.cols.date = i
	}
	if i := parser.HeaderIndex(header,
		"сумма в валюте счёта", "сумма в валюте счета", "сумма операции", "сумма", "amount"); i >= 0 {
		p.cols.amount = i
	}
	if i := parser.HeaderIndex(header, "категория", "category"); i >= 0 {
		p.cols.category = i
	}
	if i := parser.HeaderIndex(header, "описание", "имя продавца", "примечание", "description"); i >= 0 {
		p.cols.desc = i
	}
}
