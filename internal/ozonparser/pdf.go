package ozonparser

import (
	"strings"
	"time"

	"kopilka/bank-import/internal/categorizer"
	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
	"kopilka/bank-import/internal/parser"
	"kopilka/bank-import/internal/pdftext"
)

var pdfSkipMarkers = []string{
	"выписка по счёту",
	"выписка по счету",
	"остаток на",
	"итого",
	"обороты за период",
	"страница",
	"ооо «озон банк»",
	"лицензия банка россии",
}

// Ordered; when a block carries several labels the first one listed wins.
var pdfCategoryLabels = []categoryLabel{
	{"покупка ozon", models.CategoryGroceries},
	{"супермаркеты", models.CategoryGroceries},
	{"кафе и рестораны", models.CategoryRestaurants},
	{"транспорт", models.CategoryTransport},
	{"снятие наличных", models.CategoryCash},
	{"кешбэк", models.CategoryCashback},
	{"кэшбэк", models.CategoryCashback},
	{"перевод", models.CategoryTransfers},
	{"прочие операции", models.CategoryOther},
}

type categoryLabel struct {
	label    string
	category string
}

// PDFParser parses text extracted from Ozon Bank PDF statements.
type PDFParser struct {
	parser.BaseParser
	engine *categorizer.Engine
	cfg    pdftext.Config
}

// NewPDFParser constructs an Ozon PDF parser for one import run.
func NewPDFParser(logger logging.Logger) *PDFParser {
	return &PDFParser{
		BaseParser: parser.NewBaseParser(logger),
		engine:     categorizer.NewEngine(categorizer.OzonRules, logger),
		cfg: pdftext.Config{
			Lookahead:   12,
			SkipMarkers: pdfSkipMarkers,
			DateLayouts: dateLayouts,
		},
	}
}

// Name returns the bank display name.
func (p *PDFParser) Name() string { return SourceName }

// ParseText segments the extracted PDF text into transaction blocks and
// converts each into a record.
func (p *PDFParser) ParseText(text string) ([]models.Transaction, error) {
	blocks := pdftext.Segment(strings.Split(text, "\n"), p.cfg)

	var transactions []models.Transaction
	dropped := 0
	for _, block := range blocks {
		amount, rawAmount, ok := pdftext.ExtractAmount(block)
		if !ok {
			dropped++
			continue
		}

		date := block.Date
		if date.IsZero() {
			p.CountDateFallback()
			date = time.Now()
		}

		blockText := block.Joined()
		isExpense := pdftext.InferExpense(blockText, rawAmount)

		category := pdfCategory(blockText)
		note := cleanNote(block.Description(), rawAmount)
		if category == "" {
			category = p.engine.Infer(note, isExpense)
		}

		tx := models.Transaction{
			ID:        models.MakeID(SourceName, time.Now()),
			Amount:    amount,
			Category:  category,
			Date:      date,
			Note:      note,
			Source:    SourceName,
			IsExpense: isExpense,
		}
		tx.Normalize()
		transactions = append(transactions, tx)
	}

	p.Logger().WithFields(
		logging.Field{Key: "found", Value: len(transactions)},
		logging.Field{Key: "dropped", Value: dropped},
	).Info("Parsed Ozon PDF statement")
	return transactions, nil
}

func pdfCategory(blockText string) string {
	lower := strings.ToLower(blockText)
	for _, cl := range pdfCategoryLabels {
		if strings.Contains(lower, cl.label) {
			return cl.category
		}
	}
	return ""
}

func cleanNote(desc, rawAmount string) string {
	cleaned := strings.Replace(desc, rawAmount, "", 1)
	lower := strings.ToLower(cleaned)
	if i := strings.Index(lower, pdftext.AmountLabel); i >= 0 {
		cleaned = cleaned[:i] + cleaned[i+len(pdftext.AmountLabel):]
	}
	return strings.Join(strings.Fields(cleaned), " ")
}
