package sberparser

import (
	"strings"
	"time"

	"kopilka/bank-import/internal/categorizer"
	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
	"kopilka/bank-import/internal/parser"
	"kopilka/bank-import/internal/pdftext"
)

// Boilerplate markers of the Sberbank PDF layout: page headers, balance and
// total footers. Matching lines never reach a transaction block.
var pdfSkipMarkers = []string{
	"выписка по счёту",
	"выписка по счету",
	"дата формирования",
	"остаток на",
	"итого по операциям",
	"всего списаний",
	"всего пополнений",
	"доступно на",
	"страница",
	"пао сбербанк",
	"продолжение на следующей странице",
}

// Category labels the Sberbank PDF prints verbatim under each operation.
// Ordered; when a block carries several labels the first one listed wins.
var pdfCategoryLabels = []categoryLabel{
	{"супермаркеты", models.CategoryGroceries},
	{"рестораны и кафе", models.CategoryRestaurants},
	{"транспорт", models.CategoryTransport},
	{"здоровье и красота", models.CategoryHealth},
	{"аптеки", models.CategoryHealth},
	{"одежда и аксессуары", models.CategoryClothes},
	{"коммунальные платежи", models.CategoryHome},
	{"отдых и развлечения", models.CategoryEntertainment},
	{"перевод с карты", models.CategoryTransfers},
	{"выдача наличных", models.CategoryCash},
	{"прочие операции", models.CategoryOther},
}

type categoryLabel struct {
	label    string
	category string
}

// PDFParser parses the text extracted from a Sberbank PDF statement.
type PDFParser struct {
	parser.BaseParser
	engine *categorizer.Engine
	cfg    pdftext.Config
}

// NewPDFParser constructs a Sberbank PDF parser for one import run.
func NewPDFParser(logger logging.Logger) *PDFParser {
	return &PDFParser{
		BaseParser: parser.NewBaseParser(logger),
		engine:     categorizer.NewEngine(categorizer.SberRules, logger),
		cfg: pdftext.Config{
			Lookahead:   12,
			SkipMarkers: pdfSkipMarkers,
			DateLayouts: dateLayouts,
		},
	}
}

// Name returns the bank display name.
func (p *PDFParser) Name() string { return SourceName }

// ParseText segments the extracted statement text into blocks and converts
// each block with a successful amount extraction into a record. Blocks that
// exhaust their lookahead without an amount are dropped silently: precision
// over recall, given how noisy PDF text extraction is.
func (p *PDFParser) ParseText(text string) ([]models.Transaction, error) {
	lines := strings.Split(text, "\n")
	blocks := pdftext.Segment(lines, p.cfg)

	var transactions []models.Transaction
	dropped := 0
	for _, block := range blocks {
		amount, rawAmount, ok := pdftext.ExtractAmount(block)
		if !ok {
			dropped++
			continue
		}

		blockText := block.Joined()
		isExpense := pdftext.InferExpense(blockText, rawAmount)

		date := block.Date
		if date.IsZero() {
			p.CountDateFallback()
			date = time.Now()
		}

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
	).Info("Parsed Sberbank PDF statement")
	return transactions, nil
}

// pdfCategory matches the verbatim category labels the statement prints.
func pdfCategory(blockText string) string {
	lower := strings.ToLower(blockText)
	for _, cl := range pdfCategoryLabels {
		if strings.Contains(lower, cl.label) {
			return cl.category
		}
	}
	return ""
}

// cleanNote strips the extracted amount and the amount label from the
// description so the note reads as the operation text alone.
func cleanNote(desc, rawAmount string) string {
	cleaned := strings.Replace(desc, rawAmount, "", 1)
	lower := strings.ToLower(cleaned)
	if i := strings.Index(lower, pdftext.AmountLabel); i >= 0 {
		cleaned = cleaned[:i] + cleaned[i+len(pdftext.AmountLabel):]
	}
	return strings.Join(strings.Fields(cleaned), " ")
}
