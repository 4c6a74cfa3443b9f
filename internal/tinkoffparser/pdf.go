package tinkoffparser

import (
	"regexp"
	"strings"
	"time"

	"kopilka/bank-import/internal/categorizer"
	"kopilka/bank-import/internal/dateutils"
	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
	"kopilka/bank-import/internal/parser"
	"kopilka/bank-import/internal/pdftext"
)

var pdfSkipMarkers = []string{
	"справка по операциям",
	"дата формирования",
	"баланс на",
	"итого",
	"пополнения:",
	"расходы:",
	"страница",
	"ао «тбанк»",
	"ао «тинькофф банк»",
	"лицензия цб рф",
}

// Ordered; when a block carries several labels the first one listed wins.
var pdfCategoryLabels = []categoryLabel{
	{"супермаркеты", models.CategoryGroceries},
	{"рестораны", models.CategoryRestaurants},
	{"фастфуд", models.CategoryRestaurants},
	{"транспорт", models.CategoryTransport},
	{"аптеки", models.CategoryHealth},
	{"развлечения", models.CategoryEntertainment},
	{"переводы", models.CategoryTransfers},
	{"наличные", models.CategoryCash},
	{"прочие операции", models.CategoryOther},
}

type categoryLabel struct {
	label    string
	category string
}

// Anchor and period markers of the "Справка о движении средств" layout,
// which is a different document from the regular operations statement and
// needs a stricter parse.
const (
	statementOfFundsMarker = "справка о движении средств"
	fundsTableAnchor       = "дата и время операции"
)

var periodRe = regexp.MustCompile(`за период с (\d{2}\.\d{2}\.\d{4}) по (\d{2}\.\d{2}\.\d{4})`)

// PDFParser parses text extracted from T-Bank PDF statements. It recognizes
// both the regular operations statement and the "Справка о движении средств"
// layout, which carries a table-header anchor and declared period bounds.
type PDFParser struct {
	parser.BaseParser
	engine *categorizer.Engine
	cfg    pdftext.Config
}

// NewPDFParser constructs a T-Bank PDF parser for one import run.
func NewPDFParser(logger logging.Logger) *PDFParser {
	return &PDFParser{
		BaseParser: parser.NewBaseParser(logger),
		engine:     categorizer.NewEngine(categorizer.TinkoffRules, logger),
		cfg: pdftext.Config{
			Lookahead:   15,
			SkipMarkers: pdfSkipMarkers,
			DateLayouts: dateLayouts,
		},
	}
}

// Name returns the bank display name.
func (p *PDFParser) Name() string { return SourceName }

// ParseText dispatches on the document type and parses accordingly.
func (p *PDFParser) ParseText(text string) ([]models.Transaction, error) {
	lines := strings.Split(text, "\n")

	if strings.Contains(strings.ToLower(text), statementOfFundsMarker) {
		return p.parseStatementOfFunds(lines, text)
	}
	return p.parseOperations(lines), nil
}

// parseOperations handles the regular operations statement.
func (p *PDFParser) parseOperations(lines []string) []models.Transaction {
	blocks := pdftext.Segment(lines, p.cfg)
	transactions, dropped := p.convertBlocks(blocks, nil)

	p.Logger().WithFields(
		logging.Field{Key: "found", Value: len(transactions)},
		logging.Field{Key: "dropped", Value: dropped},
	).Info("Parsed T-Bank PDF statement")
	return transactions
}

// parseStatementOfFunds handles the "Справка о движении средств" layout:
// segmentation starts only below the table-header anchor, and any parsed
// transaction dated outside the declared statement period is discarded.
func (p *PDFParser) parseStatementOfFunds(lines []string, text string) ([]models.Transaction, error) {
	start := 0
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), fundsTableAnchor) {
			start = i + 1
			break
		}
	}

	var bounds *periodBounds
	if m := periodRe.FindStringSubmatch(strings.ToLower(text)); m != nil {
		from, okFrom := dateutils.Parse(m[1], []string{dateutils.LayoutRu})
		to, okTo := dateutils.Parse(m[2], []string{dateutils.LayoutRu})
		if okFrom && okTo {
			bounds = &periodBounds{from: from, to: to.Add(24*time.Hour - time.Nanosecond)}
		}
	}

	blocks := pdftext.Segment(lines[start:], p.cfg)
	transactions, dropped := p.convertBlocks(blocks, bounds)

	p.Logger().WithFields(
		logging.Field{Key: "found", Value: len(transactions)},
		logging.Field{Key: "dropped", Value: dropped},
		logging.Field{Key: "period_bounded", Value: bounds != nil},
	).Info("Parsed T-Bank statement of funds")
	return transactions, nil
}

type periodBounds struct {
	from, to time.Time
}

func (b *periodBounds) contains(t time.Time) bool {
	return !t.Before(b.from) && !t.After(b.to)
}

func (p *PDFParser) convertBlocks(blocks []pdftext.Block, bounds *periodBounds) ([]models.Transaction, int) {
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
		if bounds != nil && !bounds.contains(date) {
			dropped++
			continue
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
	return transactions, dropped
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
