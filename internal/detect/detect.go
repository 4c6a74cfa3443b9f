// Package detect picks the parser for an unknown statement input. CSV
// detection runs the registered bank parsers' format checks in a fixed
// priority order over a preview of the first lines; PDF detection uses
// filename and content hints.
package detect

import (
	"strings"

	"kopilka/bank-import/internal/alfaparser"
	"kopilka/bank-import/internal/gazpromparser"
	"kopilka/bank-import/internal/genericparser"
	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/ozonparser"
	"kopilka/bank-import/internal/parser"
	"kopilka/bank-import/internal/sberparser"
	"kopilka/bank-import/internal/tinkoffparser"
	"kopilka/bank-import/internal/vtbparser"
)

// PreviewLines is how many leading lines detection inspects.
const PreviewLines = 16

// Detector selects a parser for a statement input. Each detection
// constructs fresh parser instances: parsers carry per-run state (resolved
// columns, fallback counters) and must not be shared between imports.
type Detector struct {
	logger logging.Logger
}

// New constructs a Detector.
func New(logger logging.Logger) *Detector {
	return &Detector{logger: logger}
}

// csvConstructors is the CSV detection priority order. Banks with the most
// specific signatures come first; the generic parser claims everything and
// must stay last.
func (d *Detector) csvConstructors() []func(logging.Logger) parser.StatementParser {
	return []func(logging.Logger) parser.StatementParser{
		func(l logging.Logger) parser.StatementParser { return alfaparser.NewCSVParser(l) },
		func(l logging.Logger) parser.StatementParser { return gazpromparser.NewCSVParser(l) },
		func(l logging.Logger) parser.StatementParser { return ozonparser.NewCSVParser(l) },
		func(l logging.Logger) parser.StatementParser { return sberparser.NewCSVParser(l) },
		func(l logging.Logger) parser.StatementParser { return tinkoffparser.NewCSVParser(l) },
		func(l logging.Logger) parser.StatementParser { return vtbparser.NewCSVParser(l) },
		func(l logging.Logger) parser.StatementParser { return genericparser.NewCSVParser(l) },
	}
}

// DetectCSV returns the first registered parser that claims the preview.
// The generic parser claims everything, so detection always succeeds.
func (d *Detector) DetectCSV(lines []string) parser.StatementParser {
	preview := lines
	if len(preview) > PreviewLines {
		preview = preview[:PreviewLines]
	}
	for _, construct := range d.csvConstructors() {
		p := construct(d.logger)
		if p.IsValidFormat(preview) {
			d.logger.WithField("parser", p.Name()).Debug("CSV format detected")
			return p
		}
	}
	// Unreachable: generic claims everything.
	return genericparser.NewCSVParser(d.logger)
}

// DetectPDF picks the PDF parser by filename hints first, then content
// hints. T-Bank is the default: its layout is the most common input and
// its parser is the most tolerant of the three.
func (d *Detector) DetectPDF(filename, text string) parser.DocumentParser {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "ozon"), strings.Contains(name, "озон"):
		return ozonparser.NewPDFParser(d.logger)
	case strings.Contains(name, "sber"), strings.Contains(name, "сбер"):
		return sberparser.NewPDFParser(d.logger)
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "озон банк"), strings.Contains(lower, "ozon банк"):
		return ozonparser.NewPDFParser(d.logger)
	case strings.Contains(lower, "сбербанк"), strings.Contains(lower, "пао сбербанк"):
		return sberparser.NewPDFParser(d.logger)
	}
	return tinkoffparser.NewPDFParser(d.logger)
}

// IsPDF reports whether raw bytes look like a PDF document.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
