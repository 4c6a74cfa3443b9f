// Package pdftext turns the flat text extracted from PDF bank statements
// back into logical transaction blocks and pulls amounts, dates and
// descriptions out of them.
package pdftext

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Extractor extracts plain text from raw PDF bytes. The interface exists so
// tests can feed pre-extracted text without shipping binary fixtures.
type Extractor interface {
	ExtractText(data []byte) (string, error)
}

// PDFExtractor is the production Extractor backed by ledongthuc/pdf.
type PDFExtractor struct{}

// NewPDFExtractor creates the production extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText extracts the plain text of every page.
func (e *PDFExtractor) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", fmt.Errorf("error reading PDF text: %w", err)
	}
	return buf.String(), nil
}

// MockExtractor returns predefined text instead of reading a PDF.
type MockExtractor struct {
	Text string
	Err  error
}

// ExtractText returns the predefined text or error.
func (e *MockExtractor) ExtractText(data []byte) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	return e.Text, nil
}
