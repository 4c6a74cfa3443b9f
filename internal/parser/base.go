package parser

import (
	"kopilka/bank-import/internal/logging"
)

// BaseParser carries the logger and fallback counters shared by all parser
// implementations. Parsers embed it:
//
//	type Parser struct {
//		parser.BaseParser
//		// bank-specific pattern tables
//	}
type BaseParser struct {
	logger    logging.Logger
	fallbacks Fallbacks
}

// NewBaseParser creates a BaseParser ready for embedding. A nil logger is
// replaced with a default one.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return BaseParser{logger: logger}
}

// Logger returns the parser's logger.
func (b *BaseParser) Logger() logging.Logger {
	return b.logger
}

// SetLogger replaces the parser's logger. A nil logger is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// Fallbacks returns the fallback counters accumulated so far.
func (b *BaseParser) Fallbacks() Fallbacks {
	return b.fallbacks
}

// CountDateFallback records one unparseable date defaulted to "now".
func (b *BaseParser) CountDateFallback() {
	b.fallbacks.DateNow++
}

// CountZeroAmountFallback records one unparseable amount defaulted to zero.
func (b *BaseParser) CountZeroAmountFallback() {
	b.fallbacks.ZeroAmount++
}
