package pdftext

import (
	"strings"

	"github.com/shopspring/decimal"

	"kopilka/bank-import/internal/moneyutils"
)

// AmountLabel is the line label that announces the operation amount on the
// following line in most Russian PDF statements.
const AmountLabel = "сумма операции"

// ExtractAmount locates the operation amount inside a block. Strategies run
// in strict priority order and the first one yielding a value greater than
// zero wins; lower-priority strategies are not consulted after that:
//
//  1. a line carrying the "Сумма операции" label, amount on the next line
//  2. any standalone line that is an amount and nothing else
//  3. the first amount-shaped substring in the joined block text
//
// The returned raw string preserves the original sign characters. ok is
// false when every strategy fails; the caller drops such blocks silently.
func ExtractAmount(b Block) (value decimal.Decimal, raw string, ok bool) {
	if value, raw, ok = labeledAmount(b); ok {
		return value, raw, true
	}
	if value, raw, ok = standaloneAmount(b); ok {
		return value, raw, true
	}
	return joinedTextAmount(b)
}

func labeledAmount(b Block) (decimal.Decimal, string, bool) {
	for i, line := range b.Lines {
		if !strings.Contains(strings.ToLower(line), AmountLabel) {
			continue
		}
		if i+1 >= len(b.Lines) {
			return decimal.Zero, "", false
		}
		next := strings.TrimSpace(b.Lines[i+1])
		value := moneyutils.Parse(next)
		if value.Abs().IsPositive() {
			return value.Abs(), next, true
		}
	}
	return decimal.Zero, "", false
}

func standaloneAmount(b Block) (decimal.Decimal, string, bool) {
	// The first line holds the anchor date; skip it so a bare date is never
	// misread as an amount.
	for _, line := range b.Lines[1:] {
		trimmed := strings.TrimSpace(line)
		if !moneyutils.LooksLikeAmount(trimmed) {
			continue
		}
		value := moneyutils.Parse(trimmed)
		if value.Abs().IsPositive() {
			return value.Abs(), trimmed, true
		}
	}
	return decimal.Zero, "", false
}

func joinedTextAmount(b Block) (decimal.Decimal, string, bool) {
	text := b.Joined()
	if dateRaw := b.DateRaw; dateRaw != "" {
		text = strings.Replace(text, dateRaw, "", 1)
	}
	raw := moneyutils.FindAmount(text)
	if raw == "" {
		return decimal.Zero, "", false
	}
	value := moneyutils.Parse(raw)
	if !value.Abs().IsPositive() {
		return decimal.Zero, "", false
	}
	return value.Abs(), raw, true
}

// Keyword overrides applied before the sign character. Inbound transfer
// phrasing and refunds force income; payment phrasing forces expense.
var (
	incomeKeywords  = []string{"зачисление", "поступление", "возврат", "перевод от"}
	expenseKeywords = []string{"оплата"}
)

// InferExpense decides the direction of a block. Keyword overrides win over
// the leading sign character; an amount with no sign at all defaults to
// expense.
func InferExpense(blockText, amountRaw string) bool {
	lower := strings.ToLower(blockText)
	for _, kw := range incomeKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	for _, kw := range expenseKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	trimmed := strings.TrimSpace(amountRaw)
	if strings.HasPrefix(trimmed, "+") {
		return false
	}
	return true
}
