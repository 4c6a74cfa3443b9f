package gazpromparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
)

func TestParseLine(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})

	tx, err := p.ParseLine("15.03.2024;Оплата АЗС Газпромнефть;-1 800,00")
	require.NoError(t, err)

	assert.Equal(t, "1800", tx.Amount.String())
	assert.True(t, tx.IsExpense)
	assert.Equal(t, models.CategoryTransport, tx.Category)
	assert.Equal(t, SourceName, tx.Source)
}

func TestParseLine_DebitKeywordWithoutSign(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})

	tx, err := p.ParseLine("15.03.2024;Списание со счёта оплата услуг;1 800,00")
	require.NoError(t, err)
	assert.True(t, tx.IsExpense, "the debit keyword marks the row even with an unsigned amount")
}

func TestIsValidFormat(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	assert.True(t, p.IsValidFormat([]string{"Банк ГПБ (АО), Газпромбанк"}))
	assert.False(t, p.IsValidFormat([]string{"Выписка Банк ВТБ (ПАО)"}))
}

func TestShouldSkipLine(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	assert.True(t, p.ShouldSkipLine("Обороты по счету за период"))
	assert.True(t, p.ShouldSkipLine(""))
	assert.False(t, p.ShouldSkipLine("15.03.2024;Оплата;-100,00"))
}
