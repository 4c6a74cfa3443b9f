package alfaparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
	"kopilka/bank-import/internal/parser"
)

func TestParseLine(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})

	tx, err := p.ParseLine("15.03.2024;карта *1234;Оплата Пятёрочка Москва;-450,00")
	require.NoError(t, err)

	assert.Equal(t, "450", tx.Amount.String())
	assert.True(t, tx.IsExpense)
	assert.Equal(t, models.CategoryGroceries, tx.Category)
	assert.Equal(t, "Оплата Пятёрочка Москва", tx.Note)
	assert.Equal(t, SourceName, tx.Source)
}

func TestParseLine_ColumnOrderIrrelevant(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})

	// Same row content, shuffled columns: shape location still resolves it.
	tx, err := p.ParseLine("-450,00;Оплата Пятёрочка Москва;15.03.2024")
	require.NoError(t, err)
	assert.Equal(t, "450", tx.Amount.String())
	assert.Equal(t, 15, tx.Date.Day())
}

func TestParseLine_UnresolvedColumns(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	_, err := p.ParseLine("просто;текст;без данных")
	assert.ErrorIs(t, err, parser.ErrUnresolvedColumns)
}

func TestIsValidFormat(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	assert.True(t, p.IsValidFormat([]string{"Выписка АО «Альфа-Банк»"}))
	assert.False(t, p.IsValidFormat([]string{"Выписка ПАО Сбербанк"}))
}

func TestSkipHeaders(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	lines := []string{
		"Выписка АО «Альфа-Банк»",
		"Счёт: 40817810000000000000",
		"15.03.2024;карта *1234;Оплата Пятёрочка Москва;-450,00",
	}
	assert.Equal(t, 2, p.SkipHeaders(lines))
}
