package ozonparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
)

func TestParseLine(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})

	tx, err := p.ParseLine("15.03.2024 12:30;Покупка OZON Маркетплейс;-1 250,00")
	require.NoError(t, err)

	assert.Equal(t, "1250", tx.Amount.String())
	assert.True(t, tx.IsExpense)
	assert.Equal(t, models.CategoryClothes, tx.Category)
	assert.Equal(t, SourceName, tx.Source)
}

func TestIsValidFormat(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	assert.True(t, p.IsValidFormat([]string{"Выписка Озон Банк (ООО)"}))
	assert.False(t, p.IsValidFormat([]string{"Выписка ПАО Сбербанк"}))
}

func TestPDFParser_ParseText(t *testing.T) {
	p := NewPDFParser(&logging.MockLogger{})

	text := "ООО «Озон Банк»\n" +
		"Выписка по счёту\n" +
		"15.03.2024 Покупка OZON Маркетплейс\n" +
		"Сумма операции\n" +
		"1 250,00\n" +
		"Обороты за период\n"

	txs, err := p.ParseText(text)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "1250", txs[0].Amount.String())
	assert.True(t, txs[0].IsExpense)
	assert.Equal(t, SourceName, txs[0].Source)
}
