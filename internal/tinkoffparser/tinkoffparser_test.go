package tinkoffparser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
)

const headerLine = "Дата операции;Дата платежа;Номер карты;Статус;Сумма операции;Валюта операции;" +
	"Сумма платежа;Валюта платежа;Кэшбэк;Категория;MCC;Описание"

const dataLine = "15.03.2024 12:30:45;16.03.2024;*1234;OK;-350,00;RUB;-350,00;RUB;3;Супермаркеты;5411;Магнит"

func TestParseLine(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	require.Equal(t, 1, p.SkipHeaders([]string{headerLine, dataLine}))

	tx, err := p.ParseLine(dataLine)
	require.NoError(t, err)

	assert.Equal(t, "350", tx.Amount.String())
	assert.True(t, tx.IsExpense)
	assert.Equal(t, models.CategoryGroceries, tx.Category)
	assert.Equal(t, "Магнит", tx.Note)
	assert.Equal(t, SourceName, tx.Source)
	assert.Equal(t, time.Date(2024, 3, 15, 12, 30, 45, 0, time.UTC), tx.Date)
}

func TestParseLine_IncomeRow(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	require.Equal(t, 1, p.SkipHeaders([]string{headerLine}))

	tx, err := p.ParseLine(
		"20.03.2024 09:00:00;20.03.2024;*1234;OK;50000,00;RUB;50000,00;RUB;0;Зарплата;0000;Аванс за март")
	require.NoError(t, err)
	assert.False(t, tx.IsExpense)
	assert.Equal(t, models.CategorySalary, tx.Category)
}

func TestShouldSkipLine_FailedStatus(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	require.Equal(t, 1, p.SkipHeaders([]string{headerLine}))

	failed := "15.03.2024 12:30:45;16.03.2024;*1234;FAILED;-350,00;RUB;-350,00;RUB;0;Супермаркеты;5411;Магнит"
	declined := "15.03.2024 12:30:45;16.03.2024;*1234;ОТКЛОНЕНА;-350,00;RUB;-350,00;RUB;0;Супермаркеты;5411;Магнит"
	assert.True(t, p.ShouldSkipLine(failed))
	assert.True(t, p.ShouldSkipLine(declined))
	assert.False(t, p.ShouldSkipLine(dataLine))
}

func TestIsValidFormat(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	assert.True(t, p.IsValidFormat([]string{"Справка АО «Тинькофф Банк»"}))
	assert.True(t, p.IsValidFormat([]string{headerLine}))
	assert.False(t, p.IsValidFormat([]string{"Выписка ПАО Сбербанк", "15.03.2024;-500,00"}))
}

func TestPDFParser_Operations(t *testing.T) {
	p := NewPDFParser(&logging.MockLogger{})

	text := "Справка по операциям\n" +
		"15.03.2024 Магнит Москва\n" +
		"Супермаркеты\n" +
		"Сумма операции\n" +
		"350,00\n" +
		"Итого\n"

	txs, err := p.ParseText(text)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "350", txs[0].Amount.String())
	assert.True(t, txs[0].IsExpense)
	assert.Equal(t, models.CategoryGroceries, txs[0].Category)
	assert.Equal(t, SourceName, txs[0].Source)
}

func TestPDFParser_StatementOfFunds_PeriodFilter(t *testing.T) {
	p := NewPDFParser(&logging.MockLogger{})

	text := "Справка о движении средств\n" +
		"за период с 01.03.2024 по 31.03.2024\n" +
		"Дата и время операции\n" +
		"15.03.2024 Оплата Магнит\n" +
		"350,00\n" +
		"15.04.2024 Оплата Лента\n" +
		"900,00\n"

	txs, err := p.ParseText(text)
	require.NoError(t, err)
	require.Len(t, txs, 1, "the April operation falls outside the declared period")
	assert.Equal(t, "350", txs[0].Amount.String())
	assert.Equal(t, 15, txs[0].Date.Day())
	assert.Equal(t, time.March, txs[0].Date.Month())
}

func TestPDFParser_StatementOfFunds_NoPeriod(t *testing.T) {
	p := NewPDFParser(&logging.MockLogger{})

	text := "Справка о движении средств\n" +
		"Дата и время операции\n" +
		"15.03.2024 Оплата Магнит\n" +
		"350,00\n"

	txs, err := p.ParseText(text)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "missing period bounds disable the filter, not the parse")
}
