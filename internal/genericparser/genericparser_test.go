package genericparser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/parsererror"
)

func TestParseLine(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	require.Equal(t, 1, p.SkipHeaders([]string{"ID,Дата,Категория,Сумма,Тип,Примечание,Источник"}))

	tx, err := p.ParseLine("1,2024-01-10,Еда,-1200.50,Расход,Обед,Карта")
	require.NoError(t, err)

	assert.Equal(t, "1200.5", tx.Amount.String())
	assert.True(t, tx.IsExpense)
	assert.Equal(t, "Еда", tx.Category)
	assert.Equal(t, "Обед", tx.Note)
	assert.Equal(t, "Карта", tx.Source)
	assert.Equal(t, "1", tx.ID, "the file's own ID is preserved for round-trip dedup")
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), tx.Date)
}

func TestParseLine_KindDrivesDirection(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	require.Equal(t, 1, p.SkipHeaders([]string{"ID,Дата,Категория,Сумма,Тип,Примечание,Источник"}))

	tx, err := p.ParseLine("2,2024-01-11,Зарплата,45000.00,Доход,Аванс,Работа")
	require.NoError(t, err)
	assert.False(t, tx.IsExpense)

	tx, err = p.ParseLine("3,2024-01-12,Другое,300.00,Расход,Такси,Карта")
	require.NoError(t, err)
	assert.True(t, tx.IsExpense, "positive amount with expense kind is still an expense")
}

func TestParseLine_MissingIDDerived(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	require.Equal(t, 1, p.SkipHeaders([]string{"Дата,Сумма,Примечание"}))

	a, err := p.ParseLine("2024-01-10,-100.00,Кофейня")
	require.NoError(t, err)
	b, err := p.ParseLine("2024-01-10,-100.00,Кофейня")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, a.ID, b.ID)
}

func TestParseLine_UnresolvedHeaderIsFatal(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	assert.Equal(t, 0, p.SkipHeaders([]string{"foo,bar,baz", "1,2,3"}))

	_, err := p.ParseLine("1,2,3")
	var formatErr *parsererror.InvalidFormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestIsValidFormat_AlwaysClaims(t *testing.T) {
	p := NewCSVParser(&logging.MockLogger{})
	assert.True(t, p.IsValidFormat([]string{"что угодно"}))
	assert.True(t, p.IsValidFormat(nil))
}
