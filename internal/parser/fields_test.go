package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', DetectDelimiter("a;b;c"))
	assert.Equal(t, '\t', DetectDelimiter("a\tb\tc"))
	assert.Equal(t, ',', DetectDelimiter("a,b,c"))
	// Semicolon wins even when a comma is present (decimal commas in amounts).
	assert.Equal(t, ';', DetectDelimiter("15.03.2024;-500,00;Пятёрочка"))
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"semicolon", "15.03.2024;-500,00;Пятёрочка", []string{"15.03.2024", "-500,00", "Пятёрочка"}},
		{"tab", "15.03.2024\t-500,00\tОплата", []string{"15.03.2024", "-500,00", "Оплата"}},
		{"comma", "15.03.2024,-500.00,Оплата", []string{"15.03.2024", "-500.00", "Оплата"}},
		{"quoted field", `15.03.2024;"Оплата; покупка";-500,00`, []string{"15.03.2024", "Оплата; покупка", "-500,00"}},
		{"trims padding", " a ; b ", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitFields(tt.line))
		})
	}
}

func TestCountNonBlank(t *testing.T) {
	assert.Equal(t, 2, CountNonBlank([]string{"a", "", "  ", "b"}))
	assert.Equal(t, 0, CountNonBlank(nil))
}

func TestLocateFields(t *testing.T) {
	fields := []string{"15.03.2024", "карта *1234", "Оплата Пятёрочка Москва", "-500,00"}
	dateIdx, amountIdx, descIdx, err := LocateFields(fields)
	require.NoError(t, err)
	assert.Equal(t, 0, dateIdx)
	assert.Equal(t, 3, amountIdx)
	assert.Equal(t, 2, descIdx)
}

func TestLocateFields_Unresolved(t *testing.T) {
	_, _, _, err := LocateFields([]string{"просто", "текст", "без данных"})
	assert.ErrorIs(t, err, ErrUnresolvedColumns)
}

func TestHasDebitKeyword(t *testing.T) {
	assert.True(t, HasDebitKeyword([]string{"15.03.2024", "Списание", "500,00"}))
	assert.True(t, HasDebitKeyword([]string{"Расходная операция"}))
	assert.False(t, HasDebitKeyword([]string{"15.03.2024", "Пополнение", "500,00"}))
}

func TestHeaderIndex(t *testing.T) {
	header := []string{"Дата операции", "Сумма", "Категория"}
	assert.Equal(t, 0, HeaderIndex(header, "дата операции", "дата"))
	assert.Equal(t, 1, HeaderIndex(header, "сумма"))
	assert.Equal(t, -1, HeaderIndex(header, "описание"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("Выписка ПАО Сбербанк", "сбербанк"))
	assert.False(t, ContainsAny("Выписка ПАО Сбербанк", "тинькофф", "втб"))
}
