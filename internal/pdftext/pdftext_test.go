package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	lines := []string{
		"Выписка по счёту за март",
		"",
		"15.03.2024 12:30 Покупка",
		"Пятёрочка Москва",
		"Сумма операции",
		"500,00",
		"16.03.2024 Перевод",
		"Иван И.",
		"Итого по операциям: 750,00",
	}
	cfg := Config{SkipMarkers: []string{"выписка по счёту", "итого"}}

	blocks := Segment(lines, cfg)
	require.Len(t, blocks, 2)

	assert.Equal(t, "15.03.2024 12:30", blocks[0].DateRaw)
	assert.Equal(t, 15, blocks[0].Date.Day())
	assert.Len(t, blocks[0].Lines, 4)

	assert.Equal(t, "16.03.2024", blocks[1].DateRaw)
	assert.Equal(t, []string{"16.03.2024 Перевод", "Иван И."}, blocks[1].Lines)
}

func TestSegment_LookaheadCap(t *testing.T) {
	lines := []string{"15.03.2024 Покупка"}
	for i := 0; i < 20; i++ {
		lines = append(lines, "продолжение описания")
	}
	blocks := Segment(lines, Config{Lookahead: 3})
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Lines, 3)
}

func TestDescription_StripsDate(t *testing.T) {
	b := Block{
		DateRaw: "15.03.2024",
		Lines:   []string{"15.03.2024 Покупка", "Пятёрочка"},
	}
	assert.Equal(t, "Покупка Пятёрочка", b.Description())
}

func TestExtractAmount_LabeledWins(t *testing.T) {
	b := Block{
		DateRaw: "15.03.2024",
		Lines: []string{
			"15.03.2024 Покупка 999,99",
			"Сумма операции",
			"500,00",
		},
	}
	value, raw, ok := ExtractAmount(b)
	require.True(t, ok)
	assert.Equal(t, "500", value.String())
	assert.Equal(t, "500,00", raw)
}

func TestExtractAmount_StandaloneLine(t *testing.T) {
	b := Block{
		DateRaw: "15.03.2024",
		Lines: []string{
			"15.03.2024 Покупка",
			"Пятёрочка",
			"-1 250,50",
		},
	}
	value, raw, ok := ExtractAmount(b)
	require.True(t, ok)
	assert.Equal(t, "1250.5", value.String())
	assert.Equal(t, "-1 250,50", raw)
}

func TestExtractAmount_JoinedTextFallback(t *testing.T) {
	b := Block{
		DateRaw: "15.03.2024",
		Lines:   []string{"15.03.2024 Оплата Пятёрочка 750,00 завершена"},
	}
	value, raw, ok := ExtractAmount(b)
	require.True(t, ok)
	assert.Equal(t, "750", value.String())
	assert.Equal(t, "750,00", raw)
}

func TestExtractAmount_Missing(t *testing.T) {
	b := Block{
		DateRaw: "15.03.2024",
		Lines:   []string{"15.03.2024 Операция без суммы"},
	}
	_, _, ok := ExtractAmount(b)
	assert.False(t, ok)
}

func TestInferExpense(t *testing.T) {
	tests := []struct {
		name      string
		blockText string
		amountRaw string
		want      bool
	}{
		{"income keyword", "Зачисление зарплаты", "50000,00", false},
		{"refund keyword beats minus", "Возврат покупки", "-500,00", false},
		{"payment keyword", "Оплата Пятёрочка", "+500,00", true},
		{"plus sign", "Операция по карте", "+500,00", false},
		{"no marker defaults to expense", "Пятёрочка Москва", "500,00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferExpense(tt.blockText, tt.amountRaw))
		})
	}
}

func TestMockExtractor(t *testing.T) {
	m := &MockExtractor{Text: "15.03.2024 Оплата"}
	text, err := m.ExtractText(nil)
	require.NoError(t, err)
	assert.Equal(t, "15.03.2024 Оплата", text)
}
