package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/bank-import/internal/alfaparser"
	"kopilka/bank-import/internal/gazpromparser"
	"kopilka/bank-import/internal/genericparser"
	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/ozonparser"
	"kopilka/bank-import/internal/parser"
	"kopilka/bank-import/internal/sberparser"
	"kopilka/bank-import/internal/tinkoffparser"
	"kopilka/bank-import/internal/vtbparser"
)

// canonical per-bank preview fixtures
var fixtures = map[string][]string{
	alfaparser.SourceName:    {"Выписка АО «Альфа-Банк»", "15.03.2024;-500,00;Оплата Пятёрочка Москва"},
	gazpromparser.SourceName: {"Банк ГПБ (АО), Газпромбанк", "15.03.2024;-500,00;Оплата Пятёрочка Москва"},
	ozonparser.SourceName:    {"Выписка Озон Банк (ООО)", "15.03.2024;-500,00;Оплата Пятёрочка Москва"},
	sberparser.SourceName:    {"Выписка по счёту дебетовой карты ПАО Сбербанк"},
	tinkoffparser.SourceName: {"Справка АО «Тинькофф Банк»"},
	vtbparser.SourceName:     {"Выписка Банк ВТБ (ПАО)"},
}

func TestDetectCSV_EachFixtureClaimedByItsBank(t *testing.T) {
	d := New(&logging.MockLogger{})
	for want, preview := range fixtures {
		got := d.DetectCSV(preview)
		assert.Equalf(t, want, got.Name(), "fixture for %s", want)
	}
}

func TestDetectCSV_NoCrossClaims(t *testing.T) {
	logger := &logging.MockLogger{}
	parsers := map[string]parser.StatementParser{
		alfaparser.SourceName:    alfaparser.NewCSVParser(logger),
		gazpromparser.SourceName: gazpromparser.NewCSVParser(logger),
		ozonparser.SourceName:    ozonparser.NewCSVParser(logger),
		sberparser.SourceName:    sberparser.NewCSVParser(logger),
		tinkoffparser.SourceName: tinkoffparser.NewCSVParser(logger),
		vtbparser.SourceName:     vtbparser.NewCSVParser(logger),
	}
	for owner, preview := range fixtures {
		for name, p := range parsers {
			if name == owner {
				assert.Truef(t, p.IsValidFormat(preview), "%s must claim its own fixture", name)
			} else {
				assert.Falsef(t, p.IsValidFormat(preview), "%s must not claim the %s fixture", name, owner)
			}
		}
	}
}

func TestDetectCSV_GenericFallback(t *testing.T) {
	d := New(&logging.MockLogger{})
	got := d.DetectCSV([]string{"ID,Дата,Категория,Сумма,Тип,Примечание,Источник", "1,2024-01-10,Еда,-1200.50,Расход,Обед,Карта"})
	assert.Equal(t, genericparser.SourceName, got.Name())
}

func TestDetectPDF(t *testing.T) {
	d := New(&logging.MockLogger{})

	tests := []struct {
		name     string
		filename string
		text     string
		want     string
	}{
		{"filename ozon", "ozon_statement.pdf", "", ozonparser.SourceName},
		{"filename sber", "выписка_сбер.pdf", "", sberparser.SourceName},
		{"content ozon", "statement.pdf", "Озон Банк выписка", ozonparser.SourceName},
		{"content sber", "statement.pdf", "ПАО Сбербанк выписка", sberparser.SourceName},
		{"default tbank", "statement.pdf", "операции по карте", tinkoffparser.SourceName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.DetectPDF(tt.filename, tt.text).Name())
		})
	}
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF([]byte("%PDF-1.7 ...")))
	assert.False(t, IsPDF([]byte("Дата;Сумма")))
	assert.False(t, IsPDF(nil))
}

func TestPreviewBounded(t *testing.T) {
	d := New(&logging.MockLogger{})
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "колонка;колонка;колонка"
	}
	// The bank token sits past the preview window, so detection must not see it.
	lines[99] = "ПАО Сбербанк"
	got := d.DetectCSV(lines)
	require.Equal(t, genericparser.SourceName, got.Name())
}
