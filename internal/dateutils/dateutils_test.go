package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"ru date", "15.03.2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"ru datetime", "15.03.2024 12:30:45", time.Date(2024, 3, 15, 12, 30, 45, 0, time.UTC), true},
		{"ru short time", "15.03.2024 12:30", time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC), true},
		{"iso date", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"padded", "  15.03.2024  ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "не дата", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input, nil)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got))
			}
		})
	}
}

func TestParseOrNow_Fallback(t *testing.T) {
	before := time.Now()
	got, fellBack := ParseOrNow("мусор", CommonLayouts)
	after := time.Now()

	assert.True(t, fellBack)
	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))
}

func TestParseOrNow_NoFallback(t *testing.T) {
	got, fellBack := ParseOrNow("01.02.2023", CommonLayouts)
	assert.False(t, fellBack)
	assert.Equal(t, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestLooksLikeDate(t *testing.T) {
	assert.True(t, LooksLikeDate("15.03.2024"))
	assert.True(t, LooksLikeDate("15.03.2024 12:30"))
	assert.True(t, LooksLikeDate("2024-03-15"))
	assert.False(t, LooksLikeDate("500,00"))
	assert.False(t, LooksLikeDate("Пятёрочка"))
}

func TestExtractLeadingDate(t *testing.T) {
	assert.Equal(t, "15.03.2024", ExtractLeadingDate("15.03.2024 Оплата Пятёрочка"))
	assert.Equal(t, "15.03.2024 12:30", ExtractLeadingDate("15.03.2024 12:30 Перевод"))
	assert.Equal(t, "", ExtractLeadingDate("Оплата 15.03.2024"))
}
