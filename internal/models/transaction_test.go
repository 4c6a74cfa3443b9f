package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tx := Transaction{
		ID:     "  id-1  ",
		Amount: decimal.NewFromInt(-500),
		Note:   strings.Repeat("п", 200),
	}
	tx.Normalize()

	assert.Equal(t, "id-1", tx.ID)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(500)), "amount must be stored absolute")
	assert.Equal(t, CategoryOther, tx.Category, "empty category defaults to the placeholder")
	assert.LessOrEqual(t, len(tx.Note), MaxNoteLength)
	assert.True(t, strings.HasPrefix(tx.Note, "п"), "truncation must not split a multi-byte rune")
}

func TestDeriveID_Deterministic(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromFloat(500.00)

	a := DeriveID("Сбер", date, amount, "Пятёрочка")
	b := DeriveID("Сбер", date, amount, "Пятёрочка")
	assert.Equal(t, a, b, "same content must reproduce the same ID across runs")
	assert.LessOrEqual(t, len(a), MaxIDLength)

	c := DeriveID("Сбер", date, amount, "Магнит")
	assert.NotEqual(t, a, c, "different notes must yield different IDs")
}

func TestDeriveID_SignInsensitive(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	a := DeriveID("Сбер", date, decimal.NewFromInt(-500), "x")
	b := DeriveID("Сбер", date, decimal.NewFromInt(500), "x")
	assert.Equal(t, a, b)
}

func TestMakeID_FreshPerCall(t *testing.T) {
	a := MakeID("Озон", time.Now())
	b := MakeID("Озон", time.Now())
	assert.NotEqual(t, a, b, "parse-time IDs are minted fresh on every call")
	assert.LessOrEqual(t, len(a), MaxIDLength)
}
