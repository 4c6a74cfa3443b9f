package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{
			ID:        "сбер_1710460800_500.00_0a1b2c3d",
			Amount:    decimal.NewFromFloat(500.00),
			Category:  models.CategoryGroceries,
			Date:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Note:      "Пятёрочка",
			Source:    "Сбер",
			IsExpense: true,
		},
		{
			ID:        "сбер_1710547200_45000.00_11223344",
			Amount:    decimal.NewFromFloat(45000.00),
			Category:  models.CategorySalary,
			Date:      time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
			Note:      "Аванс",
			Source:    "Сбер",
			IsExpense: false,
		},
	}
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	txs := sampleTransactions()

	for _, tx := range txs {
		require.NoError(t, repo.AddTransaction(tx))
	}
	assert.Equal(t, 2, repo.Count())

	got, ok := repo.GetTransactionByID(txs[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Пятёрочка", got.Note)

	_, ok = repo.GetTransactionByID("нет такого")
	assert.False(t, ok)

	loaded, err := repo.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.True(t, loaded[0].Date.Before(loaded[1].Date), "ordered by date")
}

func TestExportImportRoundTrip(t *testing.T) {
	logger := &logging.MockLogger{}
	path := filepath.Join(t.TempDir(), "export", "transactions.csv")
	txs := sampleTransactions()

	require.NoError(t, ExportCSV(txs, path, logger))

	loaded, err := ImportCSV(path, logger)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	for i := range txs {
		assert.Equal(t, txs[i].ID, loaded[i].ID, "IDs survive the round trip for dedup")
		assert.True(t, txs[i].Amount.Equal(loaded[i].Amount))
		assert.Equal(t, txs[i].Category, loaded[i].Category)
		assert.Equal(t, txs[i].Note, loaded[i].Note)
		assert.Equal(t, txs[i].Source, loaded[i].Source)
		assert.Equal(t, txs[i].IsExpense, loaded[i].IsExpense)
		assert.True(t, txs[i].Date.Equal(loaded[i].Date))
	}
}

func TestExportCSV_NilTransactions(t *testing.T) {
	err := ExportCSV(nil, filepath.Join(t.TempDir(), "out.csv"), &logging.MockLogger{})
	assert.Error(t, err)
}
