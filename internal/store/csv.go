package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"kopilka/bank-import/internal/dateutils"
	"kopilka/bank-import/internal/logging"
	"kopilka/bank-import/internal/models"
	"kopilka/bank-import/internal/moneyutils"
)

// exportRow is the canonical CSV export schema. The header names match
// what genericparser resolves on re-import, so an exported file imports
// back with the same IDs.
type exportRow struct {
	ID       string `csv:"ID"`
	Date     string `csv:"Дата"`
	Category string `csv:"Категория"`
	Amount   string `csv:"Сумма"`
	Kind     string `csv:"Тип"`
	Note     string `csv:"Примечание"`
	Source   string `csv:"Источник"`
}

const (
	kindExpense = "Расход"
	kindIncome  = "Доход"
)

// ExportCSV writes transactions to the canonical CSV file, creating parent
// directories as needed.
func ExportCSV(transactions []models.Transaction, path string, logger logging.Logger) error {
	if transactions == nil {
		return fmt.Errorf("cannot export nil transactions")
	}
	logger.WithFields(
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "count", Value: len(transactions)},
	).Info("Exporting transactions to CSV")

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]exportRow, 0, len(transactions))
	for _, tx := range transactions {
		kind := kindIncome
		if tx.IsExpense {
			kind = kindExpense
		}
		rows = append(rows, exportRow{
			ID:       tx.ID,
			Date:     tx.Date.Format(dateutils.LayoutRu),
			Category: tx.Category,
			Amount:   tx.Amount.StringFixed(2),
			Kind:     kind,
			Note:     tx.Note,
			Source:   tx.Source,
		})
	}

	writer := csv.NewWriter(file)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// ImportCSV reads a canonical CSV file back into transactions. It is the
// typed fast path for files this application exported itself; arbitrary
// bank files go through the parser pipeline instead.
func ImportCSV(path string, logger logging.Logger) ([]models.Transaction, error) {
	logger.WithField("file", path).Info("Reading transactions from CSV")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []exportRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		date, _ := dateutils.Parse(row.Date, dateutils.CommonLayouts)
		tx := models.Transaction{
			ID:        row.ID,
			Amount:    moneyutils.Parse(row.Amount),
			Category:  row.Category,
			Date:      date,
			Note:      row.Note,
			Source:    row.Source,
			IsExpense: row.Kind == kindExpense,
		}
		tx.Normalize()
		transactions = append(transactions, tx)
	}
	logger.WithField("count", len(transactions)).Info("Read transactions from CSV")
	return transactions, nil
}
