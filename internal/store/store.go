// Package store persists imported transactions. The import pipeline only
// needs the small TransactionRepository surface; the in-memory
// implementation backs tests and the CLI, and the CSV file functions
// round-trip the canonical export format.
package store

import (
	"sort"
	"sync"

	"kopilka/bank-import/internal/models"
)

// TransactionRepository is the persistence surface the import pipeline
// depends on. GetTransactionByID returning false means the ID is free and
// the record may be added.
type TransactionRepository interface {
	AddTransaction(tx models.Transaction) error
	GetTransactionByID(id string) (models.Transaction, bool)
	LoadTransactions() ([]models.Transaction, error)
}

// MemoryRepository is a thread-safe in-memory TransactionRepository.
type MemoryRepository struct {
	mu  sync.RWMutex
	txs map[string]models.Transaction
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{txs: make(map[string]models.Transaction)}
}

// AddTransaction stores the record, overwriting any record with the same ID.
func (r *MemoryRepository) AddTransaction(tx models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.ID] = tx
	return nil
}

// GetTransactionByID looks a record up by ID.
func (r *MemoryRepository) GetTransactionByID(id string) (models.Transaction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tx, ok := r.txs[id]
	return tx, ok
}

// LoadTransactions returns all stored records ordered by date, then ID.
func (r *MemoryRepository) LoadTransactions() ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Transaction, 0, len(r.txs))
	for _, tx := range r.txs {
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Count returns the number of stored records.
func (r *MemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.txs)
}
