package transaction

import (
	"context"
	"sync"

	"github.com/towechlabs/finance-category-service/internal/model"
)

// MockRepository is an in-memory dependent-record store for tests.
type MockRepository struct {
	mu           sync.Mutex
	transactions []model.Transaction

	// FailWith, when set, makes every operation fail with it.
	FailWith error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) Seed(tx model.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, tx)
}

func (m *MockRepository) ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID string) (int64, error) {
	if m.FailWith != nil {
		return 0, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var moved int64
	for i := range m.transactions {
		if m.transactions[i].CategoryID == fromCategoryID {
			m.transactions[i].CategoryID = toCategoryID
			moved++
		}
	}
	return moved, nil
}

// CountByCategory reports how many stored transactions reference the
// category, for assertions.
func (m *MockRepository) CountByCategory(categoryID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, tx := range m.transactions {
		if tx.CategoryID == categoryID {
			count++
		}
	}
	return count
}
