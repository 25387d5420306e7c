package category

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/towechlabs/finance-category-service/internal/category/dto"
	"github.com/towechlabs/finance-category-service/internal/model"
)

// MockRepository is an in-memory category store for tests. It honors the same
// contract as the Postgres store, including the normalization Add performs.
type MockRepository struct {
	mu         sync.Mutex
	categories map[string]model.Category
	nextID     int

	// FailWith, when set, makes every operation fail with it.
	FailWith error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{categories: map[string]model.Category{}}
}

// Seed stores a category as-is, without normalization.
func (m *MockRepository) Seed(cat model.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[cat.ID] = cat
}

func (m *MockRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.categories)
}

func (m *MockRepository) Add(ctx context.Context, userID, name, categoryType string, iconID int, parentID string) (*model.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	normalized := model.TypeExpense
	if strings.EqualFold(strings.TrimSpace(categoryType), "income") {
		normalized = model.TypeIncome
	}
	if iconID < 0 {
		iconID = 0
	}

	m.nextID++
	cat := model.Category{
		BaseModel: model.BaseModel{ID: fmt.Sprintf("cat-%d", m.nextID)},
		UserID:    userID,
		Name:      name,
		Type:      normalized,
		IconID:    iconID,
		ParentID:  parentID,
		Archived:  false,
	}
	m.categories[cat.ID] = cat
	return &cat, nil
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cat, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return &cat, nil
}

func (m *MockRepository) FindAll(ctx context.Context, userID string) ([]model.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Category
	for _, cat := range m.categories {
		if cat.UserID == userID || cat.UserID == model.GlobalUserID {
			result = append(result, cat)
		}
	}
	return result, nil
}

func (m *MockRepository) FindChildren(ctx context.Context, parentID string) ([]model.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Category
	for _, cat := range m.categories {
		if cat.ParentID == parentID {
			result = append(result, cat)
		}
	}
	return result, nil
}

func (m *MockRepository) Update(ctx context.Context, id string, patch *dto.CategoryPatch) (*model.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cat, ok := m.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %s does not exist", id)
	}

	if patch.Name != nil {
		cat.Name = *patch.Name
	}
	if patch.IconID != nil {
		cat.IconID = *patch.IconID
	}
	if patch.ParentID != nil {
		cat.ParentID = *patch.ParentID
	}
	if patch.Archived != nil {
		cat.Archived = *patch.Archived
	}

	m.categories[id] = cat
	return &cat, nil
}

func (m *MockRepository) Delete(ctx context.Context, category *model.Category) (*model.Category, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.categories, category.ID)
	return category, nil
}

func (m *MockRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, cat := range m.categories {
		if cat.UserID == userID {
			delete(m.categories, id)
		}
	}
	return nil
}
