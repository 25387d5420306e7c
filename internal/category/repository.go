package category

import (
	"context"

	"github.com/towechlabs/finance-category-service/internal/category/dto"
	"github.com/towechlabs/finance-category-service/internal/model"
)

// Repository is the category store. FindByID returns (nil, nil) when no
// record exists; any non-nil error is a store failure.
type Repository interface {
	Add(ctx context.Context, userID, name, categoryType string, iconID int, parentID string) (*model.Category, error)
	FindByID(ctx context.Context, id string) (*model.Category, error)
	FindAll(ctx context.Context, userID string) ([]model.Category, error)
	FindChildren(ctx context.Context, parentID string) ([]model.Category, error)
	Update(ctx context.Context, id string, patch *dto.CategoryPatch) (*model.Category, error)
	Delete(ctx context.Context, category *model.Category) (*model.Category, error)
	DeleteAllForUser(ctx context.Context, userID string) error
}
