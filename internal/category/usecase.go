package category

import (
	"context"

	"github.com/towechlabs/finance-category-service/internal/category/dto"
	"github.com/towechlabs/finance-category-service/internal/model"
)

// UseCase implements the category lifecycle. Business failures are reported
// through the typed errors of the errors package; the dispatcher converts
// them to response statuses.
type UseCase interface {
	Add(ctx context.Context, input *dto.AddCategoryInput) (*model.Category, error)
	GetAll(ctx context.Context, userID string) ([]model.Category, error)
	GetByID(ctx context.Context, userID, categoryID string) (*model.Category, error)
	// Edit returns changed=false when change detection left nothing to
	// write; no store write happens in that case.
	Edit(ctx context.Context, input *dto.EditCategoryInput) (category *model.Category, changed bool, err error)
	Delete(ctx context.Context, userID, categoryID string) (*dto.DeleteResult, error)
	DeleteUser(ctx context.Context, userID string) error
}
