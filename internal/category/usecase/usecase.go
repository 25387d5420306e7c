package usecase

import (
	"context"

	"github.com/towechlabs/finance-category-service/config"
	"github.com/towechlabs/finance-category-service/internal/category"
	"github.com/towechlabs/finance-category-service/internal/category/dto"
	categoryErrors "github.com/towechlabs/finance-category-service/internal/category/errors"
	"github.com/towechlabs/finance-category-service/internal/category/validator"
	"github.com/towechlabs/finance-category-service/internal/logger"
	"github.com/towechlabs/finance-category-service/internal/model"
	"github.com/towechlabs/finance-category-service/internal/transaction"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo         category.Repository
	transactions transaction.Repository
	validator    *validator.Validator
	fallbacks    config.CategoryConfig
	logger       logger.ZapLogger
}

func NewCategoryUseCase(
	repo category.Repository,
	transactions transaction.Repository,
	v *validator.Validator,
	fallbacks config.CategoryConfig,
	log logger.ZapLogger,
) category.UseCase {
	return &categoryUseCase{
		repo:         repo,
		transactions: transactions,
		validator:    v,
		fallbacks:    fallbacks,
		logger:       log,
	}
}

func (uc *categoryUseCase) Add(ctx context.Context, input *dto.AddCategoryInput) (*model.Category, error) {
	uc.logger.Info("adding category", zap.String("user_id", input.UserID))

	parentID := input.ParentID
	if parentID == "" {
		parentID = model.NoParentID
	}

	fieldErrs := categoryErrors.FieldErrors{}

	parentErrs, err := uc.validator.ValidateParent(ctx, parentID, input.UserID)
	if err != nil {
		return nil, categoryErrors.NewUnexpectedError(err)
	}
	fieldErrs.Merge(parentErrs)

	formatted, nameErrs := uc.validator.ValidateName(input.Name)
	fieldErrs.Merge(nameErrs)

	if len(fieldErrs) > 0 {
		return nil, categoryErrors.NewValidationError(fieldErrs)
	}

	cat, err := uc.repo.Add(ctx, input.UserID, formatted, input.Type, input.IconID, parentID)
	if err != nil {
		return nil, categoryErrors.NewUnexpectedError(err)
	}
	return cat, nil
}

func (uc *categoryUseCase) GetAll(ctx context.Context, userID string) ([]model.Category, error) {
	uc.logger.Debug("getting all categories", zap.String("user_id", userID))

	categories, err := uc.repo.FindAll(ctx, userID)
	if err != nil {
		return nil, categoryErrors.NewUnexpectedError(err)
	}
	return categories, nil
}

func (uc *categoryUseCase) GetByID(ctx context.Context, userID, categoryID string) (*model.Category, error) {
	uc.logger.Debug("getting category", zap.String("category_id", categoryID))

	cat, ownershipErrs, err := uc.validator.CategoryOwnership(ctx, userID, categoryID, true)
	if err != nil {
		return nil, categoryErrors.NewUnexpectedError(err)
	}
	if len(ownershipErrs) > 0 {
		return nil, categoryErrors.NewAuthorizationError(ownershipErrs)
	}
	return cat, nil
}

// Edit applies change detection before validation: only fields that are
// present in the input and differ from the stored record are validated and
// staged, and the staged set is written as a single update. The category
// type has no slot in the patch and can never change.
func (uc *categoryUseCase) Edit(ctx context.Context, input *dto.EditCategoryInput) (*model.Category, bool, error) {
	uc.logger.Info("editing category", zap.String("category_id", input.ID))

	cat, ownershipErrs, err := uc.validator.CategoryOwnership(ctx, input.UserID, input.ID, false)
	if err != nil {
		return nil, false, categoryErrors.NewUnexpectedError(err)
	}
	if len(ownershipErrs) > 0 {
		return nil, false, categoryErrors.NewAuthorizationError(ownershipErrs)
	}
	if cat == nil {
		return nil, false, categoryErrors.NewNotFoundError("Category not found")
	}

	fieldErrs := categoryErrors.FieldErrors{}
	patch := &dto.CategoryPatch{}

	if input.Archived != nil && *input.Archived != cat.Archived {
		patch.Archived = input.Archived
	}

	if input.ParentID != nil && *input.ParentID != cat.ParentID {
		if *input.ParentID != model.NoParentID {
			parentErrs, err := uc.validator.ValidateParent(ctx, *input.ParentID, input.UserID)
			if err != nil {
				return nil, false, categoryErrors.NewUnexpectedError(err)
			}
			fieldErrs.Merge(parentErrs)
		}
		patch.ParentID = input.ParentID
	}

	if input.IconID != nil && *input.IconID != cat.IconID {
		sanitized := validator.SetIconID(*input.IconID)
		patch.IconID = &sanitized
	}

	if input.Name != nil && *input.Name != cat.Name {
		formatted, nameErrs := uc.validator.ValidateName(*input.Name)
		fieldErrs.Merge(nameErrs)
		patch.Name = &formatted
	}

	if len(fieldErrs) > 0 {
		return nil, false, categoryErrors.NewValidationError(fieldErrs)
	}

	if patch.Empty() {
		return &model.Category{}, false, nil
	}

	updated, err := uc.repo.Update(ctx, cat.ID, patch)
	if err != nil {
		return nil, false, categoryErrors.NewUnexpectedError(err)
	}
	return updated, true, nil
}

// Delete archives an active category; a second request on the archived
// record removes it and cascades over its subtree.
func (uc *categoryUseCase) Delete(ctx context.Context, userID, categoryID string) (*dto.DeleteResult, error) {
	cat, ownershipErrs, err := uc.validator.CategoryOwnership(ctx, userID, categoryID, false)
	if err != nil {
		return nil, categoryErrors.NewUnexpectedError(err)
	}
	if len(ownershipErrs) > 0 || cat == nil {
		return nil, categoryErrors.NewAuthorizationError(ownershipErrs)
	}

	if !cat.Archived {
		uc.logger.Info("archiving category", zap.String("category_id", cat.ID))

		archived := true
		updated, err := uc.repo.Update(ctx, cat.ID, &dto.CategoryPatch{Archived: &archived})
		if err != nil {
			return nil, categoryErrors.NewUnexpectedError(err)
		}
		return &dto.DeleteResult{Category: updated, Archived: true}, nil
	}

	uc.logger.Info("deleting category", zap.String("category_id", cat.ID))

	if err := uc.cascadeDelete(ctx, cat); err != nil {
		return nil, categoryErrors.NewUnexpectedError(err)
	}
	return &dto.DeleteResult{Category: cat, Archived: false}, nil
}

// cascadeDelete walks the subtree over an explicit queue. Each step
// reassigns dependent transactions to the fallback matching the category's
// type, enqueues the children, then removes the category itself. Nesting is
// capped at one level, so the queue drains after at most one extra round.
// The walk is not transactional: a child added concurrently may be missed.
func (uc *categoryUseCase) cascadeDelete(ctx context.Context, root *model.Category) error {
	queue := []*model.Category{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		moved, err := uc.transactions.ReassignCategory(ctx, current.ID, uc.fallbackFor(current.Type))
		if err != nil {
			return err
		}
		uc.logger.Debug("reassigned dependent transactions",
			zap.String("category_id", current.ID),
			zap.Int64("count", moved),
		)

		children, err := uc.repo.FindChildren(ctx, current.ID)
		if err != nil {
			return err
		}
		for i := range children {
			queue = append(queue, &children[i])
		}

		if _, err := uc.repo.Delete(ctx, current); err != nil {
			return err
		}
	}
	return nil
}

func (uc *categoryUseCase) fallbackFor(categoryType string) string {
	if categoryType == model.TypeExpense {
		return uc.fallbacks.FallbackExpenseCategoryID
	}
	return uc.fallbacks.FallbackIncomeCategoryID
}

func (uc *categoryUseCase) DeleteUser(ctx context.Context, userID string) error {
	uc.logger.Info("deleting all categories for user", zap.String("user_id", userID))

	if err := uc.repo.DeleteAllForUser(ctx, userID); err != nil {
		return categoryErrors.NewUnexpectedError(err)
	}
	return nil
}
