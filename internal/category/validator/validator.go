package validator

import (
	"context"
	"strings"

	"github.com/towechlabs/finance-category-service/internal/category"
	categoryErrors "github.com/towechlabs/finance-category-service/internal/category/errors"
	"github.com/towechlabs/finance-category-service/internal/model"
)

// Validator holds the query-backed validation rules. A returned error is a
// store failure; business verdicts travel in the FieldErrors map, which is
// empty when the input is valid.
type Validator struct {
	categories category.Repository
}

func New(categories category.Repository) *Validator {
	return &Validator{categories: categories}
}

// ValidateName trims the name and rejects it when nothing remains. The
// trimmed string is returned regardless of validity.
func (v *Validator) ValidateName(name string) (string, categoryErrors.FieldErrors) {
	errs := categoryErrors.FieldErrors{}

	formatted := strings.TrimSpace(name)
	if formatted == "" {
		errs["name"] = "Category name can't be empty"
	}

	return formatted, errs
}

// ValidateParent checks that a prospective parent exists, is a top-level
// category, and is either global or owned by the requesting user. The
// no-parent sentinel is trivially valid. When several checks fail the last
// one wins, so at most one parent_id error surfaces.
func (v *Validator) ValidateParent(ctx context.Context, parentID, userID string) (categoryErrors.FieldErrors, error) {
	errs := categoryErrors.FieldErrors{}

	if parentID == model.NoParentID {
		return errs, nil
	}

	parent, err := v.categories.FindByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	if parent == nil {
		errs["parent_id"] = "Parent category doesn't exist"
		return errs, nil
	}

	if parent.ParentID != model.NoParentID {
		errs["parent_id"] = "Categories only support one level of nesting"
	}
	if parent.UserID != model.GlobalUserID && parent.UserID != userID {
		errs["parent_id"] = "User does not own parent category"
	}

	return errs, nil
}

// CategoryOwnership fetches the category and checks that the user owns it.
// Global categories pass only when allowGlobal is set. The fetched category
// is returned even on failure so callers can tell missing from forbidden.
func (v *Validator) CategoryOwnership(ctx context.Context, userID, categoryID string, allowGlobal bool) (*model.Category, categoryErrors.FieldErrors, error) {
	errs := categoryErrors.FieldErrors{}

	cat, err := v.categories.FindByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}

	if userID == "" || cat == nil || !(cat.UserID == userID || (cat.UserID == model.GlobalUserID && allowGlobal)) {
		errs["category"] = "User does not own this category"
	}

	return cat, errs, nil
}

// SetIconID sanitizes an icon id rather than validating it: the id is
// managed by the frontend, so anything negative just collapses to zero.
func SetIconID(iconID int) int {
	if iconID < 0 {
		return 0
	}
	return iconID
}
