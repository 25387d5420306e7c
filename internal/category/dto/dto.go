package dto

import "github.com/towechlabs/finance-category-service/internal/model"

// CategoryPatch is the staged field-set of an edit, computed once against the
// stored record and applied as a single update. Only non-nil fields are
// written.
type CategoryPatch struct {
	Name     *string
	IconID   *int
	ParentID *string
	Archived *bool
}

// Empty reports whether no field survived change detection.
func (p *CategoryPatch) Empty() bool {
	return p.Name == nil && p.IconID == nil && p.ParentID == nil && p.Archived == nil
}

// DeleteResult reports which branch a delete request took: the first request
// archives the category, the second removes it.
type DeleteResult struct {
	Category *model.Category
	Archived bool
}
