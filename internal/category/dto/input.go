package dto

type AddCategoryInput struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IconID   int    `json:"icon_id"`
	ParentID string `json:"parent_id"`
}

// EditCategoryInput carries the optional fields of an edit request. A nil
// pointer means the field was absent from the payload; the type of a category
// is immutable and therefore has no slot here.
type EditCategoryInput struct {
	ID       string  `json:"id"`
	UserID   string  `json:"user_id"`
	Name     *string `json:"name,omitempty"`
	IconID   *int    `json:"icon_id,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	Archived *bool   `json:"archived,omitempty"`
}
