package model

// Sentinel ids shared by every category owner and parent reference.
const (
	// GlobalUserID marks a category owned by the system rather than a user.
	// Global categories are visible to all users and usable as parents.
	GlobalUserID = "-1"

	// NoParentID marks a top-level category.
	NoParentID = "-1"
)

// Category types. Type is normalized on creation and immutable afterwards.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

type Category struct {
	BaseModel
	UserID   string `db:"user_id" json:"user_id"`
	Name     string `db:"name" json:"name"`
	Type     string `db:"type" json:"type"`
	IconID   int    `db:"icon_id" json:"icon_id"`
	ParentID string `db:"parent_id" json:"parent_id"`
	Archived bool   `db:"archived" json:"archived"`
}

// IsGlobal reports whether the category is system owned.
func (c *Category) IsGlobal() bool {
	return c.UserID == GlobalUserID
}
