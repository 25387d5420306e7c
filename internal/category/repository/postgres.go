package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/towechlabs/finance-category-service/internal/category/dto"
	"github.com/towechlabs/finance-category-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// Add normalizes the record before persisting it: the type collapses to
// Income or Expense (case-insensitive match on "income", everything else is
// Expense) and the icon id is clamped to zero when not positive.
func (r *PGRepository) Add(ctx context.Context, userID, name, categoryType string, iconID int, parentID string) (*model.Category, error) {
	now := time.Now()

	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   userID,
		Name:     name,
		Type:     normalizeType(categoryType),
		IconID:   clampIconID(iconID),
		ParentID: parentID,
		Archived: false,
	}

	query := `
        INSERT INTO categories (id, user_id, name, type, icon_id, parent_id, archived, created_at, updated_at)
        VALUES (:id, :user_id, :name, :type, :icon_id, :parent_id, :archived, :created_at, :updated_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// FindAll returns the user's categories plus the global ones. Order is
// whatever the store yields.
func (r *PGRepository) FindAll(ctx context.Context, userID string) ([]model.Category, error) {
	var categories []model.Category
	query := `SELECT * FROM categories WHERE user_id = $1 OR user_id = $2`
	err := r.DB.SelectContext(ctx, &categories, query, userID, model.GlobalUserID)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PGRepository) FindChildren(ctx context.Context, parentID string) ([]model.Category, error) {
	var categories []model.Category
	query := `SELECT * FROM categories WHERE parent_id = $1`
	err := r.DB.SelectContext(ctx, &categories, query, parentID)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// Update applies only the fields present in the patch as a single statement.
// The patch carries no type field, so the type column can never change here.
func (r *PGRepository) Update(ctx context.Context, id string, patch *dto.CategoryPatch) (*model.Category, error) {
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}

	set := []string{}
	args := []interface{}{}
	idx := 1

	appendSet := func(column string, value interface{}) {
		set = append(set, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.IconID != nil {
		appendSet("icon_id", *patch.IconID)
	}
	if patch.ParentID != nil {
		appendSet("parent_id", *patch.ParentID)
	}
	if patch.Archived != nil {
		appendSet("archived", *patch.Archived)
	}
	appendSet("updated_at", time.Now())

	query := "UPDATE categories SET " + strings.Join(set, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING *", idx)
	args = append(args, id)

	var category model.Category
	if err := r.DB.GetContext(ctx, &category, query, args...); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) Delete(ctx context.Context, category *model.Category) (*model.Category, error) {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, category.ID)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *PGRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE user_id = $1`, userID)
	return err
}

func normalizeType(categoryType string) string {
	if strings.EqualFold(strings.TrimSpace(categoryType), "income") {
		return model.TypeIncome
	}
	return model.TypeExpense
}

func clampIconID(iconID int) int {
	if iconID > 0 {
		return iconID
	}
	return 0
}
