package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID string) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE transactions SET category_id = $1 WHERE category_id = $2`,
		toCategoryID, fromCategoryID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
