package transaction

import "context"

// Repository is the dependent-record store. Transactions are created and
// mutated elsewhere; this worker only moves their category reference when a
// category is permanently removed.
type Repository interface {
	// ReassignCategory points every transaction referencing fromCategoryID
	// at toCategoryID and returns how many records were moved.
	ReassignCategory(ctx context.Context, fromCategoryID, toCategoryID string) (int64, error)
}
