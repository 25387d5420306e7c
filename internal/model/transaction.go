package model

import "time"

// Transaction is a dependent record owned by another service. This worker only
// touches its category reference, when the referenced category is removed.
type Transaction struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	CategoryID      string    `db:"category_id" json:"category_id"`
	Concept         string    `db:"concept" json:"concept"`
	Amount          float64   `db:"amount" json:"amount"`
	TransactionDate time.Time `db:"transaction_date" json:"transaction_date"`
}
