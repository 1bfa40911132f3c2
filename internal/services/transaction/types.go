package transaction

import "time"

// CreateInput is the payload for creating a ledger entry.
type CreateInput struct {
	Amount    int64     `json:"amount"`
	Concept   string    `json:"concept"`
	Date      time.Time `json:"date"`
	Type      string    `json:"type"`
	UserID    uint      `json:"user_id"`
	AccountID uint      `json:"account_id"`
}

// UpdateInput is the partial payload for updating a ledger entry.
// Nil fields keep the stored value.
type UpdateInput struct {
	Amount    *int64     `json:"amount"`
	Concept   *string    `json:"concept"`
	Date      *time.Time `json:"date"`
	Type      *string    `json:"type"`
	UserID    *uint      `json:"user_id"`
	AccountID *uint      `json:"account_id"`
}
