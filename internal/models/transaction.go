package models

import "time"

// Transaction types
const (
	TransactionTypeCredit   = "credit"
	TransactionTypeDebit    = "debit"
	TransactionTypeExchange = "exchange"
)

// Transaction is a ledger entry against one of the owner's accounts.
// Amount is always the positive magnitude; Type determines the sign
// applied to the account balance.
type Transaction struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Concept   string    `gorm:"not null" json:"concept"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Type      string    `gorm:"not null" json:"type"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	AccountID uint      `gorm:"index;not null" json:"account_id"`
	Reference string    `gorm:"uniqueIndex" json:"reference"` // external reference ID
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignedAmount returns the delta this entry applies to its account
// balance. Exchange entries record a points redemption and leave the
// monetary balance untouched.
func (t *Transaction) SignedAmount() int64 {
	switch t.Type {
	case TransactionTypeCredit:
		return t.Amount
	case TransactionTypeDebit:
		return -t.Amount
	default:
		return 0
	}
}
