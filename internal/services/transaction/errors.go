package transaction

import "errors"

// Service errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrEmptyConcept        = errors.New("concept is required")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrAccountOwnership    = errors.New("account does not belong to the user")
	ErrInsufficientFunds   = errors.New("insufficient funds")

	// ErrStorageInconsistency means a live transaction references a
	// missing account. The detail is logged; callers only see this
	// generic failure.
	ErrStorageInconsistency = errors.New("ledger storage inconsistency")
)
