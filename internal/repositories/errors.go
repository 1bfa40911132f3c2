package repositories

import "errors"

// Repository errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrInsufficientPoints  = errors.New("insufficient points")
	ErrDatabaseOperation   = errors.New("database operation failed")
)
