package exchange

import "errors"

// Rejection reasons
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrNoAccount          = errors.New("user has no account")
	ErrInsufficientPoints = errors.New("insufficient points")
)
