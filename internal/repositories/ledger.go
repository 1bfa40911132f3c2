// Package repositories provides the data access layer for the ledger.
// It handles all persistence of users, accounts, transactions and the
// product catalog, and exposes the transactional boundary the services
// rely on for atomic record+balance mutations.
package repositories

import (
	"context"

	"walletcore/internal/models"
)

// LedgerRepository is the storage contract for the wallet ledger.
// Balance and points adjustments are guarded read-modify-writes: they
// never let a committed balance go negative, and two concurrent deltas
// against the same row never lose an update.
type LedgerRepository interface {
	// Users
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsers(limit, offset int) ([]models.User, int64, error)
	CreateUser(user *models.User) error
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	// AdjustPoints applies delta to the user's points. Fails with
	// ErrInsufficientPoints if the result would be negative.
	AdjustPoints(userID uint, delta int64) error

	// Accounts
	GetAccountByID(id uint) (*models.Account, error)
	GetAccountsByUserID(userID uint) ([]models.Account, error)
	CreateAccount(account *models.Account) error
	DeleteAccount(id uint) error
	// AdjustBalance applies delta to the account balance atomically.
	// Fails with ErrInsufficientFunds if the result would be negative
	// and ErrAccountNotFound if the account does not exist.
	AdjustBalance(accountID uint, delta int64) error

	// Transactions
	GetTransactionByID(id uint) (*models.Transaction, error)
	GetUserTransactions(userID uint) ([]models.Transaction, error)
	GetTransactions(limit, offset int) ([]models.Transaction, int64, error)
	CreateTransaction(tx *models.Transaction) error
	UpdateTransaction(tx *models.Transaction) error
	DeleteTransaction(id uint) error

	// Products
	GetProductByID(id uint) (*models.Product, error)
	GetProducts() ([]models.Product, error)

	// ExecuteInTransaction runs fn inside a single transactional unit.
	// If fn returns an error, or ctx is cancelled mid-flight, every
	// mutation made through the repository passed to fn is rolled back.
	ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error
}
