// Package exchange redeems a user's loyalty points for catalog
// products. A request either commits, debiting the points and writing
// exactly one ledger entry, or rejects without touching anything.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"walletcore/internal/models"
	"walletcore/internal/repositories"
)

// Stable user-facing messages. Integration tests match on these.
const (
	MsgExchanged          = "points exchanged successfully"
	MsgUserNotFound       = "user not found"
	MsgProductNotFound    = "product not found"
	MsgNoAccount          = "user has no account"
	MsgInsufficientPoints = "insufficient points"
)

// Result is the (success, message) pair surfaced to the caller.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Service redeems points for products.
type Service interface {
	Exchange(ctx context.Context, userID, productID uint) (Result, error)
}

type service struct {
	repo repositories.LedgerRepository
}

// NewService creates a new points exchange service.
func NewService(repo repositories.LedgerRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// Exchange validates the request and, when the user can afford the
// product, debits the points and records the ledger entry in one
// atomic unit. Rejections return a typed error alongside the result;
// only storage faults come back without one.
func (s *service) Exchange(ctx context.Context, userID, productID uint) (Result, error) {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return Result{Message: MsgUserNotFound}, ErrUserNotFound
		}
		return Result{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	product, err := s.repo.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return Result{Message: MsgProductNotFound}, ErrProductNotFound
		}
		return Result{}, fmt.Errorf("failed to resolve product: %w", err)
	}

	accounts, err := s.repo.GetAccountsByUserID(userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	if len(accounts) == 0 {
		return Result{Message: MsgNoAccount}, ErrNoAccount
	}

	if user.Points < product.CostInPoints {
		return Result{Message: MsgInsufficientPoints}, ErrInsufficientPoints
	}

	entry := &models.Transaction{
		Amount:    product.CostInPoints,
		Concept:   fmt.Sprintf("points exchange: %s", product.Name),
		Date:      time.Now().UTC(),
		Type:      models.TransactionTypeExchange,
		UserID:    userID,
		AccountID: accounts[0].ID,
		Reference: uuid.NewString(),
	}

	err = s.repo.ExecuteInTransaction(ctx, func(r repositories.LedgerRepository) error {
		if err := r.AdjustPoints(userID, -product.CostInPoints); err != nil {
			return err
		}
		return r.CreateTransaction(entry)
	})
	if err != nil {
		// The guarded debit re-checks under the transactional unit, so
		// a concurrent spend between the read and the commit still
		// rejects cleanly.
		if errors.Is(err, repositories.ErrInsufficientPoints) {
			return Result{Message: MsgInsufficientPoints}, ErrInsufficientPoints
		}
		return Result{}, fmt.Errorf("failed to exchange points: %w", err)
	}

	return Result{Success: true, Message: MsgExchanged}, nil
}
