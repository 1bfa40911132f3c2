// Package transaction orchestrates the transaction ledger: every
// record mutation is applied together with its signed balance delta in
// one atomic unit, so an account balance always equals the sum of its
// live entries.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"walletcore/internal/models"
	"walletcore/internal/repositories"
	"walletcore/internal/services/authz"
	"walletcore/internal/utils/pagination"
)

// Service is the transaction ledger contract.
type Service interface {
	ListForUser(ctx context.Context, userID uint) ([]models.Transaction, error)
	ListAll(ctx context.Context, page int) ([]models.Transaction, int, error)
	GetByID(ctx context.Context, id uint, principal authz.Principal) (*models.Transaction, error)
	Create(ctx context.Context, in CreateInput) (*models.Transaction, error)
	Update(ctx context.Context, id uint, in UpdateInput) (*models.Transaction, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo repositories.LedgerRepository
}

// NewService creates a new transaction service.
func NewService(repo repositories.LedgerRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// ListForUser returns the user's transactions ordered by date, newest
// first.
func (s *service) ListForUser(ctx context.Context, userID uint) ([]models.Transaction, error) {
	txs, err := s.repo.GetUserTransactions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// ListAll returns one page of all transactions plus the total number
// of pages. Pages past the end come back empty.
func (s *service) ListAll(ctx context.Context, page int) ([]models.Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	pageSize := pagination.DefaultPageSize
	txs, total, err := s.repo.GetTransactions(pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, pagination.TotalPages(int(total), pageSize), nil
}

// GetByID returns the transaction when the principal may see it.
// A record owned by someone else looks exactly like a missing one to a
// standard user, so existence of other users' records never leaks.
func (s *service) GetByID(ctx context.Context, id uint, principal authz.Principal) (*models.Transaction, error) {
	tx, err := s.repo.GetTransactionByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if !principal.IsAdmin() && tx.UserID != principal.UserID {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (*models.Transaction, error) {
	in.Concept = strings.TrimSpace(in.Concept)
	if err := validate(in.Amount, in.Concept, in.Type, false); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetUserByID(in.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	account, err := s.repo.GetAccountByID(in.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to resolve account: %w", err)
	}
	if account.UserID != in.UserID {
		return nil, ErrAccountOwnership
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	tx := &models.Transaction{
		Amount:    in.Amount,
		Concept:   in.Concept,
		Date:      date,
		Type:      in.Type,
		UserID:    in.UserID,
		AccountID: in.AccountID,
		Reference: uuid.NewString(),
	}

	err = s.repo.ExecuteInTransaction(ctx, func(r repositories.LedgerRepository) error {
		if err := r.CreateTransaction(tx); err != nil {
			return err
		}
		return r.AdjustBalance(tx.AccountID, tx.SignedAmount())
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInsufficientFunds):
			return nil, ErrInsufficientFunds
		case errors.Is(err, repositories.ErrAccountNotFound):
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

// Update reverses the stored entry's effect, applies the new signed
// amount and replaces the record, all in one unit. If the net effect
// would drive a balance negative everything is rolled back.
func (s *service) Update(ctx context.Context, id uint, in UpdateInput) (*models.Transaction, error) {
	old, err := s.repo.GetTransactionByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	merged := *old
	if in.Amount != nil {
		merged.Amount = *in.Amount
	}
	if in.Concept != nil {
		merged.Concept = strings.TrimSpace(*in.Concept)
	}
	if in.Date != nil {
		merged.Date = *in.Date
	}
	if in.Type != nil {
		merged.Type = *in.Type
	}
	if in.UserID != nil {
		merged.UserID = *in.UserID
	}
	if in.AccountID != nil {
		merged.AccountID = *in.AccountID
	}
	if err := validate(merged.Amount, merged.Concept, merged.Type, true); err != nil {
		return nil, err
	}

	if merged.UserID != old.UserID {
		if _, err := s.repo.GetUserByID(merged.UserID); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to resolve user: %w", err)
		}
	}
	if merged.AccountID != old.AccountID || merged.UserID != old.UserID {
		account, err := s.repo.GetAccountByID(merged.AccountID)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, fmt.Errorf("failed to resolve account: %w", err)
		}
		if account.UserID != merged.UserID {
			return nil, ErrAccountOwnership
		}
	}

	err = s.repo.ExecuteInTransaction(ctx, func(r repositories.LedgerRepository) error {
		if err := r.AdjustBalance(old.AccountID, -old.SignedAmount()); err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return s.inconsistency(old)
			}
			return err
		}
		if err := r.AdjustBalance(merged.AccountID, merged.SignedAmount()); err != nil {
			return err
		}
		return r.UpdateTransaction(&merged)
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInsufficientFunds):
			return nil, ErrInsufficientFunds
		case errors.Is(err, repositories.ErrAccountNotFound):
			return nil, ErrAccountNotFound
		case errors.Is(err, ErrStorageInconsistency):
			return nil, err
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return &merged, nil
}

// Delete reverses the entry's signed effect on the account balance and
// removes the record atomically.
func (s *service) Delete(ctx context.Context, id uint) error {
	old, err := s.repo.GetTransactionByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	err = s.repo.ExecuteInTransaction(ctx, func(r repositories.LedgerRepository) error {
		if err := r.AdjustBalance(old.AccountID, -old.SignedAmount()); err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return s.inconsistency(old)
			}
			return err
		}
		return r.DeleteTransaction(id)
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInsufficientFunds):
			return ErrInsufficientFunds
		case errors.Is(err, ErrStorageInconsistency):
			return err
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (s *service) inconsistency(tx *models.Transaction) error {
	log.Printf("storage inconsistency: transaction %d references missing account %d", tx.ID, tx.AccountID)
	return ErrStorageInconsistency
}

// validate checks the shared entry invariants. Exchange entries are
// written only by the points exchange, so the type is rejected on
// create but tolerated on update of an existing exchange entry.
func validate(amount int64, concept, txType string, allowExchange bool) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if concept == "" {
		return ErrEmptyConcept
	}
	switch txType {
	case models.TransactionTypeCredit, models.TransactionTypeDebit:
		return nil
	case models.TransactionTypeExchange:
		if allowExchange {
			return nil
		}
	}
	return ErrInvalidType
}
