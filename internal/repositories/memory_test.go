package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletcore/internal/models"
)

func seedAccount(t *testing.T, store *Memory, balance int64) *models.Account {
	t.Helper()
	user := &models.User{FirstName: "Ana", Email: "ana@example.com", Password: "x"}
	require.NoError(t, store.CreateUser(user))
	account := &models.Account{UserID: user.ID, Balance: balance}
	require.NoError(t, store.CreateAccount(account))
	return account
}

func TestAdjustBalance_Guard(t *testing.T) {
	store := NewMemory()
	account := seedAccount(t, store, 100)

	require.NoError(t, store.AdjustBalance(account.ID, -100))
	got, err := store.GetAccountByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Balance)

	assert.ErrorIs(t, store.AdjustBalance(account.ID, -1), ErrInsufficientFunds)
	assert.ErrorIs(t, store.AdjustBalance(999, 10), ErrAccountNotFound)
}

func TestAdjustPoints_Guard(t *testing.T) {
	store := NewMemory()
	user := &models.User{FirstName: "Ana", Email: "a@example.com", Password: "x", Points: 10}
	require.NoError(t, store.CreateUser(user))

	assert.ErrorIs(t, store.AdjustPoints(user.ID, -11), ErrInsufficientPoints)
	require.NoError(t, store.AdjustPoints(user.ID, -10))

	got, err := store.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Points)
}

func TestExecuteInTransaction_RollsBackOnError(t *testing.T) {
	store := NewMemory()
	account := seedAccount(t, store, 100)

	boom := errors.New("boom")
	err := store.ExecuteInTransaction(context.Background(), func(r LedgerRepository) error {
		if err := r.AdjustBalance(account.ID, 50); err != nil {
			return err
		}
		if err := r.CreateTransaction(&models.Transaction{
			Amount: 50, Concept: "x", Type: models.TransactionTypeCredit,
			UserID: account.UserID, AccountID: account.ID,
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.GetAccountByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Balance)

	txs, err := store.GetUserTransactions(account.UserID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestExecuteInTransaction_CancelledContextRollsBack(t *testing.T) {
	store := NewMemory()
	account := seedAccount(t, store, 100)

	ctx, cancel := context.WithCancel(context.Background())
	err := store.ExecuteInTransaction(ctx, func(r LedgerRepository) error {
		if err := r.AdjustBalance(account.ID, 50); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	got, err := store.GetAccountByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Balance)
}

func TestConcurrentAdjustBalance_NoLostUpdate(t *testing.T) {
	store := NewMemory()
	account := seedAccount(t, store, 0)

	const workers = 100
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.AdjustBalance(account.ID, 1)
		}()
	}
	wg.Wait()

	got, err := store.GetAccountByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers), got.Balance)
}
