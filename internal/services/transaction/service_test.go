package transaction

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletcore/internal/models"
	"walletcore/internal/repositories"
	"walletcore/internal/services/authz"
)

func newFixture(t *testing.T) (*repositories.Memory, Service, *models.User, *models.Account) {
	t.Helper()
	store := repositories.NewMemory()

	user := &models.User{FirstName: "Ana", Email: "ana@example.com", Password: "x", Role: models.RoleStandard}
	require.NoError(t, store.CreateUser(user))

	account := &models.Account{UserID: user.ID, Balance: 100}
	require.NoError(t, store.CreateAccount(account))

	return store, NewService(store), user, account
}

func balanceOf(t *testing.T, store *repositories.Memory, accountID uint) int64 {
	t.Helper()
	account, err := store.GetAccountByID(accountID)
	require.NoError(t, err)
	return account.Balance
}

func TestCreate_AppliesSignedAmount(t *testing.T) {
	store, svc, user, account := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{
		Amount: 50, Concept: "salary", Type: models.TransactionTypeCredit,
		UserID: user.ID, AccountID: account.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(150), balanceOf(t, store, account.ID))

	tx, err := svc.Create(ctx, CreateInput{
		Amount: 30, Concept: "groceries", Type: models.TransactionTypeDebit,
		UserID: user.ID, AccountID: account.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(120), balanceOf(t, store, account.ID))
	assert.NotEmpty(t, tx.Reference)
	assert.False(t, tx.Date.IsZero())
}

func TestCreate_InsufficientFundsRollsBack(t *testing.T) {
	store, svc, user, account := newFixture(t)

	_, err := svc.Create(context.Background(), CreateInput{
		Amount: 500, Concept: "too big", Type: models.TransactionTypeDebit,
		UserID: user.ID, AccountID: account.ID,
	})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	assert.Equal(t, int64(100), balanceOf(t, store, account.ID))
	txs, err := store.GetUserTransactions(user.ID)
	require.NoError(t, err)
	assert.Empty(t, txs, "rejected create must not leave a record behind")
}

func TestCreate_Validation(t *testing.T) {
	_, svc, user, account := newFixture(t)

	tests := []struct {
		name    string
		in      CreateInput
		wantErr error
	}{
		{
			"zero amount",
			CreateInput{Amount: 0, Concept: "x", Type: models.TransactionTypeCredit, UserID: user.ID, AccountID: account.ID},
			ErrInvalidAmount,
		},
		{
			"negative amount",
			CreateInput{Amount: -5, Concept: "x", Type: models.TransactionTypeCredit, UserID: user.ID, AccountID: account.ID},
			ErrInvalidAmount,
		},
		{
			"blank concept",
			CreateInput{Amount: 10, Concept: "   ", Type: models.TransactionTypeCredit, UserID: user.ID, AccountID: account.ID},
			ErrEmptyConcept,
		},
		{
			"unknown type",
			CreateInput{Amount: 10, Concept: "x", Type: "wire", UserID: user.ID, AccountID: account.ID},
			ErrInvalidType,
		},
		{
			"exchange type reserved",
			CreateInput{Amount: 10, Concept: "x", Type: models.TransactionTypeExchange, UserID: user.ID, AccountID: account.ID},
			ErrInvalidType,
		},
		{
			"missing user",
			CreateInput{Amount: 10, Concept: "x", Type: models.TransactionTypeCredit, UserID: 999, AccountID: account.ID},
			ErrUserNotFound,
		},
		{
			"missing account",
			CreateInput{Amount: 10, Concept: "x", Type: models.TransactionTypeCredit, UserID: user.ID, AccountID: 999},
			ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_AccountOwnedByOtherUser(t *testing.T) {
	store, svc, user, _ := newFixture(t)

	other := &models.User{FirstName: "Bob", Email: "bob@example.com", Password: "x", Role: models.RoleStandard}
	require.NoError(t, store.CreateUser(other))
	otherAccount := &models.Account{UserID: other.ID, Balance: 0}
	require.NoError(t, store.CreateAccount(otherAccount))

	_, err := svc.Create(context.Background(), CreateInput{
		Amount: 10, Concept: "x", Type: models.TransactionTypeCredit,
		UserID: user.ID, AccountID: otherAccount.ID,
	})
	assert.ErrorIs(t, err, ErrAccountOwnership)
}

func TestGetByID_HidesOtherUsersRecords(t *testing.T) {
	store, svc, user, account := newFixture(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, CreateInput{
		Amount: 10, Concept: "coffee", Type: models.TransactionTypeDebit,
		UserID: user.ID, AccountID: account.ID,
	})
	require.NoError(t, err)

	other := &models.User{FirstName: "Bob", Email: "bob2@example.com", Password: "x", Role: models.RoleStandard}
	require.NoError(t, store.CreateUser(other))

	t.Run("owner sees it", func(t *testing.T) {
		got, err := svc.GetByID(ctx, tx.ID, authz.Principal{UserID: user.ID, Role: models.RoleStandard})
		require.NoError(t, err)
		assert.Equal(t, tx.ID, got.ID)
	})

	t.Run("stranger gets not found, not forbidden", func(t *testing.T) {
		_, err := svc.GetByID(ctx, tx.ID, authz.Principal{UserID: other.ID, Role: models.RoleStandard})
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("admin sees anything", func(t *testing.T) {
		got, err := svc.GetByID(ctx, tx.ID, authz.Principal{UserID: 999, Role: models.RoleAdministrador})
		require.NoError(t, err)
		assert.Equal(t, tx.ID, got.ID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, 9999, authz.Principal{UserID: user.ID, Role: models.RoleStandard})
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestUpdate_ReappliesSignedDelta(t *testing.T) {
	store, svc, user, account := newFixture(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, CreateInput{
		Amount: 50, Concept: "bonus", Type: models.TransactionTypeCredit,
		UserID: user.ID, AccountID: account.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(150), balanceOf(t, store, account.ID))

	newAmount := int64(20)
	_, err = svc.Update(ctx, tx.ID, UpdateInput{Amount: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, int64(120), balanceOf(t, store, account.ID))

	debit := models.TransactionTypeDebit
	amount := int64(30)
	_, err = svc.Update(ctx, tx.ID, UpdateInput{Type: &debit, Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, int64(70), balanceOf(t, store, account.ID))
}

func TestUpdate_RejectsNegativeOutcome(t *testing.T) {
	store, svc, user, account := newFixture(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, CreateInput{
		Amount: 60, Concept: "rent", Type: models.TransactionTypeDebit,
		UserID: user.ID, AccountID: account.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(40), balanceOf(t, store, account.ID))

	tooBig := int64(200)
	_, err = svc.Update(ctx, tx.ID, UpdateInput{Amount: &tooBig})
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// Record and balance must be exactly as before the attempt.
	assert.Equal(t, int64(40), balanceOf(t, store, account.ID))
	stored, err := store.GetTransactionByID(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), stored.Amount)
}

func TestCreateUpdateDelete_FullReversal(t *testing.T) {
	store, svc, user, account := newFixture(t)
	ctx := context.Background()
	before := balanceOf(t, store, account.ID)

	tx, err := svc.Create(ctx, CreateInput{
		Amount: 50, Concept: "refund", Type: models.TransactionTypeCredit,
		UserID: user.ID, AccountID: account.ID,
	})
	require.NoError(t, err)

	debit := models.TransactionTypeDebit
	amount := int64(20)
	_, err = svc.Update(ctx, tx.ID, UpdateInput{Type: &debit, Amount: &amount})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, tx.ID))

	assert.Equal(t, before, balanceOf(t, store, account.ID))
	_, err = store.GetTransactionByID(tx.ID)
	assert.ErrorIs(t, err, repositories.ErrTransactionNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	_, svc, _, _ := newFixture(t)
	assert.ErrorIs(t, svc.Delete(context.Background(), 404), ErrTransactionNotFound)
}

func TestDelete_MissingAccountIsInconsistency(t *testing.T) {
	store, svc, user, account := newFixture(t)
	ctx := context.Background()

	tx, err := svc.Create(ctx, CreateInput{
		Amount: 10, Concept: "x", Type: models.TransactionTypeCredit,
		UserID: user.ID, AccountID: account.ID,
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteAccount(account.ID))

	err = svc.Delete(ctx, tx.ID)
	assert.ErrorIs(t, err, ErrStorageInconsistency)

	// The record must survive the failed delete.
	_, err = store.GetTransactionByID(tx.ID)
	assert.NoError(t, err)
}

func TestListForUser_NewestFirst(t *testing.T) {
	_, svc, user, account := newFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, concept := range []string{"oldest", "middle", "newest"} {
		_, err := svc.Create(ctx, CreateInput{
			Amount: 10, Concept: concept, Date: base.AddDate(0, 0, i),
			Type: models.TransactionTypeCredit, UserID: user.ID, AccountID: account.ID,
		})
		require.NoError(t, err)
	}

	txs, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, "newest", txs[0].Concept)
	assert.Equal(t, "middle", txs[1].Concept)
	assert.Equal(t, "oldest", txs[2].Concept)
}

func TestListAll_Paged(t *testing.T) {
	_, svc, user, account := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := svc.Create(ctx, CreateInput{
			Amount: 1, Concept: "entry", Type: models.TransactionTypeCredit,
			UserID: user.ID, AccountID: account.ID,
		})
		require.NoError(t, err)
	}

	page1, totalPages, err := svc.ListAll(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.Equal(t, 2, totalPages)

	page2, _, err := svc.ListAll(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 5)

	page3, _, err := svc.ListAll(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, page3)
}

func TestConcurrentCreates_NoLostUpdate(t *testing.T) {
	store, svc, user, account := newFixture(t)

	var wg sync.WaitGroup
	inputs := []CreateInput{
		{Amount: 50, Concept: "deposit", Type: models.TransactionTypeCredit, UserID: user.ID, AccountID: account.ID},
		{Amount: 30, Concept: "purchase", Type: models.TransactionTypeDebit, UserID: user.ID, AccountID: account.ID},
	}
	errs := make([]error, len(inputs))
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in CreateInput) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), in)
		}(i, in)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(120), balanceOf(t, store, account.ID))
}
