package exchange

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walletcore/internal/models"
	"walletcore/internal/repositories"
)

func newFixture(t *testing.T) (*repositories.Memory, Service, *models.User, *models.Product) {
	t.Helper()
	store := repositories.NewMemory()

	user := &models.User{FirstName: "Ana", Email: "ana@example.com", Password: "x", Points: 100, Role: models.RoleStandard}
	require.NoError(t, store.CreateUser(user))
	require.NoError(t, store.CreateAccount(&models.Account{UserID: user.ID}))

	product := &models.Product{Name: "mug", CostInPoints: 40}
	require.NoError(t, store.CreateProduct(product))

	return store, NewService(store), user, product
}

func TestExchange_CommitsDebitAndEntry(t *testing.T) {
	store, svc, user, product := newFixture(t)

	result, err := svc.Exchange(context.Background(), user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, MsgExchanged, result.Message)

	got, err := store.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60), got.Points, "points decrement by exactly the cost")

	txs, err := store.GetUserTransactions(user.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1, "exactly one ledger entry per committed exchange")
	assert.Equal(t, models.TransactionTypeExchange, txs[0].Type)
	assert.Equal(t, product.CostInPoints, txs[0].Amount)
	assert.Contains(t, txs[0].Concept, product.Name)
}

func TestExchange_InsufficientPointsLeavesNoTrace(t *testing.T) {
	store, svc, user, _ := newFixture(t)

	expensive := &models.Product{Name: "bike", CostInPoints: 5000}
	require.NoError(t, store.CreateProduct(expensive))

	result, err := svc.Exchange(context.Background(), user.ID, expensive.ID)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.False(t, result.Success)
	assert.Equal(t, MsgInsufficientPoints, result.Message)

	got, err := store.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Points)

	txs, err := store.GetUserTransactions(user.ID)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestExchange_ExactCost(t *testing.T) {
	store, svc, user, _ := newFixture(t)

	exact := &models.Product{Name: "cap", CostInPoints: 100}
	require.NoError(t, store.CreateProduct(exact))

	result, err := svc.Exchange(context.Background(), user.ID, exact.ID)
	require.NoError(t, err)
	assert.True(t, result.Success)

	got, err := store.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Points)
}

func TestExchange_Rejections(t *testing.T) {
	store, svc, user, product := newFixture(t)

	t.Run("missing user", func(t *testing.T) {
		result, err := svc.Exchange(context.Background(), 999, product.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Equal(t, MsgUserNotFound, result.Message)
	})

	t.Run("missing product", func(t *testing.T) {
		result, err := svc.Exchange(context.Background(), user.ID, 999)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Equal(t, MsgProductNotFound, result.Message)
	})

	t.Run("user without account", func(t *testing.T) {
		loner := &models.User{FirstName: "Bob", Email: "bob@example.com", Password: "x", Points: 100}
		require.NoError(t, store.CreateUser(loner))

		result, err := svc.Exchange(context.Background(), loner.ID, product.ID)
		assert.ErrorIs(t, err, ErrNoAccount)
		assert.Equal(t, MsgNoAccount, result.Message)
	})
}
