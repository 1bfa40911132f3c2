package repositories

import (
	"context"
	"time"

	"walletcore/internal/models"
)

// Default cache expiration time
const DefaultCacheExpiration = 5 * time.Minute

// CacheRepository defines the cache operations used by the ledger
// repository for read-through lookups of hot records.
type CacheRepository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	SetUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error

	GetAccount(ctx context.Context, id uint) (*models.Account, error)
	SetAccount(ctx context.Context, account *models.Account) error
	DeleteAccount(ctx context.Context, id uint) error
}

// NoopCache is used when caching is disabled (tests, dev without Redis).
type NoopCache struct{}

func (NoopCache) GetUser(context.Context, uint) (*models.User, error) { return nil, ErrCacheMiss }
func (NoopCache) SetUser(context.Context, *models.User) error         { return nil }
func (NoopCache) DeleteUser(context.Context, uint) error              { return nil }

func (NoopCache) GetAccount(context.Context, uint) (*models.Account, error) {
	return nil, ErrCacheMiss
}
func (NoopCache) SetAccount(context.Context, *models.Account) error { return nil }
func (NoopCache) DeleteAccount(context.Context, uint) error         { return nil }
