package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"walletcore/internal/models"
)

// ErrCacheMiss is returned when a key is not present in the cache.
var ErrCacheMiss = errors.New("cache miss")

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisCache implements CacheRepository on top of go-redis.
// Records are stored as JSON under typed key prefixes.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func userKey(id uint) string    { return fmt.Sprintf("user:%d", id) }
func accountKey(id uint) string { return fmt.Sprintf("account:%d", id) }

func (c *RedisCache) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, userKey(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *RedisCache) SetUser(ctx context.Context, user *models.User) error {
	return c.set(ctx, userKey(user.ID), user)
}

func (c *RedisCache) DeleteUser(ctx context.Context, id uint) error {
	return c.client.Del(ctx, userKey(id)).Err()
}

func (c *RedisCache) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := c.get(ctx, accountKey(id), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *RedisCache) SetAccount(ctx context.Context, account *models.Account) error {
	return c.set(ctx, accountKey(account.ID), account)
}

func (c *RedisCache) DeleteAccount(ctx context.Context, id uint) error {
	return c.client.Del(ctx, accountKey(id)).Err()
}

func (c *RedisCache) get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, DefaultCacheExpiration).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
