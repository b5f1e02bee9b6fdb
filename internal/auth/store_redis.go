package auth

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vantagedating/adminctl/internal/config"
	"github.com/vantagedating/adminctl/internal/errors"
)

// RedisStore keeps the token in redis, shared between hosts.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore stores the token under prefix+"adminToken". A zero ttl
// keeps it until Delete.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = config.DefaultRedisPrefix
	}
	return &RedisStore{
		client: client,
		key:    prefix + TokenKey,
		ttl:    ttl,
	}
}

// Key returns the redis key holding the token.
func (r *RedisStore) Key() string {
	return r.key
}

// Load reads the token.
func (r *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key).Result()
	if stderrors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStoreRead, "failed to read token from redis", err)
	}
	if token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}

// Save writes the token with the configured TTL.
func (r *RedisStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.NewInputRequiredError("token")
	}
	if err := r.client.Set(ctx, r.key, token, r.ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to write token to redis", err)
	}
	return nil
}

// Delete removes the token.
func (r *RedisStore) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreDelete, "failed to delete token from redis", err)
	}
	return nil
}

// Close closes the redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
