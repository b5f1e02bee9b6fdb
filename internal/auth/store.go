package auth

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/vantagedating/adminctl/internal/config"
	"github.com/vantagedating/adminctl/internal/errors"
)

// TokenKey is the name the token is stored under in every backend.
const TokenKey = "adminToken"

// ErrTokenNotFound is returned by TokenStore.Load when nothing is stored.
var ErrTokenNotFound = stderrors.New("no stored token")

// TokenStore persists the session token outside process memory.
//
// Implementations must be safe for concurrent use. Delete is idempotent.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// MemoryStore keeps the token in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored token.
func (m *MemoryStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", ErrTokenNotFound
	}
	return m.token, nil
}

// Save stores token.
func (m *MemoryStore) Save(_ context.Context, token string) error {
	if token == "" {
		return errors.NewInputRequiredError("token")
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

// Delete removes the stored token.
func (m *MemoryStore) Delete(context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}

// Closer is implemented by stores holding a connection.
type Closer interface {
	Close() error
}

// OpenStore builds the token store selected by cfg. A redis store is pinged
// before it is returned.
func OpenStore(ctx context.Context, cfg config.TokenStore) (TokenStore, error) {
	switch cfg.Backend {
	case "", config.StoreFile:
		path := cfg.Path
		if path == "" {
			path = config.DefaultCredentialsPath()
		}
		return NewFileStore(path), nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close() //nolint:errcheck // connection never came up
			return nil, errors.Wrap(errors.ErrCodeStoreConnect,
				fmt.Sprintf("failed to connect to redis at %s", cfg.Redis.Addr), err).
				WithSuggestion("Check token_store.redis.addr or use --ephemeral")
		}
		return NewRedisStore(client, cfg.Redis.Prefix, cfg.Redis.TTL), nil

	case config.StoreMemory:
		return NewMemoryStore(), nil

	default:
		return nil, errors.NewConfigInvalidError(fmt.Sprintf("unknown token_store.backend %q", cfg.Backend))
	}
}

// CloseStore closes store if it holds a connection.
func CloseStore(store TokenStore) error {
	if c, ok := store.(Closer); ok {
		return c.Close()
	}
	return nil
}
