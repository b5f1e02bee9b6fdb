package auth

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantagedating/adminctl/internal/config"
	"github.com/vantagedating/adminctl/internal/errors"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// exerciseStore runs the behaviour every TokenStore shares.
func exerciseStore(t *testing.T, store TokenStore) {
	ctx := context.Background()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, store.Save(ctx, "token-1"))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-1", got)

	require.NoError(t, store.Save(ctx, "token-2"))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-2", got)

	require.NoError(t, store.Delete(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	require.NoError(t, store.Delete(ctx), "delete is idempotent")

	err = store.Save(ctx, "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInputRequired))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	exerciseStore(t, NewFileStore(filepath.Join(t.TempDir(), "credentials.json")))
}

func TestRedisStore(t *testing.T) {
	_, client := newTestRedis(t)
	exerciseStore(t, NewRedisStore(client, "", 0))
}

func TestFileStore_Layout(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".adminctl")
	path := filepath.Join(dir, "credentials.json")
	store := NewFileStore(path)
	saved := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return saved }

	require.NoError(t, store.Save(context.Background(), "abc.def.ghi"))

	dirInfo, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dirInfo.Mode().Perm())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "abc.def.ghi", raw[TokenKey])
	assert.Equal(t, "2026-02-01T09:30:00Z", raw["saved_at"])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestFileStore_EmptyTokenIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"adminToken":""}`), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenNotFound)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStoreRead))
}

func TestRedisStore_KeyAndTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, "ops:", 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "tok"))
	assert.Equal(t, "ops:adminToken", store.Key())

	got, err := mr.Get("ops:adminToken")
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
	assert.Equal(t, 30*time.Minute, mr.TTL("ops:adminToken"))

	mr.FastForward(31 * time.Minute)
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	_, client := newTestRedis(t)
	assert.Equal(t, "adminctl:adminToken", NewRedisStore(client, "", 0).Key())
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, "", 0)
	mr.Close()

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeStoreRead))

	err = store.Save(context.Background(), "tok")
	assert.True(t, errors.HasCode(err, errors.ErrCodeStoreWrite))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "creds.json")
		store, err := OpenStore(ctx, config.TokenStore{Backend: config.StoreFile, Path: path})
		require.NoError(t, err)
		fs, ok := store.(*FileStore)
		require.True(t, ok)
		assert.Equal(t, path, fs.Path())
		assert.NoError(t, CloseStore(store))
	})

	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(ctx, config.TokenStore{Backend: config.StoreMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, err := OpenStore(ctx, config.TokenStore{
			Backend: config.StoreRedis,
			Redis:   config.Redis{Addr: mr.Addr(), Prefix: "test:"},
		})
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, "tok"))
		assert.True(t, mr.Exists("test:adminToken"))
		assert.NoError(t, CloseStore(store))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := OpenStore(ctx, config.TokenStore{Backend: config.StoreRedis, Redis: config.Redis{Addr: addr}})
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.ErrCodeStoreConnect))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenStore(ctx, config.TokenStore{Backend: "keychain"})
		assert.True(t, errors.HasCode(err, errors.ErrCodeConfigInvalid))
	})
}
