package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantagedating/adminctl/internal/errors"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, StoreFile, cfg.TokenStore.Backend)
	assert.Equal(t, DefaultRedisPrefix, cfg.TokenStore.Redis.Prefix)
	assert.Equal(t, "credentials.json", filepath.Base(cfg.TokenStore.Path))
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url: https://api.vantage.test
timeout: 5s
token_store:
  backend: redis
  redis:
    addr: redis.internal:6379
    ttl: 12h
`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.vantage.test", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, StoreRedis, cfg.TokenStore.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.TokenStore.Redis.Addr)
	assert.Equal(t, 12*time.Hour, cfg.TokenStore.Redis.TTL)
	assert.Equal(t, DefaultRedisPrefix, cfg.TokenStore.Redis.Prefix, "unset keys keep defaults")
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [nope"), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeConfigRead))
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvAPIURL:          "https://staging.vantage.test",
		EnvLogLevel:        "debug",
		EnvTokenStore:      "memory",
		EnvRedisDB:         "3",
		EnvTimeout:         "1m",
		EnvStrictContract:  "true",
		EnvMetricsFile:     "/tmp/adminctl.prom",
		EnvCredentialsFile: "",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://staging.vantage.test", cfg.APIURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, StoreMemory, cfg.TokenStore.Backend)
	assert.Equal(t, 3, cfg.TokenStore.Redis.DB)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.True(t, cfg.StrictContract)
	assert.Equal(t, "/tmp/adminctl.prom", cfg.MetricsFile)
	assert.Equal(t, DefaultCredentialsPath(), cfg.TokenStore.Path, "empty values are ignored")
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"redis db", map[string]string{EnvRedisDB: "zero"}},
		{"timeout", map[string]string{EnvTimeout: "30"}},
		{"strict contract", map[string]string{EnvStrictContract: "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().ApplyEnv(envMap(tt.env))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeConfigInvalid))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"not a url", func(c *Config) { c.APIURL = "localhost:5000" }},
		{"ftp url", func(c *Config) { c.APIURL = "ftp://files.vantage.test" }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"unknown backend", func(c *Config) { c.TokenStore.Backend = "keychain" }},
		{"file without path", func(c *Config) { c.TokenStore.Path = " " }},
		{"redis without addr", func(c *Config) {
			c.TokenStore.Backend = StoreRedis
			c.TokenStore.Redis.Addr = ""
		}},
		{"redis negative ttl", func(c *Config) {
			c.TokenStore.Backend = StoreRedis
			c.TokenStore.Redis.TTL = -time.Minute
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeConfigInvalid))
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://file.vantage.test\n"), 0o600))
	t.Setenv(EnvAPIURL, "https://env.vantage.test")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.vantage.test", cfg.APIURL)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/adminctl.yaml")
	assert.Equal(t, "/explicit.yaml", ResolvePath("/explicit.yaml"))
	assert.Equal(t, "/etc/adminctl.yaml", ResolvePath(""))

	t.Setenv(EnvConfig, "")
	assert.Equal(t, DefaultPath(), ResolvePath(""))
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.APIURL = "https://api.vantage.test"
	cfg.TokenStore.Redis.TTL = 2 * time.Hour

	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.TokenStore.Redis.Password = "s3cret"

	out := cfg.Redacted()
	assert.Equal(t, "********", out.TokenStore.Redis.Password)
	assert.Equal(t, "s3cret", cfg.TokenStore.Redis.Password)
}
