// Package config loads adminctl settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vantagedating/adminctl/internal/errors"
	"github.com/vantagedating/adminctl/internal/log"
)

const (
	DefaultAPIURL      = "http://localhost:5000"
	DefaultTimeout     = 30 * time.Second
	DefaultRedisPrefix = "adminctl:"

	dirName         = ".adminctl"
	fileName        = "config.yaml"
	credentialsName = "credentials.json"
)

// Token store backends.
const (
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig          = "ADMINCTL_CONFIG"
	EnvAPIURL          = "ADMINCTL_API_URL"
	EnvLogLevel        = "ADMINCTL_LOG_LEVEL"
	EnvLogFormat       = "ADMINCTL_LOG_FORMAT"
	EnvTokenStore      = "ADMINCTL_TOKEN_STORE"
	EnvCredentialsFile = "ADMINCTL_CREDENTIALS_FILE"
	EnvRedisAddr       = "ADMINCTL_REDIS_ADDR"
	EnvRedisPassword   = "ADMINCTL_REDIS_PASSWORD"
	EnvRedisDB         = "ADMINCTL_REDIS_DB"
	EnvTimeout         = "ADMINCTL_TIMEOUT"
	EnvStrictContract  = "ADMINCTL_STRICT_CONTRACT"
	EnvMetricsFile     = "ADMINCTL_METRICS_FILE"
)

// Config is the full adminctl configuration.
type Config struct {
	APIURL         string        `json:"api_url" yaml:"api_url"`
	Timeout        time.Duration `json:"timeout" yaml:"timeout"`
	StrictContract bool          `json:"strict_contract" yaml:"strict_contract"`
	MetricsFile    string        `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
	Log            Log           `json:"log" yaml:"log"`
	TokenStore     TokenStore    `json:"token_store" yaml:"token_store"`
}

// Log configures diagnostic output on stderr.
type Log struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// TokenStore selects where the session token is persisted.
type TokenStore struct {
	Backend string `json:"backend" yaml:"backend"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Redis   Redis  `json:"redis" yaml:"redis"`
}

// Redis configures the redis token store.
type Redis struct {
	Addr     string        `json:"addr" yaml:"addr"`
	Password string        `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int           `json:"db" yaml:"db"`
	Prefix   string        `json:"prefix" yaml:"prefix"`
	TTL      time.Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
}

// Dir returns ~/.adminctl.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, dirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), fileName)
}

// DefaultCredentialsPath returns the default file token store location.
func DefaultCredentialsPath() string {
	return filepath.Join(Dir(), credentialsName)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
		Log: Log{
			Level:  "warn",
			Format: "text",
		},
		TokenStore: TokenStore{
			Backend: StoreFile,
			Path:    DefaultCredentialsPath(),
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: DefaultRedisPrefix,
			},
		},
	}
}

// ResolvePath picks the config file: explicit path, then ADMINCTL_CONFIG,
// then the default location.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads path over the defaults, applies the environment and validates.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads path over the defaults without environment overrides or
// validation.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeConfigRead, fmt.Sprintf("failed to read config file %s", path), err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigRead, fmt.Sprintf("failed to parse config file %s", path), err).
			WithSuggestion("Check the YAML syntax; durations are written like 30s or 5m")
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ADMINCTL_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(EnvAPIURL, &c.APIURL)
	str(EnvLogLevel, &c.Log.Level)
	str(EnvLogFormat, &c.Log.Format)
	str(EnvTokenStore, &c.TokenStore.Backend)
	str(EnvCredentialsFile, &c.TokenStore.Path)
	str(EnvRedisAddr, &c.TokenStore.Redis.Addr)
	str(EnvRedisPassword, &c.TokenStore.Redis.Password)
	str(EnvMetricsFile, &c.MetricsFile)

	if v, ok := lookup(EnvRedisDB); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewConfigInvalidError(fmt.Sprintf("%s must be an integer, got %q", EnvRedisDB, v))
		}
		c.TokenStore.Redis.DB = db
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.NewConfigInvalidError(fmt.Sprintf("%s must be a duration, got %q", EnvTimeout, v))
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvStrictContract); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewConfigInvalidError(fmt.Sprintf("%s must be true or false, got %q", EnvStrictContract, v))
		}
		c.StrictContract = strict
	}
	return nil
}

// Validate checks the configuration for values the console cannot use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NewConfigInvalidError(fmt.Sprintf("api_url must be an http(s) URL, got %q", c.APIURL))
	}

	if c.Timeout <= 0 {
		return errors.NewConfigInvalidError(fmt.Sprintf("timeout must be positive, got %s", c.Timeout))
	}

	if !log.ValidLevel(c.Log.Level) {
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown log level %q", c.Log.Level)).
			WithSuggestion("Use one of: debug, info, warn, error")
	}
	if !log.ValidFormat(c.Log.Format) {
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown log format %q", c.Log.Format)).
			WithSuggestion("Use one of: text, json")
	}

	switch c.TokenStore.Backend {
	case StoreFile:
		if strings.TrimSpace(c.TokenStore.Path) == "" {
			return errors.NewConfigInvalidError("token_store.path is required for the file backend")
		}
	case StoreRedis:
		if c.TokenStore.Redis.Addr == "" {
			return errors.NewConfigInvalidError("token_store.redis.addr is required for the redis backend")
		}
		if c.TokenStore.Redis.DB < 0 {
			return errors.NewConfigInvalidError("token_store.redis.db must not be negative")
		}
		if c.TokenStore.Redis.TTL < 0 {
			return errors.NewConfigInvalidError("token_store.redis.ttl must not be negative")
		}
	case StoreMemory:
	default:
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown token_store.backend %q", c.TokenStore.Backend)).
			WithSuggestion("Use one of: file, redis, memory")
	}

	return nil
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	out := *c
	if out.TokenStore.Redis.Password != "" {
		out.TokenStore.Redis.Password = "********"
	}
	return &out
}

// Save writes c to path as YAML, creating the directory.
func Save(c *Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to encode config", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeConfigRead, "failed to create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfigRead, fmt.Sprintf("failed to write config file %s", path), err)
	}
	return nil
}
