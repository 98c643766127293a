package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sddkit/pkg/cache"
	"github.com/matzehuels/sddkit/pkg/errors"
	"github.com/matzehuels/sddkit/pkg/render/dot"
	"github.com/matzehuels/sddkit/pkg/server"
)

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the on-disk configuration:
//
//	[labels]
//	"1" = "rain"
//	"-1" = "dry"
//	"true" = "1"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[server]
//	addr = ":9000"
type Config struct {
	Labels map[string]string `toml:"labels"`
	Cache  CacheConfig       `toml:"cache"`
	Server ServerConfig      `toml:"server"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
	TTL      string `toml:"ttl"`
}

// ServerConfig configures `sddkit serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: backendFile},
		Server: ServerConfig{Addr: server.DefaultAddr},
	}
}

// LoadConfig reads the config file at path. An empty path reads the default
// location, which may be absent; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend names and durations.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q must be file, redis or none", c.Cache.Backend)
	}
	if c.Cache.TTL != "" {
		d, err := time.ParseDuration(c.Cache.TTL)
		if err != nil || d < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl %q is not a valid duration", c.Cache.TTL)
		}
	}
	return nil
}

// labels returns the configured labels merged with overrides.
func (c *Config) labels(overrides map[string]string) dot.Labels {
	if len(c.Labels) == 0 && len(overrides) == 0 {
		return nil
	}
	l := make(dot.Labels, len(c.Labels)+len(overrides))
	for k, v := range c.Labels {
		l[k] = v
	}
	for k, v := range overrides {
		l[k] = v
	}
	return l
}

// ttl returns the cache lifetime; Validate has already checked the string.
func (c CacheConfig) ttl() time.Duration {
	if c.TTL == "" {
		return cache.DefaultTTL
	}
	d, _ := time.ParseDuration(c.TTL)
	return d
}
