// Package cache stores computed results keyed by content hashes.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// All backends implement [Cache]. Entries carry an optional TTL; a zero TTL
// never expires.
//
// # Keys
//
// A [Keyer] builds keys from content hashes, so a changed circuit file or
// weight table never hits a stale entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.CountKey(cache.Hash(circuit), "sdd", weights.Hash())
//
// [ScopedKeyer] prefixes every key, e.g. with the build version, so results
// from different releases do not mix.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss
	// (hit == false, err == nil).
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. ttl <= 0 stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is the lifetime of cached results unless configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// DefaultDir returns the default file cache directory, ~/.cache/sddkit.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "sddkit"), nil
}
