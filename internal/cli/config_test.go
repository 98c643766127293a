package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/sddkit/pkg/cache"
	"github.com/matzehuels/sddkit/pkg/errors"
	"github.com/matzehuels/sddkit/pkg/render/dot"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigMissingExplicit(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[labels]
"1" = "rain"
"-1" = "dry"
"true" = "1"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/0"
prefix = "sdd:"
ttl = "24h"

[server]
addr = ":9000"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	want := &Config{
		Labels: map[string]string{"1": "rain", "-1": "dry", "true": "1"},
		Cache: CacheConfig{
			Backend:  "redis",
			RedisURL: "redis://localhost:6379/0",
			Prefix:   "sdd:",
			TTL:      "24h",
		},
		Server: ServerConfig{Addr: ":9000"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.Cache.ttl(); got != 24*time.Hour {
		t.Errorf("ttl() = %v, want 24h", got)
	}
}

func TestLoadConfigDefaultsSurvivePartialFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[labels]\n\"2\" = \"b\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != backendFile || cfg.Server.Addr == "" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Cache.ttl() != cache.DefaultTTL {
		t.Errorf("ttl() = %v, want default", cfg.Cache.ttl())
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[cache\n"},
		{"backend", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n"},
		{"ttl", "[cache]\nttl = \"soon\"\n"},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestConfigLabels(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.labels(nil) != nil {
		t.Error("labels() without entries should be nil")
	}

	cfg.Labels = map[string]string{"1": "a", "2": "b"}
	got := cfg.labels(map[string]string{"2": "B", dot.KeyTrue: "T"})
	want := dot.Labels{"1": "a", "2": "B", dot.KeyTrue: "T"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}
