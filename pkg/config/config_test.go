package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, CacheNone, cfg.Cache.Driver)
	assert.True(t, cfg.Behavior.FallbackEnabled)
	assert.Equal(t, 4, cfg.Behavior.SyncConcurrency)
	assert.Equal(t, "127.0.0.1:8000", cfg.DemoAddr())
	assert.True(t, cfg.Demo.Seed)
	assert.Empty(t, cfg.Demo.Token)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MEETMATE_ENV", "production")
	t.Setenv("MEETMATE_API_BASE_URL", "https://meetmate.example.com/api/v1")
	t.Setenv("MEETMATE_API_TOKEN", "secret")
	t.Setenv("MEETMATE_API_TIMEOUT", "3s")
	t.Setenv("MEETMATE_CACHE_DRIVER", "memory")
	t.Setenv("MEETMATE_FALLBACK_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://meetmate.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, CacheMemory, cfg.Cache.Driver)
	assert.False(t, cfg.Behavior.FallbackEnabled)
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(c *Config){
		"env":          func(c *Config) { c.Env = "staging" },
		"relative url": func(c *Config) { c.API.BaseURL = "/api/v1" },
		"timeout":      func(c *Config) { c.API.Timeout = 0 },
		"output":       func(c *Config) { c.Output = "xml" },
		"cache":        func(c *Config) { c.Cache.Driver = "memcached" },
		"concurrency":  func(c *Config) { c.Behavior.SyncConcurrency = 0 },
		"watch":        func(c *Config) { c.Behavior.WatchInterval = 10 * time.Millisecond },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func validConfig() *Config {
	return &Config{
		Env:    EnvDevelopment,
		Output: OutputText,
		API: APIConfig{
			BaseURL: "http://localhost:8000/api/v1",
			Timeout: time.Second,
		},
		Cache:    CacheConfig{Driver: CacheNone},
		Behavior: BehaviorConfig{SyncConcurrency: 1, WatchInterval: time.Second},
	}
}
