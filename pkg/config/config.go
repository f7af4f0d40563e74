package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "MEETMATE"

// Environments
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Cache drivers
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Output   string `envconfig:"OUTPUT" default:"text"`

	API      APIConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Behavior BehaviorConfig
	Demo     DemoConfig
}

// APIConfig holds backend connection settings
type APIConfig struct {
	BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8000/api/v1"`
	Token   string        `envconfig:"API_TOKEN"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
}

// CacheConfig controls the optional response cache
type CacheConfig struct {
	Driver string        `envconfig:"CACHE_DRIVER" default:"none"`
	TTL    time.Duration `envconfig:"CACHE_TTL" default:"30s"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// BehaviorConfig holds view and workflow tuning
type BehaviorConfig struct {
	FallbackEnabled bool          `envconfig:"FALLBACK_ENABLED" default:"true"`
	WatchInterval   time.Duration `envconfig:"WATCH_INTERVAL" default:"5s"`
	SyncConcurrency int           `envconfig:"SYNC_CONCURRENCY" default:"4"`
}

// DemoConfig holds the demo backend server configuration
type DemoConfig struct {
	Host            string        `envconfig:"DEMO_HOST" default:"127.0.0.1"`
	Port            string        `envconfig:"DEMO_PORT" default:"8000"`
	ShutdownTimeout time.Duration `envconfig:"DEMO_SHUTDOWN_TIMEOUT" default:"10s"`
	Token           string        `envconfig:"DEMO_TOKEN"`
	Seed            bool          `envconfig:"DEMO_SEED" default:"true"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("%s_ENV must be %q or %q", envPrefix, EnvDevelopment, EnvProduction)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s_API_BASE_URL is not an absolute URL: %q", envPrefix, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%s_API_TIMEOUT must be positive", envPrefix)
	}
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%s_OUTPUT must be text, json or yaml", envPrefix)
	}
	switch c.Cache.Driver {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("%s_CACHE_DRIVER must be none, memory or redis", envPrefix)
	}
	if c.Behavior.SyncConcurrency < 1 {
		return fmt.Errorf("%s_SYNC_CONCURRENCY must be at least 1", envPrefix)
	}
	if c.Behavior.WatchInterval < time.Second {
		return fmt.Errorf("%s_WATCH_INTERVAL must be at least 1s", envPrefix)
	}
	return nil
}

// IsProduction reports whether the client runs against production
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// DemoAddr returns the demo server listen address
func (c *Config) DemoAddr() string {
	return fmt.Sprintf("%s:%s", c.Demo.Host, c.Demo.Port)
}
