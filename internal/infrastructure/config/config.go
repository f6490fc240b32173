package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the immutable process configuration, read once at startup.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT        JWTConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	Cache      CacheConfig
	TaskEvents TaskEventsConfig
	RateLimit  RateLimitConfig
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET, required"`
	TTL    time.Duration `env:"JWT_TTL,    default=2h"`
	Issuer string        `env:"JWT_ISSUER, default=ecoquest-api"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ecoquest"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type CacheConfig struct {
	TTL time.Duration `env:"CACHE_TTL, default=10m"`
}

type TaskEventsConfig struct {
	Channel string `env:"TASK_EVENTS_CHANNEL, default=tasks.created"`
	Workers int    `env:"TASK_EVENTS_WORKERS, default=4"`
}

// RateLimitConfig throttles the public auth endpoints per client IP.
// AUTH_RATE_LIMIT_REQUESTS=0 disables it.
type RateLimitConfig struct {
	Requests int           `env:"AUTH_RATE_LIMIT_REQUESTS, default=10"`
	Window   time.Duration `env:"AUTH_RATE_LIMIT_WINDOW,   default=1m"`
	Burst    int           `env:"AUTH_RATE_LIMIT_BURST,    default=10"`
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l. Tests pass an envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
