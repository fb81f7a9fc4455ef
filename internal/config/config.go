package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	// Common
	Env      string `env:"ENV" env-default:"local"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	// API
	Port            string        `env:"PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	// Storage
	DatabaseURL   string `env:"DATABASE_URL"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" env-default:"true"`
	// Upstreams
	Provider        string        `env:"PROVIDER" env-default:"http"`
	RateAPIBase     string        `env:"RATE_API_BASE" env-default:"https://api.exchangerate-api.com/v4/latest/"`
	CryptoAPIBase   string        `env:"CRYPTO_API_BASE" env-default:"https://api.coinbase.com"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"5s"`
	UpstreamRetries uint64        `env:"UPSTREAM_RETRIES" env-default:"0"`
	// Redis (idempotency)
	IdempotencyBackend string        `env:"IDEMPOTENCY_BACKEND" env-default:"none"`
	RedisAddr          string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB" env-default:"0"`
	RedisTTL           time.Duration `env:"IDEMPOTENCY_TTL" env-default:"24h"`
}

// Load reads environment variables and applies defaults.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
