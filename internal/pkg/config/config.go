package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
//
// APIKey is deliberately not marked required: the server starts without it
// and every operation that touches phone validation fails with a
// configuration error instead, matching the API's per-operation credential
// check.
type Config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr  string `env:"SERVER_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9091"`

	APIKey        string        `env:"API_KEY"`
	PhoneAPIURL   string        `env:"PHONE_API_URL" envDefault:"https://api.api-ninjas.com/v1/validatephone"`
	TimeAPIURL    string        `env:"WORLDTIME_API_URL" envDefault:"https://api.api-ninjas.com/v1/worldtime"`
	ClientTimeout time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo"` // mongo or postgres
	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB     string `env:"MONGO_DB" envDefault:"contact_hub"`
	PostgresURL string `env:"POSTGRES_URL"`

	RedisAddr          string        `env:"REDIS_ADDR"` // empty disables the validation cache
	ValidationCacheTTL time.Duration `env:"VALIDATION_CACHE_TTL" envDefault:"5m"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
