package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
}

// BackendConfig locates the external hospital API the portal fronts.
type BackendConfig struct {
	BaseURL string        `env:"BACKEND_BASE_URL, default=http://localhost:3000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT,  default=10s"`
}

type SessionConfig struct {
	// TTL bounds the durable lifetime of a session record.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
	// VerifyInterval is how often the janitor re-checks cached tokens
	// against the backend. Zero disables the sweep.
	VerifyInterval time.Duration `env:"SESSION_VERIFY_INTERVAL, default=15m"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
