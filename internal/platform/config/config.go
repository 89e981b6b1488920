// Package config builds the process configuration once at startup. Everything
// downstream receives an explicit Config (or a slice of it); nothing reads the
// environment after Load returns.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full service configuration.
type Config struct {
	Addr     string `env:"TAPROOM_ADDR" envDefault:":8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// AdminSecret is the moderation credential compared verbatim against the
	// approval request's secret field.
	AdminSecret string `env:"ADMIN_SECRET"`

	// LocalLogPath is the read-only fallback copy of the backing file used
	// for listings when the remote store is unreachable.
	LocalLogPath string `env:"LOCAL_LOG_PATH" envDefault:"data/commits.md"`

	GitHub GitHubOptions
	Redis  RedisOptions
	Kafka  KafkaOptions

	// Approval attempt limiting (active only when Redis is configured).
	ApproveRateLimit  int           `env:"APPROVE_RATE_LIMIT" envDefault:"10"`
	ApproveRateWindow time.Duration `env:"APPROVE_RATE_WINDOW" envDefault:"1m"`
}

// GitHubOptions locates the backing file on the hosting API.
type GitHubOptions struct {
	APIBaseURL string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	Token      string        `env:"GITHUB_TOKEN"`
	Owner      string        `env:"GITHUB_OWNER"`
	Repo       string        `env:"GITHUB_REPO"`
	FilePath   string        `env:"GITHUB_FILE_PATH" envDefault:"commits.md"`
	Branch     string        `env:"GITHUB_BRANCH" envDefault:"main"`
	Timeout    time.Duration `env:"GITHUB_TIMEOUT" envDefault:"10s"`
}

// RedisOptions configures the optional Redis client. An empty URL disables it.
type RedisOptions struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaOptions configures the optional audit publisher. No brokers disables it.
type KafkaOptions struct {
	Brokers    []string `env:"KAFKA_BROKERS"`
	AuditTopic string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"taproom.audit"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
