package novacore

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ──────────────────────────────────────────────
// Configuration
// ──────────────────────────────────────────────

// Config is the process configuration, loaded from the environment with an
// optional .env file on top.
type Config struct {
	// Store selects the persistence backend: memory, file, redis, sqlite,
	// postgres.
	Store string `env:"NOVA_STORE" envDefault:"memory"`

	// StatePath is the directory for the file backend.
	StatePath string `env:"NOVA_STATE_PATH" envDefault:"./nova-state"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `env:"NOVA_SQLITE_PATH" envDefault:"./nova.db"`

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string `env:"NOVA_POSTGRES_DSN"`

	RedisAddr     string `env:"NOVA_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"NOVA_REDIS_PASSWORD"`
	RedisDB       int    `env:"NOVA_REDIS_DB" envDefault:"0"`

	LLMBaseURL string        `env:"NOVA_LLM_BASE_URL" envDefault:"http://localhost:11434/v1"`
	LLMAPIKey  string        `env:"NOVA_LLM_API_KEY"`
	LLMModel   string        `env:"NOVA_LLM_MODEL" envDefault:"llama3"`
	LLMTimeout time.Duration `env:"NOVA_LLM_TIMEOUT" envDefault:"30s"`

	Baseline     string `env:"NOVA_BASELINE" envDefault:"curious"`
	Stage        string `env:"NOVA_STAGE" envDefault:"friend"`
	PersonaBrief string `env:"NOVA_PERSONA"`
	AllowNSFW    bool   `env:"NOVA_ALLOW_NSFW" envDefault:"false"`

	// Seed fixes the RNG for reproducible runs; 0 seeds from the clock.
	Seed int64 `env:"NOVA_SEED" envDefault:"0"`

	TickInterval time.Duration `env:"NOVA_TICK_INTERVAL" envDefault:"5s"`
	LogLevel     string        `env:"NOVA_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads .env (if present) and the environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
