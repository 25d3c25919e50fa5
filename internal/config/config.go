package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	AIAPIKey  string `envconfig:"AI_API_KEY"`
	AIBaseURL string `envconfig:"AI_BASE_URL"`

	EmbedModel string `envconfig:"EMBED_MODEL" default:"text-embedding-3-small"`
	ChatModel  string `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`

	MaxPages      int `envconfig:"MAX_PAGES" default:"10"`
	MaxChunkChars int `envconfig:"MAX_CHUNK_CHARS" default:"1500"`

	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"10m"`

	SnapshotPath string `envconfig:"SNAPSHOT_PATH" default:"data/embeddings.json"`

	SentryDSN string `envconfig:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("SITECHAT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasAI() bool {
	return c.AIAPIKey != ""
}
