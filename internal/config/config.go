package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"5000"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// DatabaseURL points at the Postgres instance holding the pgvector
	// schema-chunk collection.
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// AnalyticsDSN is the MySQL DSN of the analytics database that
	// generated queries execute against. Optional: without it the server
	// only offers the SQL-only endpoints.
	AnalyticsDSN string `envconfig:"ANALYTICS_DSN"`

	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
	ChatModel      string `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`
	EmbeddingModel string `envconfig:"EMBEDDING_MODEL"`

	// Retrieval defaults for the schema retriever.
	TopK              int     `envconfig:"TOP_K" default:"3"`
	DistanceThreshold float64 `envconfig:"DISTANCE_THRESHOLD" default:"1.75"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("ASKDB", &cfg); err != nil {
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

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasAnalyticsDB() bool {
	return c.AnalyticsDSN != ""
}
