package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Game log sources.
const (
	SourceCSV        = "csv"
	SourceClickHouse = "clickhouse"
	SourcePostgres   = "postgres"
)

// Model sources.
const (
	ModelFile   = "file"
	ModelRedis  = "redis"
	ModelRemote = "remote"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Game logs
	GameLogSource string
	GameLogDir    string

	// Database URLs
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Model
	ModelSource   string
	ModelPath     string
	ModelRedisKey string
	ModelURL      string
	ModelTimeout  time.Duration

	// Roster fan-out
	RosterConcurrency int

	// Ingest worker pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

// Load loads configuration from environment variables.
// Which keys are required depends on the selected game log and model sources.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		GameLogSource: strings.ToLower(getEnv("GAMELOG_SOURCE", SourceCSV)),
		GameLogDir:    getEnv("GAMELOG_DIR", "data"),

		PostgresURL:   os.Getenv("POSTGRES_URL"),
		ClickHouseURL: os.Getenv("CLICKHOUSE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),

		ModelSource:   strings.ToLower(getEnv("MODEL_SOURCE", ModelFile)),
		ModelPath:     getEnv("MODEL_PATH", "model.yaml"),
		ModelRedisKey: getEnv("MODEL_REDIS_KEY", "projection:model"),
		ModelTimeout:  getEnvDuration("MODEL_TIMEOUT", 2*time.Second),

		RosterConcurrency: getEnvInt("ROSTER_CONCURRENCY", 4),

		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		QueueSize:     getEnvInt("QUEUE_SIZE", 10000),
		BatchSize:     getEnvInt("BATCH_SIZE", 500),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing for the selected sources
	var err error
	switch cfg.GameLogSource {
	case SourceCSV:
	case SourceClickHouse:
		if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
			return nil, err
		}
	case SourcePostgres:
		if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown GAMELOG_SOURCE %q", cfg.GameLogSource)
	}

	switch cfg.ModelSource {
	case ModelFile:
	case ModelRedis:
		if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
			return nil, err
		}
	case ModelRemote:
		if cfg.ModelURL, err = getEnvRequired("MODEL_URL"); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown MODEL_SOURCE %q", cfg.ModelSource)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
