package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	DBMaxConns    int
	DBMaxIdleTime time.Duration
	DBMaxLifetime time.Duration

	// TxTimeout bounds every mutating engine transaction
	TxTimeout time.Duration

	// DeadLetterPath is where undeliverable events are appended
	DeadLetterPath string

	// CatalogSeedPath points at an optional JSON file of item definitions
	// synced into the catalog at startup
	CatalogSeedPath string

	// EventRetentionDays is how long audit log rows are kept before the
	// cleanup job removes them
	EventRetentionDays int

	// EventCleanupInterval is how often the cleanup job runs
	EventCleanupInterval time.Duration

	APIKey string // API key authenticating the service-layer caller
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		ServiceName:     getEnv("SERVICE_NAME", "classforge-engine"),
		Version:         getEnv("SERVICE_VERSION", "dev"),
		Environment:     getEnv("ENVIRONMENT", "dev"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", "classforge"),
		DeadLetterPath:  getEnv("DEAD_LETTER_PATH", "events.deadletter.jsonl"),
		CatalogSeedPath: getEnv("CATALOG_SEED_PATH", "configs/item_catalog.json"),
		APIKey:          getEnv("API_KEY", ""),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.DBMaxConns, err = getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}

	cfg.DBMaxIdleTime, err = getEnvDuration("DB_MAX_IDLE_TIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.DBMaxLifetime, err = getEnvDuration("DB_MAX_LIFETIME", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg.TxTimeout, err = getEnvDuration("TX_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.EventRetentionDays, err = getEnvInt("EVENT_RETENTION_DAYS", 90)
	if err != nil {
		return nil, err
	}

	cfg.EventCleanupInterval, err = getEnvDuration("EVENT_CLEANUP_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
