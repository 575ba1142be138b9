package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	Export  ExportConfig
	S3      S3Config
	Logging LoggingConfig
}

type ServerConfig struct {
	Port          int
	SessionCookie string
	SecureCookie  bool
	// Loaded engines kept in memory; idle ones are dropped and reload
	// from storage on the next request.
	SessionCacheSize int
	SessionIdleTTL   time.Duration
}

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type StorageConfig struct {
	Driver      string
	SQLitePath  string
	DatabaseURL string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type ExportConfig struct {
	ChromePath string
	Dir        string
	Attempts   int
	MarginMM   float64
	Landscape  bool
}

// S3Config is optional; when Bucket is set exports go to the bucket
// instead of Export.Dir.
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Prefix    string
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:          getEnvInt("PORT", 3000),
			SessionCookie: getEnv("SESSION_COOKIE", "resume_session"),
			SecureCookie:  getEnvBool("SECURE_COOKIE", false),

			SessionCacheSize: getEnvInt("SESSION_CACHE_SIZE", 1000),
			SessionIdleTTL:   time.Duration(getEnvInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
			SQLitePath:  getEnv("SQLITE_PATH", "resume-data/storage.db"),
			DatabaseURL: getEnv("STORAGE_DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Export: ExportConfig{
			ChromePath: getEnv("CHROME_PATH", ""),
			Dir:        getEnv("EXPORT_DIR", "resume-data/generated"),
			Attempts:   getEnvInt("EXPORT_ATTEMPTS", 3),
			MarginMM:   getEnvFloat("EXPORT_MARGIN_MM", 12),
			Landscape:  getEnvBool("EXPORT_LANDSCAPE", false),
		},
		S3: S3Config{
			Bucket:    getEnv("S3_BUCKET", ""),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Region:    getEnv("S3_REGION", "auto"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Prefix:    getEnv("S3_PREFIX", "exports"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.SessionCookie == "" {
		return fmt.Errorf("SESSION_COOKIE is required")
	}
	if c.Server.SessionCacheSize < 1 {
		return fmt.Errorf("SESSION_CACHE_SIZE must be at least 1")
	}
	if c.Server.SessionIdleTTL <= 0 {
		return fmt.Errorf("SESSION_IDLE_MINUTES must be positive")
	}
	switch c.Storage.Driver {
	case DriverMemory, DriverRedis:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("STORAGE_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Export.Attempts < 1 {
		return fmt.Errorf("EXPORT_ATTEMPTS must be at least 1")
	}
	if c.Export.MarginMM < 0 {
		return fmt.Errorf("EXPORT_MARGIN_MM must not be negative")
	}
	if c.S3.Bucket != "" && (c.S3.AccessKey == "" || c.S3.SecretKey == "") {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required when S3_BUCKET is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
