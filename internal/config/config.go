package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

const defaultSessionSecret = "dev-secret-change-in-production"

// Config holds application configuration
type Config struct {
	Port string

	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	DBPassword     string
	DBSSLMode      string
	DBMaxOpenConns int

	SessionSecret string
	SessionTTL    time.Duration
	SessionStore  string

	StaticDir string
	LogLevel  string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables. All defaults are
// suitable for local development only.
func NewConfig() (*Config, error) {
	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "registration_db"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		SessionSecret:  getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
		SessionStore:   getEnv("SESSION_STORE", SessionStoreMemory),
		StaticDir:      getEnv("STATIC_DIR", "./public"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SMTP_FROM", "noreply@localhost"),
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if cfg.SessionStore != SessionStoreMemory && cfg.SessionStore != SessionStorePostgres {
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}

	return cfg, nil
}

// DBConn builds the lib/pq connection string.
func (c *Config) DBConn() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode)
}

// SMTPConfigured reports whether a mail server is set up.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != ""
}

// SessionSecretDefaulted reports whether the signing secret was left at the
// development default, which deserves a startup warning.
func (c *Config) SessionSecretDefaulted() bool {
	return c.SessionSecret == defaultSessionSecret
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}
