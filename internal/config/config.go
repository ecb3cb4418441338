package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         string
	Env          string // development or production
	StaticDir    string
	MaxBodyBytes int

	// Database configuration
	DBType            string // sqlite, mysql, postgres, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Bootstrap admin account
	AdminUsername     string
	AdminPasswordHash string

	// Rate limiting
	GlobalRateMax int // requests per hour per client
	LoginRateMax  int // login attempts per 15 minutes per client

	// Backups (sqlite only)
	BackupDir  string
	BackupKeep int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "5000"),
		Env:               getEnv("APP_ENV", "development"),
		StaticDir:         getEnv("STATIC_DIR", "dist"),
		MaxBodyBytes:      getEnvAsInt("MAX_BODY_BYTES", 5*1024*1024),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", "journal.db"),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		AdminUsername:     getEnv("APP_USERNAME", "admin"),
		AdminPasswordHash: getEnv("APP_PASSWORD_HASH", ""),
		GlobalRateMax:     getEnvAsInt("RATE_LIMIT_PER_HOUR", 200),
		LoginRateMax:      getEnvAsInt("LOGIN_RATE_LIMIT", 5),
		BackupDir:         getEnv("BACKUP_DIR", "backups"),
		BackupKeep:        getEnvAsInt("BACKUP_KEEP", 30),
	}

	// Validate required fields
	if cfg.DBDatabase == "" {
		return nil, fmt.Errorf("DB_DATABASE is required")
	}
	if cfg.DBType != "sqlite" && cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required for %s", cfg.DBType)
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production hardening
// (origin checks, reduced log level).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
