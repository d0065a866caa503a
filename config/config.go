package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	DBName           string
	DataDir          string
	LogLevel         string
	CORSOrigins      string
	ImportMaxRecords int
}

var AppConfig *Config

// Load reads the environment, after an optional .env file. Every setting has a default;
// DB_NAME=:memory: runs without touching the disk.
func Load() *Config {
	_ = godotenv.Load()

	AppConfig = &Config{
		Port:             GetEnv("PORT", "3000"),
		Env:              GetEnv("ENV", "development"),
		DBName:           GetEnv("DB_NAME", "oruma"),
		DataDir:          GetEnv("DATA_DIR", "./data"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		CORSOrigins:      GetEnv("CORS_ORIGINS", "*"),
		ImportMaxRecords: GetEnvInt("IMPORT_MAX_RECORDS", 5000),
	}

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt falls back to defaultValue when the variable is unset or not an integer
func GetEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", value)
		return defaultValue
	}
	return n
}
