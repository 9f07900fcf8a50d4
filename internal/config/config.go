package config

import (
	"os"
)

type Config struct {
	DatabasePath string
	LogLevel     string
	Environment  string
}

func Load() *Config {
	cfg := &Config{
		DatabasePath: getEnv("DATABASE_PATH", "dressdiary.db"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		Environment:  getEnv("ENV", "production"),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
