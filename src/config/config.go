package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	UploadDir      string
	PlotsDir       string
	AllowedOrigins []string
	RulesFile      string
	LogLevel       string
}

var defaultOrigins = "http://localhost:5173,http://localhost:5174"

func Load() (Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "sqlite://data/ledgerlens.db"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		PlotsDir:       getEnv("PLOTS_DIR", "plots"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", defaultOrigins)),
		RulesFile:      getEnv("RULES_FILE", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
