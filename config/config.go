package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// Upstream job-board API (submission + saved-job sinks)
	UpstreamBaseURL string
	// Secret used to verify bearer tokens issued by the identity provider
	JWTSecret string
	// Path of the device-local SQLite file backing the anonymous saved-jobs set
	LocalStorePath string
	FrontendURL    string
	// Redis Configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitUploadThreshold int
	// Assist (AI chat) Configuration
	AssistAPIKey  string
	AssistBaseURL string
	AssistModel   string
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		UpstreamBaseURL: strings.TrimRight(getEnv("UPSTREAM_BASE_URL", "http://localhost:5000/api"), "/"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		LocalStorePath:  getEnv("LOCAL_STORE_PATH", "pipeline.db"),
		FrontendURL:     strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),
		// Assist Configuration
		AssistAPIKey:  getEnv("OPENAI_API_KEY", ""),
		AssistBaseURL: strings.TrimRight(getEnv("ASSIST_BASE_URL", "https://api.openai.com/v1"), "/"),
		AssistModel:   getEnv("ASSIST_MODEL", "gpt-4o-mini"),
	}

	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Authenticated saved-job sync will be unavailable.")
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
