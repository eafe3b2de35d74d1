package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	AuthIssuer  string // Base URL of the auth provider (JWKS discovery)
	JWTSecret   string // HS256 fallback secret
	FrontendURL string
	// Redis Configuration (seen-job ledger + rate limiting)
	RedisURL      string
	RedisPassword string
	// Feed / recommendation tuning
	FeedPageSize   int
	RecommendLimit int
	// Daily digest (notification targeting)
	DigestCronSpec string
	DigestMinScore int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development; ignored elsewhere
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Trailing slash would produce a double slash in the JWKS URL
		AuthIssuer:  strings.TrimRight(getEnv("AUTH_ISSUER_URL", ""), "/"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Feed / recommendation tuning
		FeedPageSize:   getEnvInt("FEED_PAGE_SIZE", 10),
		RecommendLimit: getEnvInt("RECOMMEND_LIMIT", 20),
		// Daily digest
		DigestCronSpec: getEnv("DIGEST_CRON_SPEC", "0 9 * * *"), // 09:00 daily
		DigestMinScore: getEnvInt("DIGEST_MIN_SCORE", 85),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Seen-job ledger will use in-memory fallback.")
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
