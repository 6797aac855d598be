package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables, loading an
// optional .env file first. Missing variables leave the current values
// untouched, so a partial environment only overrides what it names.
func parseEnv(config *Config) {
	// absence of a .env file is fine
	_ = godotenv.Load()

	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	setString("ENDPOINT_ADDR_HTTP", &config.EndpointAddrHTTP)
	setString("DATABASE_DSN", &config.DatabaseDSN)
	setString("SECRET_KEY", &config.SecretKey)
	setString("S3_ROOT_USER", &config.S3RootUser)
	setString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("S3_BUCKET", &config.S3Bucket)
	setString("S3_REGION", &config.S3Region)
	setString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	setString("AMQP_URL", &config.AMQPURL)
	setString("GEMINI_API_KEY", &config.GeminiAPIKey)
	setString("GEMINI_MODEL", &config.GeminiModel)

	if v, ok := os.LookupEnv("SCRAPE_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.ScrapeInterval = d
		}
	}
	if v, ok := os.LookupEnv("ALLOCATION_THRESHOLD"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.AllocationThreshold = f
		}
	}
}
