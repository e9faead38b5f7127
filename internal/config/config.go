package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Resolver      string
	DNSTimeout    time.Duration
	RedisHost     string
	RedisPort     string
	EnableCache   bool
	CacheTTL      time.Duration
	Port          string
	WatchInterval time.Duration
}

func Load() *Config {
	// Optional .env for local runs; missing file is fine.
	_ = godotenv.Load()

	return &Config{
		Resolver:      getEnv("RESOLVER", "8.8.8.8:53"),
		DNSTimeout:    getEnvDuration("DNS_TIMEOUT", 5*time.Second),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		EnableCache:   getEnvBool("ENABLE_CACHE", false),
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),
		Port:          getEnv("PORT", "5000"),
		WatchInterval: getEnvDuration("WATCH_INTERVAL", time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
