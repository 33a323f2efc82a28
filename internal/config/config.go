package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultTimeBudget is how long the solver searches when a request does not say.
const DefaultTimeBudget = 200 * time.Millisecond

// Config holds process settings read from the environment.
type Config struct {
	Port            string
	DatabaseURL     string
	DBPath          string
	SeedPath        string
	RedisAddr       string
	RouteCacheTTL   time.Duration
	TimeBudget      time.Duration
	MaxDestinations int
	ORSAPIKey       string
}

// LoadDotEnv loads .env into the environment when the file exists.
func LoadDotEnv(paths ...string) {
	if err := godotenv.Load(paths...); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads Config from the environment, applying defaults.
func Load() (Config, error) {
	ttl, err := GetDuration("ROUTE_CACHE_TTL", time.Hour)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	budget, err := GetDuration("ROUTE_TIME_BUDGET", DefaultTimeBudget)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if budget <= 0 {
		return Config{}, fmt.Errorf("load config: ROUTE_TIME_BUDGET must be positive, got %s", budget)
	}

	maxDest, err := GetInt("MAX_DESTINATIONS", 500)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if maxDest < 1 {
		return Config{}, fmt.Errorf("load config: MAX_DESTINATIONS must be at least 1, got %d", maxDest)
	}

	return Config{
		Port:            Get("PORT", "8080"),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBPath:          Get("DB_PATH", "data/app.db"),
		SeedPath:        Get("SEED_PATH", "data/seeds/cities.json"),
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RouteCacheTTL:   ttl,
		TimeBudget:      budget,
		MaxDestinations: maxDest,
		ORSAPIKey:       strings.TrimSpace(os.Getenv("ORS_API_KEY")),
	}, nil
}

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q as int: %w", key, v, err)
	}
	return n, nil
}

// GetDuration accepts Go duration strings ("250ms", "1h").
func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q as duration: %w", key, v, err)
	}
	return d, nil
}
