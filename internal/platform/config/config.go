package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

// Config is everything the composition root needs to build the ride store.
type Config struct {
	Backend    Backend
	StorageKey string

	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// AutoAcceptDrivers lists driver names whose incoming requests are accepted on creation.
	AutoAcceptDrivers []string
	SeedDemoData      bool
	// SeedLocation lays out demo departure times. Nil means the process's local zone.
	SeedLocation *time.Location

	PricePerKm float64
	MinFare    float64

	LogLevel string
	LogFile  string
}

func defaultConfig() Config {
	return Config{
		Backend:           BackendSQLite,
		StorageKey:        "ride-storage",
		SQLitePath:        "rideshare.db",
		RedisPrefix:       "rideshare:",
		AutoAcceptDrivers: []string{"MoCheddar67"},
		PricePerKm:        2,
		MinFare:           4,
		LogLevel:          "info",
	}
}

// LoadFromEnv reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real env vars win.
func LoadFromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()
	var errs []error

	if v := strings.TrimSpace(os.Getenv("STATE_BACKEND")); v != "" {
		cfg.Backend = Backend(strings.ToLower(v))
	}
	switch cfg.Backend {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("STATE_BACKEND must be one of memory, sqlite, postgres, redis (got %q)", cfg.Backend))
	}

	setString(&cfg.StorageKey, "STATE_STORAGE_KEY")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	setInt(&cfg.RedisDB, "REDIS_DB", &errs)
	setString(&cfg.RedisPrefix, "REDIS_PREFIX")

	if v, ok := os.LookupEnv("AUTO_ACCEPT_DRIVERS"); ok {
		cfg.AutoAcceptDrivers = splitAndTrim(v)
	}
	setBool(&cfg.SeedDemoData, "SEED_DEMO_DATA", &errs)
	if v := strings.TrimSpace(os.Getenv("DEMO_TIMEZONE")); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid DEMO_TIMEZONE: %w", err))
		} else {
			cfg.SeedLocation = loc
		}
	}

	setFloat(&cfg.PricePerKm, "PRICE_PER_KM", &errs)
	setFloat(&cfg.MinFare, "MIN_FARE", &errs)

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.LogFile = strings.TrimSpace(os.Getenv("LOG_FILE"))

	if cfg.Backend == BackendPostgres && cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
	}
	if cfg.Backend == BackendRedis && cfg.RedisAddr == "" {
		errs = append(errs, errors.New("REDIS_ADDR is required for the redis backend"))
	}
	if cfg.PricePerKm < 0 || cfg.MinFare < 0 {
		errs = append(errs, errors.New("PRICE_PER_KM and MIN_FARE must be >= 0"))
	}

	return cfg, errors.Join(errs...)
}

func setString(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func setInt(target *int, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = i
	}
}

func setFloat(target *float64, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = f
	}
}

func setBool(target *bool, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = b
	}
}

func splitAndTrim(v string) []string {
	raw := strings.Split(v, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
