// Package config loads server settings from the environment, after
// overlaying an optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the server.
type Config struct {
	Port string
	// DatabaseURL is sqlite://<path> or a postgres:// DSN.
	DatabaseURL string
	// DeploymentHost is the host allowed as https://<host> by the CORS gate.
	DeploymentHost string
	BcryptCost     int
	// AuthRateLimit is requests per minute per client IP on signup/login.
	// Zero disables limiting.
	AuthRateLimit int
	// TrustProxy takes client addresses from X-Forwarded-For / X-Real-IP.
	TrustProxy bool
	LogLevel   slog.Level
}

const (
	defaultPort       = "8080"
	defaultBcryptCost = 10
)

// Load reads .env (if present) into the process environment without
// overriding variables that are already set, then builds a Config.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Missing required values and
// malformed numbers are errors.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:           envOrDefault(getenv, "PORT", defaultPort),
		DatabaseURL:    getenv("DATABASE_URL"),
		DeploymentHost: envOrDefault(getenv, "ALLOWED_ORIGIN_HOST", getenv("VERCEL_URL")),
		BcryptCost:     defaultBcryptCost,
		LogLevel:       slog.LevelInfo,
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if cfg.DeploymentHost == "" {
		errs = append(errs, errors.New("ALLOWED_ORIGIN_HOST (or VERCEL_URL) is required"))
	}
	if strings.Contains(cfg.DeploymentHost, "://") {
		errs = append(errs, fmt.Errorf("ALLOWED_ORIGIN_HOST must be a bare host, got %q", cfg.DeploymentHost))
	}

	if v := getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("invalid BCRYPT_COST: %w", err))
		case cost < 4 || cost > 14:
			errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost))
		default:
			cfg.BcryptCost = cost
		}
	}

	if v := getenv("AUTH_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("invalid AUTH_RATE_LIMIT: %w", err))
		case n < 0:
			errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT must not be negative, got %d", n))
		default:
			cfg.AuthRateLimit = n
		}
	}

	if v := getenv("TRUST_PROXY"); v != "" {
		trust, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid TRUST_PROXY: %w", err))
		} else {
			cfg.TrustProxy = trust
		}
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("invalid LOG_LEVEL: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOrDefault(getenv func(string) string, key, defaultVal string) string {
	if val := getenv(key); val != "" {
		return val
	}
	return defaultVal
}
