package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the roster service.
type Config struct {
	HTTPPort          int
	SQLiteDSN         string
	SessionSecret     string
	SessionTTL        time.Duration
	LeadCacheTTL      time.Duration
	BootstrapEmail    string
	BootstrapPassword string
}

// Load parses configuration values from the current process environment. A
// .env file in the working directory is folded in first when present, so
// local development does not need exported variables.
//
// The loader applies defaults for optional fields while validating required
// values and aggregating every problem into a single error.
func Load() (Config, error) {
	// Ignore a missing .env file; real environments export directly.
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:     8080,
		SQLiteDSN:    "file:roster.db?_foreign_keys=on",
		SessionTTL:   24 * time.Hour,
		LeadCacheTTL: 30 * time.Second,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("ROSTER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "ROSTER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("ROSTER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("ROSTER_SESSION_SECRET")); secret == "" {
		missing = append(missing, "ROSTER_SESSION_SECRET")
	} else {
		cfg.SessionSecret = secret
	}

	if ttlValue := strings.TrimSpace(os.Getenv("ROSTER_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "ROSTER_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if ttlValue := strings.TrimSpace(os.Getenv("ROSTER_LEAD_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "ROSTER_LEAD_CACHE_TTL")
		} else {
			cfg.LeadCacheTTL = ttl
		}
	}

	cfg.BootstrapEmail = strings.TrimSpace(os.Getenv("ROSTER_BOOTSTRAP_EMAIL"))
	cfg.BootstrapPassword = os.Getenv("ROSTER_BOOTSTRAP_PASSWORD")
	if (cfg.BootstrapEmail == "") != (cfg.BootstrapPassword == "") {
		invalid = append(invalid, "ROSTER_BOOTSTRAP_EMAIL, ROSTER_BOOTSTRAP_PASSWORD")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
