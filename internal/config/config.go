// Package config reads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port           int
	DBPath         string
	LogLevel       string // debug, info, warn, error
	LogFormat      string // text (colored) or json
	MetricsEnabled bool
	CORSOrigin     string

	// MeName and Currency seed the user's settings on first start.
	MeName   string
	Currency string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		Port:           8080,
		DBPath:         "./data/settleup.db",
		LogLevel:       "info",
		LogFormat:      "text",
		MetricsEnabled: true,
		CORSOrigin:     "*",
		MeName:         "Me",
		Currency:       "$",
	}
}

// Load builds a Config from environment variables, falling back to the given
// .env files (".env" when none are given) and then to Defaults.
// Missing .env files are ignored; real environment variables always win.
func Load(files ...string) (Config, error) {
	cfg := Defaults()

	dotenv, err := godotenv.Read(files...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to read env file: %w", err)
	}

	lookup := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}

	if v := lookup("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return cfg, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = port
	}
	if v := lookup("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := lookup("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := lookup("LOG_FORMAT"); v != "" {
		format := strings.ToLower(v)
		if format != "text" && format != "json" {
			return cfg, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", v)
		}
		cfg.LogFormat = format
	}
	if v := lookup("METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid METRICS_ENABLED %q: %w", v, err)
		}
		cfg.MetricsEnabled = enabled
	}
	if v := lookup("CORS_ORIGIN"); v != "" {
		cfg.CORSOrigin = v
	}
	if v := lookup("ME_NAME"); v != "" {
		cfg.MeName = v
	}
	if v := lookup("CURRENCY"); v != "" {
		cfg.Currency = v
	}

	return cfg, nil
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
