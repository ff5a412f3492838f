// Package config reads the importer settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/amsterdam/sensorregister/internal/geocoding"
	"github.com/amsterdam/sensorregister/internal/spreadsheet"
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL environment variable is required")
	ErrInvalidValue       = errors.New("invalid configuration value")
)

const DefaultSchema = "iot"

type Config struct {
	DatabaseURL string
	Schema      string

	PostcodeSearchURL string
	AddressSearchURL  string
	GeocodingTimeout  time.Duration
	GeocodingRPS      float64

	FeedTimeout time.Duration

	Spreadsheet spreadsheet.Config

	LogLevel  string
	LogFormat string
}

// Load reads .env.local and .env when present, then the environment.
// Variables already set in the environment win.
func Load() (Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	cfg, err := LoadFromEnv()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv loads the configuration from environment variables.
//
// Environment variables:
//   - DATABASE_URL: postgres DSN, or a sqlite: / file: DSN (required)
//   - DB_SCHEMA: postgres schema holding the tables (default: iot)
//   - ATLAS_POSTCODE_SEARCH, ATLAS_ADDRESS_SEARCH: Atlas search endpoints
//   - IPROX_SEPARATOR: list separator in spreadsheet cells (default: ;)
//   - IPROX_NUM_SENSORS: sensor slots in the compact form (default: 5)
//   - GEOCODING_TIMEOUT: per request timeout (default: 10s)
//   - GEOCODING_RPS: geocoding requests per second, 0 for unlimited (default: 5)
//   - FEED_TIMEOUT: feed download timeout (default: 30s)
//   - LOG_LEVEL, LOG_FORMAT: zerolog level and "json" or "console"
func LoadFromEnv() (Config, error) {
	var errs []error

	cfg := Config{
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Schema:            env("DB_SCHEMA", DefaultSchema),
		PostcodeSearchURL: env("ATLAS_POSTCODE_SEARCH", geocoding.DefaultPostcodeURL),
		AddressSearchURL:  env("ATLAS_ADDRESS_SEARCH", geocoding.DefaultAddressURL),
		Spreadsheet:       spreadsheet.DefaultConfig(),
		LogLevel:          env("LOG_LEVEL", "info"),
		LogFormat:         env("LOG_FORMAT", "json"),
	}

	if sep, ok := os.LookupEnv("IPROX_SEPARATOR"); ok && sep != "" {
		cfg.Spreadsheet.Separator = sep
	}
	if v := env("IPROX_NUM_SENSORS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: IPROX_NUM_SENSORS=%q", ErrInvalidValue, v))
		}
		cfg.Spreadsheet.MaxSensors = n
	}

	var err error
	if cfg.GeocodingTimeout, err = duration("GEOCODING_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.FeedTimeout, err = duration("FEED_TIMEOUT", 30*time.Second); err != nil {
		errs = append(errs, err)
	}

	cfg.GeocodingRPS = 5
	if v := env("GEOCODING_RPS", ""); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: GEOCODING_RPS=%q", ErrInvalidValue, v))
		}
		cfg.GeocodingRPS = rps
	}

	return cfg, errors.Join(errs...)
}

// Validate checks the loaded values.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if err := c.Spreadsheet.Validate(); err != nil {
		return err
	}
	if c.GeocodingTimeout <= 0 {
		return fmt.Errorf("%w: GEOCODING_TIMEOUT must be positive", ErrInvalidValue)
	}
	if c.FeedTimeout <= 0 {
		return fmt.Errorf("%w: FEED_TIMEOUT must be positive", ErrInvalidValue)
	}
	if c.GeocodingRPS < 0 {
		return fmt.Errorf("%w: GEOCODING_RPS must not be negative", ErrInvalidValue)
	}
	return nil
}

func (c Config) Geocoding() geocoding.Config {
	return geocoding.Config{
		PostcodeURL:       c.PostcodeSearchURL,
		AddressURL:        c.AddressSearchURL,
		Timeout:           c.GeocodingTimeout,
		RequestsPerSecond: c.GeocodingRPS,
	}
}

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := env(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return d, nil
}
