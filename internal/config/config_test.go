package config

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/amsterdam/sensorregister/internal/geocoding"
	"github.com/amsterdam/sensorregister/internal/spreadsheet"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	is := is.New(t)

	t.Setenv("DATABASE_URL", "postgres://localhost/registry")
	for _, key := range []string{"DB_SCHEMA", "ATLAS_POSTCODE_SEARCH", "ATLAS_ADDRESS_SEARCH", "IPROX_SEPARATOR", "IPROX_NUM_SENSORS", "GEOCODING_TIMEOUT", "GEOCODING_RPS", "FEED_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	is.NoErr(err)
	is.NoErr(cfg.Validate())

	is.Equal(cfg.Schema, "iot")
	is.Equal(cfg.Spreadsheet, spreadsheet.Config{Separator: ";", MaxSensors: 5})
	is.Equal(cfg.GeocodingTimeout, 10*time.Second)
	is.Equal(cfg.FeedTimeout, 30*time.Second)
	is.Equal(cfg.Geocoding().PostcodeURL, geocoding.DefaultPostcodeURL)
	is.Equal(cfg.Geocoding().RequestsPerSecond, 5.0)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	is := is.New(t)

	t.Setenv("DATABASE_URL", "sqlite:file::memory:")
	t.Setenv("DB_SCHEMA", "registry")
	t.Setenv("IPROX_SEPARATOR", "|")
	t.Setenv("IPROX_NUM_SENSORS", "3")
	t.Setenv("GEOCODING_TIMEOUT", "2s")
	t.Setenv("GEOCODING_RPS", "0")

	cfg, err := LoadFromEnv()
	is.NoErr(err)

	is.Equal(cfg.Schema, "registry")
	is.Equal(cfg.Spreadsheet, spreadsheet.Config{Separator: "|", MaxSensors: 3})
	is.Equal(cfg.GeocodingTimeout, 2*time.Second)
	is.Equal(cfg.GeocodingRPS, 0.0)
}

func TestLoadFromEnvRejectsMalformedValues(t *testing.T) {
	is := is.New(t)

	t.Setenv("DATABASE_URL", "postgres://localhost/registry")
	t.Setenv("IPROX_NUM_SENSORS", "five")
	t.Setenv("FEED_TIMEOUT", "soon")

	_, err := LoadFromEnv()
	is.True(errors.Is(err, ErrInvalidValue))
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	valid := Config{
		DatabaseURL:      "postgres://localhost/registry",
		Spreadsheet:      spreadsheet.DefaultConfig(),
		GeocodingTimeout: time.Second,
		FeedTimeout:      time.Second,
	}
	is.NoErr(valid.Validate())

	missing := valid
	missing.DatabaseURL = ""
	is.True(errors.Is(missing.Validate(), ErrMissingDatabaseURL))

	noSensors := valid
	noSensors.Spreadsheet.MaxSensors = 0
	is.True(errors.Is(noSensors.Validate(), spreadsheet.ErrInvalidConfig))

	noTimeout := valid
	noTimeout.FeedTimeout = 0
	is.True(errors.Is(noTimeout.Validate(), ErrInvalidValue))
}
