// Package db opens the registry database and migrates its schema.
package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/amsterdam/sensorregister/internal/logging"
	"github.com/amsterdam/sensorregister/internal/models"
)

// gormWriter routes gorm's query log through zerolog.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Debug().Str("component", "gorm").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func newLogger(log zerolog.Logger) logger.Interface {
	level := logger.Warn
	if log.GetLevel() <= zerolog.DebugLevel {
		level = logger.Info
	}
	return logger.New(gormWriter{log: log}, logger.Config{
		SlowThreshold:             100 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// isSQLite reports whether dsn names a sqlite database rather than a
// postgres connection string.
func isSQLite(dsn string) bool {
	return strings.HasPrefix(dsn, "file:") || strings.HasPrefix(dsn, "sqlite:") || dsn == ":memory:"
}

// Connect opens the database at dsn. On postgres all tables live in
// schema.
func Connect(dsn, schemaName string, log zerolog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database url is empty")
	}
	if isSQLite(dsn) {
		return OpenSQLite(strings.TrimPrefix(dsn, "sqlite:"), log)
	}

	cfg := &gorm.Config{Logger: newLogger(log)}
	if schemaName != "" {
		cfg.NamingStrategy = schema.NamingStrategy{TablePrefix: schemaName + "."}
	}

	d, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info().Str("schema", schemaName).Msg("connected to database")
	return d, nil
}

// OpenSQLite opens a sqlite database with foreign keys enforced. A single
// connection is used so in-memory databases are shared.
func OpenSQLite(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	if !strings.Contains(dsn, "_foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}

	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: newLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return d, nil
}

// Migrate creates the schema when needed and migrates all models.
func Migrate(ctx context.Context, d *gorm.DB, schemaName string) error {
	if d.Dialector.Name() == "postgres" && schemaName != "" {
		if err := EnsureSchema(ctx, d, schemaName); err != nil {
			return fmt.Errorf("creating schema %s: %w", schemaName, err)
		}
	}
	if err := d.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}
	logging.FromContext(ctx).Info().Msg("database migrated")
	return nil
}
