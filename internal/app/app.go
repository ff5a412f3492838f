// Package app wires configuration, logging, the database and the import
// service together for the commands.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/amsterdam/sensorregister/internal/config"
	"github.com/amsterdam/sensorregister/internal/db"
	"github.com/amsterdam/sensorregister/internal/feeds"
	"github.com/amsterdam/sensorregister/internal/geocoding"
	"github.com/amsterdam/sensorregister/internal/importer"
	"github.com/amsterdam/sensorregister/internal/logging"
	"github.com/amsterdam/sensorregister/internal/reconcile"
	"github.com/amsterdam/sensorregister/internal/report"
)

type App struct {
	Config  config.Config
	Log     zerolog.Logger
	DB      *gorm.DB
	Catalog *feeds.Catalog
	Service *reconcile.Service
}

// Bootstrap loads the configuration, connects and migrates the database
// and builds the import service. Reports are logged and written to out.
// The returned context carries the logger.
func Bootstrap(ctx context.Context, out io.Writer) (context.Context, *App, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, nil, fmt.Errorf("loading config: %w", err)
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	ctx = logging.NewContext(ctx, log)

	d, err := db.Connect(cfg.DatabaseURL, cfg.Schema, log)
	if err != nil {
		return ctx, nil, err
	}
	if err := db.Migrate(ctx, d, cfg.Schema); err != nil {
		return ctx, nil, err
	}

	catalog, err := feeds.Default()
	if err != nil {
		return ctx, nil, fmt.Errorf("loading feed catalog: %w", err)
	}

	im := importer.New(d, geocoding.NewClient(cfg.Geocoding()), cfg.Spreadsheet.Separator)
	sink := report.Multi{report.LogSink{}, report.WriterSink{W: out}}

	return ctx, &App{
		Config:  cfg,
		Log:     log,
		DB:      d,
		Catalog: catalog,
		Service: reconcile.New(d, im, sink, catalog),
	}, nil
}

// Close releases the database connections.
func (a *App) Close() {
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
