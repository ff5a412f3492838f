package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/amsterdam/sensorregister/internal/app"
	"github.com/amsterdam/sensorregister/internal/seeds"
)

func main() {
	ctx, a, err := app.Bootstrap(context.Background(), os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close()

	if err := seeds.SeedAll(ctx, a.DB); err != nil {
		a.Log.Fatal().Err(err).Msg("seeding failed")
	}
}
