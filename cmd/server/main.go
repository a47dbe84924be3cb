package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"gymcore-backend/internal/app"
	"gymcore-backend/internal/config"
	"gymcore-backend/internal/database"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	// Money fields render as JSON numbers, matching the clients.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	database.Init(cfg)

	srv := app.New(cfg)

	log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
	if err := srv.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
