// Command migrate creates or updates the schema for the configured database.
package main

import (
	"flag"
	"os"

	"farmfund-backend/internal/config"
	"farmfund-backend/internal/infrastructure/db"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/logger"
)

func main() {
	verbose := flag.Bool("v", false, "log every statement")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level := logger.Warn
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		level = logger.Info
	}
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), level)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Str("driver", cfg.DBDriver).Int("tables", len(db.Models())).Msg("schema up to date")
}
