package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/tdp-hub/tdp-report-services/db"
	"github.com/tdp-hub/tdp-report-services/internal/appconfig"
)

// commonSetUp configures logging, loads the config file and opens the
// database. Failures are fatal.
func commonSetUp() (*appconfig.Config, *db.ReportDB) {
	setLogging(logLevel)

	cfg, err := appconfig.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("Failed to load config")
	}

	logger := log.Logger.With().Str("component", "db").Logger()
	reportDB, err := db.NewReportDB(cfg.Database.Driver, cfg.Database.Source, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ReportDB")
	}

	return cfg, reportDB
}
