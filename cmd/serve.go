package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tdp-hub/tdp-report-services/api/handlers"
	"github.com/tdp-hub/tdp-report-services/api/services"
	"github.com/tdp-hub/tdp-report-services/internal/appconfig"
	"github.com/tdp-hub/tdp-report-services/internal/authz"
	"github.com/tdp-hub/tdp-report-services/internal/events"
	"github.com/tdp-hub/tdp-report-services/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		appCfg, reportDB := commonSetUp()
		defer reportDB.Close()

		notifier := initializeNotifier(appCfg.Pulsar)
		defer notifier.Close()

		fileStore, err := storage.NewFileStore(context.Background(), appCfg.AWS)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize file store")
		}

		service := &services.Service{
			Config:   appCfg,
			Reports:  reportDB,
			Users:    reportDB,
			Files:    fileStore,
			Notifier: notifier,
		}

		r := mux.NewRouter()
		api := r.PathPrefix(appCfg.BasePath).Subrouter()
		handlers.RegisterRoutes(api, service, reportDB, authz.DefaultAuthorizer)

		addr := fmt.Sprintf("%s:%d", host, port)
		log.Info().Str("base_path", appCfg.BasePath).Msgf("Server started at %s", addr)

		if err := http.ListenAndServe(addr, r); err != nil {
			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}

// initializeNotifier connects to Pulsar when a broker is configured. Without
// one, report file events are dropped.
func initializeNotifier(cfg appconfig.PulsarConfig) events.Notifier {
	if cfg.URL == "" {
		log.Warn().Msg("No pulsar url configured, report file events are disabled")
		return events.NopNotifier{}
	}

	publisher, err := events.NewEventPublisher(cfg.URL, cfg.TopicProducer)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize event publisher")
	}
	return publisher
}
