package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and run database migrations",
	Long:  `This job applies the embedded goose migrations to the configured database.`,
	Run: func(cmd *cobra.Command, args []string) {

		_, reportDB := commonSetUp()
		defer reportDB.Close()

		log.Info().Msg("Running migrations...")
		if err := reportDB.Migrate(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}

		log.Info().Msg("Migrations complete")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
