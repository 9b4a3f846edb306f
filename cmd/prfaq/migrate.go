package main

import (
	"fmt"

	"github.com/bordenet/pr-faq-assistant/internal/db"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the PostgreSQL tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if appConfig.DatabaseURL == "" {
			return ErrNoDatabase
		}
		ctx := cmd.Context()
		database, err := db.Connect(ctx, appConfig.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info().Msg("database schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
