package main

import (
	"fmt"

	"github.com/bordenet/pr-faq-assistant/internal/db"
	"github.com/bordenet/pr-faq-assistant/internal/prompts"
	"github.com/bordenet/pr-faq-assistant/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the REST API for document validation and the three-phase PR-FAQ workflow.

Projects are stored in PostgreSQL when DATABASE_URL is set, otherwise in memory.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if servePort > 0 {
			appConfig.Port = servePort
		}

		store, err := db.Open(ctx, appConfig.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		if database, ok := store.(*db.DB); ok {
			if err := database.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			log.Info().Msg("connected to PostgreSQL")
		} else {
			log.Warn().Msg("DATABASE_URL not set, projects will be kept in memory")
		}

		cache := prompts.NewCache(prompts.NewEmbeddedFetcher())
		if err := cache.Preload(ctx, prompts.All...); err != nil {
			return fmt.Errorf("failed to preload prompt templates: %w", err)
		}

		srv := server.New(server.ConfigFrom(appConfig), store, cache, log.Logger)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
